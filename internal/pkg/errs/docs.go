// Package errs provides the typed errors shared by the freight service.
//
// Every type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) with a
// struct carrying the offending parameter, so callers can branch with errors.Is
// and still report details with errors.As:
//   - ObjectNotFoundError: a root entity such as a transfer does not exist
//   - ValueIsInvalidError: malformed input
//   - ValueIsOutOfRangeError: numeric option outside its bounds
//   - ValueIsRequiredError: a mandatory value or dependency is missing
//
// Only ObjectNotFoundError is expected to reach API clients during planning;
// the other kinds surface from constructors and configuration.
package errs
