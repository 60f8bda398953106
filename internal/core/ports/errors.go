package ports

import "errors"

// ErrDataUnavailable wraps a failed optional lookup. Callers log it and carry
// on as if the lookup returned nothing.
var ErrDataUnavailable = errors.New("data unavailable")
