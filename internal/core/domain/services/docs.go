// Package services holds the domain services of the packing pipeline. They
// are pure: every input arrives as an argument and nothing is read from or
// written to storage.
//
//   - WeightResolver: tiered weight inference over preloaded facts
//   - BoxAllocator: first-fit packing of units into tentative boxes
//   - CarrierOptimizer: consolidation and downsizing against the catalog
//
// The allocator and the optimizer must receive the same catalog and options
// for their invariants to agree.
package services
