// Package catalog holds the container types a box can be assigned: priced
// carrier containers read from the pricing table and the static fallback
// ladder (small, medium, large, xl).
//
// A Catalog is built once per planning run and never mutated afterwards, so
// the allocator and the optimizer can share the same instance.
package catalog
