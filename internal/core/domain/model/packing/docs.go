// Package packing models units, boxes and the results of a packing run.
//
// A Box enforces its own invariants through Check: weight and volume stay
// under the container caps derated by the safety margin, nicotine and
// non-nicotine units never share a box, and a box holding fragile units stays
// under the fragile weight ceiling.
package packing
