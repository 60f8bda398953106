// Package weight models resolved product weights and the facts used to infer
// them: curated weights, dimensions, historical parcel observations and
// category classification.
//
// The cascade itself lives in the domain services package; this package
// provides the value types and the statistics (trimmed medians, volumetric
// weight, rounding) it relies on.
package weight
