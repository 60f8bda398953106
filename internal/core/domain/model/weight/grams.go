package weight

import "math"

const (
	// VolumetricDivisor is the carrier convention of 5000 cm³ per billable kilogram.
	VolumetricDivisor = 5000.0

	// MinimumGrams is the smallest weight ever reported.
	MinimumGrams = 10

	// ReviewThresholdGrams flags suspiciously light products for manual audit.
	ReviewThresholdGrams = 20

	// FallbackBaselineGrams is used when no other information exists.
	FallbackBaselineGrams = 80

	// MinObservations is required both before and after percentile trimming.
	MinObservations = 3

	// TrimThreshold is the observation count from which percentile trimming applies.
	TrimThreshold = 20

	trimLowerRank = 0.05
	trimUpperRank = 0.95
)

// NormalizeGrams converts a stored weight into whole grams. Values strictly
// between 0 and 1 were recorded in kilograms. Non-positive values are unknown.
func NormalizeGrams(value float64) (int, bool) {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	if value < 1 {
		value *= 1000
	}
	return int(math.Round(value)), true
}

// VolumetricGrams returns the billable weight of a package of the given volume.
func VolumetricGrams(volumeCm3 float64) float64 {
	if volumeCm3 <= 0 {
		return 0
	}
	return volumeCm3 * 1000 / VolumetricDivisor
}

// RoundUpToTen rounds grams up to the next multiple of ten, never below MinimumGrams.
func RoundUpToTen(grams float64) int {
	// float noise such as 40.000000001 must not bump a whole value to the next step
	grams = math.Round(grams*1000) / 1000
	if grams <= 0 {
		return MinimumGrams
	}
	rounded := int(math.Ceil(grams/10) * 10)
	if rounded < MinimumGrams {
		return MinimumGrams
	}
	return rounded
}
