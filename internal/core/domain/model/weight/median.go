package weight

import "sort"

// Median is a trimmed historical median with the raw observation count.
type Median struct {
	Grams        int
	Observations int
}

// MedianOf computes the per-unit median of the observations. Unusable rows are
// ignored. From TrimThreshold rows on, values whose percent rank falls outside
// [0.05, 0.95] are discarded. At least MinObservations values must remain both
// before and after trimming.
func MedianOf(observations []ParcelObservation) (Median, bool) {
	values := make([]float64, 0, len(observations))
	for _, o := range observations {
		if v, ok := o.UnitEstimate(); ok {
			values = append(values, v)
		}
	}

	total := len(values)
	if total < MinObservations {
		return Median{}, false
	}

	sort.Float64s(values)
	kept := values
	if total >= TrimThreshold {
		kept = trimByPercentRank(values)
	}
	if len(kept) < MinObservations {
		return Median{}, false
	}

	grams, ok := NormalizeGrams(continuousMedian(kept))
	if !ok {
		return Median{}, false
	}
	return Median{Grams: grams, Observations: total}, true
}

// trimByPercentRank keeps sorted values whose rank (first index of equal values)
// divided by n-1 lies within the trim band.
func trimByPercentRank(sorted []float64) []float64 {
	n := len(sorted)
	kept := make([]float64, 0, n)
	rank := 0
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			rank = i
		}
		pr := float64(rank) / float64(n-1)
		if pr >= trimLowerRank && pr <= trimUpperRank {
			kept = append(kept, v)
		}
	}
	return kept
}

func continuousMedian(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
