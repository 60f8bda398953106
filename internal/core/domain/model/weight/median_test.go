package weight_test

import (
	"testing"

	"freight/internal/core/domain/model/weight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func observations(unitWeights ...float64) []weight.ParcelObservation {
	out := make([]weight.ParcelObservation, 0, len(unitWeights))
	for _, w := range unitWeights {
		// two units per parcel so the per-unit estimate halves the parcel weight
		out = append(out, weight.ParcelObservation{ParcelWeightGrams: w * 2, ParcelQuantity: 2})
	}
	return out
}

func TestMedianOf(t *testing.T) {
	t.Run("odd_count_takes_middle_value", func(t *testing.T) {
		m, ok := weight.MedianOf(observations(50, 55, 70))

		require.True(t, ok)
		assert.Equal(t, 55, m.Grams)
		assert.Equal(t, 3, m.Observations)
	})

	t.Run("even_count_interpolates", func(t *testing.T) {
		m, ok := weight.MedianOf(observations(50, 54, 56, 90))

		require.True(t, ok)
		assert.Equal(t, 55, m.Grams)
	})

	t.Run("fewer_than_three_observations_is_unusable", func(t *testing.T) {
		_, ok := weight.MedianOf(observations(50, 55))

		assert.False(t, ok)
	})

	t.Run("unusable_rows_do_not_count", func(t *testing.T) {
		obs := append(observations(50, 55), weight.ParcelObservation{ParcelWeightGrams: 0, ParcelQuantity: 3},
			weight.ParcelObservation{ParcelWeightGrams: 120, ParcelQuantity: 0})

		_, ok := weight.MedianOf(obs)

		assert.False(t, ok)
	})

	t.Run("trims_outliers_from_twenty_observations", func(t *testing.T) {
		// Given 18 values at 100g plus one tiny and one huge outlier
		values := []float64{1, 5000}
		for range 18 {
			values = append(values, 100)
		}

		// When
		m, ok := weight.MedianOf(observations(values...))

		// Then
		require.True(t, ok)
		assert.Equal(t, 100, m.Grams)
		assert.Equal(t, 20, m.Observations)
	})

	t.Run("trimming_shifts_median_of_skewed_set", func(t *testing.T) {
		// 20 distinct values 10..200; the lowest rank (0) and highest rank (1) are dropped
		values := make([]float64, 0, 20)
		for i := 1; i <= 20; i++ {
			values = append(values, float64(i*10))
		}
		values[19] = 10000

		m, ok := weight.MedianOf(observations(values...))

		require.True(t, ok)
		// kept 20..190, median of 18 values = (100+110)/2
		assert.Equal(t, 105, m.Grams)
	})

	t.Run("below_threshold_keeps_outliers", func(t *testing.T) {
		m, ok := weight.MedianOf(observations(1, 100, 100, 5000))

		require.True(t, ok)
		assert.Equal(t, 100, m.Grams)
	})
}

func TestParcelObservation_UnitEstimate(t *testing.T) {
	v, ok := weight.ParcelObservation{ParcelWeightGrams: 900, ParcelQuantity: 3}.UnitEstimate()

	assert.True(t, ok)
	assert.InDelta(t, 300.0, v, 1e-9)
}
