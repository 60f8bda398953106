package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProductIDs(t *testing.T) {
	t.Run("trims_dedupes_and_sorts", func(t *testing.T) {
		// Given
		ids := []kernel.ProductID{" p-2", "p-1", "", "p-2 ", "   ", "p-3", "p-1"}

		// When
		got := kernel.NormalizeProductIDs(ids)

		// Then
		assert.Equal(t, []kernel.ProductID{"p-1", "p-2", "p-3"}, got)
	})

	t.Run("empty_input_gives_empty_slice", func(t *testing.T) {
		got := kernel.NormalizeProductIDs(nil)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestNormalizeCategoryIDs(t *testing.T) {
	got := kernel.NormalizeCategoryIDs([]kernel.CategoryID{"tanks", " coils", "tanks", ""})

	assert.Equal(t, []kernel.CategoryID{"coils", "tanks"}, got)
}
