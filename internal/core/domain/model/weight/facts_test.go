package weight_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"

	"github.com/stretchr/testify/assert"
)

func TestFacts_Dimensions(t *testing.T) {
	facts := weight.NewFacts()
	facts.Meta["p-own"] = weight.ProductMeta{CategoryID: "c-1"}
	facts.Meta["p-category"] = weight.ProductMeta{CategoryID: "c-1"}
	facts.Meta["p-unclassified"] = weight.ProductMeta{}
	facts.ProductDimensions["p-own"] = kernel.Dimensions{LengthMM: 50, WidthMM: 50, HeightMM: 50}
	facts.ProductDimensions["p-category"] = kernel.Dimensions{LengthMM: 50}
	facts.CategoryDimensions["c-1"] = kernel.Dimensions{LengthMM: 100, WidthMM: 100, HeightMM: 100}

	t.Run("product_dimensions_win", func(t *testing.T) {
		dims, ok := facts.Dimensions("p-own")

		assert.True(t, ok)
		assert.InDelta(t, 50, dims.LengthMM, 1e-9)
	})

	t.Run("incomplete_product_dimensions_fall_back_to_category", func(t *testing.T) {
		dims, ok := facts.Dimensions("p-category")

		assert.True(t, ok)
		volume, _ := dims.Volume()
		assert.InDelta(t, 1000, volume, 1e-9)
	})

	t.Run("unknown_without_category", func(t *testing.T) {
		_, ok := facts.Dimensions("p-unclassified")
		assert.False(t, ok)

		_, ok = facts.Dimensions("p-missing")
		assert.False(t, ok)
	})
}
