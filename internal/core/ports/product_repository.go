package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"
)

// ProductRepository reads product classification, curated weights and
// dimensions. Products without data are simply absent from the returned maps.
type ProductRepository interface {
	// Meta returns category and product type classification with their
	// recorded average weights, normalized to grams.
	Meta(ctx context.Context, ids []kernel.ProductID) (map[kernel.ProductID]weight.ProductMeta, error)

	// CuratedWeights returns the positive stored product weights as recorded.
	// Values below one are kilograms.
	CuratedWeights(ctx context.Context, ids []kernel.ProductID) (map[kernel.ProductID]float64, error)

	ProductDimensions(ctx context.Context, ids []kernel.ProductID) (map[kernel.ProductID]kernel.Dimensions, error)

	// CategoryDimensions returns the typical box of each category.
	CategoryDimensions(ctx context.Context, ids []kernel.CategoryID) (map[kernel.CategoryID]kernel.Dimensions, error)

	// ListUncuratedShipped returns up to limit products without a curated
	// weight that appeared on transfers created since the given time.
	ListUncuratedShipped(ctx context.Context, since time.Time, limit int) ([]kernel.ProductID, error)
}
