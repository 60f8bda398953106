package queries

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"
	"freight/internal/core/ports"

	"go.uber.org/zap"
)

// factsLoader gathers the weight facts for a set of products. Each lookup is
// optional: a failure is logged as ports.ErrDataUnavailable and the lookup
// counts as empty.
type factsLoader struct {
	products ports.ProductRepository
	history  ports.ShipmentHistoryRepository
	logger   *zap.Logger
}

func (l factsLoader) load(ctx context.Context, ids []kernel.ProductID) weight.Facts {
	facts := weight.NewFacts()
	if len(ids) == 0 {
		return facts
	}

	if meta, err := l.products.Meta(ctx, ids); l.absorb("product metadata", err) {
		facts.Meta = meta
	}
	if curated, err := l.products.CuratedWeights(ctx, ids); l.absorb("curated weights", err) {
		facts.Curated = curated
	}
	if dims, err := l.products.ProductDimensions(ctx, ids); l.absorb("product dimensions", err) {
		facts.ProductDimensions = dims
	}
	if obs, err := l.history.ProductObservations(ctx, ids); l.absorb("product history", err) {
		facts.ProductObservations = obs
	}

	categories := facts.CategoryIDs()
	if len(categories) == 0 {
		return facts
	}
	if dims, err := l.products.CategoryDimensions(ctx, categories); l.absorb("category dimensions", err) {
		facts.CategoryDimensions = dims
	}
	if obs, err := l.history.CategoryObservations(ctx, categories); l.absorb("category history", err) {
		facts.CategoryObservations = obs
	}

	return facts
}

// absorb reports whether the lookup succeeded, logging it otherwise.
func (l factsLoader) absorb(lookup string, err error) bool {
	if err == nil {
		return true
	}
	l.logger.Warn("weight lookup failed, continuing without it",
		zap.String("lookup", lookup),
		zap.Error(fmt.Errorf("%w: %s: %w", ports.ErrDataUnavailable, lookup, err)),
	)
	return false
}

func logLowWeights(logger *zap.Logger, warnings []weight.LowWeightWarning) {
	for _, w := range warnings {
		logger.Warn("resolved weight below review threshold",
			zap.String("product_id", w.ProductID.String()),
			zap.Int("resolved_weight_g", w.ResolvedGrams),
			zap.Stringer("source", w.Source),
		)
	}
}
