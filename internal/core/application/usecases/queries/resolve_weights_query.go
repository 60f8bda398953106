package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// MaxResolveBatch bounds the number of distinct products per request.
const MaxResolveBatch = 1000

var ErrResolveWeightsQueryIsNotConstructed = errors.New(
	"ResolveWeightsQuery must be created via NewResolveWeightsQuery constructor",
)

// ResolveWeightsQuery asks for the resolved weight of a set of products.
//
// Example:
//
//	query, err := NewResolveWeightsQuery([]string{"p-1", "p-2"})
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type ResolveWeightsQuery struct {
	productIDs []kernel.ProductID

	guard guard.ConstructorGuard
}

// NewResolveWeightsQuery trims, de-duplicates and sorts the ids. An empty
// list is valid and resolves to nothing.
func NewResolveWeightsQuery(productIDs []string) (ResolveWeightsQuery, error) {
	ids := make([]kernel.ProductID, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, kernel.ProductID(id))
	}
	ids = kernel.NormalizeProductIDs(ids)

	if len(ids) > MaxResolveBatch {
		return ResolveWeightsQuery{}, errs.NewValueIsOutOfRangeError("product ids", len(ids), 0, MaxResolveBatch)
	}

	return ResolveWeightsQuery{
		productIDs: ids,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ResolveWeightsQuery) Validate() error {
	return q.guard.Validate(ErrResolveWeightsQueryIsNotConstructed)
}

// ProductIDs returns a copy of the normalized ids.
func (q ResolveWeightsQuery) ProductIDs() []kernel.ProductID {
	out := make([]kernel.ProductID, len(q.productIDs))
	copy(out, q.productIDs)
	return out
}

// ResolveWeightsQueryResponse lists resolutions ordered by product id.
type ResolveWeightsQueryResponse struct {
	Resolutions []weight.Resolution
	Summary     map[weight.Source]int
	Warnings    []weight.LowWeightWarning
}

func newResolveWeightsResponse(report weight.Report) ResolveWeightsQueryResponse {
	return ResolveWeightsQueryResponse{
		Resolutions: report.Sorted(),
		Summary:     report.Summary(),
		Warnings:    report.Warnings,
	}
}
