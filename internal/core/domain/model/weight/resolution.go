package weight

import (
	"sort"

	"freight/internal/core/domain/model/kernel"
)

// Notes carries the intermediate values behind a resolution. Fields are nil
// when the tier did not compute them.
type Notes struct {
	VolumetricGrams      *int `json:"volumetric_weight_g,omitempty"`
	ActualCandidateGrams *int `json:"actual_candidate_g,omitempty"`
	ProductObservations  *int `json:"product_observations,omitempty"`
	CategoryObservations *int `json:"category_observations,omitempty"`
}

// Resolution is the resolved weight of one product and where it came from.
// ResolvedGrams is always a multiple of ten and at least MinimumGrams.
type Resolution struct {
	ProductID           kernel.ProductID  `json:"product_id"`
	ResolvedGrams       int               `json:"resolved_weight_g"`
	Source              Source            `json:"source"`
	ProductWeightGrams  *int              `json:"product_weight_g,omitempty"`
	CategoryWeightGrams *int              `json:"category_weight_g,omitempty"`
	CategoryID          kernel.CategoryID `json:"category_id,omitempty"`
	CategoryCode        string            `json:"category_code,omitempty"`
	ProductTypeCode     string            `json:"product_type_code,omitempty"`
	Notes               Notes             `json:"notes"`
}

// LowWeightWarning is raised, never returned as an error, for weights under
// ReviewThresholdGrams.
type LowWeightWarning struct {
	ProductID     kernel.ProductID `json:"product_id"`
	ResolvedGrams int              `json:"resolved_weight_g"`
	Source        Source           `json:"source"`
}

// Report is the outcome of resolving a set of products.
type Report struct {
	Resolutions map[kernel.ProductID]Resolution
	Warnings    []LowWeightWarning
}

// NewReport returns an empty report.
func NewReport() Report {
	return Report{
		Resolutions: make(map[kernel.ProductID]Resolution),
		Warnings:    make([]LowWeightWarning, 0),
	}
}

// Summary counts resolutions per source. Every valid source is present.
func (r Report) Summary() map[Source]int {
	summary := make(map[Source]int, len(AllSources()))
	for _, s := range AllSources() {
		summary[s] = 0
	}
	for _, res := range r.Resolutions {
		summary[res.Source]++
	}
	return summary
}

// Grams returns the resolved weight for id, or FallbackBaselineGrams when the
// product was not part of the report.
func (r Report) Grams(id kernel.ProductID) int {
	if res, ok := r.Resolutions[id]; ok {
		return res.ResolvedGrams
	}
	return FallbackBaselineGrams
}

// Sorted returns the resolutions ordered by product id.
func (r Report) Sorted() []Resolution {
	out := make([]Resolution, 0, len(r.Resolutions))
	for _, res := range r.Resolutions {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// IntPtr is a small helper for building optional gram values.
func IntPtr(v int) *int {
	return &v
}
