package services

import (
	"math"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/weight"
)

// WeightResolver infers a shipping weight for every product from the facts
// loaded for a run.
//
// Tiers are tried in order and the first that yields a positive weight wins:
//   - curated: a stored product weight
//   - dimension: volumetric weight of the product (or its category's typical
//     box), raised to the historical median when that is heavier
//   - historical: the product's trimmed parcel median
//   - category_historical: the category's trimmed parcel median
//   - category_default: keyword table or product type average
//   - fallback: category average, type average or the 80 g baseline
//
// Example usage:
//
//	resolver := services.NewWeightResolver()
//	report := resolver.Resolve(ids, facts)
//	for _, w := range report.Warnings {
//	    logger.Warn("low resolved weight", zap.String("product_id", w.ProductID.String()))
//	}
type WeightResolver struct {
	tiers []weightTier
}

// weightTier returns ok=false when it has nothing to say about the product.
type weightTier func(c *resolutionContext) (weight.Resolution, bool)

// resolutionContext holds the per-product lookups shared by every tier.
type resolutionContext struct {
	id             kernel.ProductID
	meta           weight.ProductMeta
	hasMeta        bool
	facts          weight.Facts
	productMedian  *weight.Median
	categoryMedian *weight.Median
}

// NewWeightResolver creates a resolver with the standard tier chain.
func NewWeightResolver() WeightResolver {
	return WeightResolver{
		tiers: []weightTier{
			curatedTier,
			dimensionTier,
			historicalTier,
			categoryHistoricalTier,
			categoryDefaultTier,
		},
	}
}

// Resolve computes a resolution for each distinct id. Ids are trimmed and
// de-duplicated; an empty input yields an empty report.
//
// Parameters:
//   - ids: product identifiers, possibly repeated or padded
//   - facts: lookups loaded for these products; missing maps mean no data
//
// Returns:
//   - weight.Report: one resolution per product plus low-weight warnings
func (r WeightResolver) Resolve(ids []kernel.ProductID, facts weight.Facts) weight.Report {
	report := weight.NewReport()

	for _, id := range kernel.NormalizeProductIDs(ids) {
		res := r.resolveOne(newResolutionContext(id, facts))
		report.Resolutions[id] = res

		if res.ResolvedGrams < weight.ReviewThresholdGrams {
			report.Warnings = append(report.Warnings, weight.LowWeightWarning{
				ProductID:     id,
				ResolvedGrams: res.ResolvedGrams,
				Source:        res.Source,
			})
		}
	}

	return report
}

func newResolutionContext(id kernel.ProductID, facts weight.Facts) *resolutionContext {
	c := &resolutionContext{id: id, facts: facts}
	c.meta, c.hasMeta = facts.Meta[id]

	if m, ok := weight.MedianOf(facts.ProductObservations[id]); ok {
		c.productMedian = &m
	}
	if c.meta.CategoryID != "" {
		if m, ok := weight.MedianOf(facts.CategoryObservations[c.meta.CategoryID]); ok {
			c.categoryMedian = &m
		}
	}
	return c
}

func (r WeightResolver) resolveOne(c *resolutionContext) weight.Resolution {
	res, ok := weight.Resolution{}, false
	for _, tier := range r.tiers {
		if res, ok = tier(c); ok {
			break
		}
	}
	if !ok {
		res = fallbackTier(c)
	}

	res.ProductID = c.id
	if c.hasMeta {
		res.CategoryID = c.meta.CategoryID
		res.CategoryCode = c.meta.CategoryCode
		res.ProductTypeCode = c.meta.ProductTypeCode
	}
	if res.ResolvedGrams < weight.MinimumGrams {
		res.ResolvedGrams = weight.MinimumGrams
	}
	return res
}

// base starts a resolution carrying the recorded category average.
func (c *resolutionContext) base(source weight.Source, grams float64) weight.Resolution {
	res := weight.Resolution{
		ResolvedGrams: weight.RoundUpToTen(grams),
		Source:        source,
	}
	if c.meta.CategoryAvgGrams != nil {
		res.CategoryWeightGrams = weight.IntPtr(*c.meta.CategoryAvgGrams)
	}
	return res
}

func curatedTier(c *resolutionContext) (weight.Resolution, bool) {
	raw, ok := c.facts.Curated[c.id]
	if !ok {
		return weight.Resolution{}, false
	}
	grams, ok := weight.NormalizeGrams(raw)
	if !ok {
		return weight.Resolution{}, false
	}

	res := c.base(weight.Curated, float64(grams))
	res.ProductWeightGrams = weight.IntPtr(grams)
	return res, true
}

func dimensionTier(c *resolutionContext) (weight.Resolution, bool) {
	dims, ok := c.facts.Dimensions(c.id)
	if !ok {
		return weight.Resolution{}, false
	}

	volume, _ := dims.Volume()
	volumetric := weight.VolumetricGrams(volume)

	var candidate *weight.Median
	switch {
	case c.productMedian != nil:
		candidate = c.productMedian
	case c.categoryMedian != nil:
		candidate = c.categoryMedian
	}

	billable := volumetric
	if candidate != nil {
		billable = math.Max(billable, float64(candidate.Grams))
	}
	if billable <= 0 {
		return weight.Resolution{}, false
	}

	res := c.base(weight.Dimension, billable)
	res.Notes.VolumetricGrams = weight.IntPtr(int(math.Ceil(volumetric)))
	if candidate != nil {
		res.Notes.ActualCandidateGrams = weight.IntPtr(candidate.Grams)
	}
	switch {
	case c.productMedian != nil:
		res.ProductWeightGrams = weight.IntPtr(c.productMedian.Grams)
		res.Notes.ProductObservations = weight.IntPtr(c.productMedian.Observations)
	case c.categoryMedian != nil:
		res.CategoryWeightGrams = weight.IntPtr(c.categoryMedian.Grams)
		res.Notes.CategoryObservations = weight.IntPtr(c.categoryMedian.Observations)
	}
	return res, true
}

func historicalTier(c *resolutionContext) (weight.Resolution, bool) {
	if c.productMedian == nil {
		return weight.Resolution{}, false
	}
	res := c.base(weight.Historical, float64(c.productMedian.Grams))
	res.ProductWeightGrams = weight.IntPtr(c.productMedian.Grams)
	res.Notes.ProductObservations = weight.IntPtr(c.productMedian.Observations)
	return res, true
}

func categoryHistoricalTier(c *resolutionContext) (weight.Resolution, bool) {
	if c.categoryMedian == nil {
		return weight.Resolution{}, false
	}
	res := c.base(weight.CategoryHistorical, float64(c.categoryMedian.Grams))
	res.CategoryWeightGrams = weight.IntPtr(c.categoryMedian.Grams)
	res.Notes.CategoryObservations = weight.IntPtr(c.categoryMedian.Observations)
	return res, true
}

func categoryDefaultTier(c *resolutionContext) (weight.Resolution, bool) {
	grams, ok := weight.KeywordDefault(c.meta.CategoryCode)
	if !ok {
		grams, ok = weight.KeywordDefault(c.meta.ProductTypeCode)
	}
	if !ok && c.meta.TypeAvgGrams != nil && *c.meta.TypeAvgGrams > 0 {
		grams, ok = *c.meta.TypeAvgGrams, true
	}
	if !ok {
		return weight.Resolution{}, false
	}

	res := c.base(weight.CategoryDefault, float64(grams))
	res.CategoryWeightGrams = weight.IntPtr(grams)
	return res, true
}

// fallbackTier always answers.
func fallbackTier(c *resolutionContext) weight.Resolution {
	grams := weight.FallbackBaselineGrams
	switch {
	case c.meta.CategoryAvgGrams != nil && *c.meta.CategoryAvgGrams > 0:
		grams = *c.meta.CategoryAvgGrams
	case c.meta.TypeAvgGrams != nil && *c.meta.TypeAvgGrams > 0:
		grams = *c.meta.TypeAvgGrams
	}

	res := c.base(weight.Fallback, float64(grams))
	if res.CategoryWeightGrams == nil {
		res.CategoryWeightGrams = weight.IntPtr(grams)
	}
	return res
}
