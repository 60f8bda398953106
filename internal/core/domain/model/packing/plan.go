package packing

import (
	"github.com/shopspring/decimal"
)

// Strategy labels the allocation heuristic in results.
const Strategy = "first_fit_priority_bin_packing"

// Allocation is the output of the box allocator.
type Allocation struct {
	Boxes          []*Box
	TotalItems     int
	TotalWeightKg  float64
	TotalVolumeCm3 float64
	Strategy       string
	Notes          []string
	FallbackEvents int
}

// NewAllocation renumbers the boxes from one and computes the totals.
func NewAllocation(boxes []*Box, notes []string, fallbackEvents int) Allocation {
	Renumber(boxes)

	var items int
	var grams, volume float64
	for _, b := range boxes {
		items += b.ItemCount()
		grams += b.WeightGrams()
		volume += b.VolumeCm3()
	}
	if notes == nil {
		notes = make([]string, 0)
	}

	return Allocation{
		Boxes:          boxes,
		TotalItems:     items,
		TotalWeightKg:  roundTo(grams/1000, 3),
		TotalVolumeCm3: roundTo(volume, 2),
		Strategy:       Strategy,
		Notes:          notes,
		FallbackEvents: fallbackEvents,
	}
}

// Renumber assigns sequential numbers in slice order.
func Renumber(boxes []*Box) {
	for i, b := range boxes {
		b.number = i + 1
	}
}

// TotalCost sums the estimated cost of boxes that have one. The second result
// is false when no box has a cost.
func TotalCost(boxes []*Box) (decimal.Decimal, bool) {
	total := decimal.Zero
	known := false
	for _, b := range boxes {
		if cost, ok := b.EstimatedCost(); ok {
			total = total.Add(cost)
			known = true
		}
	}
	return total, known
}

// CostSummary compares the allocator's cost with the optimized cost.
// Nil amounts mean no box carried a cost.
type CostSummary struct {
	OriginalCost  *decimal.Decimal
	OptimizedCost *decimal.Decimal
	Savings       *decimal.Decimal
	Currency      string
	Merges        int
	Downsizes     int
}

// Optimization is the output of the carrier optimizer.
type Optimization struct {
	Boxes   []*Box
	Summary CostSummary
}

// NewCostSummary derives savings as max(0, original - optimized).
func NewCostSummary(original, optimized []*Box, merges, downsizes int) CostSummary {
	s := CostSummary{Merges: merges, Downsizes: downsizes, Currency: currencyOf(optimized)}

	if cost, ok := TotalCost(original); ok {
		s.OriginalCost = &cost
	}
	if cost, ok := TotalCost(optimized); ok {
		s.OptimizedCost = &cost
	}
	if s.OriginalCost != nil && s.OptimizedCost != nil {
		savings := s.OriginalCost.Sub(*s.OptimizedCost)
		if savings.IsNegative() {
			savings = decimal.Zero
		}
		s.Savings = &savings
	}
	return s
}

func currencyOf(boxes []*Box) string {
	for _, b := range boxes {
		if _, ok := b.EstimatedCost(); ok {
			return b.Currency()
		}
	}
	return ""
}
