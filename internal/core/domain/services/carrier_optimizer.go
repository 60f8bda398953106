package services

import (
	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/packing"

	"github.com/shopspring/decimal"
)

// CarrierOptimizer lowers the shipping cost of allocated boxes with two
// passes over the same catalog the allocator used:
//   - consolidation merges pairs of boxes into one cheaper container
//   - downsizing swaps each priced box to a cheaper container that still holds it
//
// The input boxes are never modified; the optimizer works on clones.
type CarrierOptimizer struct{}

func NewCarrierOptimizer() CarrierOptimizer {
	return CarrierOptimizer{}
}

// Optimize returns the improved boxes and a cost summary. With an empty
// catalog the boxes come back unchanged and savings stay unknown.
func (o CarrierOptimizer) Optimize(
	boxes []*packing.Box,
	cat *catalog.Catalog,
	opts packing.Options,
) (packing.Optimization, error) {
	if err := opts.Validate(); err != nil {
		return packing.Optimization{}, err
	}

	work := make([]*packing.Box, 0, len(boxes))
	for _, b := range boxes {
		work = append(work, b.Clone())
	}

	if cat.IsEmpty() {
		summary := packing.NewCostSummary(boxes, work, 0, 0)
		summary.Savings = nil
		return packing.Optimization{Boxes: work, Summary: summary}, nil
	}

	live, merges := o.consolidate(work, cat, opts)
	downsizes := o.downsize(live, cat, opts)
	packing.Renumber(live)

	return packing.Optimization{
		Boxes:   live,
		Summary: packing.NewCostSummary(boxes, live, merges, downsizes),
	}, nil
}

// consolidate scans pairs i<j of live boxes and merges the first eligible
// pair, then restarts. Merged boxes are tombstoned in place so indices stay
// stable. Each merge removes a box, so at most n-1 merges happen.
func (o CarrierOptimizer) consolidate(
	boxes []*packing.Box,
	cat *catalog.Catalog,
	opts packing.Options,
) ([]*packing.Box, int) {
	alive := make([]bool, len(boxes))
	for i := range alive {
		alive[i] = true
	}

	merges := 0
	for o.mergeFirstPair(boxes, alive, cat, opts) {
		merges++
	}

	live := make([]*packing.Box, 0, len(boxes)-merges)
	for i, b := range boxes {
		if alive[i] {
			live = append(live, b)
		}
	}
	return live, merges
}

func (o CarrierOptimizer) mergeFirstPair(
	boxes []*packing.Box,
	alive []bool,
	cat *catalog.Catalog,
	opts packing.Options,
) bool {
	for i := range boxes {
		if !alive[i] {
			continue
		}
		for j := i + 1; j < len(boxes); j++ {
			if !alive[j] {
				continue
			}
			container, ok := mergeTarget(boxes[i], boxes[j], cat, opts)
			if !ok {
				continue
			}
			boxes[i].Absorb(boxes[j], container)
			alive[j] = false
			return true
		}
	}
	return false
}

// mergeTarget returns the container the union of a and b would ship in, when
// the merge is allowed.
func mergeTarget(a, b *packing.Box, cat *catalog.Catalog, opts packing.Options) (catalog.Container, bool) {
	if a.WeightGrams() <= 0 || b.WeightGrams() <= 0 {
		return catalog.Container{}, false
	}
	if !a.CanMergeWith(b, opts) {
		return catalog.Container{}, false
	}

	combinedCost, known := pairCost(a, b)
	if !known {
		return catalog.Container{}, false
	}

	weight := a.WeightGrams() + b.WeightGrams()
	req := catalog.Requirement{WeightGrams: weight, VolumeCm3: a.VolumeCm3() + b.VolumeCm3()}
	container, err := cat.CheapestFit(req, opts.SafetyMargin())
	if err != nil {
		return catalog.Container{}, false
	}

	if weight/float64(container.MaxWeightGrams) < opts.MinMergeUtilization() {
		return catalog.Container{}, false
	}
	if container.Price.GreaterThan(combinedCost) {
		return catalog.Container{}, false
	}
	return container, true
}

// pairCost sums the known costs of a and b. It reports false when neither
// box has a cost.
func pairCost(a, b *packing.Box) (decimal.Decimal, bool) {
	total := decimal.Zero
	known := false
	for _, box := range []*packing.Box{a, b} {
		if cost, ok := box.EstimatedCost(); ok {
			total = total.Add(cost)
			known = true
		}
	}
	return total, known
}

// downsize swaps each priced box to the cheapest strictly cheaper container
// whose derated caps still hold it. Candidates come cheapest first, then by
// weight cap.
func (o CarrierOptimizer) downsize(boxes []*packing.Box, cat *catalog.Catalog, opts packing.Options) int {
	downsizes := 0
	for _, box := range boxes {
		cost, ok := box.EstimatedCost()
		if !ok {
			continue
		}
		current := box.Container()
		req := catalog.Requirement{WeightGrams: box.WeightGrams(), VolumeCm3: box.VolumeCm3()}

		for _, candidate := range cat.Candidates(req, opts.SafetyMargin()) {
			if !candidate.Price.LessThan(cost) {
				break
			}
			if opts.RequireTighterDownsize() && candidate.MaxWeightGrams >= current.MaxWeightGrams {
				continue
			}
			box.SwapContainer(candidate)
			downsizes++
			break
		}
	}
	return downsizes
}
