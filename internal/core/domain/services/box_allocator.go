package services

import (
	"fmt"
	"math"
	"strconv"

	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/packing"
	"freight/internal/core/domain/model/weight"
)

// BoxAllocator packs transfer lines into tentative boxes using first-fit over
// priority-sorted units.
//
// Rules:
//   - units are placed in the first open box that keeps every invariant
//   - a new box takes the cheapest priced container holding the unit, or the
//     medium static template when none does (a fallback event)
//   - static boxes are refit to the smallest ladder template once packing ends
//   - a unit no container can hold stays alone in an oversize XL box
type BoxAllocator struct{}

func NewBoxAllocator() BoxAllocator {
	return BoxAllocator{}
}

// Allocate packs lines using the resolved weights in report. Products missing
// from report weigh the fallback baseline. A nil catalog behaves as empty.
func (a BoxAllocator) Allocate(
	lines []packing.Line,
	report weight.Report,
	cat *catalog.Catalog,
	opts packing.Options,
) (packing.Allocation, error) {
	if err := opts.Validate(); err != nil {
		return packing.Allocation{}, err
	}

	units := packing.Explode(lines, report.Grams)
	packing.SortByPriority(units)

	var (
		boxes     = make([]*packing.Box, 0)
		notes     = make([]string, 0)
		fallbacks int
	)

	for _, u := range units {
		if placeInFirstFit(boxes, u, opts) {
			continue
		}

		container, reason, fallback := a.containerFor(u, cat, opts.SafetyMargin())
		if fallback {
			fallbacks++
		}

		box := packing.NewBox(len(boxes)+1, container)
		box.Place(u)
		boxes = append(boxes, box)
		notes = append(notes, creationNote(box.Number(), u, reason))
	}

	normalizeStaticBoxes(boxes, opts)

	return packing.NewAllocation(boxes, notes, fallbacks), nil
}

func placeInFirstFit(boxes []*packing.Box, u packing.Unit, opts packing.Options) bool {
	for _, box := range boxes {
		if box.Check(u, opts) == packing.Accepted {
			box.Place(u)
			return true
		}
	}
	return false
}

func (a BoxAllocator) containerFor(
	u packing.Unit,
	cat *catalog.Catalog,
	margin float64,
) (catalog.Container, string, bool) {
	container, err := cat.CheapestFit(catalog.Requirement{WeightGrams: u.WeightGrams, VolumeCm3: u.VolumeCm3}, margin)
	if err != nil {
		return catalog.MediumTemplate(), "no priced container fits, using medium template", true
	}
	return container, fmt.Sprintf("cheapest fit %s via %s at %s %s",
		container.Code, container.CarrierCode, container.Price.StringFixed(2), container.Currency), false
}

// normalizeStaticBoxes swaps every static box to the smallest ladder template
// that holds its contents. Boxes even the XL template cannot hold, and fragile
// boxes over the ceiling, are flagged oversize.
func normalizeStaticBoxes(boxes []*packing.Box, opts packing.Options) {
	margin := opts.SafetyMargin()
	for _, box := range boxes {
		if box.Container().Kind == catalog.Static {
			template, fits := catalog.SmallestStaticFit(box.WeightGrams(), box.VolumeCm3(), margin)
			box.SwapContainer(template)
			if !fits {
				box.MarkOversize()
			}
		}
		if box.ContainsFragile() && box.WeightGrams() > opts.FragileCeilingGrams() {
			box.MarkOversize()
		}
	}
}

func creationNote(number int, u packing.Unit, reason string) string {
	return fmt.Sprintf("Created Box %d for %s (weight: %sg, volume: %scm³): %s",
		number, u.ProductName, formatAmount(u.WeightGrams), formatAmount(u.VolumeCm3), reason)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
