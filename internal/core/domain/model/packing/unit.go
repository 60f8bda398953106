package packing

import (
	"sort"
	"strings"

	"freight/internal/core/domain/model/kernel"
)

// Priority weights, summed per unit.
const (
	fragilePriority  = 100
	nicotinePriority = 50
	heavyPriority    = 25
	bulkyPriority    = 10

	heavyUnitGrams = 1000
	bulkyUnitCm3   = 500
)

// Line is one product line of a transfer.
type Line struct {
	ProductID    kernel.ProductID
	ProductName  string
	SKU          string
	CategoryCode string
	Quantity     int
	Dimensions   kernel.Dimensions
}

// Unit is a single physical item, a line exploded to quantity one.
type Unit struct {
	ProductID    kernel.ProductID
	ProductName  string
	SKU          string
	CategoryCode string
	WeightGrams  float64
	VolumeCm3    float64
	Dimensions   kernel.Dimensions
	Fragile      bool
	Nicotine     bool
	Priority     int
}

// DetectHandling derives handling flags from the product name.
func DetectHandling(productName string) (fragile, nicotine bool) {
	name := strings.ToLower(productName)
	fragile = strings.Contains(name, "glass") || strings.Contains(name, "fragile")
	nicotine = strings.Contains(name, "nicotine") || strings.Contains(name, "nic ")
	return fragile, nicotine
}

// NewUnit builds a unit and computes its priority score.
func NewUnit(line Line, weightGrams float64) Unit {
	volume, _ := line.Dimensions.Volume()
	fragile, nicotine := DetectHandling(line.ProductName)

	u := Unit{
		ProductID:    line.ProductID,
		ProductName:  line.ProductName,
		SKU:          line.SKU,
		CategoryCode: line.CategoryCode,
		WeightGrams:  weightGrams,
		VolumeCm3:    volume,
		Dimensions:   line.Dimensions,
		Fragile:      fragile,
		Nicotine:     nicotine,
	}
	u.Priority = priorityOf(u)
	return u
}

func priorityOf(u Unit) int {
	score := 0
	if u.Fragile {
		score += fragilePriority
	}
	if u.Nicotine {
		score += nicotinePriority
	}
	if u.WeightGrams > heavyUnitGrams {
		score += heavyPriority
	}
	if u.VolumeCm3 > bulkyUnitCm3 {
		score += bulkyPriority
	}
	return score
}

// Explode turns lines into units using gramsOf for the unit weight. Lines with
// a non-positive quantity produce nothing.
func Explode(lines []Line, gramsOf func(kernel.ProductID) int) []Unit {
	units := make([]Unit, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		u := NewUnit(line, float64(gramsOf(line.ProductID)))
		for range line.Quantity {
			units = append(units, u)
		}
	}
	return units
}

// SortByPriority orders units by priority then weight, both descending.
// The sort is stable so equal units keep their line order.
func SortByPriority(units []Unit) {
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].Priority != units[j].Priority {
			return units[i].Priority > units[j].Priority
		}
		return units[i].WeightGrams > units[j].WeightGrams
	})
}
