package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency applies to pricing rows without a currency.
const DefaultCurrency = "NZD"

// ErrNoCapableContainer is returned when no container can hold the requested contents.
var ErrNoCapableContainer = errors.New("no capable container")

// PricingRow is one row of the carrier pricing table.
type PricingRow struct {
	CarrierCode    string
	ContainerCode  string
	ContainerName  string
	LengthMM       int
	WidthMM        int
	HeightMM       int
	MaxWeightGrams int
	Price          *decimal.Decimal
	Currency       string
	EffectiveFrom  *time.Time
	EffectiveTo    *time.Time
}

// Rejection records a pricing row left out of the catalog and why.
type Rejection struct {
	ContainerCode string
	CarrierCode   string
	Reason        string
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s/%s: %s", r.CarrierCode, r.ContainerCode, r.Reason)
}

// Requirement describes contents that must fit in a container.
type Requirement struct {
	WeightGrams float64
	VolumeCm3   float64
}

// Catalog is an immutable, per-run view of active containers keyed by code.
// It is safe to share between the allocator and the optimizer.
type Catalog struct {
	containers []Container
	byCode     map[string]int
	rejections []Rejection
}

// Empty returns a catalog without containers.
func Empty() *Catalog {
	return &Catalog{byCode: make(map[string]int)}
}

// New builds a catalog from pricing rows effective on asOf. Rows with unusable
// capacity or no price are rejected. For duplicate container codes the
// cheapest row wins (then the lowest cap); duplicates describing a different
// box shape are rejected instead of being merged silently.
func New(rows []PricingRow, asOf time.Time) *Catalog {
	c := Empty()

	candidates := make([]Container, 0, len(rows))
	for _, row := range rows {
		container, reason := fromRow(row, asOf)
		if reason != "" {
			c.reject(row.ContainerCode, row.CarrierCode, reason)
			continue
		}
		candidates = append(candidates, container)
	}

	sortContainers(candidates)

	for _, candidate := range candidates {
		idx, exists := c.byCode[candidate.Code]
		if !exists {
			c.byCode[candidate.Code] = len(c.containers)
			c.containers = append(c.containers, candidate)
			continue
		}
		kept := c.containers[idx]
		if !kept.sameShape(candidate) {
			c.reject(candidate.Code, candidate.CarrierCode,
				fmt.Sprintf("shape conflicts with kept row %s", kept))
		}
	}

	return c
}

func fromRow(row PricingRow, asOf time.Time) (Container, string) {
	code := strings.TrimSpace(row.ContainerCode)
	switch {
	case code == "":
		return Container{}, "missing container code"
	case !effectiveOn(row, asOf):
		return Container{}, "not effective"
	case row.Price == nil:
		return Container{}, "missing price"
	case row.Price.IsNegative():
		return Container{}, "negative price"
	case row.MaxWeightGrams <= 0:
		return Container{}, "non-positive weight cap"
	case row.LengthMM <= 0 || row.WidthMM <= 0 || row.HeightMM <= 0:
		return Container{}, "non-positive dimensions"
	}

	currency := strings.TrimSpace(row.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	name := row.ContainerName
	if name == "" {
		name = code
	}

	return Container{
		Code:           code,
		CarrierCode:    row.CarrierCode,
		Name:           name,
		LengthMM:       row.LengthMM,
		WidthMM:        row.WidthMM,
		HeightMM:       row.HeightMM,
		MaxWeightGrams: row.MaxWeightGrams,
		Price:          *row.Price,
		Currency:       currency,
		Kind:           Dynamic,
	}, ""
}

func effectiveOn(row PricingRow, asOf time.Time) bool {
	day := dateOnly(asOf)
	if row.EffectiveFrom != nil && dateOnly(*row.EffectiveFrom).After(day) {
		return false
	}
	if row.EffectiveTo != nil && dateOnly(*row.EffectiveTo).Before(day) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sortContainers orders by price, then weight cap, then code for determinism.
func sortContainers(cs []Container) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cmp := cs[i].Price.Cmp(cs[j].Price); cmp != 0 {
			return cmp < 0
		}
		if cs[i].MaxWeightGrams != cs[j].MaxWeightGrams {
			return cs[i].MaxWeightGrams < cs[j].MaxWeightGrams
		}
		if cs[i].Code != cs[j].Code {
			return cs[i].Code < cs[j].Code
		}
		return cs[i].CarrierCode < cs[j].CarrierCode
	})
}

func (c *Catalog) reject(code, carrier, reason string) {
	c.rejections = append(c.rejections, Rejection{ContainerCode: code, CarrierCode: carrier, Reason: reason})
}

// Len returns the number of containers.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.containers)
}

// IsEmpty reports whether the catalog has no containers.
func (c *Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// Containers returns a copy of the containers, cheapest first.
func (c *Catalog) Containers() []Container {
	if c == nil {
		return nil
	}
	out := make([]Container, len(c.containers))
	copy(out, c.containers)
	return out
}

// Rejections lists the pricing rows left out while building the catalog.
func (c *Catalog) Rejections() []Rejection {
	if c == nil {
		return nil
	}
	out := make([]Rejection, len(c.rejections))
	copy(out, c.rejections)
	return out
}

// Get looks up a container by code.
func (c *Catalog) Get(code string) (Container, bool) {
	if c == nil {
		return Container{}, false
	}
	idx, ok := c.byCode[code]
	if !ok {
		return Container{}, false
	}
	return c.containers[idx], true
}

// CheapestFit returns the cheapest container whose derated caps hold req.
// Ties go to the lowest weight cap.
func (c *Catalog) CheapestFit(req Requirement, margin float64) (Container, error) {
	candidates := c.Candidates(req, margin)
	if len(candidates) == 0 {
		return Container{}, ErrNoCapableContainer
	}
	return candidates[0], nil
}

// Candidates returns every container holding req, cheapest and tightest first.
func (c *Catalog) Candidates(req Requirement, margin float64) []Container {
	if c == nil {
		return nil
	}
	out := make([]Container, 0)
	for _, candidate := range c.containers {
		if candidate.Holds(req.WeightGrams, req.VolumeCm3, margin) {
			out = append(out, candidate)
		}
	}
	return out
}
