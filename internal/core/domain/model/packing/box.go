package packing

import (
	"math"

	"freight/internal/core/domain/model/catalog"
	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Rejection explains why a box cannot take a unit.
type Rejection int

const (
	Accepted Rejection = iota
	RejectedByWeight
	RejectedByVolume
	RejectedByNicotine
	RejectedByFragile
)

func (r Rejection) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case RejectedByWeight:
		return "weight headroom"
	case RejectedByVolume:
		return "volume headroom"
	case RejectedByNicotine:
		return "nicotine separation"
	case RejectedByFragile:
		return "fragile weight ceiling"
	default:
		return "unknown"
	}
}

// ProductQuantity aggregates the units of one product inside a box.
type ProductQuantity struct {
	ProductID kernel.ProductID
	Name      string
	SKU       string
	Quantity  int
}

// Utilization is expressed in percent, rounded to one decimal.
type Utilization struct {
	WeightPercent   float64
	VolumePercent   float64
	EfficiencyScore float64
}

// Box is a tentative parcel. Placement keeps its capacity, nicotine and
// fragile invariants; only oversize boxes may exceed their caps.
type Box struct {
	number      int
	container   catalog.Container
	weightGrams float64
	volumeCm3   float64
	units       []Unit
	products    []ProductQuantity
	nicotine    bool
	nonNicotine bool
	fragile     bool
	oversize    bool
}

// NewBox opens an empty box on the given container.
func NewBox(number int, container catalog.Container) *Box {
	return &Box{
		number:    number,
		container: container,
		units:     make([]Unit, 0),
		products:  make([]ProductQuantity, 0),
	}
}

func (b *Box) Number() int                  { return b.number }
func (b *Box) Container() catalog.Container { return b.container }
func (b *Box) WeightGrams() float64         { return b.weightGrams }
func (b *Box) VolumeCm3() float64           { return b.volumeCm3 }
func (b *Box) ItemCount() int               { return len(b.units) }
func (b *Box) ContainsNicotine() bool       { return b.nicotine }
func (b *Box) ContainsNonNicotine() bool    { return b.nonNicotine }
func (b *Box) ContainsFragile() bool        { return b.fragile }
func (b *Box) IsOversize() bool             { return b.oversize }
func (b *Box) SuggestedCarrier() string     { return b.container.CarrierCode }
func (b *Box) Currency() string             { return b.container.Currency }

// Units returns the placed units in placement order.
func (b *Box) Units() []Unit {
	out := make([]Unit, len(b.units))
	copy(out, b.units)
	return out
}

// Products returns per-product quantities in first-placement order.
func (b *Box) Products() []ProductQuantity {
	out := make([]ProductQuantity, len(b.products))
	copy(out, b.products)
	return out
}

// EstimatedCost is the container price; static templates have none.
func (b *Box) EstimatedCost() (decimal.Decimal, bool) {
	if !b.container.HasPrice() {
		return decimal.Zero, false
	}
	return b.container.Price, true
}

// Check tells whether u can join the box without breaking an invariant.
func (b *Box) Check(u Unit, opts Options) Rejection {
	margin := opts.SafetyMargin()
	ceiling := opts.FragileCeilingGrams()
	nextWeight := b.weightGrams + u.WeightGrams

	if nextWeight > b.container.WeightCapacity(margin) {
		return RejectedByWeight
	}
	if u.VolumeCm3 > 0 && b.volumeCm3+u.VolumeCm3 > b.container.VolumeCapacity(margin) {
		return RejectedByVolume
	}
	if (b.nicotine && !u.Nicotine) || (b.nonNicotine && u.Nicotine) {
		return RejectedByNicotine
	}
	if u.Fragile && b.weightGrams > ceiling {
		return RejectedByFragile
	}
	if (u.Fragile || b.fragile) && nextWeight > ceiling {
		return RejectedByFragile
	}
	return Accepted
}

// Place adds u and updates every aggregate. Callers check first.
func (b *Box) Place(u Unit) {
	b.units = append(b.units, u)
	b.weightGrams += u.WeightGrams
	b.volumeCm3 += u.VolumeCm3
	if u.Nicotine {
		b.nicotine = true
	} else {
		b.nonNicotine = true
	}
	if u.Fragile {
		b.fragile = true
	}
	b.addProduct(u.ProductID, u.ProductName, u.SKU, 1)
}

func (b *Box) addProduct(id kernel.ProductID, name, sku string, qty int) {
	for i := range b.products {
		if b.products[i].ProductID == id {
			b.products[i].Quantity += qty
			return
		}
	}
	b.products = append(b.products, ProductQuantity{ProductID: id, Name: name, SKU: sku, Quantity: qty})
}

// CanMergeWith reports whether the union of both boxes keeps nicotine classes
// apart and stays under the fragile ceiling.
func (b *Box) CanMergeWith(other *Box, opts Options) bool {
	nicotine := b.nicotine || other.nicotine
	nonNicotine := b.nonNicotine || other.nonNicotine
	if nicotine && nonNicotine {
		return false
	}
	if (b.fragile || other.fragile) && b.weightGrams+other.weightGrams > opts.FragileCeilingGrams() {
		return false
	}
	return true
}

// Absorb moves the contents of other into b and switches b to container.
func (b *Box) Absorb(other *Box, container catalog.Container) {
	b.units = append(b.units, other.units...)
	b.weightGrams += other.weightGrams
	b.volumeCm3 += other.volumeCm3
	b.nicotine = b.nicotine || other.nicotine
	b.nonNicotine = b.nonNicotine || other.nonNicotine
	b.fragile = b.fragile || other.fragile
	for _, p := range other.products {
		b.addProduct(p.ProductID, p.Name, p.SKU, p.Quantity)
	}
	b.container = container
}

// SwapContainer replaces the container, keeping the contents.
func (b *Box) SwapContainer(container catalog.Container) {
	b.container = container
}

// FitsIn reports whether the current contents respect container's derated caps.
func (b *Box) FitsIn(container catalog.Container, margin float64) bool {
	return container.Holds(b.weightGrams, b.volumeCm3, margin)
}

// Utilization of the assigned container.
func (b *Box) Utilization() Utilization {
	var u Utilization
	if b.container.MaxWeightGrams > 0 {
		u.WeightPercent = round1(b.weightGrams / float64(b.container.MaxWeightGrams) * 100)
	}
	if vol := b.container.VolumeCm3(); vol > 0 {
		u.VolumePercent = round1(b.volumeCm3 / vol * 100)
	}
	u.EfficiencyScore = round1((u.WeightPercent + u.VolumePercent) / 2)
	return u
}

// Clone returns a deep copy that can be mutated independently.
func (b *Box) Clone() *Box {
	cp := *b
	cp.units = make([]Unit, len(b.units))
	copy(cp.units, b.units)
	cp.products = make([]ProductQuantity, len(b.products))
	copy(cp.products, b.products)
	return &cp
}

// MarkOversize flags a box whose contents exceed every available container.
func (b *Box) MarkOversize() {
	b.oversize = true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
