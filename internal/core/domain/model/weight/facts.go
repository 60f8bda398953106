package weight

import "freight/internal/core/domain/model/kernel"

// ProductMeta is the classification data of a product.
// Average weights are whole grams; nil means not recorded.
type ProductMeta struct {
	CategoryID       kernel.CategoryID
	CategoryCode     string
	ProductTypeCode  string
	CategoryAvgGrams *int
	TypeAvgGrams     *int
}

// ParcelObservation is one historical parcel line: the parcel's total weight
// and the total quantity of units packed in it.
type ParcelObservation struct {
	ParcelWeightGrams float64
	ParcelQuantity    int
}

// UnitEstimate divides the parcel weight evenly over its units.
func (o ParcelObservation) UnitEstimate() (float64, bool) {
	if o.ParcelWeightGrams <= 0 || o.ParcelQuantity <= 0 {
		return 0, false
	}
	return o.ParcelWeightGrams / float64(o.ParcelQuantity), true
}

// Facts is everything the resolver may consult for one run. Each map may be
// empty when the corresponding lookup returned nothing or failed.
type Facts struct {
	Meta                 map[kernel.ProductID]ProductMeta
	Curated              map[kernel.ProductID]float64
	ProductDimensions    map[kernel.ProductID]kernel.Dimensions
	CategoryDimensions   map[kernel.CategoryID]kernel.Dimensions
	ProductObservations  map[kernel.ProductID][]ParcelObservation
	CategoryObservations map[kernel.CategoryID][]ParcelObservation
}

// NewFacts returns Facts with every map allocated.
func NewFacts() Facts {
	return Facts{
		Meta:                 make(map[kernel.ProductID]ProductMeta),
		Curated:              make(map[kernel.ProductID]float64),
		ProductDimensions:    make(map[kernel.ProductID]kernel.Dimensions),
		CategoryDimensions:   make(map[kernel.CategoryID]kernel.Dimensions),
		ProductObservations:  make(map[kernel.ProductID][]ParcelObservation),
		CategoryObservations: make(map[kernel.CategoryID][]ParcelObservation),
	}
}

// CategoryIDs returns the distinct categories referenced by Meta.
func (f Facts) CategoryIDs() []kernel.CategoryID {
	ids := make([]kernel.CategoryID, 0, len(f.Meta))
	for _, m := range f.Meta {
		ids = append(ids, m.CategoryID)
	}
	return kernel.NormalizeCategoryIDs(ids)
}

// Dimensions returns the product's recorded envelope, else the typical
// envelope of its category.
func (f Facts) Dimensions(id kernel.ProductID) (kernel.Dimensions, bool) {
	if dims, ok := f.ProductDimensions[id]; ok && dims.IsKnown() {
		return dims, true
	}
	meta, ok := f.Meta[id]
	if !ok || meta.CategoryID == "" {
		return kernel.Dimensions{}, false
	}
	if dims, ok := f.CategoryDimensions[meta.CategoryID]; ok && dims.IsKnown() {
		return dims, true
	}
	return kernel.Dimensions{}, false
}
