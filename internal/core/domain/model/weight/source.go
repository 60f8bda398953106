package weight

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Source names the cascade tier that produced a resolved weight.
// Tiers are ordered by trust: a lower value always wins when both apply.
//
//	Curated > Dimension > Historical > CategoryHistorical > CategoryDefault > Fallback
type Source int

const (
	// Unknown is the zero value and never appears on a valid resolution.
	Unknown Source = iota

	// Curated is an explicit weight recorded against the product.
	Curated

	// Dimension is the billable weight derived from product or category dimensions.
	Dimension

	// Historical is the median per-unit weight of past parcels for the product.
	Historical

	// CategoryHistorical is the same median computed across the product's category.
	CategoryHistorical

	// CategoryDefault is a typical weight looked up by category or type keyword.
	CategoryDefault

	// Fallback is the baseline used when nothing else is known.
	Fallback
)

func sourceStrings() map[Source]string {
	return map[Source]string{
		Unknown:            "unknown",
		Curated:            "curated",
		Dimension:          "dimension",
		Historical:         "historical",
		CategoryHistorical: "category_historical",
		CategoryDefault:    "category_default",
		Fallback:           "fallback",
	}
}

// AllSources lists the valid tiers in cascade order.
func AllSources() []Source {
	return []Source{Curated, Dimension, Historical, CategoryHistorical, CategoryDefault, Fallback}
}

// Validate rejects Unknown and out-of-range values, for instance when a tag
// arrives from an API request.
func (s Source) Validate() error {
	if s <= Unknown || s > Fallback {
		return errs.NewValueIsInvalidErrorWithCause("weight source", fmt.Errorf("%d is not a valid source", s))
	}
	return nil
}

func (s Source) String() string {
	if str, ok := sourceStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// MarshalText emits the snake_case tag used in API payloads and logs.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSource converts a snake_case tag back to a Source.
func ParseSource(tag string) (Source, error) {
	for s, str := range sourceStrings() {
		if str == tag && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("weight source", fmt.Errorf("%q is not a valid source", tag))
}
