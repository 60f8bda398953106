package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind tells dynamic pricing containers apart from the legacy static ladder.
type Kind int

const (
	Dynamic Kind = iota + 1
	Static
)

func (k Kind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Container is a physical box type with its capacity and, for dynamic
// containers, the carrier price.
type Container struct {
	Code           string
	CarrierCode    string
	Name           string
	LengthMM       int
	WidthMM        int
	HeightMM       int
	MaxWeightGrams int
	Price          decimal.Decimal
	Currency       string
	Kind           Kind
}

// VolumeCm3 is the internal volume of the container.
func (c Container) VolumeCm3() float64 {
	return float64(c.LengthMM) * float64(c.WidthMM) * float64(c.HeightMM) / 1000
}

// WeightCapacity is the usable weight after applying the safety margin.
func (c Container) WeightCapacity(margin float64) float64 {
	return float64(c.MaxWeightGrams) * margin
}

// VolumeCapacity is the usable volume after applying the safety margin.
func (c Container) VolumeCapacity(margin float64) float64 {
	return c.VolumeCm3() * margin
}

// HasPrice reports whether the container carries a carrier price.
func (c Container) HasPrice() bool {
	return c.Kind == Dynamic
}

// Holds reports whether contents of the given weight and volume fit under the
// derated caps. Unknown volume (zero) is not checked.
func (c Container) Holds(weightGrams, volumeCm3, margin float64) bool {
	if weightGrams > c.WeightCapacity(margin) {
		return false
	}
	if volumeCm3 > 0 && volumeCm3 > c.VolumeCapacity(margin) {
		return false
	}
	return true
}

func (c Container) sameShape(other Container) bool {
	return c.LengthMM == other.LengthMM &&
		c.WidthMM == other.WidthMM &&
		c.HeightMM == other.HeightMM &&
		c.MaxWeightGrams == other.MaxWeightGrams
}

func (c Container) String() string {
	return fmt.Sprintf("%s (%dx%dx%dmm, %dg)", c.Code, c.LengthMM, c.WidthMM, c.HeightMM, c.MaxWeightGrams)
}
