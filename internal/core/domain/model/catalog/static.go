package catalog

// Static template codes, smallest first.
const (
	StaticSmall  = "small"
	StaticMedium = "medium"
	StaticLarge  = "large"
	StaticXL     = "xl"
)

// StaticLadder returns the fixed templates used when pricing data cannot
// supply a container, in ascending capacity.
func StaticLadder() []Container {
	return []Container{
		{Code: StaticSmall, Name: "Small box", LengthMM: 150, WidthMM: 100, HeightMM: 80, MaxWeightGrams: 1000, Kind: Static},
		{Code: StaticMedium, Name: "Medium box", LengthMM: 300, WidthMM: 200, HeightMM: 150, MaxWeightGrams: 5000, Kind: Static},
		{Code: StaticLarge, Name: "Large box", LengthMM: 400, WidthMM: 300, HeightMM: 200, MaxWeightGrams: 15000, Kind: Static},
		{Code: StaticXL, Name: "XL box", LengthMM: 500, WidthMM: 400, HeightMM: 300, MaxWeightGrams: 22000, Kind: Static},
	}
}

// MediumTemplate is the default box opened when no priced container fits.
func MediumTemplate() Container {
	return StaticLadder()[1]
}

// SmallestStaticFit returns the smallest ladder template holding the contents.
// When none does, the XL template is returned with fits=false.
func SmallestStaticFit(weightGrams, volumeCm3, margin float64) (Container, bool) {
	ladder := StaticLadder()
	for _, c := range ladder {
		if c.Holds(weightGrams, volumeCm3, margin) {
			return c, true
		}
	}
	return ladder[len(ladder)-1], false
}
