package kernel

// Dimensions describes a product or container envelope in millimetres.
// VolumeCm3 holds a precomputed volume when the source recorded one; zero
// means it must be derived from the edges.
type Dimensions struct {
	LengthMM  float64
	WidthMM   float64
	HeightMM  float64
	VolumeCm3 float64
}

// HasEdges reports whether all three edges are positive.
func (d Dimensions) HasEdges() bool {
	return d.LengthMM > 0 && d.WidthMM > 0 && d.HeightMM > 0
}

// IsKnown reports whether a volume can be derived at all.
func (d Dimensions) IsKnown() bool {
	return d.VolumeCm3 > 0 || d.HasEdges()
}

// Volume returns the volume in cubic centimetres, preferring the precomputed
// value. The second result is false when nothing is known.
func (d Dimensions) Volume() (float64, bool) {
	if d.VolumeCm3 > 0 {
		return d.VolumeCm3, true
	}
	if d.HasEdges() {
		return (d.LengthMM / 10) * (d.WidthMM / 10) * (d.HeightMM / 10), true
	}
	return 0, false
}
