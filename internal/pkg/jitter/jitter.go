// Package jitter offsets a coordinate by a bounded pseudo-random amount.
package jitter

// Scale maps one draw from src onto [-1, 1).
func Scale(src Source) float64 {
	return src.Float64()*2.0 - 1.0
}

// Generator produces points inside the square [lat-e, lat+e] x [lon-e, lon+e].
type Generator struct {
	src Source
}

// NewGenerator creates a Generator drawing from src. A nil src falls back to
// NewRandomSource.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = NewRandomSource()
	}
	return &Generator{src: src}
}

// Point returns (lat + e*r1, lon + e*r2) for two independent draws, latitude
// first. The result is not clamped to valid WGS 84 ranges.
func (g *Generator) Point(lat, lon, extent float64) (float64, float64) {
	r1 := Scale(g.src)
	r2 := Scale(g.src)
	return lat + extent*r1, lon + extent*r2
}
