package domain

import "math"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point lies inside the WGS 84 coordinate ranges.
// Generated points are never clamped, so callers use this to detect drift.
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether p is inside the box, edges included.
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// Camera is the map viewport: where it looks and how close.
type Camera struct {
	Target GeoPoint `json:"target"`
	Zoom   float64  `json:"zoom"`
}

// VisibleRegion holds the four corners visible by the camera. With a flat
// (untilted) camera the shape is a rectangle.
type VisibleRegion struct {
	NearLeft  GeoPoint `json:"near_left"`
	NearRight GeoPoint `json:"near_right"`
	FarLeft   GeoPoint `json:"far_left"`
	FarRight  GeoPoint `json:"far_right"`
}

// Bounds returns the smallest box enclosing all four corners.
func (r VisibleRegion) Bounds() Bounds {
	corners := [4]GeoPoint{r.NearLeft, r.NearRight, r.FarLeft, r.FarRight}
	b := Bounds{
		MinLat: math.Inf(1), MinLon: math.Inf(1),
		MaxLat: math.Inf(-1), MaxLon: math.Inf(-1),
	}
	for _, c := range corners {
		b.MinLat = math.Min(b.MinLat, c.Lat)
		b.MinLon = math.Min(b.MinLon, c.Lon)
		b.MaxLat = math.Max(b.MaxLat, c.Lat)
		b.MaxLon = math.Max(b.MaxLon, c.Lon)
	}
	return b
}
