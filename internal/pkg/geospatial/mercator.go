package geospatial

import "math"

// DefaultTileSize is the pixel size of a web map tile.
const DefaultTileSize = 256

// MercatorProjection maps latitude/longitude to spherical mercator
// coordinates in the [0..1] range. y grows southwards.
func MercatorProjection(lat, lon float64) (x, y float64) {
	x = lon/360.0 + 0.5
	sin := math.Sin(toRad(lat))
	y = 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	if y < 0 {
		y = 0
	}
	if y > 1 {
		y = 1
	}
	return x, y
}

// ReverseMercator maps [0..1] mercator coordinates back to latitude/longitude.
func ReverseMercator(x, y float64) (lat, lon float64) {
	lon = (x - 0.5) * 360
	y2 := (180 - y*360) * math.Pi / 180.0
	lat = 360*math.Atan(math.Exp(y2))/math.Pi - 90
	return lat, lon
}

// Corner is a latitude/longitude pair.
type Corner struct {
	Lat, Lon float64
}

// VisibleCorners returns the near-left, near-right, far-left and far-right
// corners of a width x height pixel viewport centered on (lat, lon) at zoom.
// Near is the bottom edge of the screen.
func VisibleCorners(lat, lon, zoom float64, width, height, tileSize int) (nearLeft, nearRight, farLeft, farRight Corner) {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	world := float64(tileSize) * math.Pow(2, zoom)
	cx, cy := MercatorProjection(lat, lon)
	hw := float64(width) / 2 / world
	hh := float64(height) / 2 / world

	top := clamp01(cy - hh)
	bottom := clamp01(cy + hh)

	corner := func(x, y float64) Corner {
		la, lo := ReverseMercator(x, y)
		return Corner{Lat: la, Lon: lo}
	}
	return corner(cx-hw, bottom), corner(cx+hw, bottom), corner(cx-hw, top), corner(cx+hw, top)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
