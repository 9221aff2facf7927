package geospatial_test

import (
	"math"
	"testing"

	"github.com/samirrijal/clustermap/internal/pkg/geospatial"
)

func TestHaversine(t *testing.T) {
	// One degree of latitude is roughly 111.2 km.
	d := geospatial.Haversine(16, 108, 17, 108)
	if math.Abs(d-111195) > 100 {
		t.Errorf("expected ~111195 m, got %.0f", d)
	}
	if d := geospatial.Haversine(16.07333, 108.225862, 16.07333, 108.225862); d != 0 {
		t.Errorf("expected 0 for identical points, got %v", d)
	}
}

func TestBoundingBox(t *testing.T) {
	minLat, minLon, maxLat, maxLon := geospatial.BoundingBox(0, 0, 111320)
	if math.Abs(minLat+1) > 1e-9 || math.Abs(maxLat-1) > 1e-9 {
		t.Errorf("unexpected lat range [%v, %v]", minLat, maxLat)
	}
	if math.Abs(minLon+1) > 1e-9 || math.Abs(maxLon-1) > 1e-9 {
		t.Errorf("unexpected lon range [%v, %v]", minLon, maxLon)
	}
}

func TestMercatorRoundTrip(t *testing.T) {
	points := [][2]float64{{16.07333, 108.225862}, {0, 0}, {-45.5, -73.55}, {60, 179}}
	for _, p := range points {
		x, y := geospatial.MercatorProjection(p[0], p[1])
		if x < 0 || x > 1 || y < 0 || y > 1 {
			t.Fatalf("projection of %v out of range: (%v, %v)", p, x, y)
		}
		lat, lon := geospatial.ReverseMercator(x, y)
		if math.Abs(lat-p[0]) > 1e-9 || math.Abs(lon-p[1]) > 1e-9 {
			t.Errorf("round trip of %v gave (%v, %v)", p, lat, lon)
		}
	}
}

func TestMercatorCenter(t *testing.T) {
	x, y := geospatial.MercatorProjection(0, 0)
	if x != 0.5 || y != 0.5 {
		t.Errorf("expected (0.5, 0.5), got (%v, %v)", x, y)
	}
}

func TestVisibleCorners(t *testing.T) {
	lat, lon := 16.07333, 108.225862
	nl, nr, fl, fr := geospatial.VisibleCorners(lat, lon, 10, 800, 600, 256)

	if !(nl.Lat < lat && fl.Lat > lat) {
		t.Errorf("center latitude not between near %v and far %v", nl.Lat, fl.Lat)
	}
	if !(nl.Lon < lon && nr.Lon > lon) {
		t.Errorf("center longitude not between left %v and right %v", nl.Lon, nr.Lon)
	}
	if nl.Lat != nr.Lat || fl.Lat != fr.Lat {
		t.Errorf("flat camera should give a rectangle")
	}

	// 800 px at zoom 10 on 256 px tiles spans 800/(256*1024)*360 degrees.
	span := nr.Lon - nl.Lon
	want := 800.0 / (256 * 1024) * 360
	if math.Abs(span-want) > 1e-9 {
		t.Errorf("expected longitude span %v, got %v", want, span)
	}
}

func TestVisibleCorners_DefaultTileSize(t *testing.T) {
	a, _, _, _ := geospatial.VisibleCorners(10, 10, 5, 100, 100, 0)
	b, _, _, _ := geospatial.VisibleCorners(10, 10, 5, 100, 100, geospatial.DefaultTileSize)
	if a != b {
		t.Errorf("tile size 0 should default to %d", geospatial.DefaultTileSize)
	}
}

func TestExtentMeters(t *testing.T) {
	ns, ew := geospatial.ExtentMeters(0, 0.2)
	if math.Abs(ns-22264) > 1 || math.Abs(ew-22264) > 1 {
		t.Errorf("unexpected equator extent (%v, %v)", ns, ew)
	}
	_, ew = geospatial.ExtentMeters(60, 1)
	if math.Abs(ew-55660) > 1 {
		t.Errorf("expected ~55660 m east-west at 60N, got %v", ew)
	}
}
