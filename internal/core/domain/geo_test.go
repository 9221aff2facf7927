package domain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/clustermap/internal/core/domain"
)

func TestGeoPoint_Valid(t *testing.T) {
	tests := []struct {
		p    domain.GeoPoint
		want bool
	}{
		{domain.GeoPoint{Lat: 16.07, Lon: 108.22}, true},
		{domain.GeoPoint{Lat: 90, Lon: -180}, true},
		{domain.GeoPoint{Lat: 90.1, Lon: 0}, false},
		{domain.GeoPoint{Lat: 0, Lon: 180.5}, false},
	}
	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("%+v: expected %v, got %v", tt.p, tt.want, got)
		}
	}
}

func TestBounds_Contains(t *testing.T) {
	b := domain.Bounds{MinLat: 15.87333, MinLon: 108.025862, MaxLat: 16.27333, MaxLon: 108.425862}
	if !b.Contains(domain.GeoPoint{Lat: 16.07333, Lon: 108.225862}) {
		t.Error("expected center inside")
	}
	if !b.Contains(domain.GeoPoint{Lat: 15.87333, Lon: 108.425862}) {
		t.Error("expected edges inclusive")
	}
	if b.Contains(domain.GeoPoint{Lat: 16.3, Lon: 108.2}) {
		t.Error("expected point north of box outside")
	}
}

func TestVisibleRegion_Bounds(t *testing.T) {
	r := domain.VisibleRegion{
		NearLeft:  domain.GeoPoint{Lat: 1, Lon: 10},
		NearRight: domain.GeoPoint{Lat: 1, Lon: 12},
		FarLeft:   domain.GeoPoint{Lat: 3, Lon: 10},
		FarRight:  domain.GeoPoint{Lat: 3, Lon: 12},
	}
	want := domain.Bounds{MinLat: 1, MinLon: 10, MaxLat: 3, MaxLon: 12}
	if got := r.Bounds(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSeedRequest_Validate(t *testing.T) {
	center := domain.GeoPoint{Lat: 16.07333, Lon: 108.225862}
	valid := []domain.SeedRequest{
		{Center: center, Extent: 0.2, Count: 200},
		{Center: center, Extent: 0, Count: 0},
		{Center: center, Extent: 0.2, Count: domain.MaxSeedCount},
		{Center: domain.GeoPoint{Lat: 200, Lon: 0}, Extent: 500, Count: 1},
	}
	for _, r := range valid {
		if err := r.Validate(); err != nil {
			t.Errorf("%+v: unexpected error: %v", r, err)
		}
	}

	invalid := []domain.SeedRequest{
		{Center: center, Extent: 0.2, Count: -1},
		{Center: center, Extent: 0.2, Count: domain.MaxSeedCount + 1},
		{Center: center, Extent: 0.2, Count: math.MaxInt},
		{Center: center, Extent: -0.1, Count: 1},
		{Center: center, Extent: math.NaN(), Count: 1},
		{Center: center, Extent: math.Inf(1), Count: 1},
		{Center: domain.GeoPoint{Lat: math.NaN()}, Extent: 0.2, Count: 1},
	}
	for _, r := range invalid {
		if err := r.Validate(); !errors.Is(err, domain.ErrInvalidSeed) {
			t.Errorf("%+v: expected ErrInvalidSeed, got %v", r, err)
		}
	}
}
