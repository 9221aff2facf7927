package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
)

// ErrNoResults is returned when an address resolves to nothing.
var ErrNoResults = errors.New("geocoding: no results")

// Google implements ports.Geocoder with the Google Maps Geocoding API.
type Google struct {
	client *maps.Client
}

// NewGoogle creates a geocoder. Extra options (e.g. maps.WithBaseURL) are
// passed through to the maps client.
func NewGoogle(apiKey string, opts ...maps.ClientOption) (*Google, error) {
	c, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &Google{client: c}, nil
}

// Geocode returns the location of the first result for address.
func (g *Google) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return domain.GeoPoint{}, ErrNoResults
	}
	loc := results[0].Geometry.Location
	return domain.GeoPoint{Lat: loc.Lat, Lon: loc.Lng}, nil
}

// ResolveCenter resolves address through g, falling back to fallback when
// there is no address or the lookup fails.
func ResolveCenter(ctx context.Context, g ports.Geocoder, address string, fallback domain.GeoPoint) domain.GeoPoint {
	if g == nil || address == "" {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	p, err := g.Geocode(ctx, address)
	if err != nil {
		slog.Warn("center address lookup failed, using configured coordinates",
			"address", address, "error", err)
		return fallback
	}
	slog.Info("center address resolved", "address", address, "lat", p.Lat, "lon", p.Lon)
	return p
}
