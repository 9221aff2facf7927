package usecases

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
	"github.com/samirrijal/clustermap/internal/pkg/geospatial"
	"github.com/samirrijal/clustermap/internal/pkg/metrics"
)

const (
	featureCollectionKey = "markers:geojson"
	featureCollectionTTL = 60

	maxViewportPixels = 8192

	defaultListLimit = 100
	maxListLimit     = 500
)

// ClampLimit maps a requested page size into (0, 500], defaulting to 100.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > maxListLimit {
		return defaultListLimit
	}
	return limit
}

// MarkerService serves the markers currently on the map.
type MarkerService struct {
	reader ports.MarkerReader
	cache  ports.CacheService
}

// NewMarkerService creates a new MarkerService. cache may be nil.
func NewMarkerService(reader ports.MarkerReader, cache ports.CacheService) *MarkerService {
	return &MarkerService{reader: reader, cache: cache}
}

// Camera returns the current camera.
func (s *MarkerService) Camera(ctx context.Context) (domain.Camera, error) {
	return s.reader.Camera(ctx)
}

// List returns a page of markers in insertion order plus the total count.
// Each marker carries its distance in meters from the camera target.
func (s *MarkerService) List(ctx context.Context, offset, limit int) ([]domain.Marker, int, error) {
	if offset < 0 {
		offset = 0
	}
	limit = ClampLimit(limit)

	markers, total, err := s.reader.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	cam, err := s.reader.Camera(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("camera: %w", err)
	}
	withDistance(markers, cam.Target)
	return markers, total, nil
}

// All returns every marker in insertion order.
func (s *MarkerService) All(ctx context.Context) ([]domain.Marker, error) {
	markers, _, err := s.reader.List(ctx, 0, 0)
	return markers, err
}

// VisibleRegion returns what a width x height pixel viewport shows at the
// current camera, and the markers inside it.
func (s *MarkerService) VisibleRegion(ctx context.Context, width, height int) (domain.VisibleRegion, []domain.Marker, error) {
	if width <= 0 || height <= 0 || width > maxViewportPixels || height > maxViewportPixels {
		return domain.VisibleRegion{}, nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidViewport, width, height)
	}

	cam, err := s.reader.Camera(ctx)
	if err != nil {
		return domain.VisibleRegion{}, nil, fmt.Errorf("camera: %w", err)
	}

	nl, nr, fl, fr := geospatial.VisibleCorners(cam.Target.Lat, cam.Target.Lon, cam.Zoom,
		width, height, geospatial.DefaultTileSize)
	region := domain.VisibleRegion{
		NearLeft:  domain.GeoPoint{Lat: nl.Lat, Lon: nl.Lon},
		NearRight: domain.GeoPoint{Lat: nr.Lat, Lon: nr.Lon},
		FarLeft:   domain.GeoPoint{Lat: fl.Lat, Lon: fl.Lon},
		FarRight:  domain.GeoPoint{Lat: fr.Lat, Lon: fr.Lon},
	}

	markers, err := s.reader.InBounds(ctx, region.Bounds())
	if err != nil {
		return domain.VisibleRegion{}, nil, err
	}
	withDistance(markers, cam.Target)
	return region, markers, nil
}

// FeatureCollection returns every marker as a GeoJSON FeatureCollection.
func (s *MarkerService) FeatureCollection(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, featureCollectionKey); err == nil && len(data) > 0 {
			metrics.CacheHits.WithLabelValues("geojson").Inc()
			return data, nil
		}
		metrics.CacheMisses.WithLabelValues("geojson").Inc()
	}

	markers, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Position.Lon, m.Position.Lat})
		f.ID = m.ID
		f.Properties["title"] = m.Title
		f.Properties["seq"] = m.Seq
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, featureCollectionKey, data, featureCollectionTTL)
	}
	return data, nil
}

// Invalidate drops cached views after the markers changed.
func (s *MarkerService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, featureCollectionKey)
}

func withDistance(markers []domain.Marker, from domain.GeoPoint) {
	for i := range markers {
		d := geospatial.Haversine(from.Lat, from.Lon, markers[i].Position.Lat, markers[i].Position.Lon)
		markers[i].Distance = &d
	}
}
