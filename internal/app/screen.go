package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
)

// Screen is a unit of UI the navigator can show.
type Screen interface {
	Title() string
	Load(ctx context.Context) error
}

// Seeder places markers on a surface.
type Seeder interface {
	Seed(ctx context.Context, req domain.SeedRequest) ([]domain.Marker, error)
}

// MapScreen is the root screen: a single map that is pointed at a center
// and seeded with markers when it loads.
type MapScreen struct {
	surface ports.MapSurface
	seeder  Seeder
	camera  domain.Camera
	req     domain.SeedRequest

	once    sync.Once
	loadErr error
	markers []domain.Marker
}

// NewMapScreen builds the screen. The seed request is centered on cam.
func NewMapScreen(surface ports.MapSurface, seeder Seeder, cam domain.Camera, count int, extent float64) (*MapScreen, error) {
	if surface == nil {
		return nil, domain.ErrNilSurface
	}
	if seeder == nil {
		return nil, fmt.Errorf("map screen: nil seeder")
	}
	return &MapScreen{
		surface: surface,
		seeder:  seeder,
		camera:  cam,
		req:     domain.SeedRequest{Center: cam.Target, Extent: extent, Count: count},
	}, nil
}

func (s *MapScreen) Title() string { return "Clustering" }

// Load moves the camera and then seeds the map. It runs once per screen;
// later calls return the first result.
func (s *MapScreen) Load(ctx context.Context) error {
	s.once.Do(func() {
		if err := s.surface.MoveCamera(ctx, s.camera); err != nil {
			s.loadErr = fmt.Errorf("move camera: %w", err)
			return
		}
		s.markers, s.loadErr = s.seeder.Seed(ctx, s.req)
	})
	return s.loadErr
}

// Markers returns the markers seeded by Load.
func (s *MapScreen) Markers() []domain.Marker {
	return s.markers
}
