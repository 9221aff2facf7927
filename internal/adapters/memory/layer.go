package memory

import (
	"context"
	"sync"

	"github.com/samirrijal/clustermap/internal/core/domain"
)

// Layer is an in-process marker layer. It implements ports.MapSurface,
// ports.MarkerReader and ports.Clearer. Safe for concurrent use.
type Layer struct {
	mu      sync.RWMutex
	camera  domain.Camera
	markers []domain.Marker
}

// NewLayer returns an empty layer looking at cam.
func NewLayer(cam domain.Camera) *Layer {
	return &Layer{camera: cam}
}

func (l *Layer) MoveCamera(ctx context.Context, cam domain.Camera) error {
	l.mu.Lock()
	l.camera = cam
	l.mu.Unlock()
	return nil
}

// AddMarker appends m. Markers are never deduplicated.
func (l *Layer) AddMarker(ctx context.Context, m domain.Marker) error {
	l.mu.Lock()
	l.markers = append(l.markers, m)
	l.mu.Unlock()
	return nil
}

func (l *Layer) Clear(ctx context.Context) error {
	l.mu.Lock()
	l.markers = nil
	l.mu.Unlock()
	return nil
}

func (l *Layer) Camera(ctx context.Context) (domain.Camera, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.camera, nil
}

func (l *Layer) List(ctx context.Context, offset, limit int) ([]domain.Marker, int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := len(l.markers)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []domain.Marker{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	out := make([]domain.Marker, end-offset)
	copy(out, l.markers[offset:end])
	return out, total, nil
}

func (l *Layer) InBounds(ctx context.Context, b domain.Bounds) ([]domain.Marker, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []domain.Marker{}
	for _, m := range l.markers {
		if b.Contains(m.Position) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Len returns the number of markers on the layer.
func (l *Layer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.markers)
}
