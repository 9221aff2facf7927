package ports

import (
	"context"

	"github.com/samirrijal/clustermap/internal/core/domain"
)

// MapSurface is the display surface markers are drawn on.
type MapSurface interface {
	// MoveCamera sets the camera position and zoom.
	MoveCamera(ctx context.Context, cam domain.Camera) error
	// AddMarker creates a marker at its position and attaches it to the map.
	AddMarker(ctx context.Context, m domain.Marker) error
}

// Clearer removes every marker from a surface. Surfaces that keep no
// markers need not implement it.
type Clearer interface {
	Clear(ctx context.Context) error
}

// BatchWriter is a surface that can also insert many markers in one
// round trip.
type BatchWriter interface {
	MapSurface
	AddBatch(ctx context.Context, markers []domain.Marker) error
}

// Flusher writes buffered markers through to the backing store.
type Flusher interface {
	Flush(ctx context.Context) error
}

// EventSubscriber replays map events published by other processes onto
// a local surface, in publish order, until ctx is done.
type EventSubscriber interface {
	Mirror(ctx context.Context, dst MapSurface) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// Geocoder resolves a free-form address to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)
}
