package ports

import (
	"context"

	"github.com/samirrijal/clustermap/internal/core/domain"
)

// MarkerReader reads the markers and camera currently on the map.
type MarkerReader interface {
	Camera(ctx context.Context) (domain.Camera, error)
	// List returns markers in insertion order plus the total count.
	// A limit <= 0 returns every marker from offset on.
	List(ctx context.Context, offset, limit int) ([]domain.Marker, int, error)
	InBounds(ctx context.Context, b domain.Bounds) ([]domain.Marker, error)
}

// MarkerStore is a MarkerReader whose markers can be wiped before a reseed.
type MarkerStore interface {
	MarkerReader
	Clearer
}
