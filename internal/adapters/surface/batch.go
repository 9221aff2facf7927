package surface

import (
	"context"
	"sync"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
)

// DefaultBatchSize is used when NewBatcher is given a size < 1.
const DefaultBatchSize = 100

// Batcher buffers AddMarker calls and hands them to dst through AddBatch,
// size markers at a time. Pending markers are written before a camera move
// and dropped by Clear, so dst sees calls in the order they were made.
type Batcher struct {
	mu      sync.Mutex
	dst     ports.BatchWriter
	size    int
	pending []domain.Marker
}

// NewBatcher wraps dst.
func NewBatcher(dst ports.BatchWriter, size int) *Batcher {
	if size < 1 {
		size = DefaultBatchSize
	}
	return &Batcher{dst: dst, size: size}
}

func (b *Batcher) MoveCamera(ctx context.Context, cam domain.Camera) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.flushLocked(ctx); err != nil {
		return err
	}
	return b.dst.MoveCamera(ctx, cam)
}

// AddMarker queues m and writes the queue once it holds size markers.
func (b *Batcher) AddMarker(ctx context.Context, m domain.Marker) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, m)
	if len(b.pending) < b.size {
		return nil
	}
	return b.flushLocked(ctx)
}

// Flush writes every pending marker.
func (b *Batcher) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked(ctx)
}

// Pending returns the number of queued markers.
func (b *Batcher) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Clear drops pending markers and clears dst when it keeps markers.
func (b *Batcher) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
	if c, ok := b.dst.(ports.Clearer); ok {
		return c.Clear(ctx)
	}
	return nil
}

// flushLocked empties the queue even when the write fails; a failed batch
// is not retried.
func (b *Batcher) flushLocked(ctx context.Context) error {
	if len(b.pending) == 0 {
		return nil
	}
	batch := b.pending
	b.pending = nil
	return b.dst.AddBatch(ctx, batch)
}
