package surface

import (
	"context"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
)

// Fanout forwards every call to its surfaces in order and stops at the
// first error.
type Fanout struct {
	surfaces []ports.MapSurface
}

// NewFanout skips nil surfaces.
func NewFanout(surfaces ...ports.MapSurface) *Fanout {
	f := &Fanout{}
	for _, s := range surfaces {
		if s != nil {
			f.surfaces = append(f.surfaces, s)
		}
	}
	return f
}

// Len returns the number of wrapped surfaces.
func (f *Fanout) Len() int { return len(f.surfaces) }

func (f *Fanout) MoveCamera(ctx context.Context, cam domain.Camera) error {
	for _, s := range f.surfaces {
		if err := s.MoveCamera(ctx, cam); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fanout) AddMarker(ctx context.Context, m domain.Marker) error {
	for _, s := range f.surfaces {
		if err := s.AddMarker(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Clear clears every wrapped surface that keeps markers.
func (f *Fanout) Clear(ctx context.Context) error {
	for _, s := range f.surfaces {
		if c, ok := s.(ports.Clearer); ok {
			if err := c.Clear(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes every wrapped surface that buffers markers.
func (f *Fanout) Flush(ctx context.Context) error {
	for _, s := range f.surfaces {
		if fl, ok := s.(ports.Flusher); ok {
			if err := fl.Flush(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
