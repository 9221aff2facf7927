package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
	"github.com/samirrijal/clustermap/internal/pkg/geospatial"
	"github.com/samirrijal/clustermap/internal/pkg/jitter"
	"github.com/samirrijal/clustermap/internal/pkg/metrics"
	"github.com/samirrijal/clustermap/internal/pkg/telemetry"
)

// SeederService places randomly jittered markers around a center.
type SeederService struct {
	mu      sync.Mutex // serializes runs
	surface ports.MapSurface
	gen     *jitter.Generator
	tracer  trace.Tracer
	now     func() time.Time
}

// NewSeederService creates a new SeederService drawing on surface.
// The surface must exist before anything is seeded onto it.
func NewSeederService(surface ports.MapSurface, gen *jitter.Generator) (*SeederService, error) {
	if surface == nil {
		return nil, domain.ErrNilSurface
	}
	if gen == nil {
		gen = jitter.NewGenerator(nil)
	}
	return &SeederService{
		surface: surface,
		gen:     gen,
		tracer:  otel.Tracer("github.com/samirrijal/clustermap/usecases"),
		now:     time.Now,
	}, nil
}

// Seed registers req.Count markers on the surface, one generator call and
// one AddMarker call per marker, in generation order. The markers added so
// far are returned together with any surface error.
func (s *SeederService) Seed(ctx context.Context, req domain.SeedRequest) ([]domain.Marker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed(ctx, req)
}

func (s *SeederService) seed(ctx context.Context, req domain.SeedRequest) ([]domain.Marker, error) {
	if err := req.Validate(); err != nil {
		metrics.SeedRuns.WithLabelValues("invalid").Inc()
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "seeder.Seed", trace.WithAttributes(
		attribute.Int(telemetry.AttrSeedCount, req.Count),
		attribute.Float64(telemetry.AttrSeedExtent, req.Extent),
		attribute.Float64(telemetry.AttrCenterLat, req.Center.Lat),
		attribute.Float64(telemetry.AttrCenterLon, req.Center.Lon),
	))
	defer span.End()

	start := time.Now()
	createdAt := s.now().UTC()
	var markers []domain.Marker

	for i := 0; i < req.Count; i++ {
		lat, lon := s.gen.Point(req.Center.Lat, req.Center.Lon, req.Extent)
		m := domain.Marker{
			ID:        uuid.NewString(),
			Seq:       i,
			Title:     fmt.Sprintf("Marker %d", i+1),
			Position:  domain.GeoPoint{Lat: lat, Lon: lon},
			CreatedAt: createdAt,
		}
		if !m.Position.Valid() {
			metrics.OutOfRangeMarkers.Inc()
		}

		if err := s.surface.AddMarker(ctx, m); err != nil {
			if ferr := s.flush(ctx); ferr != nil {
				slog.WarnContext(ctx, "flush after failed seed", "error", ferr)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "add marker")
			metrics.SeedRuns.WithLabelValues("error").Inc()
			return markers, fmt.Errorf("add marker %d: %w", i, err)
		}
		markers = append(markers, m)
		metrics.MarkersSeeded.Inc()
	}

	if err := s.flush(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "flush markers")
		metrics.SeedRuns.WithLabelValues("error").Inc()
		return markers, err
	}

	metrics.SeedDuration.Observe(time.Since(start).Seconds())
	metrics.SeedRuns.WithLabelValues("ok").Inc()

	ns, ew := geospatial.ExtentMeters(req.Center.Lat, req.Extent)
	slog.InfoContext(ctx, "map seeded",
		"count", len(markers),
		"extent", req.Extent,
		"spread_ns_m", int(ns),
		"spread_ew_m", int(ew),
	)
	return markers, nil
}

// Reseed wipes the surface when it keeps markers, then seeds it again.
func (s *SeederService) Reseed(ctx context.Context, req domain.SeedRequest) ([]domain.Marker, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clear(ctx); err != nil {
		return nil, err
	}
	return s.seed(ctx, req)
}

// Clear wipes the surface when it keeps markers.
func (s *SeederService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clear(ctx)
}

func (s *SeederService) clear(ctx context.Context) error {
	c, ok := s.surface.(ports.Clearer)
	if !ok {
		return nil
	}
	if err := c.Clear(ctx); err != nil {
		return fmt.Errorf("clear markers: %w", err)
	}
	return nil
}

func (s *SeederService) flush(ctx context.Context) error {
	f, ok := s.surface.(ports.Flusher)
	if !ok {
		return nil
	}
	if err := f.Flush(ctx); err != nil {
		return fmt.Errorf("flush markers: %w", err)
	}
	return nil
}
