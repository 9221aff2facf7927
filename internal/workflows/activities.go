package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/usecases"
)

// ErrTypeInvalidSeed tags activity errors that retrying cannot fix.
const ErrTypeInvalidSeed = "InvalidSeed"

// ReseedActivities holds the activity implementations for the reseed workflow.
type ReseedActivities struct {
	Seeder *usecases.SeederService
}

// ClearMarkers removes every marker from the surface.
func (a *ReseedActivities) ClearMarkers(ctx context.Context) error {
	if err := a.Seeder.Clear(ctx); err != nil {
		return fmt.Errorf("clear markers: %w", err)
	}
	return nil
}

// SeedMarkers places input.Count markers and returns how many were placed.
// A retried attempt clears first so a partial run is not duplicated.
func (a *ReseedActivities) SeedMarkers(ctx context.Context, input ReseedInput) (int, error) {
	req := domain.SeedRequest{
		Center: domain.GeoPoint{Lat: input.CenterLat, Lon: input.CenterLon},
		Extent: input.Extent,
		Count:  input.Count,
	}

	var (
		markers []domain.Marker
		err     error
	)
	if activity.GetInfo(ctx).Attempt > 1 {
		markers, err = a.Seeder.Reseed(ctx, req)
	} else {
		markers, err = a.Seeder.Seed(ctx, req)
	}

	if errors.Is(err, domain.ErrInvalidSeed) {
		return 0, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidSeed, err)
	}
	if err != nil {
		return 0, fmt.Errorf("seed markers: %w", err)
	}
	return len(markers), nil
}
