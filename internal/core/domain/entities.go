package domain

import (
	"fmt"
	"math"
	"time"
)

// Marker is a single point annotation displayed on the map.
type Marker struct {
	ID        string    `json:"id"`
	Seq       int       `json:"seq"` // insertion order, equals generation order
	Title     string    `json:"title"`
	Position  GeoPoint  `json:"position"`
	Distance  *float64  `json:"distance,omitempty"` // meters from camera target, computed
	CreatedAt time.Time `json:"created_at"`
}

// SeedRequest describes one seeding run around a center.
// MaxSeedCount bounds a single seed run.
const MaxSeedCount = 10000

type SeedRequest struct {
	Center GeoPoint `json:"center"`
	Extent float64  `json:"extent"` // max jitter per axis, in degrees
	Count  int      `json:"count"`
}

// Validate checks the request inputs. Generated outputs are not checked:
// a large extent may legitimately yield out-of-range coordinates.
func (r SeedRequest) Validate() error {
	if r.Count < 0 || r.Count > MaxSeedCount {
		return fmt.Errorf("%w: count must be within [0, %d], got %d", ErrInvalidSeed, MaxSeedCount, r.Count)
	}
	if math.IsNaN(r.Extent) || math.IsInf(r.Extent, 0) || r.Extent < 0 {
		return fmt.Errorf("%w: extent must be a finite value >= 0, got %v", ErrInvalidSeed, r.Extent)
	}
	for _, v := range []float64{r.Center.Lat, r.Center.Lon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: center must be finite", ErrInvalidSeed)
		}
	}
	return nil
}

// LaunchOptions are passed to the application shell at launch. They are
// accepted for symmetry with platform launch callbacks and otherwise ignored.
type LaunchOptions map[string]any
