package domain

import "errors"

var (
	// ErrNilSurface is returned when a component that draws on the map is
	// built before the map surface exists.
	ErrNilSurface = errors.New("map surface is required")

	// ErrInvalidSeed marks a rejected SeedRequest.
	ErrInvalidSeed = errors.New("invalid seed request")
)

// ErrInvalidViewport marks a viewport size that cannot be projected.
var ErrInvalidViewport = errors.New("invalid viewport")
