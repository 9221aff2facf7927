package http

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/usecases"
)

// Pinger is a backend the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Markers *usecases.MarkerService
	Seeder  *usecases.SeederService
	// SeedDefaults fills the fields a reseed request leaves out.
	SeedDefaults domain.SeedRequest
	NATS         *nats.Conn
	DB           Pinger
	Cache        Pinger
}
