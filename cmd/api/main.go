package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/samirrijal/clustermap/internal/adapters/geocoding"
	"github.com/samirrijal/clustermap/internal/adapters/http"
	"github.com/samirrijal/clustermap/internal/adapters/memory"
	natsadapter "github.com/samirrijal/clustermap/internal/adapters/nats"
	"github.com/samirrijal/clustermap/internal/adapters/postgres"
	"github.com/samirrijal/clustermap/internal/adapters/surface"
	"github.com/samirrijal/clustermap/internal/adapters/valkey"
	"github.com/samirrijal/clustermap/internal/app"
	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
	"github.com/samirrijal/clustermap/internal/core/usecases"
	"github.com/samirrijal/clustermap/internal/pkg/config"
	"github.com/samirrijal/clustermap/internal/pkg/jitter"
	"github.com/samirrijal/clustermap/internal/pkg/logging"
	"github.com/samirrijal/clustermap/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("clustermap-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, os.Getenv("LOG_FORMAT"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Map center, optionally from an address
	center := domain.GeoPoint{Lat: cfg.Map.CenterLat, Lon: cfg.Map.CenterLon}
	if cfg.Map.CenterAddress != "" {
		geocoder, err := geocoding.NewGoogle(cfg.Maps.APIKey)
		if err != nil {
			slog.Warn("geocoder unavailable", "error", err)
		} else {
			center = geocoding.ResolveCenter(ctx, geocoder, cfg.Map.CenterAddress, center)
		}
	}
	cam := domain.Camera{Target: center, Zoom: cfg.Map.Zoom}

	origin := uuid.NewString()
	layer := memory.NewLayer(cam)
	surfaces := []ports.MapSurface{layer}
	var reader ports.MarkerReader = layer

	deps := &http.Dependencies{
		SeedDefaults: domain.SeedRequest{Extent: cfg.Seed.Extent, Count: cfg.Seed.Count},
	}

	// Database
	if cfg.Database.Enabled {
		db, err := postgres.New(ctx, cfg.Database.DSN(), 10)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		repo := postgres.NewMarkerRepo(db)
		surfaces = append(surfaces, surface.NewBatcher(repo, surface.DefaultBatchSize))
		reader = repo
		deps.DB = db
	}

	// Cache
	var cache ports.CacheService
	if cfg.Valkey.Enabled {
		vc, err := valkey.New(cfg.Valkey.Addr, "clustermap:")
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer vc.Close()
			cache = vc
			deps.Cache = vc
		}
	}

	// NATS
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL, origin)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer pub.Close()
			surfaces = append(surfaces, pub)
		}

		// Raw NATS connection for WebSocket relay
		natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats ws conn unavailable", "error", err)
		} else {
			defer natsConn.Close()
			deps.NATS = natsConn
		}

		// Without a database the layer is the only copy; mirror what other
		// processes seed into it.
		if !cfg.Database.Enabled {
			sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, origin)
			if err != nil {
				slog.Warn("nats mirror unavailable", "error", err)
			} else {
				defer sub.Close()
				if err := sub.Mirror(ctx, layer); err != nil {
					slog.Warn("nats mirror failed", "error", err)
				}
			}
		}
	}

	live := surface.NewFanout(surfaces...)

	var src jitter.Source
	if cfg.Seed.RandomSeed != 0 {
		src = jitter.NewSource(cfg.Seed.RandomSeed)
	}
	seeder, err := usecases.NewSeederService(live, jitter.NewGenerator(src))
	if err != nil {
		log.Fatalf("seeder: %v", err)
	}
	deps.Seeder = seeder
	deps.Markers = usecases.NewMarkerService(reader, cache)

	if cfg.Seed.ResetOnStart {
		if err := seeder.Clear(ctx); err != nil {
			slog.Warn("reset markers failed", "error", err)
		}
	}

	// Application shell: build the map screen and seed it
	shell := app.NewShell(func() (app.Screen, error) {
		return app.NewMapScreen(live, seeder, cam, cfg.Seed.Count, cfg.Seed.Extent)
	}, slog.Default())
	shell.Launch(ctx, domain.LaunchOptions{"origin": origin})
	if err := deps.Markers.Invalidate(ctx); err != nil {
		slog.Warn("invalidate marker cache", "error", err)
	}

	// Fiber
	fapp := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "clustermap API",
	})
	fapp.Use(recover.New())
	fapp.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(fapp, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "markers", cfg.Seed.Count)
		if err := fapp.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := fapp.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
