package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	"github.com/samirrijal/clustermap/internal/adapters/memory"
	natsadapter "github.com/samirrijal/clustermap/internal/adapters/nats"
	"github.com/samirrijal/clustermap/internal/adapters/postgres"
	"github.com/samirrijal/clustermap/internal/adapters/surface"
	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
	"github.com/samirrijal/clustermap/internal/core/usecases"
	"github.com/samirrijal/clustermap/internal/pkg/config"
	"github.com/samirrijal/clustermap/internal/pkg/jitter"
	"github.com/samirrijal/clustermap/internal/pkg/logging"
	"github.com/samirrijal/clustermap/internal/workflows"
)

func main() {
	once := flag.Bool("once", false, "run a single reseed without Temporal and exit")
	trigger := flag.Bool("trigger", false, "start a ReseedWorkflow and wait for its result")
	flag.Parse()

	cfg, err := config.Load("clustermap-seeder")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, os.Getenv("LOG_FORMAT"))

	ctx := context.Background()
	input := workflows.ReseedInput{
		CenterLat: cfg.Map.CenterLat,
		CenterLon: cfg.Map.CenterLon,
		Extent:    cfg.Seed.Extent,
		Count:     cfg.Seed.Count,
	}

	// Connect to Temporal, unless this is a one-shot run
	var c client.Client
	if !*once {
		c, err = client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    tlog.NewStructuredLogger(slog.Default()),
		})
		if err != nil {
			log.Fatalf("temporal client: %v", err)
		}
		defer c.Close()
	}

	if *trigger {
		run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
			ID:        "reseed-" + uuid.NewString(),
			TaskQueue: cfg.Temporal.TaskQueue,
		}, workflows.ReseedWorkflow, input)
		if err != nil {
			log.Fatalf("start workflow: %v", err)
		}
		var result workflows.ReseedResult
		if err := run.Get(ctx, &result); err != nil {
			log.Fatalf("reseed workflow %s: %v", run.GetID(), err)
		}
		slog.Info("reseed workflow finished", "workflow_id", run.GetID(), "seeded", result.Seeded)
		return
	}

	// Surfaces the seeder writes to
	var surfaces []ports.MapSurface
	if cfg.Database.Enabled {
		db, err := postgres.New(ctx, cfg.Database.DSN(), 5)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		surfaces = append(surfaces, surface.NewBatcher(postgres.NewMarkerRepo(db), surface.DefaultBatchSize))
	}
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL, "seeder-"+uuid.NewString())
		if err != nil {
			log.Fatalf("nats: %v", err)
		}
		defer pub.Close()
		surfaces = append(surfaces, pub)
	}
	if len(surfaces) == 0 {
		slog.Warn("no database or nats configured, markers stay in this process")
		cam := domain.Camera{Target: domain.GeoPoint{Lat: input.CenterLat, Lon: input.CenterLon}, Zoom: cfg.Map.Zoom}
		surfaces = append(surfaces, memory.NewLayer(cam))
	}

	var src jitter.Source
	if cfg.Seed.RandomSeed != 0 {
		src = jitter.NewSource(cfg.Seed.RandomSeed)
	}
	seeder, err := usecases.NewSeederService(surface.NewFanout(surfaces...), jitter.NewGenerator(src))
	if err != nil {
		log.Fatalf("seeder: %v", err)
	}

	if *once {
		runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		markers, err := seeder.Reseed(runCtx, domain.SeedRequest{
			Center: domain.GeoPoint{Lat: input.CenterLat, Lon: input.CenterLon},
			Extent: input.Extent,
			Count:  input.Count,
		})
		if err != nil {
			log.Fatalf("reseed: %v", err)
		}
		slog.Info("reseed finished", "seeded", len(markers))
		return
	}

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.ReseedWorkflow)
	w.RegisterActivity(&workflows.ReseedActivities{Seeder: seeder})

	slog.Info("seeder worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
