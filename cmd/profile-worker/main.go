// profile-worker runs the Temporal worker that rebuilds elevation
// profiles after geometry changes.
package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/mkellerer/alpenroute/internal/adapters/elevation"
	natsadapter "github.com/mkellerer/alpenroute/internal/adapters/nats"
	"github.com/mkellerer/alpenroute/internal/adapters/postgres"
	"github.com/mkellerer/alpenroute/internal/adapters/valkey"
	"github.com/mkellerer/alpenroute/internal/core/ports"
	"github.com/mkellerer/alpenroute/internal/core/usecases"
	"github.com/mkellerer/alpenroute/internal/pkg/config"
	"github.com/mkellerer/alpenroute/internal/pkg/logging"
	"github.com/mkellerer/alpenroute/internal/workflows"
)

func main() {
	cfg, err := config.Load("alpenroute-profile-worker")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup("alpenroute-profile-worker", "info", "json")

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	var events ports.EventPublisher
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer nc.Close()
		events = nc
	}

	routeRepo := postgres.NewRouteRepo(db)
	splitRepo := postgres.NewSplitPointRepo(db)
	elevationClient := elevation.New(cfg.Elevation.BaseURL, cfg.Elevation.BatchSize)

	profileSvc := usecases.NewProfileService(routeRepo, splitRepo, elevationClient, cacheSvc,
		cfg.Elevation.BatchTimeout(), cfg.Elevation.FallbackM)

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.ProfileRebuildWorkflow)
	w.RegisterActivity(&workflows.RebuildActivities{
		Profiles: profileSvc,
		Routes:   routeRepo,
		Events:   events,
	})

	slog.Info("profile rebuild worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
