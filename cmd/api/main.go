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

	"github.com/mkellerer/alpenroute/internal/adapters/directions"
	"github.com/mkellerer/alpenroute/internal/adapters/elevation"
	"github.com/mkellerer/alpenroute/internal/adapters/http"
	natsadapter "github.com/mkellerer/alpenroute/internal/adapters/nats"
	"github.com/mkellerer/alpenroute/internal/adapters/postgres"
	"github.com/mkellerer/alpenroute/internal/adapters/valkey"
	"github.com/mkellerer/alpenroute/internal/core/ports"
	"github.com/mkellerer/alpenroute/internal/core/usecases"
	"github.com/mkellerer/alpenroute/internal/pkg/config"
	"github.com/mkellerer/alpenroute/internal/pkg/logging"
	"github.com/mkellerer/alpenroute/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("alpenroute-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("alpenroute-api", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.CollectorAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go db.ReportPoolMetrics(ctx, 15*time.Second)

	// Cache. The service ports only see the interface when the client
	// actually connected, so a down cache degrades instead of panicking.
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// NATS
	var events ports.EventPublisher
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer nc.Close()
		events = nc
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Repos
	routeRepo := postgres.NewRouteRepo(db)
	poiRepo := postgres.NewPOIRepo(db)
	splitRepo := postgres.NewSplitPointRepo(db)

	// External providers
	elevationClient := elevation.New(cfg.Elevation.BaseURL, cfg.Elevation.BatchSize)
	directionsClient := directions.New(cfg.Directions.BaseURL, cfg.Directions.Profile)

	// Use cases
	routeSvc := usecases.NewRouteService(routeRepo, directionsClient, cacheSvc, events)
	profileSvc := usecases.NewProfileService(routeRepo, splitRepo, elevationClient, cacheSvc,
		cfg.Elevation.BatchTimeout(), cfg.Elevation.FallbackM)
	poiSvc := usecases.NewPOIService(poiRepo, cacheSvc)

	deps := &http.Dependencies{
		Routes:   routeSvc,
		Profiles: profileSvc,
		POIs:     poiSvc,
		NATS:     natsConn,
		DB:       db,
		Cache:    cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    8 * 1024 * 1024, // GPX uploads can be a few MB
		AppName:      "AlpenRoute API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.alpenroute.app",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
