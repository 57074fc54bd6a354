// gpx-import ingests GPX files from the command line into the routes
// table: parse, summarize, persist, and announce. Useful for seeding a
// fresh database and for bulk editorial imports.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mkellerer/alpenroute/internal/adapters/gpx"
	natsadapter "github.com/mkellerer/alpenroute/internal/adapters/nats"
	"github.com/mkellerer/alpenroute/internal/adapters/postgres"
	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/core/ports"
	"github.com/mkellerer/alpenroute/internal/core/usecases"
	"github.com/mkellerer/alpenroute/internal/pkg/config"
	"github.com/mkellerer/alpenroute/internal/pkg/logging"
	"github.com/mkellerer/alpenroute/internal/pkg/metrics"
)

func main() {
	tierFlag := flag.String("tier", "silver", "tour tier for imported routes (gold|silver|bronze)")
	workers := flag.Int("workers", 4, "concurrent imports")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: gpx-import [-tier silver] [-workers 4] <file.gpx> ...")
	}

	tier, ok := domain.ParseTourTier(*tierFlag)
	if !ok {
		log.Fatalf("unknown tier: %s", *tierFlag)
	}

	cfg, err := config.Load("alpenroute-gpx-import")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup("alpenroute-gpx-import", "info", "text")

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var events ports.EventPublisher
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, skipping event publishing", "error", err)
	} else {
		defer nc.Close()
		events = nc
	}

	routeSvc := usecases.NewRouteService(postgres.NewRouteRepo(db), nil, nil, events)

	var wg sync.WaitGroup
	sem := make(chan struct{}, *workers)

	for _, path := range flag.Args() {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := importFile(ctx, routeSvc, path, tier); err != nil {
				slog.Error("import failed", "file", path, "error", err)
				metrics.GPXTracksImported.WithLabelValues("error").Inc()
				return
			}
			metrics.GPXTracksImported.WithLabelValues("ok").Inc()
		}(path)
	}

	wg.Wait()
	slog.Info("import complete", "files", flag.NArg())
}

func importFile(ctx context.Context, routes *usecases.RouteService, path string, tier domain.TourTier) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	points, name, err := gpx.Parse(data)
	if err != nil {
		return err
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	route, err := routes.CreateFromTrack(ctx, name, tier, points)
	if err != nil {
		return err
	}

	slog.Info("route imported",
		"file", path,
		"slug", route.Slug,
		"points", len(route.Geometry),
		"total_km", route.Stats.TotalDistanceKm)
	return nil
}
