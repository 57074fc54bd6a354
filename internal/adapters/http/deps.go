package http

import (
	"github.com/nats-io/nats.go"

	"github.com/mkellerer/alpenroute/internal/adapters/postgres"
	"github.com/mkellerer/alpenroute/internal/adapters/valkey"
	"github.com/mkellerer/alpenroute/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Routes   *usecases.RouteService
	Profiles *usecases.ProfileService
	POIs     *usecases.POIService
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}
