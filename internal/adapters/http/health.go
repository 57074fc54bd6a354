package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

var (
	errNotConfigured = errors.New("not configured")
	errDisconnected  = errors.New("disconnected")
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "alpenroute-api",
			"uptime":  time.Since(startedAt).String(),
		})
	}
}

// ReadyHandler reports readiness per dependency. The database is the
// only hard requirement: routes and profiles live there. NATS and the
// cache degrade gracefully, so their failures are reported but do not
// fail the probe on their own.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	type check struct {
		name     string
		required bool
		probe    func(context.Context) error
	}

	checks := []check{
		{"database", true, func(ctx context.Context) error {
			if deps.DB == nil {
				return errNotConfigured
			}
			return deps.DB.Pool.Ping(ctx)
		}},
		{"nats", false, func(ctx context.Context) error {
			if deps.NATS == nil {
				return errNotConfigured
			}
			if !deps.NATS.IsConnected() {
				return errDisconnected
			}
			return nil
		}},
		{"cache", false, func(ctx context.Context) error {
			if deps.Cache == nil {
				return errNotConfigured
			}
			return deps.Cache.Ping(ctx)
		}},
	}

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()

		results := make(map[string]string, len(checks))
		ready := true

		for _, ch := range checks {
			if err := ch.probe(ctx); err != nil {
				results[ch.name] = err.Error()
				if ch.required {
					ready = false
				}
				continue
			}
			results[ch.name] = "ok"
		}

		status, code := "ready", fiber.StatusOK
		if !ready {
			status, code = "not ready", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": results,
		})
	}
}
