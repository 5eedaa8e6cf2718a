package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger verificación de conectividad del almacenamiento (lo implementa *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health liveness; si hay Pinger también informa el estado de la base de datos.
// GET /health
func Health(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.JSON(fiber.Map{"status": "ok"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "db": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok", "db": "up"})
	}
}
