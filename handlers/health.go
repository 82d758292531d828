package handlers

import (
	"block-notes/app"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health reports whether the server can reach its database
func Health(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := a.Repo.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}

		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
