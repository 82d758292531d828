package setup

import (
	"block-notes/app"
	"block-notes/handlers"
	"block-notes/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", handlers.Health(application))

	notes := fiberApp.Group("/notes", middleware.RequireIdentity())
	notes.Get("/", handlers.ListNotes(application))
	notes.Post("/", handlers.CreateNote(application))
	notes.Get("/:id", handlers.GetNote(application))
	notes.Delete("/:id", handlers.DeleteNote(application))
	notes.Post("/:id/blocks", handlers.CreateBlock(application))

	blocks := fiberApp.Group("/blocks", middleware.RequireIdentity())
	blocks.Patch("/:id", handlers.UpdateBlock(application))
	blocks.Delete("/:id", handlers.DeleteBlock(application))
}
