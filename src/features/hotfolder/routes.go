package hotfolder

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the hotfolder feature.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Post("/hotfolders", handler.StartWatching)
	app.Get("/hotfolders", handler.ListFolders)
	app.Delete("/hotfolders/:id", handler.StopWatching)
	app.Get("/hotfolders/:id/status", handler.GetStatus)
	app.Get("/events", handler.StreamEvents)

	ui := app.Group("/ui")
	ui.Get("/hotfolders", handler.RenderFolders)
}
