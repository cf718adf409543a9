package imageinfo

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the imageinfo routes.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)
	app.Post("/image/info", handler.GetInfo)
}
