package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterRoutes registers the metrics routes with the Fiber app.
func RegisterRoutes(app *fiber.App, gatherer prometheus.Gatherer) {
	app.Get("/metrics", NewHandler(gatherer))
}
