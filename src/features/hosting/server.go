package hosting

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/contre95/hotfolder/src/features/config"
	"github.com/contre95/hotfolder/src/features/hotfolder"
	"github.com/contre95/hotfolder/src/features/imageinfo"
	"github.com/contre95/hotfolder/src/features/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, registry *hotfolder.Registry, events hotfolder.EventSource, engine EngineProbe, queue QueueStats, gatherer prometheus.Gatherer) *Server {
	engineViews := html.New(cfg.Get().Server.Views, ".html")
	engineViews.Debug(cfg.Get().Logger.Level == "debug")
	engineViews.AddFunc("base", filepath.Base)
	engineViews.AddFunc("join", func(items []string) string {
		if len(items) == 0 {
			return "any"
		}
		return strings.Join(items, ", ")
	})

	app := fiber.New(fiber.Config{
		Views: engineViews,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				slog.Error("Internal Server Error", "error", err)
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
		AppName:               "Hotfolder",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	handler := NewHandler(engine, queue)
	app.Get("/engine/health", handler.EngineHealth)
	app.Get("/queue/status", handler.QueueStatus)

	hotfolder.RegisterRoutes(app, hotfolder.NewHandler(registry, events))
	config.RegisterRoutes(app, cfg)
	metrics.RegisterRoutes(app, gatherer)
	imageinfo.RegisterRoutes(app, imageinfo.NewService(registry))

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// App exposes the fiber app, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
