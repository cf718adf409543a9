package hosting

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

const engineHealthTimeout = 5 * time.Second

// EngineProbe reports on the Processing Engine.
type EngineProbe interface {
	Name() string
	Health(ctx context.Context) (bool, error)
}

// QueueStats exposes the local queue depth.
type QueueStats interface {
	Len() int
}

// Handler serves the operational endpoints.
type Handler struct {
	engine EngineProbe
	queue  QueueStats
}

// NewHandler creates a new hosting handler.
func NewHandler(engine EngineProbe, queue QueueStats) *Handler {
	return &Handler{engine: engine, queue: queue}
}

// EngineHealth reports whether the configured engine transport is reachable.
func (h *Handler) EngineHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), engineHealthTimeout)
	defer cancel()

	healthy, err := h.engine.Health(ctx)
	resp := fiber.Map{
		"transport": h.engine.Name(),
		"healthy":   healthy,
	}
	if err != nil {
		slog.Warn("Engine health check failed", "transport", h.engine.Name(), "error", err)
		resp["error"] = err.Error()
	}
	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// QueueStatus returns the local queue size.
func (h *Handler) QueueStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"queue_size": h.queue.Len(),
	})
}
