package hotfolder

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const sseKeepAlive = 15 * time.Second

// EventSource hands out live event subscriptions.
type EventSource interface {
	Subscribe() (<-chan WatcherEvent, func())
}

// Handler is the HTTP control surface for the registry.
type Handler struct {
	registry *Registry
	events   EventSource
}

// NewHandler creates a new handler for the hotfolder feature.
func NewHandler(registry *Registry, events EventSource) *Handler {
	return &Handler{registry: registry, events: events}
}

// StartWatching installs a session from the JSON body.
func (h *Handler) StartWatching(c *fiber.Ctx) error {
	var cfg FolderConfig
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}
	if err := h.registry.StartWatching(cfg); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	slog.Info("Hot folder started", "folder_id", cfg.ID, "path", cfg.Path)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       strings.TrimSpace(cfg.ID),
		"watching": true,
	})
}

// StopWatching stops the session for :id. Unknown ids succeed.
func (h *Handler) StopWatching(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.registry.StopWatching(id); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"id":       id,
		"watching": false,
	})
}

// ListFolders returns every stored config with its active flag.
func (h *Handler) ListFolders(c *fiber.Ctx) error {
	return c.JSON(h.registry.Statuses())
}

// GetStatus reports whether :id is being watched.
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	return c.JSON(fiber.Map{
		"id":       id,
		"watching": h.registry.IsWatching(id),
	})
}

// RenderFolders renders the hot folder overview page.
func (h *Handler) RenderFolders(c *fiber.Ctx) error {
	return c.Render("hotfolders/index", fiber.Map{
		"Title":   "Hot folders",
		"Folders": h.registry.Statuses(),
	})
}

// StreamEvents streams settled events as server-sent events until the client goes away.
func (h *Handler) StreamEvents(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	events, cancel := h.events.Subscribe()
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(sseKeepAlive)
		defer ticker.Stop()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				if err := writeEvent(w, event); err != nil {
					slog.Debug("SSE client disconnected", "error", err)
					return
				}
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}

func writeEvent(w *bufio.Writer, event WatcherEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "event: hot-folder-event\ndata: %s\n\n", data)
	return w.Flush()
}

// statusFor maps registry errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrDuplicateID):
		return fiber.StatusConflict
	case errors.Is(err, ErrWatchCreation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrRegistryClosed):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
