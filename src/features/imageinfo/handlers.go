package imageinfo

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the imageinfo feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new imageinfo handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type probeRequest struct {
	Path string `json:"path"`
}

// GetInfo probes the image named in the JSON body.
func (h *Handler) GetInfo(c *fiber.Ctx) error {
	var req probeRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A path is required",
		})
	}

	info, err := h.service.Probe(req.Path)
	if err != nil {
		slog.Debug("Image probe failed", "path", req.Path, "error", err)
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, ErrOutsideHotFolders):
			status = fiber.StatusForbidden
		case errors.Is(err, fs.ErrNotExist):
			status = fiber.StatusNotFound
		case errors.Is(err, ErrUnsupportedFormat):
			status = fiber.StatusUnsupportedMediaType
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(info)
}
