package assistant

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the help widget's option lookups.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/assistant/options", h.getOptions)
}

func (h *Handler) getOptions(c *fiber.Ctx) error {
	parentID := 0
	if raw := c.Query("parent"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid parent id"})
		}
		parentID = v
	}

	options, err := h.service.Options(parentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(options)
}
