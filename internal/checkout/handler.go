package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zapaeleg/shoe-shop-backend/internal/cart"
	"github.com/zapaeleg/shoe-shop-backend/internal/order"
	"github.com/zapaeleg/shoe-shop-backend/internal/session"
)

// Handler exposes order submission for the checkout page.
type Handler struct {
	pipeline *Pipeline
	stores   *cart.SessionStores
	timeout  time.Duration
}

func NewHandler(p *Pipeline, stores *cart.SessionStores, timeout time.Duration) *Handler {
	return &Handler{pipeline: p, stores: stores, timeout: timeout}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.submit)
	app.Get("/api/v1/checkout/state", h.state)
}

type submitRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	DeliveryMethod string `json:"deliveryMethod"`
	Address        string `json:"address"`
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(submitRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	// bound the submission so a hanging persistence call cannot pin
	// the session in Submitting forever
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	store := h.stores.Get(sessionID)
	orderID, err := h.pipeline.Submit(ctx, sessionID, store, Fulfillment{
		Name:           payload.Name,
		Phone:          payload.Phone,
		DeliveryMethod: order.DeliveryMethod(payload.DeliveryMethod),
		Address:        payload.Address,
	})
	if err != nil {
		switch {
		case IsValidationError(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrSubmissionInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, order.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderId": orderID})
}

func (h *Handler) state(c *fiber.Ctx) error {
	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(fiber.Map{"state": h.pipeline.State(sessionID).String()})
}
