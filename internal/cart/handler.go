package cart

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/zapaeleg/shoe-shop-backend/internal/catalog"
	"github.com/zapaeleg/shoe-shop-backend/internal/notify"
	"github.com/zapaeleg/shoe-shop-backend/internal/session"
)

// Handler exposes the session cart over HTTP. The variant is re-read
// from the catalog at add time so the stock limit reflects the latest
// known count, as the detail page does before calling addToCart.
type Handler struct {
	stores  *SessionStores
	catalog catalog.ServiceInterface
	sink    notify.Sink
}

func NewHandler(stores *SessionStores, cs catalog.ServiceInterface, sink notify.Sink) *Handler {
	return &Handler{stores: stores, catalog: cs, sink: sink}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Delete("/api/v1/cart/items/:variantId", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addItemRequest struct {
	ProductID int `json:"productId"`
	VariantID int `json:"variantId"`
}

// cartView is the response shape shared by all cart endpoints.
type cartView struct {
	Items     []Item  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

func viewOf(s *Store) cartView {
	return cartView{Items: s.Items(), Total: s.Total(), ItemCount: s.ItemCount()}
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 || payload.VariantID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId or variantId"})
	}

	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	p, err := h.catalog.GetByID(payload.ProductID)
	if err != nil {
		switch err {
		case catalog.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	var variant *catalog.Variant
	for i := range p.Variants {
		if p.Variants[i].ID == payload.VariantID {
			variant = &p.Variants[i]
			break
		}
	}
	if variant == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "variant not found"})
	}

	store := h.stores.Get(sessionID)
	result := store.Add(NewSnapshot(p), *variant)

	switch result {
	case ItemAdded:
		h.sink.Publish(notify.Notification{Level: notify.LevelSuccess, Message: fmt.Sprintf("%s added to cart.", p.Model)})
	case QuantityUpdated:
		h.sink.Publish(notify.Notification{Level: notify.LevelInfo, Message: "Quantity updated."})
	case StockLimitReached:
		h.sink.Publish(notify.Notification{Level: notify.LevelWarning, Message: "Maximum stock reached."})
	case OutOfStock:
		h.sink.Publish(notify.Notification{Level: notify.LevelError, Message: "Product out of stock."})
	}

	status := fiber.StatusOK
	if !result.Accepted() {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"result": result.String(),
		"cart":   viewOf(store),
	})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(viewOf(h.stores.Get(sessionID)))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	variantID, err := strconv.Atoi(c.Params("variantId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid variantId"})
	}

	store := h.stores.Get(sessionID)
	if store.Remove(variantID) {
		h.sink.Publish(notify.Notification{Level: notify.LevelError, Message: "Product removed from cart."})
	}
	return c.JSON(viewOf(store))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	sessionID, err := session.GetSessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	h.stores.Get(sessionID).Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
