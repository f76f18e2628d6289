package catalog

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the public catalog read endpoints.
type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/tag/:tag", h.listByTag)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getProduct)
	app.Get("/api/v1/catalog/:category", h.listByCategory)
	app.Get("/api/v1/brands", h.listBrands)
}

// productDetailResponse carries the product plus the resolver's initial
// selection, so the detail page renders the same variant the shopper
// will see preselected.
type productDetailResponse struct {
	Product
	AvailableSizes   []string `json:"availableSizes"`
	AvailableColors  []string `json:"availableColors"`
	InitialVariantID *int     `json:"initialVariantId,omitempty"`
	LowStock         bool     `json:"lowStock"`
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	resp := productDetailResponse{
		Product:         p,
		AvailableSizes:  AvailableSizes(p),
		AvailableColors: AvailableColors(p),
	}
	if initial := InitialSelection(p); initial != nil {
		resp.InitialVariantID = &initial.ID
		resp.LowStock = IsLowStock(initial)
	}
	return c.JSON(resp)
}

func (h *Handler) listByCategory(c *fiber.Ctx) error {
	cards, err := h.service.ListByCategory(c.Params("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(cards)
}

func (h *Handler) listByTag(c *fiber.Ctx) error {
	cards, err := h.service.ListByTag(c.Params("tag"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(cards)
}

func (h *Handler) listBrands(c *fiber.Ctx) error {
	brands, err := h.service.ListBrands()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(brands)
}
