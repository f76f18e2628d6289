package cart

import (
	"github.com/zapaeleg/shoe-shop-backend/internal/catalog"
)

// Snapshot is the immutable product projection taken at add-to-cart
// time. It is deliberately not re-fetched afterwards: catalog edits
// must not retroactively change what the cart displays. Price and
// stock authority stays on the variant.
type Snapshot struct {
	ProductID int     `json:"productId"`
	Model     string  `json:"model"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	BrandName string  `json:"brandName"`
}

// NewSnapshot projects a catalog product into the cart's snapshot form.
func NewSnapshot(p catalog.Product) Snapshot {
	return Snapshot{
		ProductID: p.ID,
		Model:     p.Model,
		ImageURL:  p.ImageURL,
		BrandName: p.BrandName,
	}
}

// Item is one line in the cart: exactly one variant plus a quantity.
type Item struct {
	Product  Snapshot        `json:"product"`
	Variant  catalog.Variant `json:"variant"`
	Quantity int             `json:"quantity"`
}

// AddResult signals the outcome of a Store.Add call.
type AddResult int

const (
	ItemAdded AddResult = iota
	QuantityUpdated
	StockLimitReached
	OutOfStock
)

func (r AddResult) String() string {
	switch r {
	case ItemAdded:
		return "item-added"
	case QuantityUpdated:
		return "quantity-updated"
	case StockLimitReached:
		return "stock-limit-reached"
	case OutOfStock:
		return "out-of-stock"
	default:
		return "unknown"
	}
}

// Accepted reports whether the add actually changed the cart.
func (r AddResult) Accepted() bool {
	return r == ItemAdded || r == QuantityUpdated
}
