package catalog

// Brand represents a shoe brand shown on the storefront.
type Brand struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logoUrl,omitempty"`
}

// Variant is one purchasable combination of color and size for a
// product, carrying its own price and stock count. Variant IDs are
// unique across the whole catalog.
type Variant struct {
	ID    int     `json:"id"`
	Color string  `json:"color"`
	Size  string  `json:"size"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// Product maps to the products table joined with its brand and the
// ordered variant collection. A product with no variants is valid data
// (e.g. discontinued) and renders as out of stock.
type Product struct {
	ID          int       `json:"id"`
	Model       string    `json:"model"`
	Description *string   `json:"description,omitempty"`
	Material    *string   `json:"material,omitempty"`
	Category    *string   `json:"category,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	BrandName   string    `json:"brandName"`
	Variants    []Variant `json:"variants"`
}

// Card is the reduced projection used by catalog grids: the price shown
// is the first variant's price, matching the storefront card layout.
type Card struct {
	ID        int     `json:"id"`
	Model     string  `json:"model"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	BrandName string  `json:"brandName"`
	Price     float64 `json:"price"`
}
