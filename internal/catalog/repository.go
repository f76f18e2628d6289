package catalog

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

// Repository provides read-only access to the catalog. The storefront
// never writes catalog rows; content management happens elsewhere.
type Repository interface {
	GetByID(id int) (Product, error)
	ListByCategory(category string) ([]Card, error)
	ListByTag(tag string) ([]Card, error)
	ListBrands() ([]Brand, error)
}

// InMemoryRepository is a simple in-memory implementation useful for
// tests and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	brands  []Brand
}

func NewInMemoryRepository(products []Product, brands []Brand) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(products)),
		brands:  make([]Brand, 0, len(brands)),
	}
	r.storage = append(r.storage, products...)
	r.brands = append(r.brands, brands...)
	return r
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListByCategory(category string) ([]Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Card, 0)
	for _, p := range r.storage {
		if p.Category == nil || *p.Category != category {
			continue
		}
		if c, ok := toCard(p); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListByTag(tag string) ([]Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Card, 0)
	for _, p := range r.storage {
		for _, t := range p.Tags {
			if t != tag {
				continue
			}
			if c, ok := toCard(p); ok {
				out = append(out, c)
			}
			break
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListBrands() ([]Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Brand, 0, len(r.brands))
	for _, b := range r.brands {
		if b.LogoURL != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

// toCard drops products that cannot be rendered as a grid card
// (no variants means no price to show).
func toCard(p Product) (Card, bool) {
	if len(p.Variants) == 0 {
		return Card{}, false
	}
	return Card{
		ID:        p.ID,
		Model:     p.Model,
		ImageURL:  p.ImageURL,
		BrandName: p.BrandName,
		Price:     p.Variants[0].Price,
	}, true
}
