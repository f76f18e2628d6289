package order

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrInsufficientStock is returned when the items write cannot
	// reserve the requested units against live stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository defines persistence operations for orders. CreateOrder and
// CreateOrderItems are separate operations on purpose: each can fail
// independently with a transport or validation error, and the checkout
// pipeline owns the sequencing between them.
type Repository interface {
	CreateOrder(ctx context.Context, ord Order) (int, error)
	CreateOrderItems(ctx context.Context, items []Item) error
	// DeleteOrder is the best-effort compensation used when the items
	// write fails after the header was created.
	DeleteOrder(ctx context.Context, orderID int) error
	GetByID(orderID int) (Order, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[int]Order
	items  map[int][]Item
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[int]Order),
		items:  make(map[int][]Item),
		nextID: 1,
	}
}

func (r *InMemoryRepository) CreateOrder(ctx context.Context, ord Order) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord.ID = r.nextID
	r.nextID++
	r.orders[ord.ID] = ord
	return ord.ID, nil
}

func (r *InMemoryRepository) CreateOrderItems(ctx context.Context, items []Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.items[it.OrderID] = append(r.items[it.OrderID], it)
	}
	return nil
}

func (r *InMemoryRepository) DeleteOrder(ctx context.Context, orderID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, orderID)
	delete(r.items, orderID)
	return nil
}

func (r *InMemoryRepository) GetByID(orderID int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

// ItemsByOrderID returns the stored items for assertions in tests.
func (r *InMemoryRepository) ItemsByOrderID(orderID int) []Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Item, len(r.items[orderID]))
	copy(out, r.items[orderID])
	return out
}
