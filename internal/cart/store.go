package cart

import (
	"sync"

	"github.com/zapaeleg/shoe-shop-backend/internal/catalog"
)

// Store holds the line items one browsing session intends to purchase.
// It is the only shared mutable resource in the core; every mutation
// goes through its methods under one lock, so no two cart mutations can
// interleave. Invariants held after every operation: at most one line
// per variant id, and 1 <= quantity <= variant stock as known at the
// time of the last add.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

func NewStore() *Store {
	return &Store{items: make([]Item, 0)}
}

// Add puts one unit of the variant into the cart. An existing line for
// the same variant id is incremented instead of duplicated; repeated
// calls at the stock boundary are rejected and never push the quantity
// past the variant's stock.
func (s *Store) Add(product Snapshot, variant catalog.Variant) AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Variant.ID != variant.ID {
			continue
		}
		// the caller re-resolved the variant, so its stock is the
		// latest known count; the stored copy is refreshed either way
		s.items[i].Variant = variant
		if s.items[i].Quantity < variant.Stock {
			s.items[i].Quantity++
			return QuantityUpdated
		}
		return StockLimitReached
	}

	if variant.Stock < 1 {
		return OutOfStock
	}
	s.items = append(s.items, Item{Product: product, Variant: variant, Quantity: 1})
	return ItemAdded
}

// Remove deletes the line item holding the given variant id. Removing
// an absent variant is a no-op, not an error.
func (s *Store) Remove(variantID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Variant.ID == variantID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart. Called after a successful order submission
// and available as an explicit shopper action.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items[:0]
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total sums price x quantity over all line items; 0.00 when empty.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, it := range s.items {
		total += it.Variant.Price * float64(it.Quantity)
	}
	return total
}

// ItemCount sums quantities over all line items; 0 when empty.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// SessionStores maps browsing-session ids to their cart store. Carts
// live only in process memory; they are not persisted across restarts
// and reach the backend for the first time at checkout.
type SessionStores struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewSessionStores() *SessionStores {
	return &SessionStores{stores: make(map[string]*Store)}
}

// Get returns the cart store for a session, creating it on first use.
func (s *SessionStores) Get(sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[sessionID]
	if !ok {
		st = NewStore()
		s.stores[sessionID] = st
	}
	return st
}
