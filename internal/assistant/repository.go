package assistant

import "sync"

// Repository provides access to the knowledge-base lookup table.
type Repository interface {
	ListByParent(parentID int) ([]Option, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	options []Option
}

func NewInMemoryRepository(seed []Option) *InMemoryRepository {
	r := &InMemoryRepository{options: make([]Option, 0, len(seed))}
	r.options = append(r.options, seed...)
	return r
}

func (r *InMemoryRepository) ListByParent(parentID int) ([]Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Option, 0)
	for _, o := range r.options {
		if o.ParentID == parentID {
			out = append(out, o)
		}
	}
	return out, nil
}
