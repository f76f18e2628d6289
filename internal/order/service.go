package order

// Service provides the confirmation-view read side. Writes go through
// the checkout pipeline, never through here.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) GetByID(orderID int) (Order, error) {
	if orderID <= 0 {
		return Order{}, ErrNotFound
	}
	return s.repo.GetByID(orderID)
}
