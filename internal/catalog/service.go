package catalog

// Service orchestrates catalog reads.
type Service struct {
	repo Repository
}

// ServiceInterface lets other packages (cart, checkout) depend on the
// catalog read boundary without importing the concrete service.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	ListByCategory(category string) ([]Card, error)
	ListByTag(tag string) ([]Card, error)
	ListBrands() ([]Brand, error)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByCategory(category string) ([]Card, error) {
	return s.repo.ListByCategory(category)
}

func (s *Service) ListByTag(tag string) ([]Card, error) {
	return s.repo.ListByTag(tag)
}

func (s *Service) ListBrands() ([]Brand, error) {
	return s.repo.ListBrands()
}

var _ ServiceInterface = (*Service)(nil)
