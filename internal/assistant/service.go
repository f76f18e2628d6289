package assistant

// Service walks the decision tree one level at a time.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Options returns the children of a node; parentID <= 0 means the root
// menu.
func (s *Service) Options(parentID int) ([]Option, error) {
	if parentID <= 0 {
		parentID = RootParentID
	}
	return s.repo.ListByParent(parentID)
}
