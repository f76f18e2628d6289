package assistant

// Option is one node of the help widget's decision tree. A node with an
// answer is a leaf; one without is a submenu whose children are looked
// up by parent id.
type Option struct {
	ID       int     `json:"id"`
	ParentID int     `json:"parentId"`
	Question string  `json:"question"`
	Answer   *string `json:"answer,omitempty"`
}

// RootParentID is the id of the "start" node whose children form the
// widget's initial menu.
const RootParentID = 1
