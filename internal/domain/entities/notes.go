package entities

// ParentType selects where a notes page is created
type ParentType string

const (
	ParentTypePage     ParentType = "page"
	ParentTypeDatabase ParentType = "database"
)

// NotesParent locates the container a page is created under
type NotesParent struct {
	ID   string
	Type ParentType
}

// IsZero reports whether no parent is configured
func (p NotesParent) IsZero() bool {
	return p.ID == ""
}

// NotesPage is the payload of a create-page call
type NotesPage struct {
	Title       string
	Summary     string
	ActionItems []ActionItem
	Parent      NotesParent
}

// DefaultTaskStatus is assigned to newly created tasks
const DefaultTaskStatus = "Not started"

// NotesTask is a row in a task database
type NotesTask struct {
	Description string
	Assignee    string
	DueDate     string
	Status      string
}

// TaskFromActionItem maps an extracted action item to a task row
func TaskFromActionItem(a ActionItem) NotesTask {
	return NotesTask{
		Description: a.Task,
		Assignee:    a.Assignee,
		DueDate:     a.Deadline,
		Status:      DefaultTaskStatus,
	}
}
