package notes

import "github.com/johnquangdev/meet-agent/internal/domain/entities"

// CreatePageRequest publishes explicit meeting notes
type CreatePageRequest struct {
	Title        string                 `json:"title" validate:"required,max=2000"`
	Summary      string                 `json:"summary"`
	ActionItems  []entities.ActionItem  `json:"action_items,omitempty"`
	KeyDecisions []entities.KeyDecision `json:"key_decisions,omitempty"`
}

// CreateTasksRequest turns action items into task rows
type CreateTasksRequest struct {
	ActionItems []entities.ActionItem `json:"action_items" validate:"required,min=1"`
}

// UpdateTaskRequest moves a task to a new status
type UpdateTaskRequest struct {
	Status string `json:"status" validate:"required,max=100"`
}
