package notes

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	ucerrors "github.com/johnquangdev/meet-agent/internal/usecase/errors"
)

// Client is the notes workspace API
type Client interface {
	CreatePage(ctx context.Context, page entities.NotesPage) (string, error)
	AppendDecisions(ctx context.Context, pageID string, decisions []entities.KeyDecision) error
	CreateTask(ctx context.Context, databaseID string, task entities.NotesTask) (string, error)
	UpdateTaskStatus(ctx context.Context, taskID, status string) error
}

// PageInput is an explicit request to publish meeting notes
type PageInput struct {
	Title        string
	Summary      string
	ActionItems  []entities.ActionItem
	KeyDecisions []entities.KeyDecision
}

// Page references a created notes page
type Page struct {
	ID string
	// DecisionsAppended is false when the decisions section could not be added
	DecisionsAppended bool
}

// Task references a created task row
type Task struct {
	ID          string
	Description string
}

// Service publishes notes pages and task rows
type Service struct {
	client  Client
	parent  entities.NotesParent
	tasksDB string
	logger  *zap.Logger
}

// NewService creates the notes service. A nil client disables every operation.
func NewService(client Client, parent entities.NotesParent, tasksDB string, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		parent:  parent,
		tasksDB: tasksDB,
		logger:  logger,
	}
}

// Available reports whether pages can be created
func (s *Service) Available() bool {
	return s.client != nil && !s.parent.IsZero()
}

// TasksAvailable reports whether task rows can be created
func (s *Service) TasksAvailable() bool {
	return s.client != nil && s.tasksDB != ""
}

// CreatePage creates a page under the configured parent, then appends the
// decisions. A failed append keeps the page.
func (s *Service) CreatePage(ctx context.Context, in PageInput) (Page, error) {
	if !s.Available() {
		return Page{}, ucerrors.ErrNotesUnavailable
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Page{}, fmt.Errorf("%w: title is required", ucerrors.ErrInvalidInput)
	}

	id, err := s.client.CreatePage(ctx, entities.NotesPage{
		Title:       title,
		Summary:     in.Summary,
		ActionItems: in.ActionItems,
		Parent:      s.parent,
	})
	if err != nil {
		return Page{}, fmt.Errorf("create notes page: %w", err)
	}

	page := Page{ID: id, DecisionsAppended: len(in.KeyDecisions) == 0}
	if len(in.KeyDecisions) > 0 {
		if err := s.client.AppendDecisions(ctx, id, in.KeyDecisions); err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Failed to append key decisions", zap.String("page_id", id), zap.Error(err))
			}
		} else {
			page.DecisionsAppended = true
		}
	}
	return page, nil
}

// CreateTasks adds one task row per action item. It stops at the first
// failure and returns the rows created so far.
func (s *Service) CreateTasks(ctx context.Context, items []entities.ActionItem) ([]Task, error) {
	if !s.TasksAvailable() {
		return nil, ucerrors.ErrNotesUnavailable
	}

	created := make([]Task, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Task) == "" {
			continue
		}
		id, err := s.client.CreateTask(ctx, s.tasksDB, entities.TaskFromActionItem(item))
		if err != nil {
			return created, fmt.Errorf("create task %q: %w", item.Task, err)
		}
		created = append(created, Task{ID: id, Description: item.Task})
	}

	if s.logger != nil {
		s.logger.Info("✅ Tasks created", zap.Int("count", len(created)))
	}
	return created, nil
}

// UpdateTaskStatus moves a task row to status
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID, status string) error {
	if !s.TasksAvailable() {
		return ucerrors.ErrNotesUnavailable
	}
	if strings.TrimSpace(taskID) == "" || strings.TrimSpace(status) == "" {
		return fmt.Errorf("%w: task id and status are required", ucerrors.ErrInvalidInput)
	}
	if err := s.client.UpdateTaskStatus(ctx, taskID, status); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return nil
}
