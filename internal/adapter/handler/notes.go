package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/errors"
	notesdto "github.com/johnquangdev/meet-agent/internal/adapter/dto/notes"
	"github.com/johnquangdev/meet-agent/internal/usecase/notes"
)

// Notes handles notes workspace HTTP requests
type Notes struct {
	notes  *notes.Service
	logger *zap.Logger
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(notesService *notes.Service, logger *zap.Logger) *Notes {
	return &Notes{notes: notesService, logger: logger}
}

// CreatePage handles POST /notes/pages
// @Summary      Create a meeting notes page
// @Description  Creates a page with summary and action items under the configured parent, then appends key decisions
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      notes.CreatePageRequest  true  "Page content"
// @Success      200  {object}  notes.PageResponse
// @Failure      502  {object}  map[string]interface{}  "Notion request failed"
// @Failure      503  {object}  map[string]interface{}  "Notion not configured"
// @Router       /notes/pages [post]
func (h *Notes) CreatePage(c echo.Context) error {
	var req notesdto.CreatePageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	page, err := h.notes.CreatePage(c.Request().Context(), notes.PageInput{
		Title:        req.Title,
		Summary:      req.Summary,
		ActionItems:  req.ActionItems,
		KeyDecisions: req.KeyDecisions,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, notesdto.PageResponse{PageID: page.ID, DecisionsAppended: page.DecisionsAppended})
}

// CreateTasks handles POST /notes/tasks
// @Summary      Create task rows from action items
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      notes.CreateTasksRequest  true  "Action items"
// @Success      200  {object}  notes.TasksResponse
// @Failure      503  {object}  map[string]interface{}  "Task database not configured"
// @Router       /notes/tasks [post]
func (h *Notes) CreateTasks(c echo.Context) error {
	var req notesdto.CreateTasksRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	tasks, err := h.notes.CreateTasks(c.Request().Context(), req.ActionItems)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out := notesdto.TasksResponse{Tasks: make([]notesdto.TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, notesdto.TaskResponse{ID: t.ID, Description: t.Description})
	}
	return HandleSuccess(h.logger, c, out)
}

// UpdateTaskStatus handles PATCH /notes/tasks/:id
// @Summary      Update a task's status
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                   true  "Task row id"
// @Param        request  body  notes.UpdateTaskRequest  true  "New status"
// @Success      200  {object}  map[string]interface{}
// @Router       /notes/tasks/{id} [patch]
func (h *Notes) UpdateTaskStatus(c echo.Context) error {
	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("task id is required"))
	}

	var req notesdto.UpdateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.notes.UpdateTaskStatus(c.Request().Context(), taskID, req.Status); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"id": taskID, "status": req.Status})
}
