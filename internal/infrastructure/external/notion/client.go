package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	"github.com/johnquangdev/meet-agent/pkg/config"
)

const defaultBaseURL = "https://api.notion.com"

// Retryable reports whether a failed Notion call may succeed when repeated.
// API errors are retried on throttling and server status only; transport and
// decode failures (an HTML 502 page, a dropped connection) are always retried.
func Retryable(err error) bool {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= 500
	}
	return true
}

// Error wraps a failed Notion call. The cause is usually a *notionapi.Error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "notion " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client publishes meeting notes and tasks through the Notion API
type Client struct {
	api           *notionapi.Client
	titleProperty string
	logger        *zap.Logger

	retryInitial time.Duration
	retryMax     time.Duration
}

// NewClient creates a Notion client. It returns nil when no token is configured.
func NewClient(cfg *config.NotionConfig, logger *zap.Logger) *Client {
	if cfg == nil || cfg.Token == "" {
		return nil
	}
	title := cfg.TitleProperty
	if title == "" {
		title = "Name"
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	if cfg.BaseURL != "" && cfg.BaseURL != defaultBaseURL {
		if target, err := url.Parse(cfg.BaseURL); err == nil && target.Host != "" {
			httpClient.Transport = &hostRewriter{target: target, next: http.DefaultTransport}
		} else if logger != nil {
			logger.Warn("⚠️ Ignoring invalid NOTION_API_URL", zap.String("url", cfg.BaseURL))
		}
	}

	opts := []notionapi.ClientOption{notionapi.WithHTTPClient(httpClient)}
	if cfg.Version != "" {
		opts = append(opts, notionapi.WithVersion(cfg.Version))
	}

	return &Client{
		api:           notionapi.NewClient(notionapi.Token(cfg.Token), opts...),
		titleProperty: title,
		logger:        logger,
		retryInitial:  500 * time.Millisecond,
		retryMax:      30 * time.Second,
	}
}

// hostRewriter sends every request to target instead of api.notion.com
type hostRewriter struct {
	target *url.URL
	next   http.RoundTripper
}

func (h *hostRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = h.target.Scheme
	out.URL.Host = h.target.Host
	out.Host = h.target.Host
	return h.next.RoundTrip(out)
}

// DefaultParent picks the configured database, then the configured page
func DefaultParent(cfg *config.NotionConfig) entities.NotesParent {
	if cfg == nil {
		return entities.NotesParent{}
	}
	if cfg.DatabaseID != "" {
		return entities.NotesParent{ID: cfg.DatabaseID, Type: entities.ParentTypeDatabase}
	}
	if cfg.PageID != "" {
		return entities.NotesParent{ID: cfg.PageID, Type: entities.ParentTypePage}
	}
	return entities.NotesParent{}
}

// CreatePage creates a meeting notes page under page.Parent and returns its id
func (c *Client) CreatePage(ctx context.Context, page entities.NotesPage) (string, error) {
	if page.Parent.IsZero() {
		return "", fmt.Errorf("notion: page parent is required")
	}

	children := make([]notionapi.Block, 0, 4+len(page.ActionItems))
	children = append(children, heading("Meeting Summary"))
	children = append(children, paragraphs(page.Summary)...)
	children = append(children, heading("Action Items"))
	for _, item := range page.ActionItems {
		children = append(children, bullet(item.Render()))
	}

	req := &notionapi.PageCreateRequest{
		Parent:     parentOf(page.Parent),
		Properties: c.titleProperties(page.Parent, page.Title),
		Children:   children,
	}

	var created *notionapi.Page
	err := c.retry(ctx, "create page", func(ctx context.Context) error {
		var err error
		created, err = c.api.Page.Create(ctx, req)
		return err
	})
	if err != nil {
		return "", err
	}
	if c.logger != nil {
		c.logger.Info("📝 Notion page created", zap.String("page_id", string(created.ID)), zap.String("parent", page.Parent.ID))
	}
	return string(created.ID), nil
}

// AppendDecisions adds a "Key Decisions" section to an existing page
func (c *Client) AppendDecisions(ctx context.Context, pageID string, decisions []entities.KeyDecision) error {
	if len(decisions) == 0 {
		return nil
	}
	children := make([]notionapi.Block, 0, 1+len(decisions))
	children = append(children, heading("Key Decisions"))
	for _, d := range decisions {
		children = append(children, bullet(d.Render()))
	}

	req := &notionapi.AppendBlockChildrenRequest{Children: children}
	return c.retry(ctx, "append decisions", func(ctx context.Context) error {
		_, err := c.api.Block.AppendChildren(ctx, notionapi.BlockID(pageID), req)
		return err
	})
}

// CreateTask adds a task row to a database and returns the row id.
// A due date that is not an ISO date is left out since Notion rejects it.
func (c *Client) CreateTask(ctx context.Context, databaseID string, task entities.NotesTask) (string, error) {
	if databaseID == "" {
		return "", fmt.Errorf("notion: task database id is required")
	}
	status := task.Status
	if status == "" {
		status = entities.DefaultTaskStatus
	}

	props := notionapi.Properties{
		c.titleProperty: notionapi.TitleProperty{Title: richText(task.Description)},
		"Status":        statusProperty(status),
	}
	if task.Assignee != "" {
		props["Assignee"] = notionapi.RichTextProperty{RichText: richText(task.Assignee)}
	}
	if task.DueDate != "" {
		if due, ok := parseISODate(task.DueDate); ok {
			start := notionapi.Date(due)
			props["Due Date"] = notionapi.DateProperty{Date: &notionapi.DateObject{Start: &start}}
		} else if c.logger != nil {
			c.logger.Debug("dropping non-ISO due date", zap.String("due_date", task.DueDate))
		}
	}

	req := &notionapi.PageCreateRequest{
		Parent:     notionapi.Parent{Type: notionapi.ParentTypeDatabaseID, DatabaseID: notionapi.DatabaseID(databaseID)},
		Properties: props,
	}

	var created *notionapi.Page
	err := c.retry(ctx, "create task", func(ctx context.Context) error {
		var err error
		created, err = c.api.Page.Create(ctx, req)
		return err
	})
	if err != nil {
		return "", err
	}
	return string(created.ID), nil
}

// UpdateTaskStatus sets the Status select of a task row
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID, status string) error {
	req := &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{"Status": statusProperty(status)},
	}
	return c.retry(ctx, "update task", func(ctx context.Context) error {
		_, err := c.api.Page.Update(ctx, notionapi.PageID(taskID), req)
		return err
	})
}

func (c *Client) titleProperties(parent entities.NotesParent, title string) notionapi.Properties {
	key := "title"
	if parent.Type == entities.ParentTypeDatabase {
		key = c.titleProperty
	}
	return notionapi.Properties{
		key: notionapi.TitleProperty{Title: richText(title)},
	}
}

func statusProperty(status string) notionapi.SelectProperty {
	return notionapi.SelectProperty{Select: notionapi.Option{Name: status}}
}

func parentOf(p entities.NotesParent) notionapi.Parent {
	if p.Type == entities.ParentTypeDatabase {
		return notionapi.Parent{Type: notionapi.ParentTypeDatabaseID, DatabaseID: notionapi.DatabaseID(p.ID)}
	}
	return notionapi.Parent{Type: notionapi.ParentTypePageID, PageID: notionapi.PageID(p.ID)}
}

// retry runs call with exponential backoff while its error is Retryable
func (c *Client) retry(ctx context.Context, op string, call func(ctx context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInitial
	bo.MaxElapsedTime = c.retryMax

	err := backoff.Retry(func() error {
		err := call(ctx)
		if err == nil {
			return nil
		}
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		if c.logger != nil {
			c.logger.Warn("⚠️ Notion request throttled or failed, retrying", zap.String("op", op), zap.Error(err))
		}
		return err
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	return nil
}

func parseISODate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}
