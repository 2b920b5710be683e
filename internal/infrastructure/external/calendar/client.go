package calendar

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	"github.com/johnquangdev/meet-agent/pkg/config"
)

const slotStep = 30 * time.Minute

// ErrNotConnected is returned before an OAuth token has been supplied
var ErrNotConnected = errors.New("calendar: not connected")

// Error wraps a failed Calendar API call. The cause is usually a *googleapi.Error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "calendar " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether a failed call may succeed when repeated. Token
// refresh failures never fix themselves.
func Retryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	var retrieveErr *oauth2.RetrieveError
	return !errors.As(err, &retrieveErr)
}

// Client wraps the Google Calendar v3 service. It holds no token until Connect is called.
type Client struct {
	endpoint   string
	calendarID string
	location   *time.Location
	base       *http.Client
	logger     *zap.Logger

	mu      sync.RWMutex
	service *gcal.Service

	retryInitial time.Duration
	retryMax     time.Duration
}

// NewClient creates a disconnected calendar client
func NewClient(cfg *config.CalendarConfig, logger *zap.Logger) *Client {
	endpoint := ""
	calendarID := "primary"
	loc := time.UTC
	if cfg != nil {
		if cfg.BaseURL != "" {
			endpoint = strings.TrimRight(cfg.BaseURL, "/") + "/"
		}
		if cfg.CalendarID != "" {
			calendarID = cfg.CalendarID
		}
		if cfg.TimeZone != "" {
			if l, err := time.LoadLocation(cfg.TimeZone); err == nil {
				loc = l
			} else if logger != nil {
				logger.Warn("⚠️ Unknown calendar time zone, using UTC", zap.String("time_zone", cfg.TimeZone), zap.Error(err))
			}
		}
	}

	return &Client{
		endpoint:     endpoint,
		calendarID:   calendarID,
		location:     loc,
		base:         &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
		retryInitial: 500 * time.Millisecond,
		retryMax:     30 * time.Second,
	}
}

// Connect builds the Calendar service on top of the token source
func (c *Client) Connect(ts oauth2.TokenSource) {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("❌ Failed to build calendar service", zap.Error(err))
		}
		return
	}

	c.mu.Lock()
	c.service = svc
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("📅 Calendar connected", zap.String("calendar_id", c.calendarID))
	}
}

// Connected reports whether a token source has been installed
func (c *Client) Connected() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.service != nil
}

// Location is the time zone used for working hours and event times
func (c *Client) Location() *time.Location {
	return c.location
}

// CreateEvent inserts an event into the configured calendar
func (c *Client) CreateEvent(ctx context.Context, req entities.EventRequest) (entities.CalendarEvent, error) {
	svc, err := c.events()
	if err != nil {
		return entities.CalendarEvent{}, err
	}

	tz := c.location.String()
	ev := &gcal.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start:       &gcal.EventDateTime{DateTime: req.Start.In(c.location).Format(time.RFC3339), TimeZone: tz},
		End:         &gcal.EventDateTime{DateTime: req.End().In(c.location).Format(time.RFC3339), TimeZone: tz},
	}
	for _, email := range req.Attendees {
		ev.Attendees = append(ev.Attendees, &gcal.EventAttendee{Email: email})
	}

	var created *gcal.Event
	err = c.retry(ctx, "insert event", func() error {
		var err error
		created, err = svc.Insert(c.calendarID, ev).Context(ctx).Do()
		return err
	})
	if err != nil {
		return entities.CalendarEvent{}, err
	}
	if c.logger != nil {
		c.logger.Info("📅 Calendar event created", zap.String("event_id", created.Id), zap.String("title", req.Title))
	}
	return entities.CalendarEvent{ID: created.Id, Link: created.HtmlLink}, nil
}

// IsAvailable reports whether no event overlaps [start, start+duration)
func (c *Client) IsAvailable(ctx context.Context, start time.Time, durationMinutes int) (bool, error) {
	end := start.Add(minutes(durationMinutes))
	busy, err := c.busyIntervals(ctx, start, end)
	if err != nil {
		return false, err
	}
	return free(busy, start, end), nil
}

// SuggestTimes walks the working window of day in 30-minute steps and returns
// every start time whose slot overlaps no existing event.
func (c *Client) SuggestTimes(ctx context.Context, day time.Time, durationMinutes, startHour, endHour int) ([]time.Time, error) {
	d := day.In(c.location)
	windowStart := time.Date(d.Year(), d.Month(), d.Day(), startHour, 0, 0, 0, c.location)
	windowEnd := time.Date(d.Year(), d.Month(), d.Day(), endHour, 0, 0, 0, c.location)
	length := minutes(durationMinutes)

	suggestions := make([]time.Time, 0)
	if !windowStart.Before(windowEnd) {
		return suggestions, nil
	}

	// one listing covers every slot, including a last slot that runs past the window
	busy, err := c.busyIntervals(ctx, windowStart, windowEnd.Add(length))
	if err != nil {
		return nil, err
	}

	for slot := windowStart; slot.Before(windowEnd); slot = slot.Add(slotStep) {
		if free(busy, slot, slot.Add(length)) {
			suggestions = append(suggestions, slot)
		}
	}
	return suggestions, nil
}

type interval struct {
	start, end time.Time
}

func (c *Client) busyIntervals(ctx context.Context, from, to time.Time) ([]interval, error) {
	svc, err := c.events()
	if err != nil {
		return nil, err
	}

	var busy []interval
	err = c.retry(ctx, "list events", func() error {
		busy = make([]interval, 0)
		call := svc.List(c.calendarID).
			TimeMin(from.UTC().Format(time.RFC3339)).
			TimeMax(to.UTC().Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(250)
		return call.Pages(ctx, func(page *gcal.Events) error {
			for _, ev := range page.Items {
				if ev.Status == "cancelled" {
					continue
				}
				if iv, ok := c.toInterval(ev); ok {
					busy = append(busy, iv)
				}
			}
			return nil
		})
	})
	return busy, err
}

// toInterval converts timed and all-day events to absolute intervals
func (c *Client) toInterval(ev *gcal.Event) (interval, bool) {
	start, ok := c.parseEventTime(ev.Start)
	if !ok {
		return interval{}, false
	}
	end, ok := c.parseEventTime(ev.End)
	if !ok {
		return interval{}, false
	}
	return interval{start: start, end: end}, true
}

func (c *Client) parseEventTime(t *gcal.EventDateTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	if t.DateTime != "" {
		v, err := time.Parse(time.RFC3339, t.DateTime)
		return v, err == nil
	}
	if t.Date != "" {
		v, err := time.ParseInLocation("2006-01-02", t.Date, c.location)
		return v, err == nil
	}
	return time.Time{}, false
}

func free(busy []interval, start, end time.Time) bool {
	for _, b := range busy {
		if b.start.Before(end) && b.end.After(start) {
			return false
		}
	}
	return true
}

func minutes(n int) time.Duration {
	if n <= 0 {
		n = entities.DefaultMeetingDuration
	}
	return time.Duration(n) * time.Minute
}

func (c *Client) events() (*gcal.EventsService, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.service == nil {
		return nil, ErrNotConnected
	}
	return c.service.Events, nil
}

// retry runs call with exponential backoff while its error is Retryable
func (c *Client) retry(ctx context.Context, op string, call func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInitial
	bo.MaxElapsedTime = c.retryMax

	err := backoff.Retry(func() error {
		err := call()
		if err == nil {
			return nil
		}
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		if c.logger != nil {
			c.logger.Warn("⚠️ Calendar request failed, retrying", zap.String("op", op), zap.Error(err))
		}
		return err
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	return nil
}
