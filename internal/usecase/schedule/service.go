package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	ucerrors "github.com/johnquangdev/meet-agent/internal/usecase/errors"
	"github.com/johnquangdev/meet-agent/pkg/config"
)

// Calendar is the calendar backend used for scheduling
type Calendar interface {
	Connected() bool
	CreateEvent(ctx context.Context, req entities.EventRequest) (entities.CalendarEvent, error)
	SuggestTimes(ctx context.Context, day time.Time, durationMinutes, startHour, endHour int) ([]time.Time, error)
}

// Service implements the scheduling use cases
type Service struct {
	calendar  Calendar
	startHour int
	endHour   int
	location  *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewService creates a scheduling service. calendar may be nil.
func NewService(calendar Calendar, cfg *config.CalendarConfig, logger *zap.Logger) *Service {
	s := &Service{
		calendar:  calendar,
		startHour: 9,
		endHour:   17,
		location:  time.UTC,
		now:       time.Now,
		logger:    logger,
	}
	if cfg != nil {
		if cfg.DayEndHour > cfg.DayStartHour {
			s.startHour = cfg.DayStartHour
			s.endHour = cfg.DayEndHour
		}
		if cfg.TimeZone != "" {
			if loc, err := time.LoadLocation(cfg.TimeZone); err == nil {
				s.location = loc
			}
		}
	}
	return s
}

// Available reports whether a connected calendar backs the service
func (s *Service) Available() bool {
	return s.calendar != nil && s.calendar.Connected()
}

// CreateEvent schedules a meeting
func (s *Service) CreateEvent(ctx context.Context, req entities.EventRequest) (entities.CalendarEvent, error) {
	if !s.Available() {
		return entities.CalendarEvent{}, ucerrors.ErrCalendarUnavailable
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return entities.CalendarEvent{}, fmt.Errorf("event title is required: %w", ucerrors.ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return entities.CalendarEvent{}, fmt.Errorf("event start is required: %w", ucerrors.ErrInvalidTime)
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = entities.DefaultMeetingDuration
	}

	ev, err := s.calendar.CreateEvent(ctx, req)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to create calendar event", zap.String("title", req.Title), zap.Error(err))
		}
		return entities.CalendarEvent{}, err
	}
	return ev, nil
}

// SuggestTimes returns free start times within working hours on day
func (s *Service) SuggestTimes(ctx context.Context, day time.Time, durationMinutes int) ([]time.Time, error) {
	if !s.Available() {
		return nil, ucerrors.ErrCalendarUnavailable
	}
	if durationMinutes <= 0 {
		durationMinutes = entities.DefaultMeetingDuration
	}
	return s.calendar.SuggestTimes(ctx, day, durationMinutes, s.startHour, s.endHour)
}

// ResolveDay parses a requested date in the calendar's time zone
func (s *Service) ResolveDay(value string) (time.Time, error) {
	day, ok := ParseProposedDay(value, s.now(), s.location)
	if !ok {
		return time.Time{}, fmt.Errorf("%q: %w", value, ucerrors.ErrInvalidTime)
	}
	return day, nil
}

// SuggestForRequests attaches free slots to every meeting request whose proposed
// time names a day. Requests that cannot be resolved, and calendar failures, are
// skipped. Without a calendar it returns an empty list.
func (s *Service) SuggestForRequests(ctx context.Context, requests []entities.MeetingRequest, durationMinutes int) []entities.SlotSuggestion {
	out := make([]entities.SlotSuggestion, 0)
	if !s.Available() {
		return out
	}

	for _, req := range requests {
		day, ok := ParseProposedDay(req.ProposedTime, s.now(), s.location)
		if !ok {
			if s.logger != nil {
				s.logger.Debug("skipping meeting request without a resolvable day", zap.String("proposed_time", req.ProposedTime))
			}
			continue
		}

		slots, err := s.SuggestTimes(ctx, day, durationMinutes)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Failed to suggest meeting times", zap.String("proposed_time", req.ProposedTime), zap.Error(err))
			}
			continue
		}
		out = append(out, entities.SlotSuggestion{Request: req, Slots: slots})
	}
	return out
}
