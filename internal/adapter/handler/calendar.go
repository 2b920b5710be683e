package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	caldto "github.com/johnquangdev/meet-agent/internal/adapter/dto/calendar"
	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	"github.com/johnquangdev/meet-agent/internal/usecase/schedule"
)

// Calendar handles scheduling HTTP requests
type Calendar struct {
	schedule *schedule.Service
	logger   *zap.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(scheduleService *schedule.Service, logger *zap.Logger) *Calendar {
	return &Calendar{schedule: scheduleService, logger: logger}
}

// CreateEvent handles POST /calendar/events
// @Summary      Create a calendar event
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      calendar.CreateEventRequest  true  "Event"
// @Success      200  {object}  calendar.EventResponse
// @Failure      400  {object}  map[string]interface{}  "Validation failed"
// @Failure      503  {object}  map[string]interface{}  "Calendar not connected"
// @Router       /calendar/events [post]
func (h *Calendar) CreateEvent(c echo.Context) error {
	var req caldto.CreateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ev, err := h.schedule.CreateEvent(c.Request().Context(), entities.EventRequest{
		Title:           req.Title,
		Start:           req.Start,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		Attendees:       req.Attendees,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, caldto.EventResponse{ID: ev.ID, Link: ev.Link})
}

// SuggestTimes handles POST /calendar/suggestions
// @Summary      Suggest free meeting slots
// @Description  Scans working hours of one day in 30-minute steps
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      calendar.SuggestRequest  true  "Day and duration"
// @Success      200  {object}  calendar.SuggestResponse
// @Failure      400  {object}  map[string]interface{}  "Unrecognized date"
// @Failure      503  {object}  map[string]interface{}  "Calendar not connected"
// @Router       /calendar/suggestions [post]
func (h *Calendar) SuggestTimes(c echo.Context) error {
	var req caldto.SuggestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = entities.DefaultMeetingDuration
	}

	day, err := h.schedule.ResolveDay(req.Date)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	slots, err := h.schedule.SuggestTimes(c.Request().Context(), day, req.DurationMinutes)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if slots == nil {
		slots = []time.Time{}
	}

	return HandleSuccess(h.logger, c, caldto.SuggestResponse{
		Date:            day.Format("2006-01-02"),
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	})
}
