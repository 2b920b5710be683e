package calendar

import "time"

// CreateEventRequest creates one calendar event
type CreateEventRequest struct {
	Title           string    `json:"title" validate:"required,max=500"`
	Start           time.Time `json:"start" validate:"required"`
	DurationMinutes int       `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=1440"`
	Description     string    `json:"description,omitempty"`
	Attendees       []string  `json:"attendees,omitempty" validate:"omitempty,dive,email"`
}

// SuggestRequest asks for free slots on one day. Date accepts ISO dates and
// relative phrases such as "tomorrow" or "next tuesday".
type SuggestRequest struct {
	Date            string `json:"date" validate:"required"`
	DurationMinutes int    `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=480"`
}
