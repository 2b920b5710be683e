package entities

import "time"

// DefaultMeetingDuration is used when an event request carries no duration
const DefaultMeetingDuration = 60

// EventRequest describes a calendar event to create
type EventRequest struct {
	Title           string
	Start           time.Time
	DurationMinutes int
	Description     string
	Attendees       []string
}

// End returns the event end time, falling back to the default duration
func (r EventRequest) End() time.Time {
	d := r.DurationMinutes
	if d <= 0 {
		d = DefaultMeetingDuration
	}
	return r.Start.Add(time.Duration(d) * time.Minute)
}

// CalendarEvent is the reference returned after an event is created
type CalendarEvent struct {
	ID   string `json:"id"`
	Link string `json:"link"`
}

// SlotSuggestion pairs a meeting request with free start times found for it
type SlotSuggestion struct {
	Request MeetingRequest `json:"meeting_request"`
	Slots   []time.Time    `json:"suggested_times"`
}
