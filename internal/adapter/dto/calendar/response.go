package calendar

import "time"

// EventResponse references a created event
type EventResponse struct {
	ID   string `json:"id"`
	Link string `json:"link"`
}

// SuggestResponse lists free start times
type SuggestResponse struct {
	Date            string      `json:"date"`
	DurationMinutes int         `json:"duration_minutes"`
	Slots           []time.Time `json:"slots"`
}

// ConnectResponse carries the consent URL
type ConnectResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// StatusResponse reports the calendar link
type StatusResponse struct {
	Configured bool `json:"configured"`
	Connected  bool `json:"connected"`
}
