package entities

import (
	"fmt"
	"time"
)

// TimestampLayout is the wall-clock layout used by transcript lines, e.g. [00:12:45]
const TimestampLayout = "15:04:05"

// Utterance represents a single speaker turn parsed from one transcript line
type Utterance struct {
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Content   string `json:"content"`
}

// TimeOfDay parses the timestamp as a time of day
func (u Utterance) TimeOfDay() (time.Time, error) {
	t, err := time.Parse(TimestampLayout, u.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid utterance timestamp %q: %w", u.Timestamp, err)
	}
	return t, nil
}

// Line renders the utterance the way extraction prompts consume it
func (u Utterance) Line() string {
	return u.Speaker + ": " + u.Content
}
