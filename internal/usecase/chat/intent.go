package chat

import (
	"strings"

	"github.com/johnquangdev/meet-agent/pkg/config"
)

// Intent is the classified purpose of a user message
type Intent int

const (
	IntentGeneral Intent = iota
	IntentPersist
	IntentSchedule
	IntentTasks
	IntentDecisions
)

// String returns the intent name used in logs
func (i Intent) String() string {
	switch i {
	case IntentPersist:
		return "persist"
	case IntentSchedule:
		return "schedule"
	case IntentTasks:
		return "tasks"
	case IntentDecisions:
		return "decisions"
	default:
		return "general"
	}
}

// IntentRules holds the phrases that route a message. Matching is a
// case-insensitive substring test; persistence triggers are checked first,
// then schedule, task and decision keywords in that order.
type IntentRules struct {
	PersistTriggers  []string
	ScheduleKeywords []string
	TaskKeywords     []string
	DecisionKeywords []string
}

// DefaultIntentRules returns the built-in vocabulary
func DefaultIntentRules() IntentRules {
	return IntentRules{
		PersistTriggers: []string{
			"save to notion",
			"write to notion",
			"create notion page",
			"export to notion",
			"store to notion",
			"save in notion",
			"save this to notion",
			"export this to notion",
			"create a notion page",
		},
		ScheduleKeywords: []string{"schedule", "meeting", "calendar", "when"},
		TaskKeywords:     []string{"task", "action", "todo", "assignment"},
		DecisionKeywords: []string{"decide", "decision", "agreed", "conclusion"},
	}
}

// RulesFromConfig applies non-empty configured lists over the defaults
func RulesFromConfig(cfg config.ChatConfig) IntentRules {
	r := DefaultIntentRules()
	if len(cfg.PersistTriggers) > 0 {
		r.PersistTriggers = normalizePhrases(cfg.PersistTriggers)
	}
	if len(cfg.ScheduleKeywords) > 0 {
		r.ScheduleKeywords = normalizePhrases(cfg.ScheduleKeywords)
	}
	if len(cfg.TaskKeywords) > 0 {
		r.TaskKeywords = normalizePhrases(cfg.TaskKeywords)
	}
	if len(cfg.DecisionKeywords) > 0 {
		r.DecisionKeywords = normalizePhrases(cfg.DecisionKeywords)
	}
	return r
}

// Classify maps a user message to an intent
func (r IntentRules) Classify(message string) Intent {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, r.PersistTriggers):
		return IntentPersist
	case containsAny(lower, r.ScheduleKeywords):
		return IntentSchedule
	case containsAny(lower, r.TaskKeywords):
		return IntentTasks
	case containsAny(lower, r.DecisionKeywords):
		return IntentDecisions
	default:
		return IntentGeneral
	}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func normalizePhrases(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
