package entities

import "strings"

// NeutralDuration is reported when a transcript has no measurable span
const NeutralDuration = "0:00"

// Summary is the narrative part of an analysis
type Summary struct {
	Summary    string   `json:"summary"`
	MainTopics []string `json:"main_topics"`
	KeyPoints  []string `json:"key_points"`
}

// ActionItem is a task extracted from the conversation. Empty optional fields mean absent.
type ActionItem struct {
	Assignee string `json:"assignee,omitempty"`
	Task     string `json:"task"`
	Deadline string `json:"deadline,omitempty"`
	Context  string `json:"context,omitempty"`
}

// Render formats the item as "<assignee>: <task> (Due: <deadline>) - <context>",
// leaving out absent parts together with their separators.
func (a ActionItem) Render() string {
	var b strings.Builder
	if a.Assignee != "" {
		b.WriteString(a.Assignee)
		b.WriteString(": ")
	}
	b.WriteString(a.Task)
	if a.Deadline != "" {
		b.WriteString(" (Due: ")
		b.WriteString(a.Deadline)
		b.WriteString(")")
	}
	if a.Context != "" {
		b.WriteString(" - ")
		b.WriteString(a.Context)
	}
	return b.String()
}

// MeetingRequest is a follow-up meeting mentioned during the conversation
type MeetingRequest struct {
	Requester    string   `json:"requester,omitempty"`
	ProposedTime string   `json:"proposed_time"`
	Participants []string `json:"participants"`
	Purpose      string   `json:"purpose"`
}

// KeyDecision is a decision recorded during the conversation
type KeyDecision struct {
	Decision      string `json:"decision"`
	DecisionMaker string `json:"decision_maker,omitempty"`
	Rationale     string `json:"rationale,omitempty"`
}

// Render formats the decision as "<decision> (by <maker>) - <rationale>"
func (d KeyDecision) Render() string {
	var b strings.Builder
	b.WriteString(d.Decision)
	if d.DecisionMaker != "" {
		b.WriteString(" (by ")
		b.WriteString(d.DecisionMaker)
		b.WriteString(")")
	}
	if d.Rationale != "" {
		b.WriteString(" - ")
		b.WriteString(d.Rationale)
	}
	return b.String()
}

// AnalysisResult aggregates everything derived from one transcript.
// It is replaced wholesale on every new transcript.
type AnalysisResult struct {
	Summary         Summary          `json:"summary"`
	ActionItems     []ActionItem     `json:"action_items"`
	MeetingRequests []MeetingRequest `json:"meeting_requests"`
	KeyDecisions    []KeyDecision    `json:"key_decisions"`
	Participants    []string         `json:"participants"`
	Duration        string           `json:"duration"`
}

// NewEmptyAnalysis returns an analysis with every field at its neutral value
func NewEmptyAnalysis() AnalysisResult {
	return AnalysisResult{
		Summary:         Summary{MainTopics: []string{}, KeyPoints: []string{}},
		ActionItems:     []ActionItem{},
		MeetingRequests: []MeetingRequest{},
		KeyDecisions:    []KeyDecision{},
		Participants:    []string{},
		Duration:        NeutralDuration,
	}
}

// Normalize replaces nil collections with empty ones so the result always serializes fully
func (r *AnalysisResult) Normalize() {
	if r.Summary.MainTopics == nil {
		r.Summary.MainTopics = []string{}
	}
	if r.Summary.KeyPoints == nil {
		r.Summary.KeyPoints = []string{}
	}
	if r.ActionItems == nil {
		r.ActionItems = []ActionItem{}
	}
	if r.MeetingRequests == nil {
		r.MeetingRequests = []MeetingRequest{}
	}
	for i := range r.MeetingRequests {
		if r.MeetingRequests[i].Participants == nil {
			r.MeetingRequests[i].Participants = []string{}
		}
	}
	if r.KeyDecisions == nil {
		r.KeyDecisions = []KeyDecision{}
	}
	if r.Participants == nil {
		r.Participants = []string{}
	}
	if r.Duration == "" {
		r.Duration = NeutralDuration
	}
}
