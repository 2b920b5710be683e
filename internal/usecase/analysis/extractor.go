package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
)

// ModelInvoker sends a prompt to a text-generation model. Implementations never
// fail; an empty string means no model produced an answer.
type ModelInvoker interface {
	Invoke(ctx context.Context, prompt string) string
}

// Extractor turns utterances into typed analysis fields, one model call per field
type Extractor struct {
	invoker ModelInvoker
	logger  *zap.Logger
}

// NewExtractor creates a new Extractor
func NewExtractor(invoker ModelInvoker, logger *zap.Logger) *Extractor {
	return &Extractor{invoker: invoker, logger: logger}
}

// ExtractSummary returns the summary object, or the raw model text as summary when it holds no JSON object
func (e *Extractor) ExtractSummary(ctx context.Context, utterances []entities.Utterance) entities.Summary {
	raw := e.invoker.Invoke(ctx, summaryPrompt+renderConversation(utterances))

	obj, ok := scanObject(raw)
	if !ok {
		e.logParseFailure("summary", raw)
		return entities.Summary{Summary: raw, MainTopics: []string{}, KeyPoints: []string{}}
	}
	return entities.Summary{
		Summary:    obj.str("summary"),
		MainTopics: obj.strs("main_topics"),
		KeyPoints:  obj.strs("key_points"),
	}
}

// ExtractActionItems returns the action items, or an empty slice when none can be parsed
func (e *Extractor) ExtractActionItems(ctx context.Context, utterances []entities.Utterance) []entities.ActionItem {
	raw := e.invoker.Invoke(ctx, actionItemsPrompt+renderConversation(utterances))

	elems, ok := scanArray(raw)
	if !ok {
		e.logParseFailure("action_items", raw)
		return []entities.ActionItem{}
	}
	items := make([]entities.ActionItem, 0, len(elems))
	for _, elem := range elems {
		obj, ok := elementObject(elem, "task")
		if !ok {
			continue
		}
		items = append(items, entities.ActionItem{
			Assignee: obj.str("assignee"),
			Task:     obj.str("task"),
			Deadline: obj.str("deadline"),
			Context:  obj.str("context"),
		})
	}
	return items
}

// ExtractMeetingRequests returns requested follow-up meetings, or an empty slice
func (e *Extractor) ExtractMeetingRequests(ctx context.Context, utterances []entities.Utterance) []entities.MeetingRequest {
	raw := e.invoker.Invoke(ctx, meetingRequestsPrompt+renderConversation(utterances))

	elems, ok := scanArray(raw)
	if !ok {
		e.logParseFailure("meeting_requests", raw)
		return []entities.MeetingRequest{}
	}
	requests := make([]entities.MeetingRequest, 0, len(elems))
	for _, elem := range elems {
		obj, ok := elementObject(elem, "purpose")
		if !ok {
			continue
		}
		requests = append(requests, entities.MeetingRequest{
			Requester:    obj.str("requester"),
			ProposedTime: obj.str("proposed_time"),
			Participants: obj.strs("participants"),
			Purpose:      obj.str("purpose"),
		})
	}
	return requests
}

// ExtractKeyDecisions returns decisions taken in the meeting, or an empty slice
func (e *Extractor) ExtractKeyDecisions(ctx context.Context, utterances []entities.Utterance) []entities.KeyDecision {
	raw := e.invoker.Invoke(ctx, keyDecisionsPrompt+renderConversation(utterances))

	elems, ok := scanArray(raw)
	if !ok {
		e.logParseFailure("key_decisions", raw)
		return []entities.KeyDecision{}
	}
	decisions := make([]entities.KeyDecision, 0, len(elems))
	for _, elem := range elems {
		obj, ok := elementObject(elem, "decision")
		if !ok {
			continue
		}
		decisions = append(decisions, entities.KeyDecision{
			Decision:      obj.str("decision"),
			DecisionMaker: obj.str("decision_maker"),
			Rationale:     obj.str("rationale"),
		})
	}
	return decisions
}

func (e *Extractor) logParseFailure(field, raw string) {
	if e.logger != nil {
		e.logger.Warn("⚠️ Model response had no parsable JSON, using fallback",
			zap.String("field", field),
			zap.Int("response_length", len(raw)),
		)
	}
}
