package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	"github.com/johnquangdev/meet-agent/internal/usecase/analysis"
)

// TranscriptAnalyzer produces an analysis for one transcript
type TranscriptAnalyzer interface {
	Analyze(ctx context.Context, text string) entities.AnalysisResult
}

// NotesService creates pages in the notes workspace
type NotesService interface {
	CreatePage(ctx context.Context, page entities.NotesPage) (string, error)
}

// Options configures a Session. A nil Notes or an empty NotesParent means
// the notes integration is not configured.
type Options struct {
	Analyzer    TranscriptAnalyzer
	Invoker     analysis.ModelInvoker
	Notes       NotesService
	NotesParent entities.NotesParent
	Rules       IntentRules
	Logger      *zap.Logger
}

// Session owns one conversation: its history, last transcript and last analysis.
// Every public method holds the session lock for its whole duration, so the
// effects of one request become visible together.
type Session struct {
	mu sync.Mutex

	analyzer TranscriptAnalyzer
	invoker  analysis.ModelInvoker
	notes    NotesService
	parent   entities.NotesParent
	rules    IntentRules
	logger   *zap.Logger

	messages   []entities.ConversationMessage
	transcript string
	analysis   *entities.AnalysisResult
	lastUsed   time.Time
}

// NewSession creates an empty session
func NewSession(opts Options) *Session {
	rules := opts.Rules
	if len(rules.PersistTriggers) == 0 && len(rules.ScheduleKeywords) == 0 &&
		len(rules.TaskKeywords) == 0 && len(rules.DecisionKeywords) == 0 {
		rules = DefaultIntentRules()
	}
	return &Session{
		analyzer: opts.Analyzer,
		invoker:  opts.Invoker,
		notes:    opts.Notes,
		parent:   opts.NotesParent,
		rules:    rules,
		logger:   opts.Logger,
		messages: make([]entities.ConversationMessage, 0),
		lastUsed: time.Now(),
	}
}

// ProcessTranscript analyzes text, replaces the stored transcript and analysis,
// and records one assistant message summarizing the result. Failures are
// recorded as an assistant message and yield a neutral analysis.
func (s *Session) ProcessTranscript(ctx context.Context, text string) (result entities.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	defer func() {
		if p := recover(); p != nil {
			if s.logger != nil {
				s.logger.Error("❌ Transcript processing failed", zap.String("panic", fmt.Sprint(p)))
			}
			result = entities.NewEmptyAnalysis()
			s.transcript = text
			s.analysis = &result
			s.appendLocked(entities.MessageRoleAssistant, fmt.Sprintf(processingErrorTemplate, p))
		}
	}()

	result = s.analyzer.Analyze(ctx, text)
	result.Normalize()

	s.transcript = text
	stored := result
	s.analysis = &stored
	s.appendLocked(entities.MessageRoleAssistant, summaryMessage(result))
	return result
}

// HandleUserMessage runs one conversational turn and returns the reply.
// Without a processed transcript it returns NeedTranscriptMessage and records nothing.
func (s *Session) HandleUserMessage(ctx context.Context, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.analysis == nil {
		return NeedTranscriptMessage
	}

	s.appendLocked(entities.MessageRoleUser, text)

	intent := s.rules.Classify(text)
	if s.logger != nil {
		s.logger.Debug("chat intent classified", zap.String("intent", intent.String()))
	}

	var reply string
	if intent == IntentPersist {
		reply = s.persistLocked(ctx, text)
	} else {
		reply = s.invoker.Invoke(ctx, buildPrompt(intent, *s.analysis, text))
		if strings.TrimSpace(reply) == "" {
			reply = NoResponseMessage
		}
	}

	s.appendLocked(entities.MessageRoleAssistant, reply)
	return reply
}

func (s *Session) persistLocked(ctx context.Context, message string) string {
	if s.notes == nil || s.parent.IsZero() {
		return NotesUnavailableMessage
	}

	title := ExtractTitle(message)
	if title == "" {
		title = FallbackTitle(s.transcript)
	}

	page := entities.NotesPage{
		Title:       title,
		Summary:     summaryText(s.analysis.Summary),
		ActionItems: s.analysis.ActionItems,
		Parent:      s.parent,
	}

	pageID, err := s.notes.CreatePage(ctx, page)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to create Notion page", zap.String("title", title), zap.Error(err))
		}
		return fmt.Sprintf("❌ Failed to save to Notion: %v", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Notion page created", zap.String("page_id", pageID), zap.String("title", title))
	}
	return fmt.Sprintf("✅ Saved the meeting notes to Notion as %q (page id: %s).", title, pageID)
}

// summaryText prefers the narrative summary and falls back to the whole summary object
func summaryText(sum entities.Summary) string {
	if sum.Summary != "" {
		return sum.Summary
	}
	if len(sum.MainTopics) == 0 && len(sum.KeyPoints) == 0 {
		return ""
	}
	b, err := json.Marshal(sum)
	if err != nil {
		return fmt.Sprint(sum)
	}
	return string(b)
}

// Messages returns a snapshot of the history
func (s *Session) Messages() []entities.ConversationMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.ConversationMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Analysis returns the stored analysis, if any
func (s *Session) Analysis() (entities.AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.analysis == nil {
		return entities.AnalysisResult{}, false
	}
	return *s.analysis, true
}

// Transcript returns the last processed transcript text
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

// Clear resets history, transcript and analysis
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.messages = make([]entities.ConversationMessage, 0)
	s.transcript = ""
	s.analysis = nil
}

// LastUsed reports when the session last handled a request
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) appendLocked(role entities.MessageRole, content string) {
	s.messages = append(s.messages, entities.ConversationMessage{Role: role, Content: content})
}

func (s *Session) touch() {
	s.lastUsed = time.Now()
}
