package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
)

type fakeAnalyzer struct {
	result entities.AnalysisResult
	panics bool
	calls  int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) entities.AnalysisResult {
	f.calls++
	if f.panics {
		panic("analyzer down")
	}
	return f.result
}

type fakeInvoker struct {
	reply   string
	prompts []string
}

func (f *fakeInvoker) Invoke(_ context.Context, prompt string) string {
	f.prompts = append(f.prompts, prompt)
	return f.reply
}

type fakeNotes struct {
	id    string
	err   error
	pages []entities.NotesPage
}

func (f *fakeNotes) CreatePage(_ context.Context, page entities.NotesPage) (string, error) {
	f.pages = append(f.pages, page)
	return f.id, f.err
}

func sampleAnalysis() entities.AnalysisResult {
	return entities.AnalysisResult{
		Summary:         entities.Summary{Summary: "Timeline review", MainTopics: []string{"timeline"}, KeyPoints: []string{}},
		ActionItems:     []entities.ActionItem{{Assignee: "Mike", Task: "Prepare documentation", Deadline: "Thursday"}},
		MeetingRequests: []entities.MeetingRequest{{Requester: "John", ProposedTime: "next Tuesday 2 PM", Participants: []string{"John"}, Purpose: "Follow-up"}},
		KeyDecisions:    []entities.KeyDecision{{Decision: "Phase one ends Friday"}},
		Participants:    []string{"John", "Sarah", "Mike"},
		Duration:        "0:45",
	}
}

const transcript = "[00:00:00] John: Let's discuss the project timeline.\n[00:00:45] Mike: I'll prepare the documentation."

func newTestSession(inv *fakeInvoker, notes NotesService, parent entities.NotesParent) (*Session, *fakeAnalyzer) {
	an := &fakeAnalyzer{result: sampleAnalysis()}
	return NewSession(Options{
		Analyzer:    an,
		Invoker:     inv,
		Notes:       notes,
		NotesParent: parent,
		Logger:      zap.NewNop(),
	}), an
}

func TestHandleUserMessage_NeedsTranscript(t *testing.T) {
	inv := &fakeInvoker{reply: "should not be used"}
	s, _ := newTestSession(inv, nil, entities.NotesParent{})

	reply := s.HandleUserMessage(context.Background(), "what tasks were assigned?")

	assert.Equal(t, NeedTranscriptMessage, reply)
	assert.Empty(t, inv.prompts)
	assert.Empty(t, s.Messages())
}

func TestProcessTranscript_StoresAnalysisAndSummaryMessage(t *testing.T) {
	s, an := newTestSession(&fakeInvoker{}, nil, entities.NotesParent{})

	got := s.ProcessTranscript(context.Background(), transcript)

	assert.Equal(t, sampleAnalysis(), got)
	assert.Equal(t, 1, an.calls)
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, entities.MessageRoleAssistant, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Timeline review")
	assert.Equal(t, transcript, s.Transcript())
}

func TestProcessTranscript_PlaceholderWithoutSummary(t *testing.T) {
	s := NewSession(Options{Analyzer: &fakeAnalyzer{result: entities.NewEmptyAnalysis()}, Invoker: &fakeInvoker{}})

	s.ProcessTranscript(context.Background(), "nothing useful")

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, noSummaryMessage, msgs[0].Content)
}

func TestProcessTranscript_ReplacesPreviousAnalysis(t *testing.T) {
	s, an := newTestSession(&fakeInvoker{}, nil, entities.NotesParent{})
	s.ProcessTranscript(context.Background(), transcript)

	an.result = entities.NewEmptyAnalysis()
	an.result.Summary.Summary = "Second meeting"
	s.ProcessTranscript(context.Background(), "[00:00:00] Ann: hi")

	a, ok := s.Analysis()
	require.True(t, ok)
	assert.Equal(t, "Second meeting", a.Summary.Summary)
	assert.Empty(t, a.ActionItems)
	assert.Len(t, s.Messages(), 2)
}

func TestProcessTranscript_FailureRecordsErrorAndNeutralAnalysis(t *testing.T) {
	an := &fakeAnalyzer{panics: true}
	s := NewSession(Options{Analyzer: an, Invoker: &fakeInvoker{}, Logger: zap.NewNop()})

	got := s.ProcessTranscript(context.Background(), transcript)

	assert.Equal(t, entities.NewEmptyAnalysis(), got)
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "analyzer down")
	stored, ok := s.Analysis()
	require.True(t, ok)
	assert.Equal(t, entities.NewEmptyAnalysis(), stored)
}

func TestHandleUserMessage_RoutesByIntent(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		contains string
		excludes string
	}{
		{name: "schedule", message: "When is the follow-up?", contains: "Meeting Requests:", excludes: "Action Items:"},
		{name: "tasks", message: "List my TODO items", contains: "Action Items:", excludes: "Meeting Requests:"},
		{name: "decisions", message: "What was agreed?", contains: "Key Decisions:", excludes: "Action Items:"},
		{name: "general", message: "Summarize the budget talk", contains: "- Summary:", excludes: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &fakeInvoker{reply: "model reply"}
			s, _ := newTestSession(inv, nil, entities.NotesParent{})
			s.ProcessTranscript(context.Background(), transcript)

			reply := s.HandleUserMessage(context.Background(), tt.message)

			assert.Equal(t, "model reply", reply)
			require.Len(t, inv.prompts, 1)
			assert.Contains(t, inv.prompts[0], tt.contains)
			assert.Contains(t, inv.prompts[0], tt.message)
			if tt.excludes != "" {
				assert.NotContains(t, inv.prompts[0], tt.excludes)
			}
		})
	}
}

func TestHandleUserMessage_RecordsTurn(t *testing.T) {
	inv := &fakeInvoker{reply: "Mike owns the docs."}
	s, _ := newTestSession(inv, nil, entities.NotesParent{})
	s.ProcessTranscript(context.Background(), transcript)

	s.HandleUserMessage(context.Background(), "who has the task?")

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, entities.ConversationMessage{Role: entities.MessageRoleUser, Content: "who has the task?"}, msgs[1])
	assert.Equal(t, entities.ConversationMessage{Role: entities.MessageRoleAssistant, Content: "Mike owns the docs."}, msgs[2])
}

func TestHandleUserMessage_EmptyModelReply(t *testing.T) {
	s, _ := newTestSession(&fakeInvoker{reply: ""}, nil, entities.NotesParent{})
	s.ProcessTranscript(context.Background(), transcript)

	reply := s.HandleUserMessage(context.Background(), "anything?")

	assert.Equal(t, NoResponseMessage, reply)
	msgs := s.Messages()
	assert.Equal(t, NoResponseMessage, msgs[len(msgs)-1].Content)
}

func TestPersist_NotConfigured(t *testing.T) {
	inv := &fakeInvoker{reply: "x"}
	s, _ := newTestSession(inv, nil, entities.NotesParent{})
	s.ProcessTranscript(context.Background(), transcript)

	reply := s.HandleUserMessage(context.Background(), "Please save to notion")

	assert.Equal(t, NotesUnavailableMessage, reply)
	assert.Empty(t, inv.prompts)
}

func TestPersist_NoParentIsNotConfigured(t *testing.T) {
	notes := &fakeNotes{id: "page-1"}
	s, _ := newTestSession(&fakeInvoker{}, notes, entities.NotesParent{})
	s.ProcessTranscript(context.Background(), transcript)

	reply := s.HandleUserMessage(context.Background(), "export to notion")

	assert.Equal(t, NotesUnavailableMessage, reply)
	assert.Empty(t, notes.pages)
}

func TestPersist_TitledMessage(t *testing.T) {
	inv := &fakeInvoker{reply: "x"}
	notes := &fakeNotes{id: "abc-123"}
	parent := entities.NotesParent{ID: "db-1", Type: entities.ParentTypeDatabase}
	s, _ := newTestSession(inv, notes, parent)
	s.ProcessTranscript(context.Background(), transcript)

	reply := s.HandleUserMessage(context.Background(), "Please save to notion, titled Weekly Sync")

	require.Len(t, notes.pages, 1)
	page := notes.pages[0]
	assert.Equal(t, "Weekly Sync", page.Title)
	assert.Equal(t, "Timeline review", page.Summary)
	assert.Equal(t, sampleAnalysis().ActionItems, page.ActionItems)
	assert.Equal(t, parent, page.Parent)
	assert.Contains(t, reply, "abc-123")
	assert.Empty(t, inv.prompts)

	msgs := s.Messages()
	assert.Equal(t, reply, msgs[len(msgs)-1].Content)
}

func TestPersist_TakesPriorityOverTopicalKeywords(t *testing.T) {
	notes := &fakeNotes{id: "p"}
	inv := &fakeInvoker{reply: "x"}
	s, _ := newTestSession(inv, notes, entities.NotesParent{ID: "page-9", Type: entities.ParentTypePage})
	s.ProcessTranscript(context.Background(), transcript)

	s.HandleUserMessage(context.Background(), "Write to Notion the meeting tasks and decisions")

	assert.Len(t, notes.pages, 1)
	assert.Empty(t, inv.prompts)
}

func TestPersist_FallbackTitle(t *testing.T) {
	notes := &fakeNotes{id: "p"}
	s, _ := newTestSession(&fakeInvoker{}, notes, entities.NotesParent{ID: "page-9", Type: entities.ParentTypePage})
	s.ProcessTranscript(context.Background(), transcript)

	s.HandleUserMessage(context.Background(), "create notion page please")

	require.Len(t, notes.pages, 1)
	assert.True(t, strings.HasPrefix(notes.pages[0].Title, "Meeting Summary - [00:00:00] John:"))
}

func TestPersist_FailureIsReported(t *testing.T) {
	notes := &fakeNotes{err: errors.New("notion returned status 401")}
	s, _ := newTestSession(&fakeInvoker{}, notes, entities.NotesParent{ID: "db", Type: entities.ParentTypeDatabase})
	s.ProcessTranscript(context.Background(), transcript)

	reply := s.HandleUserMessage(context.Background(), "store to notion")

	assert.Contains(t, reply, "status 401")
	msgs := s.Messages()
	assert.Equal(t, reply, msgs[len(msgs)-1].Content)
}

func TestClear_ResetsToEmpty(t *testing.T) {
	inv := &fakeInvoker{reply: "x"}
	s, _ := newTestSession(inv, nil, entities.NotesParent{})
	s.ProcessTranscript(context.Background(), transcript)
	s.HandleUserMessage(context.Background(), "hello")

	s.Clear()

	assert.Empty(t, s.Messages())
	assert.Equal(t, "", s.Transcript())
	_, ok := s.Analysis()
	assert.False(t, ok)
	assert.Equal(t, NeedTranscriptMessage, s.HandleUserMessage(context.Background(), "hello again"))
	assert.Len(t, inv.prompts, 1)
}

func TestMessages_ReturnsSnapshot(t *testing.T) {
	s, _ := newTestSession(&fakeInvoker{}, nil, entities.NotesParent{})
	s.ProcessTranscript(context.Background(), transcript)

	msgs := s.Messages()
	msgs[0].Content = "mutated"

	assert.NotEqual(t, "mutated", s.Messages()[0].Content)
}

func TestSummaryText(t *testing.T) {
	assert.Equal(t, "plain", summaryText(entities.Summary{Summary: "plain"}))
	assert.Equal(t, "", summaryText(entities.Summary{}))
	assert.Equal(t, `{"summary":"","main_topics":["a"],"key_points":null}`, summaryText(entities.Summary{MainTopics: []string{"a"}}))
}
