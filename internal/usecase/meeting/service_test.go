package meeting

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	"github.com/johnquangdev/meet-agent/internal/usecase/chat"
	ucerrors "github.com/johnquangdev/meet-agent/internal/usecase/errors"
)

type fakeAnalyzer struct{ result entities.AnalysisResult }

func (f fakeAnalyzer) Analyze(context.Context, string) entities.AnalysisResult { return f.result }

type fakeInvoker struct{}

func (fakeInvoker) Invoke(context.Context, string) string { return "ok" }

type fakeArchive struct {
	mu      sync.Mutex
	records []*entities.AnalysisRecord
	err     error
}

func (f *fakeArchive) Create(_ context.Context, r *entities.AnalysisRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, r)
	return nil
}

func (f *fakeArchive) FindByID(_ context.Context, id uuid.UUID) (*entities.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, entities.ErrAnalysisNotFound
}

func (f *fakeArchive) ListBySession(_ context.Context, id uuid.UUID, _ int) ([]*entities.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.AnalysisRecord, 0)
	for _, r := range f.records {
		if r.SessionID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeArchive) DeleteBySession(context.Context, uuid.UUID) error { return nil }

type fakeStore struct {
	mu      sync.Mutex
	objects map[string]string
}

func newFakeStore() *fakeStore { return &fakeStore{objects: map[string]string{}} }

func (f *fakeStore) UploadText(_ context.Context, name, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[name] = content
	return nil
}

func (f *fakeStore) UploadFile(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return f.UploadText(context.Background(), name, string(b))
}

func (f *fakeStore) GetFileURL(_ context.Context, name string, _ time.Duration) (string, error) {
	return "https://files.test/" + name, nil
}

type fakeTranscriber struct {
	text string
	err  error
	urls []string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.text, f.err
}

type fakeScheduler struct{ calls int }

func (f *fakeScheduler) SuggestForRequests(_ context.Context, reqs []entities.MeetingRequest, _ int) []entities.SlotSuggestion {
	f.calls++
	return []entities.SlotSuggestion{{Request: reqs[0], Slots: []time.Time{time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)}}}
}

type fakeNotes struct{ pages []entities.NotesPage }

func (f *fakeNotes) CreatePage(_ context.Context, p entities.NotesPage) (string, error) {
	f.pages = append(f.pages, p)
	return "page-1", nil
}

type fakeObserver struct {
	mu       sync.Mutex
	sources  []string
	archived []error
}

func (f *fakeObserver) TranscriptProcessed(source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, source)
}

func (f *fakeObserver) ArchiveFinished(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archived = append(f.archived, err)
}

func analysisWithRequest() entities.AnalysisResult {
	a := entities.NewEmptyAnalysis()
	a.Summary.Summary = "Timeline review"
	a.MeetingRequests = []entities.MeetingRequest{{ProposedTime: "next Tuesday", Purpose: "follow-up", Participants: []string{}}}
	a.Participants = []string{"John"}
	return a
}

func newSession(a entities.AnalysisResult) *chat.Session {
	return chat.NewSession(chat.Options{Analyzer: fakeAnalyzer{result: a}, Invoker: fakeInvoker{}})
}

const transcript = "[00:00:00] John: Let's meet next Tuesday."

func TestProcessTranscript_RejectsEmptyText(t *testing.T) {
	s := NewService(Options{})
	_, err := s.ProcessTranscript(context.Background(), uuid.New(), newSession(analysisWithRequest()), "", "  \n", entities.TranscriptSourceText)
	assert.ErrorIs(t, err, ucerrors.ErrTranscriptEmpty)
}

func TestProcessTranscript_NoCollaborators(t *testing.T) {
	s := NewService(Options{Logger: zap.NewNop()})
	session := newSession(analysisWithRequest())

	out, err := s.ProcessTranscript(context.Background(), uuid.New(), session, "notes.txt", transcript, entities.TranscriptSourceText)
	require.NoError(t, err)

	assert.Equal(t, "Timeline review", out.Analysis.Summary.Summary)
	assert.NotNil(t, out.Suggestions)
	assert.Empty(t, out.Suggestions)
	assert.Empty(t, out.NotesPageID)
	assert.Nil(t, out.ArchiveID)
	assert.Len(t, session.Messages(), 1)
}

func TestProcessTranscript_AllSteps(t *testing.T) {
	archive := &fakeArchive{}
	store := newFakeStore()
	sched := &fakeScheduler{}
	notes := &fakeNotes{}
	s := NewService(Options{
		Archive:     archive,
		Storage:     store,
		Scheduler:   sched,
		Notes:       notes,
		NotesParent: entities.NotesParent{ID: "db", Type: entities.ParentTypeDatabase},
		AutoNotes:   true,
		Logger:      zap.NewNop(),
	})
	sessionID := uuid.New()

	out, err := s.ProcessTranscript(context.Background(), sessionID, newSession(analysisWithRequest()), "standup.txt", transcript, entities.TranscriptSourceText)
	require.NoError(t, err)

	assert.Len(t, out.Suggestions, 1)
	assert.Equal(t, 1, sched.calls)
	assert.Equal(t, "page-1", out.NotesPageID)
	require.Len(t, notes.pages, 1)
	assert.Equal(t, "Meeting Summary - standup.txt", notes.pages[0].Title)
	require.NotNil(t, out.ArchiveID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))

	records, err := s.History(context.Background(), sessionID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, *out.ArchiveID, records[0].ID)
	require.NotNil(t, records[0].TranscriptObject)
	assert.Equal(t, transcript, store.objects[*records[0].TranscriptObject])
	assert.True(t, strings.HasPrefix(*records[0].TranscriptObject, "transcripts/"+sessionID.String()))

	restored, err := records[0].Analysis()
	require.NoError(t, err)
	assert.Equal(t, out.Analysis, restored)
}

func TestProcessTranscript_ArchiveFailureDoesNotFailAnalysis(t *testing.T) {
	archive := &fakeArchive{err: errors.New("duplicate key value")}
	observer := &fakeObserver{}
	s := NewService(Options{Archive: archive, Observer: observer, Logger: zap.NewNop()})

	out, err := s.ProcessTranscript(context.Background(), uuid.New(), newSession(analysisWithRequest()), "", transcript, entities.TranscriptSourceText)
	require.NoError(t, err)
	assert.Equal(t, "Timeline review", out.Analysis.Summary.Summary)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
	assert.Empty(t, archive.records)
	assert.Equal(t, []string{"text"}, observer.sources)
	require.Len(t, observer.archived, 1)
	assert.ErrorContains(t, observer.archived[0], "duplicate key value")
}

func TestProcessTranscript_AutoNotesWithoutNameUsesFirstLine(t *testing.T) {
	notes := &fakeNotes{}
	s := NewService(Options{
		Notes:       notes,
		NotesParent: entities.NotesParent{ID: "pg", Type: entities.ParentTypePage},
		AutoNotes:   true,
	})

	_, err := s.ProcessTranscript(context.Background(), uuid.New(), newSession(analysisWithRequest()), "", transcript, entities.TranscriptSourceText)
	require.NoError(t, err)
	require.Len(t, notes.pages, 1)
	assert.Equal(t, "Meeting Summary - "+transcript, notes.pages[0].Title)
}

func TestProcessAudioURL(t *testing.T) {
	tr := &fakeTranscriber{text: "[00:00:01] Speaker A: hello"}
	s := NewService(Options{Transcriber: tr})
	session := newSession(analysisWithRequest())

	out, err := s.ProcessAudioURL(context.Background(), uuid.New(), session, "https://cdn.test/call.mp3")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.test/call.mp3"}, tr.urls)
	assert.Equal(t, "Timeline review", out.Analysis.Summary.Summary)
	assert.Equal(t, "[00:00:01] Speaker A: hello", session.Transcript())
}

func TestProcessAudioURL_Errors(t *testing.T) {
	_, err := NewService(Options{}).ProcessAudioURL(context.Background(), uuid.New(), newSession(analysisWithRequest()), "u")
	assert.ErrorIs(t, err, ucerrors.ErrTranscriberUnavailable)

	failing := NewService(Options{Transcriber: &fakeTranscriber{err: errors.New("quota exceeded")}})
	_, err = failing.ProcessAudioURL(context.Background(), uuid.New(), newSession(analysisWithRequest()), "u")
	assert.ErrorContains(t, err, "quota exceeded")

	silent := NewService(Options{Transcriber: &fakeTranscriber{text: ""}})
	_, err = silent.ProcessAudioURL(context.Background(), uuid.New(), newSession(analysisWithRequest()), "u")
	assert.ErrorIs(t, err, ucerrors.ErrTranscriptEmpty)
}

func TestProcessAudioFile(t *testing.T) {
	store := newFakeStore()
	tr := &fakeTranscriber{text: "[00:00:01] Speaker A: hello"}
	s := NewService(Options{Transcriber: tr, Storage: store})
	sessionID := uuid.New()

	_, err := s.ProcessAudioFile(context.Background(), sessionID, newSession(analysisWithRequest()), "call.m4a", strings.NewReader("RIFF"), 4, "audio/mp4")
	require.NoError(t, err)

	require.Len(t, tr.urls, 1)
	assert.True(t, strings.HasPrefix(tr.urls[0], "https://files.test/audio/"+sessionID.String()+"/"))
	assert.True(t, strings.HasSuffix(tr.urls[0], ".m4a"))
	assert.Len(t, store.objects, 1)
}

func TestProcessAudioFile_RequiresStorage(t *testing.T) {
	s := NewService(Options{Transcriber: &fakeTranscriber{}})
	_, err := s.ProcessAudioFile(context.Background(), uuid.New(), newSession(analysisWithRequest()), "a.mp3", strings.NewReader(""), 0, "audio/mpeg")
	assert.ErrorIs(t, err, ucerrors.ErrStorageUnavailable)
}

func TestHistory_RequiresArchive(t *testing.T) {
	_, err := NewService(Options{}).History(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, ucerrors.ErrArchiveUnavailable)
}

func TestTranscriptURL(t *testing.T) {
	archive := &fakeArchive{}
	store := newFakeStore()
	s := NewService(Options{Archive: archive, Storage: store})
	sessionID := uuid.New()

	out, err := s.ProcessTranscript(context.Background(), sessionID, newSession(analysisWithRequest()), "", transcript, entities.TranscriptSourceText)
	require.NoError(t, err)
	require.NotNil(t, out.ArchiveID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))

	url, err := s.TranscriptURL(context.Background(), sessionID, *out.ArchiveID, time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://files.test/transcripts/"+sessionID.String()))

	_, err = s.TranscriptURL(context.Background(), uuid.New(), *out.ArchiveID, time.Minute)
	assert.ErrorIs(t, err, entities.ErrAnalysisNotFound)

	_, err = s.TranscriptURL(context.Background(), sessionID, uuid.New(), time.Minute)
	assert.ErrorIs(t, err, entities.ErrAnalysisNotFound)
}

func TestTranscriptURL_RequiresStorage(t *testing.T) {
	_, err := NewService(Options{Archive: &fakeArchive{}}).TranscriptURL(context.Background(), uuid.New(), uuid.New(), time.Minute)
	assert.ErrorIs(t, err, ucerrors.ErrStorageUnavailable)
}
