package meeting

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	"github.com/johnquangdev/meet-agent/internal/domain/repositories"
	"github.com/johnquangdev/meet-agent/internal/usecase/chat"
	ucerrors "github.com/johnquangdev/meet-agent/internal/usecase/errors"
	"github.com/johnquangdev/meet-agent/pkg/jobcontext"
)

const audioURLExpiry = time.Hour

// ObjectStore keeps raw transcripts and audio uploads
type ObjectStore interface {
	UploadText(ctx context.Context, objectName string, content string) error
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Transcriber turns an audio URL into "[HH:MM:SS] Speaker: text" lines
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// SlotSuggester finds free calendar slots for extracted meeting requests
type SlotSuggester interface {
	SuggestForRequests(ctx context.Context, requests []entities.MeetingRequest, durationMinutes int) []entities.SlotSuggestion
}

// Observer is told about finished workflow steps
type Observer interface {
	TranscriptProcessed(source string)
	ArchiveFinished(err error)
}

// Options wires the optional collaborators. Every nil collaborator disables its step.
type Options struct {
	Archive     repositories.AnalysisRepository
	Storage     ObjectStore
	Transcriber Transcriber
	Scheduler   SlotSuggester
	Notes       chat.NotesService
	NotesParent entities.NotesParent
	AutoNotes   bool
	Observer    Observer
	Logger      *zap.Logger
}

// Outcome is what one processed transcript produced
type Outcome struct {
	Analysis    entities.AnalysisResult
	Suggestions []entities.SlotSuggestion
	NotesPageID string
	ArchiveID   *uuid.UUID
}

// Service runs the transcript workflow around a conversation session
type Service struct {
	archive     repositories.AnalysisRepository
	storage     ObjectStore
	transcriber Transcriber
	scheduler   SlotSuggester
	notes       chat.NotesService
	parent      entities.NotesParent
	autoNotes   bool
	observer    Observer
	logger      *zap.Logger

	jobs sync.WaitGroup
}

// NewService creates the transcript workflow service
func NewService(opts Options) *Service {
	return &Service{
		archive:     opts.Archive,
		storage:     opts.Storage,
		transcriber: opts.Transcriber,
		scheduler:   opts.Scheduler,
		notes:       opts.Notes,
		parent:      opts.NotesParent,
		autoNotes:   opts.AutoNotes,
		observer:    opts.Observer,
		logger:      opts.Logger,
	}
}

// ProcessTranscript analyzes text in the session and then runs the optional
// steps: calendar suggestions, an automatic notes page and archiving. None of
// those steps can fail the analysis. name labels the transcript, usually its file name.
func (s *Service) ProcessTranscript(ctx context.Context, sessionID uuid.UUID, session *chat.Session, name, text string, source entities.TranscriptSource) (Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return Outcome{}, ucerrors.ErrTranscriptEmpty
	}

	out := Outcome{
		Analysis:    session.ProcessTranscript(ctx, text),
		Suggestions: make([]entities.SlotSuggestion, 0),
	}

	if s.scheduler != nil && len(out.Analysis.MeetingRequests) > 0 {
		out.Suggestions = s.scheduler.SuggestForRequests(ctx, out.Analysis.MeetingRequests, entities.DefaultMeetingDuration)
	}

	if s.autoNotes && s.notes != nil && !s.parent.IsZero() {
		out.NotesPageID = s.createNotesPage(ctx, name, text, out.Analysis)
	}

	if s.archive != nil {
		if id := s.startArchive(ctx, sessionID, source, text, out.Analysis); id != uuid.Nil {
			out.ArchiveID = &id
		}
	}

	if s.observer != nil {
		s.observer.TranscriptProcessed(string(source))
	}
	if s.logger != nil {
		s.logger.Info("📄 Transcript processed",
			zap.String("session_id", sessionID.String()),
			zap.String("source", string(source)),
			zap.Int("participants", len(out.Analysis.Participants)),
			zap.Int("action_items", len(out.Analysis.ActionItems)),
			zap.Int("suggestions", len(out.Suggestions)),
		)
	}
	return out, nil
}

// ProcessAudioURL transcribes audio reachable at audioURL and processes the result
func (s *Service) ProcessAudioURL(ctx context.Context, sessionID uuid.UUID, session *chat.Session, audioURL string) (Outcome, error) {
	if s.transcriber == nil {
		return Outcome{}, ucerrors.ErrTranscriberUnavailable
	}

	text, err := s.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Audio transcription failed", zap.String("session_id", sessionID.String()), zap.Error(err))
		}
		return Outcome{}, fmt.Errorf("transcribe audio: %w", err)
	}
	return s.ProcessTranscript(ctx, sessionID, session, path.Base(audioURL), text, entities.TranscriptSourceAudio)
}

// ProcessAudioFile stores an uploaded recording, hands the transcriber a
// presigned URL to it and processes the transcript
func (s *Service) ProcessAudioFile(ctx context.Context, sessionID uuid.UUID, session *chat.Session, filename string, r io.Reader, size int64, contentType string) (Outcome, error) {
	if s.transcriber == nil {
		return Outcome{}, ucerrors.ErrTranscriberUnavailable
	}
	if s.storage == nil {
		return Outcome{}, ucerrors.ErrStorageUnavailable
	}

	object := fmt.Sprintf("audio/%s/%s%s", sessionID, uuid.New(), path.Ext(filename))
	if err := s.storage.UploadFile(ctx, object, r, size, contentType); err != nil {
		return Outcome{}, fmt.Errorf("upload audio: %w", err)
	}
	url, err := s.storage.GetFileURL(ctx, object, audioURLExpiry)
	if err != nil {
		return Outcome{}, fmt.Errorf("presign audio: %w", err)
	}

	text, err := s.transcriber.Transcribe(ctx, url)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Audio transcription failed", zap.String("object", object), zap.Error(err))
		}
		return Outcome{}, fmt.Errorf("transcribe audio: %w", err)
	}
	return s.ProcessTranscript(ctx, sessionID, session, filename, text, entities.TranscriptSourceAudio)
}

// History lists the archived analyses of a session, newest first
func (s *Service) History(ctx context.Context, sessionID uuid.UUID, limit int) ([]*entities.AnalysisRecord, error) {
	if s.archive == nil {
		return nil, ucerrors.ErrArchiveUnavailable
	}
	return s.archive.ListBySession(ctx, sessionID, limit)
}

// TranscriptURL returns a presigned download link for the raw transcript of an
// archived analysis. Records of other sessions read as not found.
func (s *Service) TranscriptURL(ctx context.Context, sessionID, recordID uuid.UUID, expiry time.Duration) (string, error) {
	if s.archive == nil {
		return "", ucerrors.ErrArchiveUnavailable
	}
	if s.storage == nil {
		return "", ucerrors.ErrStorageUnavailable
	}

	record, err := s.archive.FindByID(ctx, recordID)
	if err != nil {
		return "", err
	}
	if record.SessionID != sessionID || record.TranscriptObject == nil {
		return "", entities.ErrAnalysisNotFound
	}
	return s.storage.GetFileURL(ctx, *record.TranscriptObject, expiry)
}

// Forget drops a session's archived analyses
func (s *Service) Forget(ctx context.Context, sessionID uuid.UUID) error {
	if s.archive == nil {
		return nil
	}
	return s.archive.DeleteBySession(ctx, sessionID)
}

// Wait blocks until background archive jobs finish or ctx ends
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.jobs.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) createNotesPage(ctx context.Context, name, text string, a entities.AnalysisResult) string {
	title := chat.FallbackTitle(text)
	if name = strings.TrimSpace(name); name != "" {
		title = "Meeting Summary - " + name
	}

	id, err := s.notes.CreatePage(ctx, entities.NotesPage{
		Title:       title,
		Summary:     a.Summary.Summary,
		ActionItems: a.ActionItems,
		Parent:      s.parent,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Automatic notes page failed", zap.String("title", title), zap.Error(err))
		}
		return ""
	}
	return id
}

// startArchive stores the raw transcript and the analysis row in the background
func (s *Service) startArchive(ctx context.Context, sessionID uuid.UUID, source entities.TranscriptSource, text string, a entities.AnalysisResult) uuid.UUID {
	record, err := entities.NewAnalysisRecord(sessionID, source, a)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to build analysis record", zap.Error(err))
		}
		return uuid.Nil
	}

	jobCtx, cancel := jobcontext.JobBegin(ctx, record.ID, "archive_analysis")
	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		defer cancel()

		err := jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
			if s.storage != nil && record.TranscriptObject == nil {
				object := fmt.Sprintf("transcripts/%s/%s.txt", sessionID, record.ID)
				if err := s.storage.UploadText(ctx, object, text); err != nil {
					return err
				}
				record.TranscriptObject = &object
			}
			return s.archive.Create(ctx, record)
		})
		if s.observer != nil {
			s.observer.ArchiveFinished(err)
		}
		if s.logger == nil {
			return
		}
		if err != nil {
			s.logger.Error("❌ Failed to archive analysis", zap.String("record_id", record.ID.String()), zap.Error(err))
			return
		}
		s.logger.Info("🗄️ Analysis archived", zap.String("record_id", record.ID.String()))
	}()
	return record.ID
}
