package handler

import (
	stdErrors "errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/errors"
	chatdto "github.com/johnquangdev/meet-agent/internal/adapter/dto/chat"
	"github.com/johnquangdev/meet-agent/internal/adapter/presenter"
	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	httpmw "github.com/johnquangdev/meet-agent/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meet-agent/internal/usecase/chat"
	"github.com/johnquangdev/meet-agent/internal/usecase/meeting"
	"github.com/johnquangdev/meet-agent/pkg/jwt"
	sessionmw "github.com/johnquangdev/meet-agent/pkg/middleware"
)

const defaultHistoryLimit = 20

// Chat handles conversation HTTP requests
type Chat struct {
	sessions  *chat.Manager
	meeting   *meeting.Service
	tokens    *jwt.Manager
	maxUpload int64
	maxAudio  int64
	logger    *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(sessions *chat.Manager, meetingService *meeting.Service, tokens *jwt.Manager, maxUpload, maxAudio int64, logger *zap.Logger) *Chat {
	return &Chat{
		sessions:  sessions,
		meeting:   meetingService,
		tokens:    tokens,
		maxUpload: maxUpload,
		maxAudio:  maxAudio,
		logger:    logger,
	}
}

// CreateSession handles POST /sessions
// @Summary      Start a conversation
// @Description  Creates an empty conversation session and returns the bearer token that selects it
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  chat.SessionResponse
// @Failure      500  {object}  map[string]interface{}
// @Router       /sessions [post]
func (h *Chat) CreateSession(c echo.Context) error {
	id, _ := h.sessions.Create()

	token, err := h.tokens.GenerateSessionToken(id)
	if err != nil {
		h.sessions.Delete(id)
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, chatdto.SessionResponse{
		SessionID:      id,
		Token:          token,
		ExpiresIn:      int64(h.tokens.GetExpiry().Seconds()),
		WelcomeMessage: chat.WelcomeMessage,
	})
}

// EndSession handles DELETE /sessions
// @Summary      End the conversation
// @Description  Drops the session. With purge=true its archived analyses are deleted too.
// @Tags         Sessions
// @Produce      json
// @Security     BearerAuth
// @Param        purge  query  bool  false  "Delete archived analyses"
// @Success      200  {object}  map[string]interface{}
// @Router       /sessions [delete]
func (h *Chat) EndSession(c echo.Context) error {
	sessionID, _, err := current(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.sessions.Delete(sessionID)
	if c.QueryParam("purge") == "true" {
		if err := h.meeting.Forget(c.Request().Context(), sessionID); err != nil {
			return HandleError(h.logger, c, err)
		}
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"session_id": sessionID, "ended": true})
}

// ProcessTranscript handles POST /chat/transcript
// @Summary      Analyze a transcript
// @Description  Accepts a multipart "transcript" file or a JSON body with "text"; lines look like "[HH:MM:SS] Speaker: text"
// @Tags         Chat
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        request     body      chat.TranscriptRequest  false  "Transcript text"
// @Param        transcript  formData  file                    false  "Transcript file"
// @Success      200  {object}  chat.AnalysisResponse
// @Failure      400  {object}  map[string]interface{}  "Empty or invalid transcript"
// @Failure      413  {object}  map[string]interface{}  "Transcript too large"
// @Router       /chat/transcript [post]
func (h *Chat) ProcessTranscript(c echo.Context) error {
	sessionID, session, err := current(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	name, text, err := h.readTranscript(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.meeting.ProcessTranscript(c.Request().Context(), sessionID, session, name, text, entities.TranscriptSourceText)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAnalysisResponse(out))
}

// ProcessAudio handles POST /chat/audio
// @Summary      Transcribe and analyze audio
// @Description  Accepts a multipart "audio" file or a JSON body with "audio_url"
// @Tags         Chat
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      chat.AudioRequest  false  "Audio URL"
// @Param        audio    formData  file               false  "Audio file"
// @Success      200  {object}  chat.AnalysisResponse
// @Failure      503  {object}  map[string]interface{}  "Transcription not configured"
// @Router       /chat/audio [post]
func (h *Chat) ProcessAudio(c echo.Context) error {
	sessionID, session, err := current(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	ctx := c.Request().Context()

	if isMultipart(c) {
		fh, err := c.FormFile("audio")
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument(`multipart field "audio" is required`))
		}
		if fh.Size > h.maxAudio {
			return HandleError(h.logger, c, errors.ErrTranscriptTooLarge(h.maxAudio))
		}
		f, err := fh.Open()
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
		defer f.Close()

		contentType := fh.Header.Get(echo.HeaderContentType)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		out, err := h.meeting.ProcessAudioFile(ctx, sessionID, session, fh.Filename, f, fh.Size, contentType)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, presenter.ToAnalysisResponse(out))
	}

	var req chatdto.AudioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	out, err := h.meeting.ProcessAudioURL(ctx, sessionID, session, req.AudioURL)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAnalysisResponse(out))
}

// SendMessage handles POST /chat/messages
// @Summary      Ask about the last transcript
// @Description  One conversational turn. "save to notion" style commands create a notes page.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      chat.MessageRequest  true  "User message"
// @Success      200  {object}  chat.MessageResponse
// @Router       /chat/messages [post]
func (h *Chat) SendMessage(c echo.Context) error {
	_, session, err := current(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req chatdto.MessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	reply := session.HandleUserMessage(c.Request().Context(), req.Message)
	return HandleSuccess(h.logger, c, chatdto.MessageResponse{Reply: reply})
}

// GetMessages handles GET /chat/messages
// @Summary      Conversation history
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  chat.MessagesResponse
// @Router       /chat/messages [get]
func (h *Chat) GetMessages(c echo.Context) error {
	_, session, err := current(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	_, hasAnalysis := session.Analysis()
	return HandleSuccess(h.logger, c, chatdto.MessagesResponse{
		Messages:    session.Messages(),
		HasAnalysis: hasAnalysis,
	})
}

// ClearChat handles DELETE /chat
// @Summary      Clear the conversation
// @Description  Forgets messages, transcript and analysis; the session stays valid
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /chat [delete]
func (h *Chat) ClearChat(c echo.Context) error {
	_, session, err := current(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	session.Clear()
	return HandleSuccess(h.logger, c, map[string]interface{}{"cleared": true})
}

// ListAnalyses handles GET /chat/analyses
// @Summary      Archived analyses of this session
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Maximum rows (1-100)"
// @Success      200  {array}   chat.ArchivedAnalysis
// @Failure      503  {object}  map[string]interface{}  "Archive not configured"
// @Router       /chat/analyses [get]
func (h *Chat) ListAnalyses(c echo.Context) error {
	sessionID, _, err := current(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var q chatdto.HistoryQuery
	if err := bindAndValidate(c, &q); err != nil {
		return HandleError(h.logger, c, err)
	}
	if q.Limit == 0 {
		q.Limit = defaultHistoryLimit
	}

	records, err := h.meeting.History(c.Request().Context(), sessionID, q.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToArchivedAnalyses(records, h.logger))
}

// readTranscript takes the transcript from a multipart file or a JSON body
func (h *Chat) readTranscript(c echo.Context) (string, string, error) {
	if isMultipart(c) {
		fh, err := c.FormFile("transcript")
		if err != nil {
			return "", "", errors.ErrInvalidArgument(`multipart field "transcript" is required`)
		}
		if fh.Size > h.maxUpload {
			return "", "", errors.ErrTranscriptTooLarge(h.maxUpload)
		}
		f, err := fh.Open()
		if err != nil {
			return "", "", errors.ErrInvalidPayload()
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
		if err != nil {
			return "", "", errors.ErrInvalidPayload()
		}
		if int64(len(data)) > h.maxUpload {
			return "", "", errors.ErrTranscriptTooLarge(h.maxUpload)
		}
		if !utf8.Valid(data) {
			return "", "", errors.ErrInvalidArgument("transcript must be UTF-8 text")
		}
		return fh.Filename, string(data), nil
	}

	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxUpload+64*1024)

	var body chatdto.TranscriptRequest
	if err := c.Bind(&body); err != nil {
		var tooBig *http.MaxBytesError
		if stdErrors.As(err, &tooBig) {
			return "", "", errors.ErrTranscriptTooLarge(h.maxUpload)
		}
		return "", "", errors.ErrInvalidPayload()
	}
	if strings.TrimSpace(body.Text) == "" {
		return "", "", errors.ErrTranscriptEmpty()
	}
	if err := c.Validate(&body); err != nil {
		return "", "", errors.ErrValidation(err)
	}
	if int64(len(body.Text)) > h.maxUpload {
		return "", "", errors.ErrTranscriptTooLarge(h.maxUpload)
	}
	return body.Name, body.Text, nil
}

// current returns the session resolved by the session middleware
func current(c echo.Context) (uuid.UUID, *chat.Session, error) {
	sessionID, ok := httpmw.GetSessionID(c)
	if !ok {
		return uuid.Nil, nil, errors.ErrUnauthenticated()
	}
	session, ok := sessionmw.GetSession(c)
	if !ok {
		return uuid.Nil, nil, errors.ErrSessionNotFound(sessionID.String())
	}
	return sessionID, session, nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}
