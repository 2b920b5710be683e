package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/errors"
	"github.com/johnquangdev/meet-agent/internal/adapter/dto/common"
	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	httpmw "github.com/johnquangdev/meet-agent/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meet-agent/internal/usecase/auth"
	"github.com/johnquangdev/meet-agent/internal/usecase/chat"
	"github.com/johnquangdev/meet-agent/internal/usecase/meeting"
	"github.com/johnquangdev/meet-agent/internal/usecase/notes"
	"github.com/johnquangdev/meet-agent/internal/usecase/schedule"
	"github.com/johnquangdev/meet-agent/pkg/config"
	"github.com/johnquangdev/meet-agent/pkg/jwt"
	sessionmw "github.com/johnquangdev/meet-agent/pkg/middleware"
	pkgvalidator "github.com/johnquangdev/meet-agent/pkg/validator"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(context.Context, string) entities.AnalysisResult {
	a := entities.NewEmptyAnalysis()
	a.Summary.Summary = "Release planning"
	a.Participants = []string{"John", "Sarah"}
	return a
}

type stubInvoker struct{}

func (stubInvoker) Invoke(context.Context, string) string { return "Sarah owns the docs." }

type testServer struct {
	e        *echo.Echo
	sessions *chat.Manager
	tokens   *jwt.Manager
}

func newTestServer(t *testing.T, probes map[string]Probe) *testServer {
	t.Helper()

	logger := zap.NewNop()
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}

	sessions := chat.NewManager(func() *chat.Session {
		return chat.NewSession(chat.Options{Analyzer: stubAnalyzer{}, Invoker: stubInvoker{}, Logger: logger})
	}, time.Hour, logger)
	tokens := jwt.NewManager("test-secret", time.Hour)

	e := echo.New()
	e.Validator = pkgvalidator.New()

	meetingService := meeting.NewService(meeting.Options{Logger: logger})
	router := NewRouter(
		cfg,
		NewChatHandler(sessions, meetingService, tokens, 64, 1024, logger),
		NewCalendarHandler(schedule.NewService(nil, nil, logger), logger),
		NewAuth(auth.NewCalendarConnector(nil, nil, nil, logger), logger),
		NewNotesHandler(notes.NewService(nil, entities.NotesParent{}, "", logger), logger),
		NewStorageHandler(meetingService, logger),
		httpmw.SessionAuth(tokens),
		sessionmw.RequireSession(sessions),
		probes,
		sessions.Len,
	)
	router.Setup(e)

	return &testServer{e: e, sessions: sessions, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(b))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) newSession(t *testing.T) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/v1/sessions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Token          string `json:"token"`
			WelcomeMessage string `json:"welcome_message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, chat.WelcomeMessage, resp.Data.WelcomeMessage)
	return resp.Data.Token
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) errors.ErrorCode {
	t.Helper()
	var body struct {
		Code errors.ErrorCode `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, map[string]Probe{
		"notion": func(context.Context) string { return common.StatusDisabled },
	})

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp common.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, common.StatusOK, resp.Status)
	assert.Equal(t, "test", resp.Environment)
	assert.Equal(t, common.StatusDisabled, resp.Integrations["notion"])
}

func TestHealth_DegradedProbe(t *testing.T) {
	s := newTestServer(t, map[string]Probe{
		"database": func(context.Context) string { return common.StatusDegraded },
	})

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChat_RequiresToken(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/v1/chat/messages", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.ErrorCode_UNAUTHENTICATED, errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/v1/chat/messages", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errors.ErrorCode_AUTH_INVALID_TOKEN, errorCode(t, rec))
}

func TestChat_TranscriptThenQuestion(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.newSession(t)

	rec := s.do(t, http.MethodPost, "/v1/chat/messages", token, map[string]string{"message": "who owns docs?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), chat.NeedTranscriptMessage)

	rec = s.do(t, http.MethodPost, "/v1/chat/transcript", token, map[string]string{"text": "[00:00:01] John: hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis struct {
		Data struct {
			Analysis    entities.AnalysisResult   `json:"analysis"`
			Suggestions []entities.SlotSuggestion `json:"suggestions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, "Release planning", analysis.Data.Analysis.Summary.Summary)
	assert.NotNil(t, analysis.Data.Suggestions)

	rec = s.do(t, http.MethodPost, "/v1/chat/messages", token, map[string]string{"message": "who owns docs?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sarah owns the docs.")

	rec = s.do(t, http.MethodGet, "/v1/chat/messages", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var history struct {
		Data struct {
			Messages    []entities.ConversationMessage `json:"messages"`
			HasAnalysis bool                           `json:"has_analysis"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.True(t, history.Data.HasAnalysis)
	require.Len(t, history.Data.Messages, 3)
	assert.Equal(t, entities.MessageRoleUser, history.Data.Messages[1].Role)
}

func TestChat_TranscriptValidation(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.newSession(t)

	rec := s.do(t, http.MethodPost, "/v1/chat/transcript", token, map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.ErrorCode_TRANSCRIPT_EMPTY, errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/v1/chat/transcript", token, map[string]string{"text": strings.Repeat("a", 65)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, errors.ErrorCode_TRANSCRIPT_TOO_BIG, errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/v1/chat/messages", token, map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_TranscriptFileUpload(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.newSession(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("transcript", "standup.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("[00:00:01] John: hi"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/transcript", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Release planning")
}

func TestChat_ClearAndEnd(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.newSession(t)

	rec := s.do(t, http.MethodPost, "/v1/chat/transcript", token, map[string]string{"text": "[00:00:01] John: hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/v1/chat", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/chat/messages", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"has_analysis":false`)

	rec = s.do(t, http.MethodDelete, "/v1/sessions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, s.sessions.Len())

	rec = s.do(t, http.MethodGet, "/v1/chat/messages", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrorCode_SESSION_NOT_FOUND, errorCode(t, rec))
}

func TestUnconfiguredIntegrations(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.newSession(t)

	tests := []struct {
		name   string
		method string
		target string
		body   interface{}
		code   errors.ErrorCode
	}{
		{
			name:   "audio url",
			method: http.MethodPost,
			target: "/v1/chat/audio",
			body:   map[string]string{"audio_url": "https://cdn.test/call.mp3"},
			code:   errors.ErrorCode_TRANSCRIBER_UNAVAILABLE,
		},
		{
			name:   "archive",
			method: http.MethodGet,
			target: "/v1/chat/analyses",
			code:   errors.ErrorCode_ARCHIVE_UNAVAILABLE,
		},
		{
			name:   "transcript download",
			method: http.MethodGet,
			target: "/v1/chat/analyses/" + uuid.NewString() + "/transcript",
			code:   errors.ErrorCode_ARCHIVE_UNAVAILABLE,
		},
		{
			name:   "calendar event",
			method: http.MethodPost,
			target: "/v1/calendar/events",
			body:   map[string]interface{}{"title": "Sync", "start": "2026-10-20T10:00:00Z"},
			code:   errors.ErrorCode_CALENDAR_UNAVAILABLE,
		},
		{
			name:   "notes page",
			method: http.MethodPost,
			target: "/v1/notes/pages",
			body:   map[string]interface{}{"title": "Sync"},
			code:   errors.ErrorCode_NOTES_UNAVAILABLE,
		},
		{
			name:   "notes tasks",
			method: http.MethodPost,
			target: "/v1/notes/tasks",
			body:   map[string]interface{}{"action_items": []map[string]string{{"task": "Write docs"}}},
			code:   errors.ErrorCode_NOTES_UNAVAILABLE,
		},
		{
			name:   "calendar connect",
			method: http.MethodGet,
			target: "/v1/calendar/connect?format=json",
			code:   errors.ErrorCode_CALENDAR_UNAVAILABLE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.target, token, tt.body)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestCalendarStatus(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/v1/calendar/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"configured":false`)
	assert.Contains(t, rec.Body.String(), `"connected":false`)
}

func TestCalendarCallback_MissingParams(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/v1/calendar/callback?state=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.ErrorCode_INVALID_ARGUMENT, errorCode(t, rec))
}
