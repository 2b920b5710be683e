package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/v1/notes/tasks/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/notes/tasks/"+id, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/v1/notes/tasks/:id", "204"))
	assert.Equal(t, float64(2), got)
}

func TestWorkflowCounters(t *testing.T) {
	m := New()
	m.TranscriptProcessed("text")
	m.TranscriptProcessed("audio")
	m.TranscriptProcessed("text")
	m.ArchiveFinished(nil)
	m.ArchiveFinished(errors.New("db down"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.transcripts.WithLabelValues("text")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.archiveJobs.WithLabelValues("error")))
}

func TestHandler_ExposesSessionGauge(t *testing.T) {
	m := New()
	m.RegisterSessionGauge(func() int { return 3 })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "meet_agent_active_sessions 3"))
}
