package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/johnquangdev/meet-agent/errors"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/external/calendar"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/external/notion"
	ucerrors "github.com/johnquangdev/meet-agent/internal/usecase/errors"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		httpCode int
	}{
		{"app error passes through", errors.ErrTranscriptEmpty(), errors.ErrorCode_TRANSCRIPT_EMPTY, http.StatusBadRequest},
		{"wrapped session", fmt.Errorf("session x: %w", ucerrors.ErrSessionNotFound), errors.ErrorCode_SESSION_NOT_FOUND, http.StatusNotFound},
		{"invalid input", fmt.Errorf("%w: title is required", ucerrors.ErrInvalidInput), errors.ErrorCode_INVALID_ARGUMENT, http.StatusBadRequest},
		{"invalid time", fmt.Errorf("%w: someday", ucerrors.ErrInvalidTime), errors.ErrorCode_INVALID_TIME, http.StatusBadRequest},
		{"notion status", fmt.Errorf("create notes page: %w", &notion.Error{Op: "create page", Err: &notionapi.Error{Status: 400, Code: "validation_error"}}), errors.ErrorCode_EXTERNAL_API_FAILED, http.StatusBadGateway},
		{"calendar disconnected", calendar.ErrNotConnected, errors.ErrorCode_EXTERNAL_API_FAILED, http.StatusBadGateway},
		{"calendar api error", fmt.Errorf("create event: %w", &calendar.Error{Op: "insert event", Err: &googleapi.Error{Code: 403}}), errors.ErrorCode_EXTERNAL_API_FAILED, http.StatusBadGateway},
		{"oauth exchange", &oauth2.RetrieveError{ErrorCode: "invalid_grant"}, errors.ErrorCode_EXTERNAL_API_FAILED, http.StatusBadGateway},
		{"unknown", stdErrors.New("boom"), errors.ErrorCode_INTERNAL, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toAppError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.httpCode, got.HTTPCode)
		})
	}
}
