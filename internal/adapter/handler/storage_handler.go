package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/errors"
	"github.com/johnquangdev/meet-agent/internal/usecase/meeting"
)

const transcriptURLExpiry = time.Hour

// Storage serves links to objects kept in the transcript bucket
type Storage struct {
	meeting *meeting.Service
	logger  *zap.Logger
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(meetingService *meeting.Service, logger *zap.Logger) *Storage {
	return &Storage{meeting: meetingService, logger: logger}
}

// TranscriptDownloadURL generates a download URL for an archived transcript
// @Summary      Download an archived transcript
// @Description  Generate a presigned URL for the raw transcript behind an archived analysis
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Archived analysis id"
// @Success      200  {object}  map[string]interface{}  "Download URL"
// @Failure      404  {object}  map[string]interface{}  "Unknown analysis"
// @Failure      503  {object}  map[string]interface{}  "Archive or storage not configured"
// @Router       /chat/analyses/{id}/transcript [get]
func (h *Storage) TranscriptDownloadURL(c echo.Context) error {
	sessionID, _, err := current(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("analysis id must be a UUID"))
	}

	url, err := h.meeting.TranscriptURL(c.Request().Context(), sessionID, recordID, transcriptURLExpiry)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if h.logger != nil {
		h.logger.Info("🔗 Transcript download URL issued", zap.String("record_id", recordID.String()))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"id":         recordID,
		"url":        url,
		"expires_in": int64(transcriptURLExpiry.Seconds()),
	})
}
