package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/johnquangdev/meet-agent/errors"
	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/external/calendar"
	"github.com/johnquangdev/meet-agent/internal/infrastructure/external/notion"
	ucerrors "github.com/johnquangdev/meet-agent/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps use case failures onto the HTTP error taxonomy
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, entities.ErrAnalysisNotFound):
		return errors.ErrNotFound("analysis")
	case stdErrors.Is(err, ucerrors.ErrSessionNotFound):
		return errors.ErrSessionNotFound("")
	case stdErrors.Is(err, ucerrors.ErrTranscriptEmpty):
		return errors.ErrTranscriptEmpty()
	case stdErrors.Is(err, ucerrors.ErrTranscriberUnavailable):
		return errors.ErrTranscriberUnavailable()
	case stdErrors.Is(err, ucerrors.ErrCalendarUnavailable):
		return errors.ErrCalendarUnavailable()
	case stdErrors.Is(err, ucerrors.ErrNotesUnavailable):
		return errors.ErrNotesUnavailable()
	case stdErrors.Is(err, ucerrors.ErrStorageUnavailable):
		return errors.ErrStorageUnavailable()
	case stdErrors.Is(err, ucerrors.ErrArchiveUnavailable):
		return errors.ErrArchiveUnavailable()
	case stdErrors.Is(err, ucerrors.ErrInvalidOAuthState):
		return errors.ErrOAuthStateInvalid()
	case stdErrors.Is(err, ucerrors.ErrInvalidTime):
		return errors.ErrInvalidTime(err.Error())
	case stdErrors.Is(err, ucerrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	}

	var notionErr *notion.Error
	if stdErrors.As(err, &notionErr) {
		return errors.ErrExternalAPIFailed("notion", err)
	}
	var calendarErr *calendar.Error
	if stdErrors.As(err, &calendarErr) || stdErrors.Is(err, calendar.ErrNotConnected) {
		return errors.ErrExternalAPIFailed("calendar", err)
	}
	var oauthErr *oauth2.RetrieveError
	if stdErrors.As(err, &oauthErr) {
		return errors.ErrExternalAPIFailed("google oauth", err)
	}
	return errors.ErrInternal(err)
}

// bindAndValidate binds the request and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrValidation(err)
	}
	return nil
}
