package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/errors"
	caldto "github.com/johnquangdev/meet-agent/internal/adapter/dto/calendar"
	"github.com/johnquangdev/meet-agent/internal/usecase/auth"
)

// Auth handles the calendar OAuth consent flow
type Auth struct {
	connector *auth.CalendarConnector
	logger    *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(connector *auth.CalendarConnector, logger *zap.Logger) *Auth {
	return &Auth{
		connector: connector,
		logger:    logger,
	}
}

// GoogleLogin starts the calendar consent flow
// @Summary      Connect Google Calendar
// @Description  Redirects to Google consent. With format=json the URL is returned instead.
// @Tags         Calendar
// @Produce      json
// @Param        format  query  string  false  "json to skip the redirect"
// @Success      200  {object}  calendar.ConnectResponse
// @Success      307
// @Failure      503  {object}  map[string]interface{}  "OAuth client not configured"
// @Router       /calendar/connect [get]
func (h *Auth) GoogleLogin(c echo.Context) error {
	authURL, err := h.connector.GetAuthURL(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if c.QueryParam("format") == "json" {
		return HandleSuccess(h.logger, c, caldto.ConnectResponse{URL: authURL.URL, State: authURL.State})
	}
	return c.Redirect(http.StatusTemporaryRedirect, authURL.URL)
}

// GoogleCallback handles the OAuth callback from Google
// @Summary      Calendar OAuth callback
// @Tags         Calendar
// @Produce      json
// @Param        code   query  string  true  "Authorization code"
// @Param        state  query  string  true  "State issued by /calendar/connect"
// @Success      200  {object}  calendar.StatusResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid state or denied consent"
// @Router       /calendar/callback [get]
func (h *Auth) GoogleCallback(c echo.Context) error {
	if reason := c.QueryParam("error"); reason != "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("calendar consent denied: "+reason))
	}

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing code or state parameter"))
	}

	if err := h.connector.HandleCallback(c.Request().Context(), state, code); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, caldto.StatusResponse{Configured: true, Connected: h.connector.Connected()})
}

// Status reports whether the calendar is linked
// @Summary      Calendar connection status
// @Tags         Calendar
// @Produce      json
// @Success      200  {object}  calendar.StatusResponse
// @Router       /calendar/status [get]
func (h *Auth) Status(c echo.Context) error {
	return HandleSuccess(h.logger, c, caldto.StatusResponse{
		Configured: h.connector.Available(),
		Connected:  h.connector.Connected(),
	})
}
