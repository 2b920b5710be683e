package middleware

import (
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meet-agent/errors"
	"github.com/johnquangdev/meet-agent/pkg/jwt"
)

// SessionIDKey is the echo context key holding the authenticated session id
const SessionIDKey = "session_id"

// TokenValidator resolves a bearer token to its session id
type TokenValidator interface {
	ValidateSessionToken(token string) (uuid.UUID, error)
}

// SessionAuth returns an Echo middleware that validates the session token and
// sets "session_id" (uuid.UUID) into the Echo context
func SessionAuth(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return Reject(c, errors.ErrUnauthenticated())
			}

			sessionID, err := tokens.ValidateSessionToken(token)
			if err != nil {
				if stdErrors.Is(err, jwt.ErrTokenExpired) {
					return Reject(c, errors.ErrTokenExpired())
				}
				return Reject(c, errors.ErrInvalidToken())
			}

			c.Set(SessionIDKey, sessionID)
			return next(c)
		}
	}
}

// GetSessionID retrieves the session id set by SessionAuth
func GetSessionID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(SessionIDKey).(uuid.UUID)
	return id, ok
}

type rejection struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// Reject aborts the request with the error envelope
func Reject(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, rejection{Code: appErr.Code, Message: appErr.Message})
}

// extractToken reads "Authorization: Bearer <token>", then the session_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("session_token"); err == nil {
		return cookie.Value
	}
	return ""
}
