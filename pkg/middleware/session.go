package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meet-agent/errors"
	httpmw "github.com/johnquangdev/meet-agent/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meet-agent/internal/usecase/chat"
)

// SessionKey is the echo context key holding the live *chat.Session
const SessionKey = "session"

// SessionLookup finds a live conversation session
type SessionLookup interface {
	Get(id uuid.UUID) (*chat.Session, error)
}

// RequireSession middleware: only allow requests whose token names a live session.
// Must run after httpmw.SessionAuth.
func RequireSession(sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, ok := httpmw.GetSessionID(c)
			if !ok {
				return httpmw.Reject(c, errors.ErrUnauthenticated())
			}
			session, err := sessions.Get(sessionID)
			if err != nil {
				return httpmw.Reject(c, errors.ErrSessionNotFound(sessionID.String()))
			}
			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// GetSession retrieves the session set by RequireSession
func GetSession(c echo.Context) (*chat.Session, bool) {
	s, ok := c.Get(SessionKey).(*chat.Session)
	return s, ok
}
