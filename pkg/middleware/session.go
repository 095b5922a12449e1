package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"landlink/pkg/session"
)

const sessionKey = "session"

// RequireSession attaches the caller's signed-in session; callers without one
// must POST /session first.
func RequireSession(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := c.Get("uid").(string)
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			s, err := m.Get(uid)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "no active session: sign in first"})
			}
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}

// SessionFrom returns the session RequireSession attached.
func SessionFrom(c echo.Context) *session.Session {
	s, _ := c.Get(sessionKey).(*session.Session)
	return s
}
