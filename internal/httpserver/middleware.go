package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"todolist/internal/auth"
)

// authCookieName is the cookie carrying the opaque session token.
const authCookieName = "authToken"

// resolveSession runs once per request before route logic. It resolves
// the session cookie to a user and threads that user through the request
// context. A missing, unknown or failing token leaves the request
// unauthenticated; handlers redirect to /login themselves.
func (s *Server) resolveSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(authCookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}
		u, err := s.sessions.Resolve(c.Request().Context(), cookie.Value)
		if err != nil {
			s.log.WithError(err).Warn("session lookup failed")
			return next(c)
		}
		if u != nil {
			ctx := auth.WithUser(c.Request().Context(), u)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		return next(c)
	}
}

// requestLogger logs every completed request in structured form.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		s.log.WithFields(logrus.Fields{
			"method":      c.Request().Method,
			"path":        c.Request().URL.Path,
			"status":      c.Response().Status,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_ip":   c.RealIP(),
			"user_agent":  c.Request().UserAgent(),
		}).Info("request completed")

		return nil
	}
}
