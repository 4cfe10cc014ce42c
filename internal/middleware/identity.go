package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/appointment-booking/internal/session"
)

// Context keys set by SessionAuth.
const (
	sessionIDKey     = "session_id"
	sessionClaimsKey = "session_claims"
)

// SessionClaims returns the claims SessionAuth stored for this request.
func SessionClaims(c echo.Context) (*session.Claims, bool) {
	cl, ok := c.Get(sessionClaimsKey).(*session.Claims)
	return cl, ok && cl != nil
}

// sessionID returns the caller's session id, or "anon" before sign-in.
func sessionID(c echo.Context) string {
	if s, ok := c.Get(sessionIDKey).(string); ok && s != "" {
		return s
	}
	return "anon"
}
