package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/appointment-booking/internal/session"
)

// SessionAuth requires a Bearer session token and stores its claims on
// the context for handlers (see SessionClaims).
func SessionAuth(issuer *session.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := issuer.Parse(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			c.Set(sessionIDKey, claims.Subject)
			c.Set(sessionClaimsKey, claims)
			return next(c)
		}
	}
}
