package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionChecker reports whether a device currently has a live session.
type SessionChecker interface {
	Authenticated(ctx context.Context, device string) bool
}

// RequireSession rejects requests whose device has no session record, even
// when the access token is still valid.  Signing out on the device therefore
// takes effect immediately.  It must run after JWTAuth.
func RequireSession(sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			if !sessions.Authenticated(ctx, Device(c)) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not signed in"})
			}
			return next(c)
		}
	}
}
