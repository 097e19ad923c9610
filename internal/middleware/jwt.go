package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/theater-staff/internal/utils" // token parsing shared with the auth handler
)

// Context keys set by JWTAuth.
const (
	CtxEmployeeID = "employee_id"
	CtxRole       = "role"
	CtxDevice     = "device"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the employee id, role and device id into the request context.
// Handlers read them with c.Get(CtxEmployeeID) etc.  A valid token alone is
// not a live session; RequireSession checks that separately.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxEmployeeID, claims.EmployeeID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxDevice, claims.Device)
			return next(c)
		}
	}
}

// Device returns the device id placed in the context by JWTAuth.
func Device(c echo.Context) string {
	s, _ := c.Get(CtxDevice).(string)
	return s
}

// EmployeeID returns the employee id placed in the context by JWTAuth.
func EmployeeID(c echo.Context) uint64 {
	id, _ := c.Get(CtxEmployeeID).(uint64)
	return id
}
