package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/theater-staff/internal/handler"    // handlers implementing each endpoint
	"github.com/iliyamo/theater-staff/internal/middleware" // JWT, session, role and rate limit middleware
	"github.com/iliyamo/theater-staff/internal/model"      // staff role names
)

// Guards bundles the middleware shared by the protected groups.
type Guards struct {
	JWTSecret string
	Sessions  middleware.SessionChecker
	// RateLimit is applied to login and scan.  Nil means no limit.
	RateLimit echo.MiddlewareFunc
}

func (g Guards) limit() []echo.MiddlewareFunc {
	if g.RateLimit == nil {
		return nil
	}
	return []echo.MiddlewareFunc{g.RateLimit}
}

// staff requires a token, a live session for the token's device and a staff role.
func (g Guards) staff() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(g.JWTSecret),
		middleware.RequireSession(g.Sessions),
		middleware.RequireRole(model.RoleUsher, model.RoleManager),
	}
}

// RegisterRoutes registers routes that do not require authentication: the
// liveness check and, when probes are given, a readiness check.
func RegisterRoutes(e *echo.Echo, probes map[string]handler.Probe) {
	e.GET("/healthz", handler.Health)
	if len(probes) > 0 {
		e.GET("/readyz", handler.Ready(probes))
	}
}

// RegisterAuth registers sign-in, sign-out and session routes.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, g Guards) {
	auth := e.Group("/v1/auth")
	auth.POST("/login", a.Login, g.limit()...)
	// Logout only needs a valid token so a device whose session already
	// vanished can still clear its gate.
	auth.POST("/logout", a.Logout, middleware.JWTAuth(g.JWTSecret))

	e.GET("/v1/session/events", a.SessionEvents, middleware.JWTAuth(g.JWTSecret))

	v1 := e.Group("/v1", g.staff()...)
	v1.GET("/me", a.Me)
}

// RegisterSchedule registers the movie list, showings, dashboard and the
// manager-only catalogue refresh.
func RegisterSchedule(e *echo.Echo, s *handler.ScheduleHandler, d *handler.DashboardHandler, g Guards) {
	v1 := e.Group("/v1", g.staff()...)
	v1.GET("/movies", s.ListMovies)
	v1.GET("/movies/:id/showings", s.Showings)
	v1.GET("/dashboard", d.Stats)
	v1.POST("/movies/refresh", s.Refresh, middleware.RequireRole(model.RoleManager))
}

// RegisterScan registers camera batch intake, ticket lookup and admission.
func RegisterScan(e *echo.Echo, s *handler.ScanHandler, g Guards) {
	v1 := e.Group("/v1", g.staff()...)
	v1.POST("/scan", s.Observe, g.limit()...)
	v1.DELETE("/scan", s.Close)
	v1.GET("/tickets/:id", s.Ticket)
	v1.POST("/tickets/:id/admit", s.Admit)
}
