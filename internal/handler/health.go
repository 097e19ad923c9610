package handler // declare the package name; contains HTTP handlers

import (
	"context"  // bounds each readiness probe
	"net/http" // net/http provides status codes and response helpers
	"sort"     // stable ordering of probe names in responses
	"time"     // probe timeout

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is the liveness endpoint used by load balancers.  It returns a
// plain text "ok" with 200 whenever the process can serve HTTP.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Probe checks one dependency (database, redis).
type Probe func(ctx context.Context) error

// Ready returns a readiness endpoint that runs every probe with a short
// timeout.  Any failing probe turns the response into 503 and names it.
func Ready(probes map[string]Probe) echo.HandlerFunc {
	names := make([]string, 0, len(probes))
	for name := range probes {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		out := echo.Map{}
		for _, name := range names {
			if err := probes[name](ctx); err != nil {
				status = http.StatusServiceUnavailable
				out[name] = err.Error()
				continue
			}
			out[name] = "ok"
		}
		return c.JSON(status, out)
	}
}
