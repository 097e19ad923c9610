package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-staff/internal/schedule"
)

// DashboardHandler serves the figures on the staff home screen.
type DashboardHandler struct {
	Movies  MovieSource
	Tickets TicketStore
	Clock   Clock
	Log     *slog.Logger
}

func NewDashboardHandler(movies MovieSource, tickets TicketStore, clock Clock, log *slog.Logger) *DashboardHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DashboardHandler{Movies: movies, Tickets: tickets, Clock: clock, Log: log}
}

// Stats handles GET /v1/dashboard: tickets admitted since theater midnight and
// movies that still have a showing later today.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	now := h.Clock.Theater()
	from, to := dayBounds(now)
	scanned, err := h.Tickets.CountAdmittedBetween(ctx, from, to)
	if err != nil {
		h.Log.Error("count admissions failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	movies, err := h.Movies.FetchMovies(ctx)
	if err != nil {
		h.Log.Error("fetch movies failed", "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "fetch movies failed"})
	}
	active := 0
	for _, m := range movies {
		if schedule.ActiveToday(m, now) {
			active++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":          schedule.Today(now),
		"tickets_today": scanned,
		"active_shows":  active,
	})
}
