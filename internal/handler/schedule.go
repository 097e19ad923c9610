package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-staff/internal/model"
	"github.com/iliyamo/theater-staff/internal/schedule"
)

// ScheduleHandler serves the "Now Showing" screen.  Movies are fetched fresh
// on every request and filtered against the theater clock.
type ScheduleHandler struct {
	Movies MovieSource
	Cache  CatalogueCache // optional
	Clock  Clock
	Log    *slog.Logger
}

func NewScheduleHandler(movies MovieSource, clock Clock, log *slog.Logger) *ScheduleHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ScheduleHandler{Movies: movies, Clock: clock, Log: log}
}

// MovieCard is a movie in the schedule list.  A movie without upcoming
// dates is still listed with an empty AvailableDates.
type MovieCard struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Duration       string   `json:"duration"`
	PosterURL      string   `json:"poster_url"`
	Categories     []string `json:"categories"`
	AvailableDates []string `json:"available_dates"`
}

func (h *ScheduleHandler) fetch(c echo.Context) ([]model.Movie, error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	movies, err := h.Movies.FetchMovies(ctx)
	if err != nil {
		h.Log.Error("fetch movies failed", "err", err)
	}
	return movies, err
}

// Refresh handles POST /v1/movies/refresh: the next read goes to the database.
func (h *ScheduleHandler) Refresh(c echo.Context) error {
	if h.Cache == nil {
		return c.NoContent(http.StatusNoContent)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	if err := h.Cache.Invalidate(ctx); err != nil {
		h.Log.Error("invalidate movie cache failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cache error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMovies handles GET /v1/movies.
func (h *ScheduleHandler) ListMovies(c echo.Context) error {
	movies, err := h.fetch(c)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "fetch movies failed"})
	}
	now := h.Clock.Theater()
	out := make([]MovieCard, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieCard{
			ID:             m.ID,
			Title:          m.Title,
			Duration:       m.Duration,
			PosterURL:      m.PosterURL,
			Categories:     m.Categories,
			AvailableDates: schedule.AvailableDates(m.Screenings, now),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "today": schedule.Today(now)})
}

// Showings handles GET /v1/movies/:id/showings?date=YYYY-MM-DD.  Without a
// date the first available one is used.  Halls with nothing left on that
// date are omitted.
func (h *ScheduleHandler) Showings(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	date := strings.TrimSpace(c.QueryParam("date"))
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
	}

	movies, err := h.fetch(c)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "fetch movies failed"})
	}
	var movie *model.Movie
	for i := range movies {
		if movies[i].ID == id {
			movie = &movies[i]
			break
		}
	}
	if movie == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	now := h.Clock.Theater()
	dates := schedule.AvailableDates(movie.Screenings, now)
	if date == "" && len(dates) > 0 {
		date = dates[0]
	}
	showings := []schedule.HallTimes{}
	if date != "" {
		showings = schedule.Showings(movie.Screenings, date, now)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie_id":        movie.ID,
		"title":           movie.Title,
		"date":            date,
		"available_dates": dates,
		"showings":        showings,
	})
}
