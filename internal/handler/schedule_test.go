package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/theater-staff/internal/model"
)

func catalogue() []model.Movie {
	return []model.Movie{
		{
			ID: "m1", Title: "Heat", Duration: "170 min", Categories: []string{"Action", "Drama"},
			Screenings: []model.Screening{
				{Hall: "A", TimeSlots: []model.TimeSlot{
					{Date: "2024-01-19", Times: []string{"20:00"}},
					{Date: "2024-01-20", Times: []string{"14:00", "16:00", "18:00"}},
					{Date: "2024-01-22", Times: []string{"12:00"}},
				}},
				{Hall: "B", TimeSlots: []model.TimeSlot{
					{Date: "2024-01-20", Times: []string{"11:00"}},
					{Date: "2024-01-21", Times: []string{"21:00"}},
				}},
			},
		},
		{
			ID: "m2", Title: "Old", Categories: []string{},
			Screenings: []model.Screening{{Hall: "C", TimeSlots: []model.TimeSlot{{Date: "2024-01-01", Times: []string{"10:00"}}}}},
		},
	}
}

func scheduleEcho(src fakeMovies) *echo.Echo {
	h := NewScheduleHandler(src, testClock(), quiet())
	e := echo.New()
	e.GET("/movies", h.ListMovies)
	e.GET("/movies/:id/showings", h.Showings)
	return e
}

func TestListMovies(t *testing.T) {
	e := scheduleEcho(fakeMovies{movies: catalogue()})
	rec := do(e, http.MethodGet, "/movies", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []MovieCard `json:"items"`
		Today string      `json:"today"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-01-20", body.Today)
	require.Len(t, body.Items, 2)
	assert.Equal(t, []string{"2024-01-20", "2024-01-21", "2024-01-22"}, body.Items[0].AvailableDates)
	assert.Equal(t, []string{"Action", "Drama"}, body.Items[0].Categories)
	// Still listed, nothing bookable.
	assert.Equal(t, "m2", body.Items[1].ID)
	assert.Empty(t, body.Items[1].AvailableDates)
}

func TestListMoviesFetchError(t *testing.T) {
	e := scheduleEcho(fakeMovies{err: errBoom})
	rec := do(e, http.MethodGet, "/movies", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"fetch movies failed"}`, rec.Body.String())
}

func TestShowings(t *testing.T) {
	e := scheduleEcho(fakeMovies{movies: catalogue()})

	rec := do(e, http.MethodGet, "/movies/m1/showings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"movie_id": "m1",
		"title": "Heat",
		"date": "2024-01-20",
		"available_dates": ["2024-01-20", "2024-01-21", "2024-01-22"],
		"showings": [{"hall": "A", "times": ["16:00", "18:00"]}]
	}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/movies/m1/showings?date=2024-01-21", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Showings []struct {
			Hall  string   `json:"hall"`
			Times []string `json:"times"`
		} `json:"showings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Showings, 1)
	assert.Equal(t, "B", body.Showings[0].Hall)
	assert.Equal(t, []string{"21:00"}, body.Showings[0].Times)
}

func TestShowingsNoDates(t *testing.T) {
	e := scheduleEcho(fakeMovies{movies: catalogue()})
	rec := do(e, http.MethodGet, "/movies/m2/showings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"movie_id":"m2","title":"Old","date":"","available_dates":[],"showings":[]}`, rec.Body.String())
}

func TestShowingsErrors(t *testing.T) {
	e := scheduleEcho(fakeMovies{movies: catalogue()})
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/movies/m1/showings?date=20-01-2024", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/movies/zzz/showings", "").Code)

	e = scheduleEcho(fakeMovies{err: errBoom})
	assert.Equal(t, http.StatusBadGateway, do(e, http.MethodGet, "/movies/m1/showings", "").Code)
}

func TestDashboardStats(t *testing.T) {
	tickets := &fakeTickets{count: 12}
	h := NewDashboardHandler(fakeMovies{movies: catalogue()}, tickets, testClock(), quiet())
	e := echo.New()
	e.GET("/dashboard", h.Stats)

	rec := do(e, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-01-20","tickets_today":12,"active_shows":1}`, rec.Body.String())

	// Theater midnight to midnight.
	assert.True(t, tickets.from.Equal(time.Date(2024, 1, 20, 4, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24*time.Hour, tickets.to.Sub(tickets.from))
}

func TestDashboardErrors(t *testing.T) {
	h := NewDashboardHandler(fakeMovies{movies: catalogue()}, &fakeTickets{err: errBoom}, testClock(), quiet())
	e := echo.New()
	e.GET("/dashboard", h.Stats)
	assert.Equal(t, http.StatusInternalServerError, do(e, http.MethodGet, "/dashboard", "").Code)

	h = NewDashboardHandler(fakeMovies{err: errBoom}, &fakeTickets{}, testClock(), quiet())
	e = echo.New()
	e.GET("/dashboard", h.Stats)
	assert.Equal(t, http.StatusBadGateway, do(e, http.MethodGet, "/dashboard", "").Code)
}

func TestRefresh(t *testing.T) {
	cache := &fakeCache{}
	h := NewScheduleHandler(fakeMovies{}, testClock(), quiet())
	h.Cache = cache
	e := echo.New()
	e.POST("/movies/refresh", h.Refresh)

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodPost, "/movies/refresh", "").Code)
	assert.Equal(t, 1, cache.calls)

	cache.err = errBoom
	assert.Equal(t, http.StatusInternalServerError, do(e, http.MethodPost, "/movies/refresh", "").Code)

	h.Cache = nil
	assert.Equal(t, http.StatusNoContent, do(e, http.MethodPost, "/movies/refresh", "").Code)
}
