package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/theater-staff/internal/model"
)

const offset = -4 * time.Hour

// theaterTime builds a wall-clock time in the theater zone.
func theaterTime(t *testing.T, s string) time.Time {
	t.Helper()
	at, err := time.ParseInLocation("2006-01-02T15:04", s, Zone(offset))
	require.NoError(t, err)
	return at
}

func screening(hall string, slots ...model.TimeSlot) model.Screening {
	return model.Screening{Hall: hall, TimeSlots: slots}
}

func slot(date string, times ...string) model.TimeSlot {
	return model.TimeSlot{Date: date, Times: times}
}

func TestTheaterNowAppliesFixedOffset(t *testing.T) {
	utc := time.Date(2024, 1, 21, 2, 30, 0, 0, time.UTC)
	now := TheaterNow(utc, offset)
	assert.Equal(t, "2024-01-20", Today(now))
	assert.Equal(t, 22, now.Hour())
	assert.True(t, now.Equal(utc))

	// Device zone does not matter, only the instant.
	tokyo := utc.In(time.FixedZone("JST", 9*3600))
	assert.Equal(t, "2024-01-20", Today(TheaterNow(tokyo, offset)))
}

func TestAvailableDates(t *testing.T) {
	now := theaterTime(t, "2024-01-20T15:00")
	screenings := []model.Screening{
		screening("A", slot("2024-01-22", "12:00"), slot("2024-01-19", "20:00"), slot("2024-01-20", "10:00")),
		screening("B", slot("2024-01-21", "18:00"), slot("2024-01-22", "21:00"), slot("not-a-date", "10:00")),
	}

	got := AvailableDates(screenings, now)
	assert.Equal(t, []string{"2024-01-20", "2024-01-21", "2024-01-22"}, got)
}

func TestAvailableDatesNeverBeforeTodayNorDuplicated(t *testing.T) {
	now := theaterTime(t, "2024-03-10T00:01")
	var slots []model.TimeSlot
	for d := 1; d <= 20; d++ {
		date := time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		slots = append(slots, slot(date, "10:00"), slot(date, "11:00"))
	}
	got := AvailableDates([]model.Screening{screening("A", slots...), screening("B", slots...)}, now)

	seen := map[string]bool{}
	for _, d := range got {
		assert.GreaterOrEqual(t, d, "2024-03-10")
		assert.False(t, seen[d], "duplicate %s", d)
		seen[d] = true
	}
	assert.Len(t, got, 11)
}

func TestAvailableDatesEmpty(t *testing.T) {
	now := theaterTime(t, "2024-01-20T15:00")
	assert.Empty(t, AvailableDates(nil, now))
	assert.Empty(t, AvailableDates([]model.Screening{screening("A", slot("2023-12-31", "10:00"))}, now))
}

func TestAvailableTimesToday(t *testing.T) {
	now := theaterTime(t, "2024-01-20T15:00")
	s := screening("A", slot("2024-01-20", "14:00", "16:00", "18:00"))
	assert.Equal(t, []string{"16:00", "18:00"}, AvailableTimes(s, "2024-01-20", now))
}

func TestAvailableTimesExcludesNowAndMalformed(t *testing.T) {
	now := theaterTime(t, "2024-01-20T15:00")
	s := screening("A", slot("2024-01-20", "15:00", "15:01", "25:99", "late"))
	assert.Equal(t, []string{"15:01"}, AvailableTimes(s, "2024-01-20", now))
}

func TestAvailableTimesFutureDateUnfiltered(t *testing.T) {
	now := theaterTime(t, "2024-01-20T15:00")
	s := screening("A", slot("2024-01-21", "18:00", "09:00", "14:00"))
	assert.Equal(t, []string{"18:00", "09:00", "14:00"}, AvailableTimes(s, "2024-01-21", now))
}

func TestAvailableTimesUsesTheaterDateNotUTC(t *testing.T) {
	// 01:00 UTC on the 21st is still 21:00 on the 20th at the theater.
	now := TheaterNow(time.Date(2024, 1, 21, 1, 0, 0, 0, time.UTC), offset)
	s := screening("A", slot("2024-01-20", "20:00", "22:30"))
	assert.Equal(t, []string{"22:30"}, AvailableTimes(s, "2024-01-20", now))
}

func TestAvailableTimesNoSlot(t *testing.T) {
	now := theaterTime(t, "2024-01-20T15:00")
	s := screening("A", slot("2024-01-21", "18:00"))
	assert.Empty(t, AvailableTimes(s, "2024-01-22", now))
}

func TestShowingsSkipsEmptyScreenings(t *testing.T) {
	now := theaterTime(t, "2024-01-20T15:00")
	screenings := []model.Screening{
		screening("A", slot("2024-01-20", "10:00", "12:00")),
		screening("B", slot("2024-01-20", "19:30")),
		screening("C", slot("2024-01-21", "19:30")),
	}
	got := Showings(screenings, "2024-01-20", now)
	assert.Equal(t, []HallTimes{{Hall: "B", Times: []string{"19:30"}}}, got)

	assert.True(t, ActiveToday(model.Movie{Screenings: screenings}, now))
	assert.False(t, ActiveToday(model.Movie{Screenings: screenings[:1]}, now))
}
