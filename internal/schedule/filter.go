// Package schedule decides which screening dates and showtimes are still
// bookable relative to the theater's clock.  Every function takes "now"
// explicitly; nothing here reads the system clock.
package schedule

import (
	"sort"
	"time"

	"github.com/iliyamo/theater-staff/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = dateLayout + " " + timeLayout
)

// TheaterNow converts an instant to the theater's fixed-offset zone.  The
// device's own zone is irrelevant: the instant is absolute, only the wall
// clock it is rendered in changes.
func TheaterNow(now time.Time, offset time.Duration) time.Time {
	return now.In(Zone(offset))
}

// Zone returns the fixed zone for a theater offset.
func Zone(offset time.Duration) *time.Location {
	return time.FixedZone("theater", int(offset/time.Second))
}

// Today returns now's calendar date in now's own location.
func Today(now time.Time) string {
	return now.Format(dateLayout)
}

// AvailableDates returns the distinct slot dates across all screenings that
// fall on or after now's calendar date, sorted ascending.  Dates that do not
// parse as YYYY-MM-DD are never available.
func AvailableDates(screenings []model.Screening, now time.Time) []string {
	today := Today(now)
	seen := make(map[string]struct{})
	out := []string{}
	for _, s := range screenings {
		for _, slot := range s.TimeSlots {
			if _, dup := seen[slot.Date]; dup {
				continue
			}
			if _, err := time.Parse(dateLayout, slot.Date); err != nil {
				continue
			}
			// ISO dates compare chronologically as strings.
			if slot.Date < today {
				continue
			}
			seen[slot.Date] = struct{}{}
			out = append(out, slot.Date)
		}
	}
	sort.Strings(out)
	return out
}

// AvailableTimes returns the showtimes a screening offers on date.  When
// date is today (in now's location) only times strictly after now are kept;
// for any other date the slot's times are returned as listed.  If several
// slots share the date, the first one with a qualifying time is used.
func AvailableTimes(screening model.Screening, date string, now time.Time) []string {
	today := date == Today(now)
	for _, slot := range screening.TimeSlots {
		if slot.Date != date {
			continue
		}
		var times []string
		if !today {
			times = append(times, slot.Times...)
		} else {
			for _, t := range slot.Times {
				if isFutureTime(date, t, now) {
					times = append(times, t)
				}
			}
		}
		if len(times) > 0 {
			return times
		}
	}
	return nil
}

func isFutureTime(date, hhmm string, now time.Time) bool {
	at, err := time.ParseInLocation(dateTimeLayout, date+" "+hhmm, now.Location())
	if err != nil {
		return false
	}
	return at.After(now)
}

// HallTimes is one row of the schedule for a selected date.
type HallTimes struct {
	Hall  string   `json:"hall"`
	Times []string `json:"times"`
}

// Showings lists, per screening and in screening order, the hall and the
// qualifying times on date.  Screenings with nothing left are skipped.
func Showings(screenings []model.Screening, date string, now time.Time) []HallTimes {
	out := []HallTimes{}
	for _, s := range screenings {
		times := AvailableTimes(s, date, now)
		if len(times) == 0 {
			continue
		}
		out = append(out, HallTimes{Hall: s.Hall, Times: times})
	}
	return out
}

// ActiveToday reports whether a movie still has a showing later today.
func ActiveToday(m model.Movie, now time.Time) bool {
	return len(Showings(m.Screenings, Today(now), now)) > 0
}
