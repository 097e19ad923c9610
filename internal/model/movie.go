package model

// Movie is a title currently on the theater's schedule.  Categories arrive
// from storage as a JSON-encoded string and are decoded into a flat list
// before a Movie is built.
//
// Fields:
//  ID         – movies.id
//  Title      – display title.
//  Duration   – free-form running time (e.g. "2h 32m").
//  PosterURL  – poster image reference.
//  Categories – genre labels.
//  Screenings – hall assignments with their dated showtimes.
type Movie struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Duration   string      `json:"duration"`
	PosterURL  string      `json:"poster_url"`
	Categories []string    `json:"categories"`
	Screenings []Screening `json:"screenings"`
}

// Screening assigns a movie to a hall with an ordered list of dated slots.
type Screening struct {
	Hall      string     `json:"sala"`
	TimeSlots []TimeSlot `json:"time_slots"`
}

// TimeSlot lists the start times (HH:MM, 24h) for one calendar date
// (YYYY-MM-DD, no time component).
type TimeSlot struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}
