// Package handler exposes the staff API: sign-in, schedule browsing,
// dashboard figures, ticket scanning and admission.
package handler

import (
	"context"
	"time"

	"github.com/iliyamo/theater-staff/internal/model"
	"github.com/iliyamo/theater-staff/internal/queue"
	"github.com/iliyamo/theater-staff/internal/schedule"
)

// MovieSource returns the decoded movie catalogue.
type MovieSource interface {
	FetchMovies(ctx context.Context) ([]model.Movie, error)
}

// CatalogueCache drops cached movie data.
type CatalogueCache interface {
	Invalidate(ctx context.Context) error
}

// EmployeeLookup matches credentials; an empty result is a rejection.
type EmployeeLookup interface {
	Lookup(ctx context.Context, email, password string) ([]model.Employee, error)
}

// TicketStore looks up and admits tickets and reports admission counts.
type TicketStore interface {
	GetByID(ctx context.Context, id string) (model.Ticket, error)
	Admit(ctx context.Context, id string, employeeID uint64, at time.Time) (model.Ticket, error)
	CountAdmittedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// AdmissionPublisher announces admitted tickets.
type AdmissionPublisher interface {
	PublishTicketAdmitted(ctx context.Context, ev queue.TicketAdmittedEvent) error
}

// Sessions is the session store as seen by the handlers.
type Sessions interface {
	Start(ctx context.Context, device string, emp model.Employee) (model.AuthSession, error)
	End(ctx context.Context, device string) error
	Load(ctx context.Context, device string) (model.AuthSession, bool)
	Authenticated(ctx context.Context, device string) bool
	Watch(ctx context.Context, device string) (<-chan bool, error)
}

// Clock yields theater-local time.  Now defaults to time.Now.
type Clock struct {
	Now    func() time.Time
	Offset time.Duration
}

// Theater returns the current theater-local time.
func (c Clock) Theater() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return schedule.TheaterNow(now(), c.Offset)
}

// dayBounds returns the start of now's calendar day and the start of the next.
func dayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

const requestTimeout = 5 * time.Second
