package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/theater-staff/internal/model"
)

// TicketRepo validates and admits tickets stored in the 'tickets' table.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

const ticketColumns = "id,movie_id,movie_title,hall,show_date,show_time,admitted_at,admitted_by"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(s rowScanner) (model.Ticket, error) {
	var (
		t          model.Ticket
		admittedAt sql.NullTime
		admittedBy sql.NullInt64
	)
	if err := s.Scan(&t.ID, &t.MovieID, &t.MovieTitle, &t.Hall, &t.ShowDate, &t.ShowTime, &admittedAt, &admittedBy); err != nil {
		return model.Ticket{}, err
	}
	if admittedAt.Valid {
		at := admittedAt.Time.UTC()
		t.AdmittedAt = &at
	}
	if admittedBy.Valid {
		t.AdmittedBy = uint64(admittedBy.Int64)
	}
	return t, nil
}

// GetByID returns the ticket or ErrTicketNotFound.
func (r *TicketRepo) GetByID(ctx context.Context, id string) (model.Ticket, error) {
	t, err := scanTicket(r.DB.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ticket{}, ErrTicketNotFound
	}
	return t, err
}

// Admit marks the ticket as used by employeeID at time at.  The row is
// locked for the duration of the check so two scanners cannot both admit
// the same ticket.  A ticket admitted earlier yields ErrAlreadyAdmitted
// together with the stored ticket.
func (r *TicketRepo) Admit(ctx context.Context, id string, employeeID uint64, at time.Time) (model.Ticket, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Ticket{}, err
	}
	defer tx.Rollback()

	t, err := scanTicket(tx.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id=? FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ticket{}, ErrTicketNotFound
	}
	if err != nil {
		return model.Ticket{}, err
	}
	if t.AdmittedAt != nil {
		return t, ErrAlreadyAdmitted
	}

	at = at.UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE tickets SET admitted_at=?, admitted_by=? WHERE id=?",
		at, employeeID, id); err != nil {
		return model.Ticket{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Ticket{}, err
	}
	t.AdmittedAt = &at
	t.AdmittedBy = employeeID
	return t, nil
}

// CountAdmittedBetween counts tickets admitted in [from, to).
func (r *TicketRepo) CountAdmittedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE admitted_at >= ? AND admitted_at < ?",
		from.UTC(), to.UTC()).Scan(&n)
	return n, err
}
