package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-staff/internal/middleware"
	"github.com/iliyamo/theater-staff/internal/model"
	"github.com/iliyamo/theater-staff/internal/queue"
	"github.com/iliyamo/theater-staff/internal/repository"
)

// 2024-01-20 15:00 in the theater (UTC-4).
var fixedNow = time.Date(2024, 1, 20, 19, 0, 0, 0, time.UTC)

func testClock() Clock {
	return Clock{Now: func() time.Time { return fixedNow }, Offset: -4 * time.Hour}
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// withIdentity stands in for JWTAuth.
func withIdentity(device string, employeeID uint64, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxDevice, device)
			c.Set(middleware.CtxEmployeeID, employeeID)
			c.Set(middleware.CtxRole, role)
			return next(c)
		}
	}
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return serveReq(e, newJSONRequest(method, target, r))
}

func newJSONRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func serveReq(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type fakeMovies struct {
	movies []model.Movie
	err    error
}

func (f fakeMovies) FetchMovies(context.Context) ([]model.Movie, error) { return f.movies, f.err }

type fakeEmployees struct {
	byEmail map[string]model.Employee
	err     error
}

func (f fakeEmployees) Lookup(_ context.Context, email, password string) ([]model.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byEmail[email]
	if !ok || e.PasswordHash != password {
		return []model.Employee{}, nil
	}
	return []model.Employee{e}, nil
}

type fakeSessions struct {
	mu     sync.Mutex
	byDev  map[string]model.AuthSession
	err    error
	events []bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byDev: map[string]model.AuthSession{}}
}

func (f *fakeSessions) Start(_ context.Context, device string, emp model.Employee) (model.AuthSession, error) {
	if f.err != nil {
		return model.AuthSession{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s := model.AuthSession{EmployeeID: emp.ID, Name: emp.Name, Role: emp.Role, Timestamp: fixedNow}
	f.byDev[device] = s
	return s, nil
}

func (f *fakeSessions) End(_ context.Context, device string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byDev, device)
	return nil
}

func (f *fakeSessions) Load(_ context.Context, device string) (model.AuthSession, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byDev[device]
	return s, ok
}

func (f *fakeSessions) Authenticated(ctx context.Context, device string) bool {
	_, ok := f.Load(ctx, device)
	return ok
}

func (f *fakeSessions) Watch(context.Context, string) (<-chan bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan bool, len(f.events))
	for _, v := range f.events {
		ch <- v
	}
	close(ch)
	return ch, nil
}

type fakeTickets struct {
	mu       sync.Mutex
	tickets  map[string]model.Ticket
	err      error
	count    int64
	from, to time.Time
}

func (f *fakeTickets) Admit(_ context.Context, id string, employeeID uint64, at time.Time) (model.Ticket, error) {
	if f.err != nil {
		return model.Ticket{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return model.Ticket{}, repository.ErrTicketNotFound
	}
	if t.AdmittedAt != nil {
		return t, repository.ErrAlreadyAdmitted
	}
	t.AdmittedAt = &at
	t.AdmittedBy = employeeID
	f.tickets[id] = t
	return t, nil
}

func (f *fakeTickets) GetByID(_ context.Context, id string) (model.Ticket, error) {
	if f.err != nil {
		return model.Ticket{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return model.Ticket{}, repository.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeTickets) CountAdmittedBetween(_ context.Context, from, to time.Time) (int64, error) {
	f.from, f.to = from, to
	return f.count, f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.TicketAdmittedEvent
	err    error
}

func (f *fakePublisher) PublishTicketAdmitted(_ context.Context, ev queue.TicketAdmittedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

type fakeCache struct {
	calls int
	err   error
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.calls++
	return f.err
}

var errBoom = errors.New("boom")

