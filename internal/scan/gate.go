// Package scan turns the camera's stream of decoded barcodes into at most
// one candidate ticket id per physical scan.
package scan

import (
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/theater-staff/internal/model"
)

// DefaultCooldown is the dead time after an emitted scan.
const DefaultCooldown = time.Second

// Timer is the handle of a scheduled re-arm.  *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Gate debounces observation batches.  It starts armed; emitting closes it
// and a timer re-arms it after the cooldown.  Dispose cancels the pending
// re-arm for good.
type Gate struct {
	mu         sync.Mutex
	armed      bool
	disposed   bool
	generation uint64
	pending    Timer

	cooldown  time.Duration
	afterFunc AfterFunc
}

// Option customizes a Gate.
type Option func(*Gate)

// WithAfterFunc replaces the timer scheduler; tests use it to fire re-arms by hand.
func WithAfterFunc(fn AfterFunc) Option {
	return func(g *Gate) { g.afterFunc = fn }
}

// NewGate returns an armed gate.  A non-positive cooldown means DefaultCooldown.
func NewGate(cooldown time.Duration, opts ...Option) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	g := &Gate{armed: true, cooldown: cooldown, afterFunc: realAfterFunc}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Observe offers one batch to the gate.  It returns the trimmed payload of
// the first qr observation with a non-empty payload, provided the gate is
// armed.  Everything else in the batch is ignored.
func (g *Gate) Observe(batch []model.Observation) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.armed || g.disposed {
		return "", false
	}
	ticketID, ok := firstTicket(batch)
	if !ok {
		return "", false
	}

	g.armed = false
	g.generation++
	gen := g.generation
	g.pending = g.afterFunc(g.cooldown, func() { g.rearm(gen) })
	return ticketID, true
}

func firstTicket(batch []model.Observation) (string, bool) {
	for _, o := range batch {
		if o.Type != model.SymbologyQR {
			continue
		}
		if id := strings.TrimSpace(o.Data); id != "" {
			return id, true
		}
	}
	return "", false
}

// rearm runs from the timer goroutine.  A timer from an older closing, or one
// that fires after Dispose, changes nothing.
func (g *Gate) rearm(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed || gen != g.generation {
		return
	}
	g.armed = true
	g.pending = nil
}

// Armed reports whether the next qualifying batch would be accepted.
func (g *Gate) Armed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.armed && !g.disposed
}

// Dispose cancels any pending re-arm.  The gate never emits again.
func (g *Gate) Dispose() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.disposed = true
	g.armed = false
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
}
