package scan

import (
	"sync"
	"time"
)

// Registry owns one gate per scanning device.
type Registry struct {
	mu       sync.Mutex
	gates    map[string]*Gate
	cooldown time.Duration
	opts     []Option
}

func NewRegistry(cooldown time.Duration, opts ...Option) *Registry {
	return &Registry{gates: make(map[string]*Gate), cooldown: cooldown, opts: opts}
}

// Gate returns the device's gate, creating an armed one on first use.
func (r *Registry) Gate(device string) *Gate {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gates[device]
	if !ok {
		g = NewGate(r.cooldown, r.opts...)
		r.gates[device] = g
	}
	return g
}

// Release disposes and forgets the device's gate.  It reports whether a gate existed.
func (r *Registry) Release(device string) bool {
	r.mu.Lock()
	g, ok := r.gates[device]
	delete(r.gates, device)
	r.mu.Unlock()
	if ok {
		g.Dispose()
	}
	return ok
}

// Len is the number of live gates.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gates)
}

// Close disposes every gate.
func (r *Registry) Close() {
	r.mu.Lock()
	gates := r.gates
	r.gates = make(map[string]*Gate)
	r.mu.Unlock()
	for _, g := range gates {
		g.Dispose()
	}
}
