package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/iliyamo/theater-staff/internal/model"
)

// Key is the fixed key the session record lives under.
const Key = "employeeSession"

// DeviceKey scopes Key to one scanning device.
func DeviceKey(device string) string {
	return Key + ":" + device
}

// Manager reads and writes AuthSession records through a Store.
type Manager struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

func NewManager(store Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{store: store, log: log, now: time.Now}
}

// Authenticated reports whether a session exists for the device.  Storage
// errors are logged and count as "no session".
func (m *Manager) Authenticated(ctx context.Context, device string) bool {
	_, ok, err := m.store.Get(ctx, DeviceKey(device))
	if err != nil {
		m.log.Warn("session lookup failed, treating as signed out", "device", device, "err", err)
		return false
	}
	return ok
}

// Load returns the stored record.  ok is false when there is none, the store
// failed, or the payload is unreadable; presence alone still authenticates,
// so callers that only gate access should use Authenticated.
func (m *Manager) Load(ctx context.Context, device string) (model.AuthSession, bool) {
	raw, ok, err := m.store.Get(ctx, DeviceKey(device))
	if err != nil {
		m.log.Warn("session lookup failed", "device", device, "err", err)
		return model.AuthSession{}, false
	}
	if !ok {
		return model.AuthSession{}, false
	}
	var s model.AuthSession
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.log.Warn("session payload unreadable", "device", device, "err", err)
		return model.AuthSession{}, false
	}
	return s, true
}

// Start persists a session for emp on device, stamped with the current time.
func (m *Manager) Start(ctx context.Context, device string, emp model.Employee) (model.AuthSession, error) {
	s := model.AuthSession{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Role:       emp.Role,
		Timestamp:  m.now().UTC(),
	}
	b, err := json.Marshal(s)
	if err != nil {
		return model.AuthSession{}, fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Set(ctx, DeviceKey(device), string(b)); err != nil {
		return model.AuthSession{}, err
	}
	return s, nil
}

// End removes the device's session.
func (m *Manager) End(ctx context.Context, device string) error {
	return m.store.Remove(ctx, DeviceKey(device))
}
