package session

import (
	"context"
)

// Watcher is a Store that can announce changes of a key.
type Watcher interface {
	Store
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

// Watch implements Watcher.  The returned channel receives a value after
// every change of key and is closed when ctx ends or the subscription drops.
func (s *RedisStore) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	sub, err := s.Subscribe(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default: // a pending notification already covers this change
				}
			}
		}
	}()
	return out, nil
}

// Watch emits the device's authentication state: once immediately, then
// after every change of its session key.  The channel closes when ctx ends.
func (m *Manager) Watch(ctx context.Context, device string) (<-chan bool, error) {
	w, ok := m.store.(Watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	changes, err := w.Watch(ctx, DeviceKey(device))
	if err != nil {
		return nil, err
	}
	out := make(chan bool, 1)
	go func() {
		defer close(out)
		last := m.Authenticated(ctx, device)
		if !send(ctx, out, last) {
			return
		}
		for range changes {
			cur := m.Authenticated(ctx, device)
			if cur == last {
				continue
			}
			last = cur
			if !send(ctx, out, cur) {
				return
			}
		}
	}()
	return out, nil
}

func send(ctx context.Context, ch chan<- bool, v bool) bool {
	select {
	case ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
