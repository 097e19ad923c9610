package session

import "errors"

// ErrWatchUnsupported is returned by Manager.Watch when the store cannot
// announce changes.
var ErrWatchUnsupported = errors.New("session store does not support change notifications")
