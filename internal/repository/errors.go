// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors.
package repository

import "errors"

// ErrTicketNotFound is returned when a scanned id matches no ticket.
// Handlers should translate this into an HTTP 404 response.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrAlreadyAdmitted is returned when a ticket was scanned in before.
// Handlers should translate this into an HTTP 409 response.
var ErrAlreadyAdmitted = errors.New("ticket already admitted")

// ErrDecode wraps failures to decode a stored record's encoded columns.
var ErrDecode = errors.New("decode stored record")
