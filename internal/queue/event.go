// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketAdmittedQueue is the durable queue admission events are routed to.
const TicketAdmittedQueue = "ticket.admitted"

// TicketAdmittedEvent is published when a scanned ticket is admitted.  It
// carries enough of the ticket for consumers (audit log, attendance counts)
// to work without querying the primary database.
type TicketAdmittedEvent struct {
	EventID    string `json:"event_id"`
	TicketID   string `json:"ticket_id"`
	MovieID    string `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	Hall       string `json:"hall"`
	ShowDate   string `json:"show_date"`
	ShowTime   string `json:"show_time"`
	EmployeeID uint64 `json:"employee_id"`
	Device     string `json:"device_id"`
	AdmittedAt string `json:"admitted_at"`
}
