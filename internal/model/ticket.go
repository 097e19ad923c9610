package model

import "time"

// Ticket is an admission ticket encoded in the customer's QR code.
//
// Fields:
//  ID         – tickets.id, the QR payload.
//  MovieID    – movie the ticket is for.
//  MovieTitle – denormalized title for the validation screen.
//  Hall       – hall of the showing.
//  ShowDate   – YYYY-MM-DD of the showing.
//  ShowTime   – HH:MM of the showing.
//  AdmittedAt – when the ticket was scanned in (nil until admitted).
//  AdmittedBy – employee that admitted it (0 until admitted).
type Ticket struct {
	ID         string     `json:"id"`
	MovieID    string     `json:"movie_id"`
	MovieTitle string     `json:"movie_title"`
	Hall       string     `json:"hall"`
	ShowDate   string     `json:"show_date"`
	ShowTime   string     `json:"show_time"`
	AdmittedAt *time.Time `json:"admitted_at,omitempty"`
	AdmittedBy uint64     `json:"admitted_by,omitempty"`
}
