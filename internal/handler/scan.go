package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-staff/internal/middleware"
	"github.com/iliyamo/theater-staff/internal/queue"
	"github.com/iliyamo/theater-staff/internal/repository"
	"github.com/iliyamo/theater-staff/internal/scan"
)

// maxBatchBytes bounds a single observation batch body.
const maxBatchBytes = 64 << 10

// ScanHandler feeds camera batches through the device's scan gate and admits
// the tickets it emits.
type ScanHandler struct {
	Gates     *scan.Registry
	Tickets   TicketStore
	Publisher AdmissionPublisher
	Clock     Clock
	Log       *slog.Logger
}

func NewScanHandler(gates *scan.Registry, tickets TicketStore, pub AdmissionPublisher, clock Clock, log *slog.Logger) *ScanHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ScanHandler{Gates: gates, Tickets: tickets, Publisher: pub, Clock: clock, Log: log}
}

// Observe handles POST /v1/scan with {"observations": [{"type","data"}, ...]}.
// It answers 200 {"ticket_id"} when the gate emits and 204 otherwise.  A
// malformed or oversized body is just a batch with nothing in it; the reason
// is logged at debug level.
func (h *ScanHandler) Observe(c echo.Context) error {
	device := middleware.Device(c)
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBatchBytes+1))
	switch {
	case err != nil:
		h.Log.Debug("scan batch read failed", "device", device, "err", err)
		body = nil
	case len(body) > maxBatchBytes:
		h.Log.Debug("scan batch too large, ignored", "device", device, "limit", maxBatchBytes)
		body = nil
	}

	var req struct {
		Observations json.RawMessage `json:"observations"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.Log.Debug("scan batch unreadable", "device", device, "err", err)
		}
	}
	batch := scan.ParseBatch(req.Observations)

	ticketID, ok := h.Gates.Gate(device).Observe(batch)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	h.Log.Info("ticket scanned", "device", device, "ticket_id", ticketID)
	return c.JSON(http.StatusOK, echo.Map{"ticket_id": ticketID})
}

// Close handles DELETE /v1/scan: the camera went away, so the device's gate
// and any pending re-arm are dropped.
func (h *ScanHandler) Close(c echo.Context) error {
	h.Gates.Release(middleware.Device(c))
	return c.NoContent(http.StatusNoContent)
}

// Ticket handles GET /v1/tickets/:id so the client can show what it scanned
// before confirming admission.
func (h *ScanHandler) Ticket(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	t, err := h.Tickets.GetByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	case err != nil:
		h.Log.Error("get ticket failed", "ticket_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ticket": t, "admitted": t.AdmittedAt != nil})
}

// Admit handles POST /v1/tickets/:id/admit.  The ticket is marked used and an
// admission event is published; publishing failures are logged only.
func (h *ScanHandler) Admit(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket id required"})
	}
	employeeID := middleware.EmployeeID(c)
	device := middleware.Device(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	now := h.Clock.Theater()
	t, err := h.Tickets.Admit(ctx, id, employeeID, now)
	switch {
	case errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	case errors.Is(err, repository.ErrAlreadyAdmitted):
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket already admitted", "ticket": t})
	case err != nil:
		h.Log.Error("admit ticket failed", "ticket_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if h.Publisher != nil {
		ev := queue.TicketAdmittedEvent{
			EventID:    uuid.NewString(),
			TicketID:   t.ID,
			MovieID:    t.MovieID,
			MovieTitle: t.MovieTitle,
			Hall:       t.Hall,
			ShowDate:   t.ShowDate,
			ShowTime:   t.ShowTime,
			EmployeeID: employeeID,
			Device:     device,
			AdmittedAt: now.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := h.Publisher.PublishTicketAdmitted(ctx, ev); err != nil {
			h.Log.Warn("publish admission failed", "ticket_id", t.ID, "err", err)
		}
	}

	h.Log.Info("ticket admitted", "ticket_id", t.ID, "employee_id", employeeID, "device", device)
	return c.JSON(http.StatusOK, echo.Map{"ticket": t, "validated_at": now})
}
