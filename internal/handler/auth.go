package handler

import (
	"context"  // provides context with cancellation for store calls
	"encoding/json"
	"fmt"
	"log/slog" // structured logging
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // token expiry in responses

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/theater-staff/internal/config"     // app configuration
	"github.com/iliyamo/theater-staff/internal/middleware" // request identity helpers
	"github.com/iliyamo/theater-staff/internal/model"      // staff roles
	"github.com/iliyamo/theater-staff/internal/scan"       // per-device scan gates
	"github.com/iliyamo/theater-staff/internal/utils"      // token issuing
)

// AuthHandler bundles dependencies for sign-in endpoints.
type AuthHandler struct {
	Cfg       config.Config
	Employees EmployeeLookup
	Sessions  Sessions
	Gates     *scan.Registry
	Log       *slog.Logger
}

func NewAuthHandler(cfg config.Config, e EmployeeLookup, s Sessions, gates *scan.Registry, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{Cfg: cfg, Employees: e, Sessions: s, Gates: gates, Log: log}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	DeviceID string `json:"device_id"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type employeePart struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type loginResp struct {
	Employee employeePart `json:"employee"`
	Device   string       `json:"device_id"`
	Since    time.Time    `json:"since"`
	Access   tokenPart    `json:"access"`
}

// Login: match credentials, persist the session for the device, return a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	device := strings.TrimSpace(req.DeviceID)
	if device == "" {
		device = strings.TrimSpace(c.Request().Header.Get(middleware.HeaderDevice))
	}
	if device == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "device_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	matches, err := h.Employees.Lookup(ctx, req.Email, req.Password)
	if err != nil {
		h.Log.Error("employee lookup failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if len(matches) == 0 {
		h.Log.Info("login rejected", "email", req.Email, "device", device)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	emp := matches[0]
	emp.Role = model.StaffRole(emp.Role)

	sess, err := h.Sessions.Start(ctx, device, emp)
	if err != nil {
		h.Log.Error("save session failed", "device", device, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save session failed"})
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, utils.StaffClaims{
		EmployeeID: emp.ID, Role: emp.Role, Device: device,
	}, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	h.Log.Info("employee signed in", "employee_id", emp.ID, "device", device)
	return c.JSON(http.StatusOK, loginResp{
		Employee: employeePart{ID: emp.ID, Name: emp.Name, Role: emp.Role},
		Device:   device,
		Since:    sess.Timestamp,
		Access:   tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Logout removes the device's session and closes its scan gate.  It only
// needs a valid token, so a device whose session is already gone can still
// sign out cleanly.
func (h *AuthHandler) Logout(c echo.Context) error {
	device := middleware.Device(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.Sessions.End(ctx, device); err != nil {
		h.Log.Error("remove session failed", "device", device, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	if h.Gates != nil {
		h.Gates.Release(device)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the stored session of the calling device.
func (h *AuthHandler) Me(c echo.Context) error {
	device := middleware.Device(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	out := echo.Map{
		"employee_id": middleware.EmployeeID(c),
		"role":        c.Get(middleware.CtxRole),
		"device_id":   device,
	}
	if s, ok := h.Sessions.Load(ctx, device); ok {
		out["name"] = s.Name
		out["since"] = s.Timestamp
	}
	return c.JSON(http.StatusOK, out)
}

// SessionEvents streams the device's authentication state as server-sent
// events: the current state first, then one event per change.
func (h *AuthHandler) SessionEvents(c echo.Context) error {
	device := middleware.Device(c)
	ctx := c.Request().Context()

	states, err := h.Sessions.Watch(ctx, device)
	if err != nil {
		h.Log.Error("session watch failed", "device", device, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "watch failed"})
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for authenticated := range states {
		data, _ := json.Marshal(echo.Map{"authenticated": authenticated})
		if _, err := fmt.Fprintf(w, "event: session\ndata: %s\n\n", data); err != nil {
			return nil
		}
		w.Flush()
	}
	return nil
}
