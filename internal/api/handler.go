package api

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/campus-fund-tracker/internal/auth"
	"github.com/insightdelivered/campus-fund-tracker/internal/config"
	"github.com/insightdelivered/campus-fund-tracker/internal/lookup"
	"github.com/insightdelivered/campus-fund-tracker/internal/normalize"
	"github.com/insightdelivered/campus-fund-tracker/internal/roster"
	"github.com/insightdelivered/campus-fund-tracker/internal/sample"
	"github.com/insightdelivered/campus-fund-tracker/internal/sheet"
)

// Handler carries the service dependencies for the HTTP layer.
type Handler struct {
	Cfg      config.Config
	Store    *roster.Store
	Fetcher  sheet.Fetcher
	Tokens   *auth.TokenService
	Lockouts *auth.LockoutTracker

	// Now is the wall clock; tests pin it so "current month" is stable.
	Now func() time.Time
}

func New(cfg config.Config, store *roster.Store, fetcher sheet.Fetcher, tokens *auth.TokenService, lockouts *auth.LockoutTracker) *Handler {
	return &Handler{
		Cfg:      cfg,
		Store:    store,
		Fetcher:  fetcher,
		Tokens:   tokens,
		Lockouts: lockouts,
		Now:      time.Now,
	}
}

type errorBody struct {
	Success           bool   `json:"success"`
	Error             string `json:"error"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
	Redirect          string `json:"redirect,omitempty"`
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorBody{Success: false, Error: msg})
}

// LoadRoster fetches the sheet, normalizes it and swaps the roster store.
// On fetch or decode failure the sample fallback applies (when enabled),
// so the listing flow never dies. Concurrent calls race and the last
// completed swap wins.
func (h *Handler) LoadRoster(ctx context.Context, now time.Time) (roster.LoadInfo, error) {
	text, err := h.Fetcher.Fetch(ctx)
	if err == nil {
		var s *sheet.Sheet
		if s, err = sheet.Decode(text); err == nil {
			return h.Store.Replace(normalize.Roster(s, now), roster.SourceSheet), nil
		}
	}

	if !h.Cfg.SampleFallback {
		return roster.LoadInfo{}, err
	}

	records := sample.Roster(now, h.Cfg.SampleSize, now.UnixNano())
	return h.Store.Replace(records, roster.SourceSample), nil
}

// ensureLoaded performs the first load lazily so a freshly started server
// answers listing requests without an explicit refresh.
func (h *Handler) ensureLoaded(c *fiber.Ctx) error {
	if h.Store.Info().ID != "" {
		return nil
	}
	_, err := h.LoadRoster(c.UserContext(), h.Now())
	return err
}

// HandleHealth reports liveness and the current load.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"load":   h.Store.Info(),
	})
}

type loginRequest struct {
	AdmissionNumber string `json:"admissionNumber"`
}

type loginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	StudentID string `json:"studentId"`
}

// HandleLogin checks the claimed admission number against the sheet and
// issues a session token. Nothing is verified beyond "this id exists in
// the roster"; the lockout policy is the only brake on guessing.
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	now := h.Now()
	ip := c.IP()

	if locked, remaining := h.Lockouts.Locked(ip, now); locked {
		hours := int(math.Ceil(remaining.Hours()))
		return writeError(c, fiber.StatusLocked,
			"Too many failed attempts. Account locked for "+strconv.Itoa(hours)+" hour(s).")
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.AdmissionNumber) == "" {
		return writeError(c, fiber.StatusBadRequest, "admissionNumber is required")
	}

	id, err := auth.ParseAdmissionNumber(req.AdmissionNumber, h.Cfg.AdmissionPrefix)
	if err != nil {
		return h.failLogin(c, ip, now, "Invalid admission number format.")
	}

	text, err := h.Fetcher.Fetch(c.UserContext())
	if err != nil {
		// A network error is not the user's fault; no attempt is charged.
		return writeError(c, fiber.StatusBadGateway, "Network error. Please try again later.")
	}

	rec, err := lookup.FindByID(text, id, now)
	switch {
	case errors.Is(err, roster.ErrNotFound):
		return h.failLogin(c, ip, now, "Invalid admission number. Not authorized to access this system.")
	case err != nil:
		return writeError(c, fiber.StatusInternalServerError, "System configuration error. Please contact administrator.")
	}

	token, err := h.Tokens.Issue(rec.ID)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create session.")
	}

	h.Lockouts.Reset(ip)
	return c.JSON(loginResponse{Success: true, Token: token, StudentID: rec.ID})
}

func (h *Handler) failLogin(c *fiber.Ctx, ip string, now time.Time, msg string) error {
	remaining, locked := h.Lockouts.Fail(ip, now)
	if locked {
		return writeError(c, fiber.StatusLocked,
			"Too many failed attempts. Account locked for "+strconv.Itoa(h.Cfg.LockoutHours)+" hours.")
	}
	return c.Status(fiber.StatusUnauthorized).JSON(errorBody{
		Success:           false,
		Error:             msg,
		RemainingAttempts: &remaining,
	})
}

// RequireAuth validates the bearer token and stashes the claimed student
// id for downstream handlers.
func (h *Handler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return writeError(c, fiber.StatusUnauthorized, "authentication required")
	}

	studentID, err := h.Tokens.Validate(token)
	if err != nil {
		return writeError(c, fiber.StatusUnauthorized, "session expired or invalid; please log in again")
	}

	c.Locals("studentId", studentID)
	return c.Next()
}
