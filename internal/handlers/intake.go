package handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wisecrew/api/internal/domain"
	"github.com/wisecrew/api/internal/platform/httpx"
	"github.com/wisecrew/api/internal/platform/requestctx"
	"github.com/wisecrew/api/internal/services"
)

// IntakeHandlers exposes the form session lifecycle.
type IntakeHandlers struct {
	svc         services.IntakeService
	bodyLimit   int64
	limiter     rateLimiter
	submitGuard func(http.Handler) http.Handler
}

// IntakeOption customises the handler set.
type IntakeOption func(*IntakeHandlers)

// WithIntakeBodyLimit caps the accepted request body size.
func WithIntakeBodyLimit(limit int64) IntakeOption {
	return func(h *IntakeHandlers) {
		if limit > 0 {
			h.bodyLimit = limit
		}
	}
}

// WithIntakeRateLimit applies a per-client limit to session creation.
func WithIntakeRateLimit(limit int, window time.Duration) IntakeOption {
	return func(h *IntakeHandlers) {
		h.limiter = newSimpleRateLimiter(limit, window, nil)
	}
}

// WithSubmitGuard wraps the advance endpoint, typically with the idempotency
// middleware so a retried submit replays instead of minting a second record.
func WithSubmitGuard(mw func(http.Handler) http.Handler) IntakeOption {
	return func(h *IntakeHandlers) {
		h.submitGuard = mw
	}
}

// NewIntakeHandlers wires the handler set to the intake service.
func NewIntakeHandlers(svc services.IntakeService, opts ...IntakeOption) *IntakeHandlers {
	h := &IntakeHandlers{
		svc:       svc,
		bodyLimit: defaultBodyLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes registers the intake endpoints.
func (h *IntakeHandlers) Routes(r chi.Router) {
	r.Post("/sessions", h.openSession)
	r.Get("/sessions/{sessionID}", h.getSession)
	r.Patch("/sessions/{sessionID}/fields", h.updateFields)
	if h.submitGuard != nil {
		r.With(h.submitGuard).Post("/sessions/{sessionID}:advance", h.advance)
	} else {
		r.Post("/sessions/{sessionID}:advance", h.advance)
	}
	r.Post("/sessions/{sessionID}:retreat", h.retreat)
	r.Get("/sessions/{sessionID}/summary", h.summary)
}

type openSessionRequest struct {
	Role     string `json:"role"`
	Category string `json:"category"`
}

type updateFieldsRequest struct {
	Fields map[string]string `json:"fields"`
}

type sessionContextPayload struct {
	Role     string `json:"role"`
	Category string `json:"category"`
}

type submissionPayload struct {
	ID          string `json:"id"`
	Category    string `json:"type"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	SubmittedAt string `json:"date"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type submissionResultPayload struct {
	Submission submissionPayload `json:"submission"`
	Persisted  bool              `json:"persisted"`
}

type sessionPayload struct {
	ID          string                   `json:"id"`
	Step        int                      `json:"step"`
	Context     sessionContextPayload    `json:"context"`
	Fields      domain.FormFields        `json:"fields"`
	FieldErrors map[string]string        `json:"fieldErrors"`
	Result      *submissionResultPayload `json:"result,omitempty"`
	CreatedAt   string                   `json:"createdAt"`
	UpdatedAt   string                   `json:"updatedAt"`
}

func buildSubmissionPayload(s domain.Submission) submissionPayload {
	return submissionPayload{
		ID:          s.ID,
		Category:    string(s.Category),
		Role:        s.Role,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		SubmittedAt: s.SubmittedAt,
		Status:      string(s.Status),
		CreatedAt:   formatTime(s.CreatedAt),
	}
}

func buildSessionPayload(session domain.FormSession) sessionPayload {
	payload := sessionPayload{
		ID:   session.ID,
		Step: session.Step,
		Context: sessionContextPayload{
			Role:     session.Context.Role,
			Category: session.Context.RawCategory,
		},
		Fields:      session.Fields,
		FieldErrors: session.FieldErrors,
		CreatedAt:   formatTime(session.CreatedAt),
		UpdatedAt:   formatTime(session.UpdatedAt),
	}
	if payload.FieldErrors == nil {
		payload.FieldErrors = map[string]string{}
	}
	if session.Result != nil {
		payload.Result = &submissionResultPayload{
			Submission: buildSubmissionPayload(session.Result.Submission),
			Persisted:  session.Result.Persisted,
		}
	}
	return payload
}

func (h *IntakeHandlers) openSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.limiter != nil && !h.limiter.Allow(clientKey(r)) {
		httpx.WriteError(ctx, w, httpx.NewError("rate_limited", "too many sessions, slow down", http.StatusTooManyRequests))
		return
	}

	var req openSessionRequest
	if r.ContentLength != 0 {
		if err := decodeJSONBody(r, h.bodyLimit, &req); err != nil {
			writeBodyError(ctx, w, err)
			return
		}
	}

	session, err := h.svc.Open(ctx, services.OpenSessionCommand{
		Role:     req.Role,
		Category: req.Category,
	})
	if err != nil {
		writeIntakeError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusCreated, buildSessionPayload(session))
}

func (h *IntakeHandlers) getSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.svc.Get(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		writeIntakeError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, buildSessionPayload(session))
}

func (h *IntakeHandlers) updateFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateFieldsRequest
	if err := decodeJSONBody(r, h.bodyLimit, &req); err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	session, err := h.svc.UpdateFields(ctx, chi.URLParam(r, "sessionID"), req.Fields)
	if err != nil {
		writeIntakeError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, buildSessionPayload(session))
}

func (h *IntakeHandlers) advance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.svc.Advance(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		if errors.Is(err, services.ErrStepValidationFailed) {
			payload := buildSessionPayload(session)
			httpx.WriteError(ctx, w, httpx.ValidationError("form step validation failed", payload.FieldErrors))
			return
		}
		writeIntakeError(ctx, w, err)
		return
	}

	if session.Terminal() && session.Result != nil && !session.Result.Persisted {
		requestctx.Logger(ctx).Warn("submission accepted without durable record",
			zap.String("submission_id", session.Result.Submission.ID),
		)
	}
	writeJSONResponse(ctx, w, http.StatusOK, buildSessionPayload(session))
}

func (h *IntakeHandlers) retreat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.svc.Retreat(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		writeIntakeError(ctx, w, err)
		return
	}
	writeJSONResponse(ctx, w, http.StatusOK, buildSessionPayload(session))
}

func (h *IntakeHandlers) summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	export, err := h.svc.Summary(ctx, chi.URLParam(r, "sessionID"))
	if err != nil {
		writeIntakeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.Content))
}

func writeIntakeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("session_not_found", "form session not found", http.StatusNotFound))
	case errors.Is(err, services.ErrIntakeInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrSessionTerminal):
		httpx.WriteError(ctx, w, httpx.NewError("session_completed", "form session already completed", http.StatusConflict))
	case errors.Is(err, services.ErrSessionNotTerminal):
		httpx.WriteError(ctx, w, httpx.NewError("session_incomplete", "form session has not been submitted", http.StatusConflict))
	default:
		requestctx.Logger(ctx).Error("intake request failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "internal server error", http.StatusInternalServerError))
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr)); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
