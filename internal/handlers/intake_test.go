package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wisecrew/api/internal/platform/idempotency"
	"github.com/wisecrew/api/internal/platform/kv"
	"github.com/wisecrew/api/internal/repositories/kvrepo"
	"github.com/wisecrew/api/internal/services"
)

type harness struct {
	router chi.Router
	store  kv.Store
	now    time.Time
}

type harnessOptions struct {
	store        kv.Store
	intakeOpts   []IntakeOption
	routerOpts   []Option
	randomDigits func() int
}

func newHarness(t *testing.T, opts harnessOptions) *harness {
	t.Helper()

	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	store := opts.store
	if store == nil {
		store = kv.NewMemoryStore()
	}

	repo, err := kvrepo.NewSubmissionRepository(store, "wisecrew_apps")
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	digits := opts.randomDigits
	if digits == nil {
		digits = func() int { return 4242 }
	}

	submissions, err := services.NewSubmissionService(services.SubmissionServiceDeps{
		Repo:         repo,
		Clock:        func() time.Time { return now },
		RandomDigits: digits,
	})
	if err != nil {
		t.Fatalf("new submission service: %v", err)
	}

	counter := 0
	intake, err := services.NewIntakeService(services.IntakeServiceDeps{
		Submissions: submissions,
		Clock:       func() time.Time { return now },
		IDGenerator: func() string {
			counter++
			return fmt.Sprintf("session-%d", counter)
		},
	})
	if err != nil {
		t.Fatalf("new intake service: %v", err)
	}

	intakeHandlers := NewIntakeHandlers(intake, opts.intakeOpts...)
	routerOpts := append([]Option{WithIntakeRoutes(intakeHandlers.Routes)}, opts.routerOpts...)

	return &harness{
		router: NewRouter(routerOpts...),
		store:  store,
		now:    now,
	}
}

func (h *harness) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	rr := httptest.NewRecorder()
	h.router.ServeHTTP(rr, req)
	return rr
}

func decodeSession(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse session response: %v (body %s)", err, rr.Body.String())
	}
	return payload
}

func openTestSession(t *testing.T, h *harness, body any) string {
	t.Helper()

	rr := h.do(t, http.MethodPost, "/api/v1/intake/sessions", body, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 opening session, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeSession(t, rr)
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatalf("expected session id in response, got %v", payload)
	}
	return id
}

func patchFields(t *testing.T, h *harness, sessionID string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return h.do(t, http.MethodPatch, "/api/v1/intake/sessions/"+sessionID+"/fields", map[string]any{"fields": fields}, nil)
}

func advance(t *testing.T, h *harness, sessionID string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return h.do(t, http.MethodPost, "/api/v1/intake/sessions/"+sessionID+":advance", nil, headers)
}

func fillValidSteps(t *testing.T, h *harness, sessionID string) {
	t.Helper()

	rr := patchFields(t, h, sessionID, map[string]string{
		"fullName": "Priya Sharma",
		"email":    "priya@example.com",
		"phone":    "9876543210",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("personal fields rejected: %d %s", rr.Code, rr.Body.String())
	}
	if rr := advance(t, h, sessionID, map[string]string{"Idempotency-Key": sessionID + "-step-1"}); rr.Code != http.StatusOK {
		t.Fatalf("advance past personal failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = patchFields(t, h, sessionID, map[string]string{
		"college":   "IIT Madras",
		"startDate": "2025-07-01",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("background fields rejected: %d %s", rr.Code, rr.Body.String())
	}
	if rr := advance(t, h, sessionID, map[string]string{"Idempotency-Key": sessionID + "-step-2"}); rr.Code != http.StatusOK {
		t.Fatalf("advance past background failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = patchFields(t, h, sessionID, map[string]string{
		"reason": "I want to build production systems.",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("reason rejected: %d %s", rr.Code, rr.Body.String())
	}
}

func TestOpenSessionDefaults(t *testing.T) {
	h := newHarness(t, harnessOptions{})

	rr := h.do(t, http.MethodPost, "/api/v1/intake/sessions", map[string]any{"role": "Backend Intern", "category": "Internship"}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	payload := decodeSession(t, rr)
	if got := payload["step"]; got != float64(1) {
		t.Fatalf("expected step 1, got %v", got)
	}

	fields, ok := payload["fields"].(map[string]any)
	if !ok {
		t.Fatalf("expected fields object, got %v", payload["fields"])
	}
	if fields["status"] != "Student" {
		t.Fatalf("expected default status Student, got %v", fields["status"])
	}
	if fields["mode"] != "Online" {
		t.Fatalf("expected default mode Online, got %v", fields["mode"])
	}
	if fields["source"] != "Website" {
		t.Fatalf("expected default source Website, got %v", fields["source"])
	}

	ctxPayload, _ := payload["context"].(map[string]any)
	if ctxPayload["role"] != "Backend Intern" {
		t.Fatalf("expected role in context, got %v", ctxPayload)
	}
}

func TestAdvanceRejectsInvalidPersonalStep(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	sessionID := openTestSession(t, h, nil)

	rr := advance(t, h, sessionID, nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}

	var envelope struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("parse error envelope: %v", err)
	}
	if envelope.Error != "validation_failed" {
		t.Fatalf("expected validation_failed, got %q", envelope.Error)
	}
	if envelope.Fields["fullName"] != "Full Name is required" {
		t.Fatalf("unexpected fullName message: %q", envelope.Fields["fullName"])
	}
	if envelope.Fields["email"] != "Valid Email is required" {
		t.Fatalf("unexpected email message: %q", envelope.Fields["email"])
	}
	if envelope.Fields["phone"] != "Valid 10-digit Phone is required" {
		t.Fatalf("unexpected phone message: %q", envelope.Fields["phone"])
	}

	rr = h.do(t, http.MethodGet, "/api/v1/intake/sessions/"+sessionID, nil, nil)
	payload := decodeSession(t, rr)
	if payload["step"] != float64(1) {
		t.Fatalf("expected session to stay on step 1, got %v", payload["step"])
	}
}

func TestFullIntakeFlowProducesSubmission(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	sessionID := openTestSession(t, h, map[string]any{"role": "Backend Intern", "category": "Internship"})
	fillValidSteps(t, h, sessionID)

	rr := advance(t, h, sessionID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", rr.Code, rr.Body.String())
	}

	payload := decodeSession(t, rr)
	if payload["step"] != float64(4) {
		t.Fatalf("expected terminal step 4, got %v", payload["step"])
	}

	result, ok := payload["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result in payload, got %v", payload)
	}
	if result["persisted"] != true {
		t.Fatalf("expected persisted true, got %v", result["persisted"])
	}
	submission, _ := result["submission"].(map[string]any)
	if submission["id"] != "WISE-INT-20250615-4242" {
		t.Fatalf("unexpected submission id %v", submission["id"])
	}
	if submission["status"] != "Submitted" {
		t.Fatalf("expected status Submitted, got %v", submission["status"])
	}

	rr = advance(t, h, sessionID, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 advancing a completed session, got %d", rr.Code)
	}
}

func TestRetreatDoesNotValidate(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	sessionID := openTestSession(t, h, nil)

	rr := patchFields(t, h, sessionID, map[string]string{
		"fullName": "Priya Sharma",
		"email":    "priya@example.com",
		"phone":    "9876543210",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("patch failed: %d", rr.Code)
	}
	if rr := advance(t, h, sessionID, nil); rr.Code != http.StatusOK {
		t.Fatalf("advance failed: %d", rr.Code)
	}

	rr = h.do(t, http.MethodPost, "/api/v1/intake/sessions/"+sessionID+":retreat", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("retreat failed: %d %s", rr.Code, rr.Body.String())
	}
	payload := decodeSession(t, rr)
	if payload["step"] != float64(1) {
		t.Fatalf("expected step 1 after retreat, got %v", payload["step"])
	}
	fields, _ := payload["fields"].(map[string]any)
	if fields["fullName"] != "Priya Sharma" {
		t.Fatalf("expected fields preserved across retreat, got %v", fields["fullName"])
	}

	rr = h.do(t, http.MethodPost, "/api/v1/intake/sessions/"+sessionID+":retreat", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("retreat at first step should be a no-op, got %d", rr.Code)
	}
	if payload := decodeSession(t, rr); payload["step"] != float64(1) {
		t.Fatalf("expected step floor at 1, got %v", payload["step"])
	}
}

func TestSummaryDownload(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	sessionID := openTestSession(t, h, map[string]any{"category": "Job", "role": "Platform Engineer"})

	rr := h.do(t, http.MethodGet, "/api/v1/intake/sessions/"+sessionID+"/summary", nil, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for an open session, got %d", rr.Code)
	}

	fillValidSteps(t, h, sessionID)
	if rr := advance(t, h, sessionID, nil); rr.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = h.do(t, http.MethodGet, "/api/v1/intake/sessions/"+sessionID+"/summary", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain, got %q", ct)
	}
	disposition := rr.Header().Get("Content-Disposition")
	if disposition != `attachment; filename="Wisecrew_App_WISE-JOB-20250615-4242.txt"` {
		t.Fatalf("unexpected disposition %q", disposition)
	}
	content := rr.Body.String()
	if !strings.Contains(content, "WISECREW SOLUTIONS APPLICATION SUMMARY") {
		t.Fatalf("summary missing title:\n%s", content)
	}
	if !strings.Contains(content, "Thank you for applying to Wisecrew Solutions.") {
		t.Fatalf("summary missing closing line:\n%s", content)
	}
}

func TestAdvanceIdempotencyGuardReplays(t *testing.T) {
	guard := idempotency.Middleware(idempotency.NewMemoryStore())
	h := newHarness(t, harnessOptions{
		intakeOpts: []IntakeOption{WithSubmitGuard(guard)},
	})
	sessionID := openTestSession(t, h, nil)
	fillValidSteps(t, h, sessionID)

	headers := map[string]string{"Idempotency-Key": "submit-once"}
	first := advance(t, h, sessionID, headers)
	if first.Code != http.StatusOK {
		t.Fatalf("first submit failed: %d %s", first.Code, first.Body.String())
	}

	second := advance(t, h, sessionID, headers)
	if second.Code != http.StatusOK {
		t.Fatalf("replayed submit failed: %d %s", second.Code, second.Body.String())
	}
	if second.Header().Get("X-Idempotent-Replay") != "true" {
		t.Fatalf("expected replay header on second submit")
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("expected identical replayed body")
	}
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.Join(kv.ErrUnavailable, errors.New("disk offline"))
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.Join(kv.ErrUnavailable, errors.New("disk offline"))
}

func TestSubmitSurvivesStorageOutage(t *testing.T) {
	h := newHarness(t, harnessOptions{store: brokenStore{}})
	sessionID := openTestSession(t, h, nil)
	fillValidSteps(t, h, sessionID)

	rr := advance(t, h, sessionID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("submit should succeed without storage, got %d: %s", rr.Code, rr.Body.String())
	}

	payload := decodeSession(t, rr)
	result, _ := payload["result"].(map[string]any)
	if result == nil {
		t.Fatalf("expected result despite outage, got %v", payload)
	}
	if result["persisted"] != false {
		t.Fatalf("expected persisted false, got %v", result["persisted"])
	}
	submission, _ := result["submission"].(map[string]any)
	if submission["id"] != "WISE-INT-20250615-4242" {
		t.Fatalf("expected id assigned despite outage, got %v", submission["id"])
	}

	summary := h.do(t, http.MethodGet, "/api/v1/intake/sessions/"+sessionID+"/summary", nil, nil)
	if summary.Code != http.StatusOK {
		t.Fatalf("summary should not depend on storage, got %d", summary.Code)
	}
}

func TestSessionNotFound(t *testing.T) {
	h := newHarness(t, harnessOptions{})

	rr := h.do(t, http.MethodGet, "/api/v1/intake/sessions/missing", nil, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("parse envelope: %v", err)
	}
	if envelope.Error != "session_not_found" {
		t.Fatalf("expected session_not_found, got %q", envelope.Error)
	}
}

func TestOpenSessionRateLimited(t *testing.T) {
	h := newHarness(t, harnessOptions{
		intakeOpts: []IntakeOption{WithIntakeRateLimit(2, time.Minute)},
	})

	for i := 0; i < 2; i++ {
		rr := h.do(t, http.MethodPost, "/api/v1/intake/sessions", nil, nil)
		if rr.Code != http.StatusCreated {
			t.Fatalf("request %d expected 201, got %d", i+1, rr.Code)
		}
	}

	rr := h.do(t, http.MethodPost, "/api/v1/intake/sessions", nil, nil)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past the limit, got %d", rr.Code)
	}
}

func TestUpdateFieldsRejectsUnknownField(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	sessionID := openTestSession(t, h, nil)

	rr := patchFields(t, h, sessionID, map[string]string{"favouriteColour": "teal"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d: %s", rr.Code, rr.Body.String())
	}
}
