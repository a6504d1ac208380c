package idempotency

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestMiddlewareReplaysCompletedResponse(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"WISE-INT-20250101-1234"}`))
	})

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	mw := Middleware(NewMemoryStore(), WithClock(func() time.Time { return now }))
	server := mw(handler)

	makeRequest := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/intake/sessions/abc:advance", strings.NewReader(`{}`))
		req.RemoteAddr = "203.0.113.7:4821"
		req.Header.Set("Idempotency-Key", "submit-once")
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		return rec
	}

	first := makeRequest()
	if first.Code != http.StatusCreated {
		t.Fatalf("unexpected first status: %d", first.Code)
	}
	if first.Header().Get(replayHeaderName) != "" {
		t.Fatal("first response should not be marked as replay")
	}

	second := makeRequest()
	if second.Code != http.StatusCreated {
		t.Fatalf("unexpected replay status: %d", second.Code)
	}
	if second.Header().Get(replayHeaderName) != "true" {
		t.Fatal("replay response missing replay header")
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replay body mismatch: %s vs %s", second.Body.String(), first.Body.String())
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("handler invoked %d times, want 1", got)
	}
}

func TestMiddlewareRequiresKey(t *testing.T) {
	mw := Middleware(NewMemoryStore())
	server := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/intake/sessions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestMiddlewareRejectsReusedKeyWithDifferentBody(t *testing.T) {
	mw := Middleware(NewMemoryStore())
	server := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/intake/sessions/abc:advance", strings.NewReader(body))
		req.RemoteAddr = "203.0.113.7:4821"
		req.Header.Set("Idempotency-Key", "reused")
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(`{"a":1}`); rec.Code != http.StatusOK {
		t.Fatalf("unexpected first status: %d", rec.Code)
	}
	if rec := send(`{"a":2}`); rec.Code != http.StatusConflict {
		t.Fatalf("expected conflict for fingerprint mismatch, got %d", rec.Code)
	}
}

func TestMiddlewareIgnoresNonMutatingMethods(t *testing.T) {
	mw := Middleware(NewMemoryStore())
	server := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
