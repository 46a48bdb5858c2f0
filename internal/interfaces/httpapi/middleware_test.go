package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/league-draft/internal/domain/user"
	"github.com/riskibarqy/league-draft/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBearerToken(t *testing.T) {
	cases := map[string]bool{
		"Bearer abc":   true,
		"bearer  abc ": true,
		"":             false,
		"Basic abc":    false,
		"Bearer":       false,
		"Bearer    ":   false,
	}
	for header, ok := range cases {
		token, err := bearerToken(header)
		if ok && (err != nil || token != "abc") {
			t.Fatalf("bearerToken(%q) = %q, %v", header, token, err)
		}
		if !ok && err == nil {
			t.Fatalf("expected bearerToken(%q) to fail", header)
		}
	}
}

func TestRequestLogging_RequestIDAndUser(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := logging.FromZap(zap.New(core))

	verifier := fakeVerifier{"admin-token": {UserID: "commish", IsAdmin: true}}
	inner := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := principalFromContext(r.Context()); !ok {
			t.Errorf("expected principal in request context")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	handler := RequestLogging(logger, inner)

	req := httptest.NewRequest(http.MethodGet, "/v1/drafts", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "req-42" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one access log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "commish" || fields["request_id"] != "req-42" || fields["status"] != int64(http.StatusNoContent) {
		t.Fatalf("unexpected access log fields: %v", fields)
	}
}

func TestRequestLogging_AssignsRequestID(t *testing.T) {
	handler := RequestLogging(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestRecoverPanic(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/drafts", nil).WithContext(context.Background()))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

var _ TokenVerifier = fakeVerifier(map[string]user.Principal{})

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /Healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/drafts", "/v1/drafts/draft-1/snapshot", "/", "/docs"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}
