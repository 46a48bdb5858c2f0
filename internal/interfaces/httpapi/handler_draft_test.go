package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/league-draft/internal/domain/roster"
	"github.com/riskibarqy/league-draft/internal/domain/user"
	"github.com/riskibarqy/league-draft/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-draft/internal/platform/logging"
	"github.com/riskibarqy/league-draft/internal/usecase"
)

type fakeVerifier map[string]user.Principal

func (f fakeVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := f[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       map[string]any `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func (e envelope) reason() string {
	if e.Error == nil || len(e.Error.Errors) == 0 {
		return ""
	}
	return e.Error.Errors[0].Reason
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	players := make([]roster.Player, 0, 8)
	for i := 1; i <= 8; i++ {
		players = append(players, roster.Player{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Player %d", i), Position: "MID"})
	}

	svc := usecase.NewDraftService(usecase.DraftServiceDeps{
		Sessions: memory.NewDraftSessionRepository(),
		Ledger:   memory.NewDraftLedger(),
		Clocks:   memory.NewClockStore(),
		Roster:   memory.NewRosterRepository(players),
		Waivers:  memory.NewWaiverRepository(nil),
		Clock:    clockwork.NewFakeClock(),
		Logger:   logging.NewNop(),
	}, usecase.DraftServiceConfig{})
	t.Cleanup(svc.Close)

	verifier := fakeVerifier{
		"admin-token":  {UserID: "commish", Roles: []string{"admin"}, IsAdmin: true},
		"viewer-token": {UserID: "viewer", Roles: []string{"member"}},
	}
	return NewRouter(NewHandler(svc, logging.NewNop()), verifier, logging.NewNop(), true, []string{"*"})
}

func call(t *testing.T, router http.Handler, method, path, token, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded envelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("%s %s: unmarshal response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, decoded
}

func TestDraftRoutes_RequireBearerToken(t *testing.T) {
	router := newTestRouter(t)

	code, body := call(t, router, http.MethodGet, "/v1/drafts", "", "")
	if code != http.StatusUnauthorized || body.reason() != "unauthorized" {
		t.Fatalf("expected 401 unauthorized, got %d %s", code, body.reason())
	}
	code, _ = call(t, router, http.MethodGet, "/v1/drafts", "stolen-token", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", code)
	}
	code, _ = call(t, router, http.MethodGet, "/healthz", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected open health check, got %d", code)
	}
}

func TestDraftRoutes_ViewerGetsPermissionDeniedBeforeValidation(t *testing.T) {
	router := newTestRouter(t)

	code, body := call(t, router, http.MethodPost, "/v1/drafts", "viewer-token", `{"unexpected":true}`)
	if code != http.StatusForbidden || body.reason() != "permissionDenied" {
		t.Fatalf("expected 403 permissionDenied, got %d %s", code, body.reason())
	}
	code, _ = call(t, router, http.MethodDelete, "/v1/drafts/missing/picks/last", "viewer-token", "")
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer undo, got %d", code)
	}
}

func TestDraftRoutes_SnakeDraftFlow(t *testing.T) {
	router := newTestRouter(t)

	code, body := call(t, router, http.MethodPost, "/v1/drafts", "admin-token",
		`{"name":"Preseason","mode":"snake","round_count":2,"base_order":["A","B","C"]}`)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %+v", code, body.Error)
	}
	sessionID, _ := body.Data["id"].(string)
	if sessionID == "" || body.Data["status"] != "scheduled" {
		t.Fatalf("unexpected created session: %+v", body.Data)
	}
	base := "/v1/drafts/" + sessionID

	code, body = call(t, router, http.MethodPost, base+"/picks", "admin-token", `{"subject_id":"p1"}`)
	if code != http.StatusConflict || body.reason() != "sessionNotInProgress" {
		t.Fatalf("expected 409 before start, got %d %s", code, body.reason())
	}

	if code, _ = call(t, router, http.MethodPost, base+"/start", "admin-token", ""); code != http.StatusOK {
		t.Fatalf("expected start to succeed, got %d", code)
	}
	code, body = call(t, router, http.MethodPost, base+"/start", "admin-token", "")
	if code != http.StatusConflict || body.reason() != "alreadyStarted" {
		t.Fatalf("expected 409 alreadyStarted, got %d %s", code, body.reason())
	}

	code, body = call(t, router, http.MethodPost, base+"/picks", "admin-token", `{"subject_id":"p1","round":1,"pick":1}`)
	if code != http.StatusOK {
		t.Fatalf("expected pick to succeed, got %d %+v", code, body.Error)
	}
	next, _ := body.Data["next_turn"].(map[string]any)
	if next["participant_id"] != "B" {
		t.Fatalf("expected B on the clock, got %+v", next)
	}

	code, body = call(t, router, http.MethodPost, base+"/picks", "admin-token", `{"subject_id":"p2","round":1,"pick":1}`)
	if code != http.StatusConflict || body.reason() != "notCurrentTurn" {
		t.Fatalf("expected 409 notCurrentTurn for stale coordinate, got %d %s", code, body.reason())
	}
	code, body = call(t, router, http.MethodPost, base+"/picks", "admin-token", `{"subject_id":"p1"}`)
	if code != http.StatusConflict || body.reason() != "subjectAlreadyAssigned" {
		t.Fatalf("expected 409 subjectAlreadyAssigned, got %d %s", code, body.reason())
	}
	code, body = call(t, router, http.MethodPost, base+"/picks", "admin-token", `{"subject_id":"p2","extra":1}`)
	if code != http.StatusBadRequest || body.reason() != "invalidInput" {
		t.Fatalf("expected 400 for unknown field, got %d %s", code, body.reason())
	}

	code, body = call(t, router, http.MethodGet, base+"/snapshot", "viewer-token", "")
	if code != http.StatusOK {
		t.Fatalf("expected viewer snapshot, got %d", code)
	}
	if filled, _ := body.Data["filled_count"].(float64); filled != 1 {
		t.Fatalf("expected 1 filled slot, got %v", body.Data["filled_count"])
	}
	if pool, _ := body.Data["pool"].([]any); len(pool) != 7 {
		t.Fatalf("expected 7 candidates left, got %d", len(pool))
	}

	code, body = call(t, router, http.MethodPost, base+"/clock/pause", "admin-token", "")
	if code != http.StatusOK || body.Data["paused"] != true {
		t.Fatalf("expected paused clock, got %d %+v", code, body.Data)
	}

	code, body = call(t, router, http.MethodDelete, base+"/picks/last", "admin-token", "")
	if code != http.StatusOK {
		t.Fatalf("expected undo to succeed, got %d", code)
	}
	removed, _ := body.Data["removed"].(map[string]any)
	if removed["subject_id"] != "p1" {
		t.Fatalf("expected p1 removed, got %+v", removed)
	}
	code, body = call(t, router, http.MethodDelete, base+"/picks/last", "admin-token", "")
	if code != http.StatusConflict || body.reason() != "nothingToUndo" {
		t.Fatalf("expected 409 nothingToUndo, got %d %s", code, body.reason())
	}

	code, body = call(t, router, http.MethodPost, base+"/clear", "admin-token", `{}`)
	if code != http.StatusBadRequest || body.reason() != "confirmationRequired" {
		t.Fatalf("expected 400 confirmationRequired, got %d %s", code, body.reason())
	}
	if code, _ = call(t, router, http.MethodPost, base+"/clear", "admin-token", `{"confirm":true}`); code != http.StatusOK {
		t.Fatalf("expected clear to succeed, got %d", code)
	}
	code, body = call(t, router, http.MethodPost, base+"/complete", "admin-token", "")
	if code != http.StatusBadRequest {
		t.Fatalf("expected explicit completion of a snake draft to be rejected, got %d %s", code, body.reason())
	}
}

func TestDraftRoutes_UnknownSession(t *testing.T) {
	router := newTestRouter(t)

	code, body := call(t, router, http.MethodGet, "/v1/drafts/missing", "viewer-token", "")
	if code != http.StatusNotFound || body.reason() != "sessionNotFound" {
		t.Fatalf("expected 404 sessionNotFound, got %d %s", code, body.reason())
	}
	code, _ = call(t, router, http.MethodGet, "/v1/drafts/missing/snapshot", "viewer-token", "")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for snapshot, got %d", code)
	}
}

func TestOpenAPIServedWhenSwaggerEnabled(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "League Draft API") {
		t.Fatalf("expected openapi document, got %d", rec.Code)
	}
}
