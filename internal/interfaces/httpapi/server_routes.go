package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

// registerDraftRoutes mounts every draft route behind auth. Reads are open to
// any principal; the service rejects mutations from non-admins.
func registerDraftRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	authed := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAuth(verifier, fn))
	}

	authed("GET /v1/drafts", handler.ListDraftSessions)
	authed("POST /v1/drafts", handler.CreateDraftSession)
	authed("GET /v1/drafts/{sessionID}", handler.GetDraftSession)
	authed("GET /v1/drafts/{sessionID}/snapshot", handler.GetDraftSnapshot)
	authed("POST /v1/drafts/{sessionID}/start", handler.StartDraftSession)
	authed("POST /v1/drafts/{sessionID}/picks", handler.SubmitDraftPick)
	authed("DELETE /v1/drafts/{sessionID}/picks/last", handler.UndoLastDraftPick)
	authed("POST /v1/drafts/{sessionID}/clear", handler.ClearDraft)
	authed("POST /v1/drafts/{sessionID}/complete", handler.CompleteDraftSession)
	authed("POST /v1/drafts/{sessionID}/clock/pause", handler.PauseDraftClock)
	authed("POST /v1/drafts/{sessionID}/clock/resume", handler.ResumeDraftClock)
	authed("POST /v1/drafts/{sessionID}/clock/restart", handler.RestartDraftClock)
}
