package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/domain/user"
	"github.com/riskibarqy/league-draft/internal/usecase"
)

func (h *Handler) ListDraftSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDraftSessions")
	defer span.End()

	sessions, err := h.draftService.ListSessions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list draft sessions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]draftSessionDTO, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, draftSessionToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateDraftSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraftSession")
	defer span.End()

	principal, err := adminPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createDraftSessionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sequence := make([]draft.OrderEntry, 0, len(req.Sequence))
	for _, entry := range req.Sequence {
		sequence = append(sequence, draft.OrderEntry{
			Round:         entry.Round,
			Pick:          entry.Pick,
			ParticipantID: entry.ParticipantID,
		})
	}

	session, err := h.draftService.CreateSession(ctx, principal, usecase.CreateDraftSessionInput{
		Name:       req.Name,
		Mode:       draft.Mode(req.Mode),
		Week:       req.Week,
		RoundCount: req.RoundCount,
		BaseOrder:  req.BaseOrder,
		Sequence:   sequence,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create draft session failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, draftSessionToDTO(session))
}

func (h *Handler) GetDraftSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftSession")
	defer span.End()

	sessionID := r.PathValue("sessionID")
	session, err := h.draftService.GetSession(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftSessionToDTO(session))
}

func (h *Handler) GetDraftSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftSnapshot")
	defer span.End()

	sessionID := r.PathValue("sessionID")
	snapshot, err := h.draftService.Snapshot(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft snapshot failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftSnapshotToDTO(snapshot))
}

func (h *Handler) StartDraftSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartDraftSession")
	defer span.End()

	principal, err := adminPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	session, err := h.draftService.Start(ctx, principal, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "start draft session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftSessionToDTO(session))
}

func (h *Handler) SubmitDraftPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitDraftPick")
	defer span.End()

	principal, err := adminPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	result, err := h.draftService.SubmitPick(ctx, principal, usecase.SubmitPickInput{
		SessionID: sessionID,
		SubjectID: req.SubjectID,
		Round:     req.Round,
		Pick:      req.Pick,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit draft pick failed",
			"session_id", sessionID,
			"subject_id", req.SubjectID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftPickResultToDTO(result))
}

func (h *Handler) UndoLastDraftPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoLastDraftPick")
	defer span.End()

	principal, err := adminPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	result, err := h.draftService.UndoLastPick(ctx, principal, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "undo draft pick failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftUndoResultToDTO(result))
}

func (h *Handler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearDraft")
	defer span.End()

	principal, err := adminPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req clearDraftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	session, err := h.draftService.Clear(ctx, principal, usecase.ClearDraftInput{
		SessionID: sessionID,
		Confirm:   req.Confirm,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "clear draft failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftSessionToDTO(session))
}

func (h *Handler) CompleteDraftSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteDraftSession")
	defer span.End()

	principal, err := adminPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	session, err := h.draftService.Complete(ctx, principal, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "complete draft session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftSessionToDTO(session))
}

func (h *Handler) PauseDraftClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PauseDraftClock")
	defer span.End()

	h.updateDraftClock(w, r.WithContext(ctx), "pause", h.draftService.PauseClock)
}

func (h *Handler) ResumeDraftClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResumeDraftClock")
	defer span.End()

	h.updateDraftClock(w, r.WithContext(ctx), "resume", h.draftService.ResumeClock)
}

func (h *Handler) RestartDraftClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RestartDraftClock")
	defer span.End()

	h.updateDraftClock(w, r.WithContext(ctx), "restart", h.draftService.RestartClock)
}

type clockAction = func(ctx context.Context, principal user.Principal, sessionID string) (draft.ClockView, error)

func (h *Handler) updateDraftClock(w http.ResponseWriter, r *http.Request, action string, apply clockAction) {
	ctx := r.Context()

	principal, err := adminPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	view, err := apply(ctx, principal, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "update draft clock failed", "session_id", sessionID, "action", action, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftClockToDTO(view))
}
