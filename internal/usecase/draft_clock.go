package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/domain/user"
)

func (s *DraftService) PauseClock(ctx context.Context, principal user.Principal, sessionID string) (draft.ClockView, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.PauseClock", sessionAttr(sessionID))
	defer span.End()

	return s.updateClock(ctx, principal, sessionID, "pause", func(state draft.ClockState, now time.Time) draft.ClockState {
		return state.Pause(now)
	})
}

func (s *DraftService) ResumeClock(ctx context.Context, principal user.Principal, sessionID string) (draft.ClockView, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.ResumeClock", sessionAttr(sessionID))
	defer span.End()

	return s.updateClock(ctx, principal, sessionID, "resume", func(state draft.ClockState, now time.Time) draft.ClockState {
		return state.Resume(now)
	})
}

// RestartClock resets the countdown to the full duration.
func (s *DraftService) RestartClock(ctx context.Context, principal user.Principal, sessionID string) (draft.ClockView, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.RestartClock", sessionAttr(sessionID))
	defer span.End()

	return s.updateClock(ctx, principal, sessionID, "restart", func(state draft.ClockState, now time.Time) draft.ClockState {
		return state.Reset(now)
	})
}

func (s *DraftService) updateClock(
	ctx context.Context,
	principal user.Principal,
	sessionID string,
	action string,
	apply func(draft.ClockState, time.Time) draft.ClockState,
) (draft.ClockView, error) {
	if err := requireAdmin(principal); err != nil {
		return draft.ClockView{}, err
	}
	unlock, err := s.lockSession(ctx, sessionID)
	if err != nil {
		return draft.ClockView{}, err
	}
	defer unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return draft.ClockView{}, err
	}
	if session.Status != draft.StatusInProgress {
		return draft.ClockView{}, fmt.Errorf("%w: session is %s", draft.ErrSessionNotInProgress, session.Status)
	}

	slots, err := s.ledger.ListSlots(ctx, session.ID)
	if err != nil {
		return draft.ClockView{}, storageErr("list draft slots", err)
	}
	state, err := s.loadClock(ctx, session, slots)
	if err != nil {
		return draft.ClockView{}, err
	}

	now := s.clock.Now().UTC()
	state = apply(state, now)
	if err := s.clocks.Save(ctx, session.ID, state); err != nil {
		return draft.ClockView{}, storageErr("save turn clock", err)
	}
	s.scheduleExpiry(session.ID, state, now)

	s.logger.InfoContext(ctx, "draft clock updated",
		"session_id", session.ID,
		"action", action,
		"paused", state.Paused,
		"remaining_seconds", int(state.Remaining(now)/time.Second),
	)
	return state.View(now, true), nil
}

// loadClock returns the stored baseline or rebuilds one from the ledger: a
// turn starts at the last assignment, or at session start when nothing is
// filled yet.
func (s *DraftService) loadClock(ctx context.Context, session draft.Session, slots []draft.PickRecord) (draft.ClockState, error) {
	state, ok, err := s.clocks.Load(ctx, session.ID)
	if err != nil {
		return draft.ClockState{}, storageErr("load turn clock", err)
	}
	if ok {
		return state, nil
	}

	base := session.CreatedAt
	if session.StartedAt != nil {
		base = *session.StartedAt
	}
	for _, record := range slots {
		if record.AssignedAt != nil && record.AssignedAt.After(base) {
			base = *record.AssignedAt
		}
	}
	return draft.NewClockState(s.turnDuration(session.Mode), base), nil
}

// resetClock restarts the countdown after the current turn moved. Clock
// state is ephemeral, so failures are logged and never fail the mutation.
func (s *DraftService) resetClock(ctx context.Context, session draft.Session, now time.Time) {
	state, ok, err := s.clocks.Load(ctx, session.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "load turn clock failed", "session_id", session.ID, "error", err)
	}
	if !ok {
		state = draft.NewClockState(s.turnDuration(session.Mode), now)
	}
	s.saveClock(ctx, session, state.Reset(now))
}

func (s *DraftService) saveClock(ctx context.Context, session draft.Session, state draft.ClockState) {
	if err := s.clocks.Save(ctx, session.ID, state); err != nil {
		s.logger.WarnContext(ctx, "save turn clock failed", "session_id", session.ID, "error", err)
	}
	s.scheduleExpiry(session.ID, state, s.clock.Now().UTC())
}

func (s *DraftService) dropClock(ctx context.Context, session draft.Session) {
	s.timers.stop(session.ID)
	if err := s.clocks.Delete(ctx, session.ID); err != nil {
		s.logger.WarnContext(ctx, "delete turn clock failed", "session_id", session.ID, "error", err)
	}
}

func (s *DraftService) scheduleExpiry(sessionID string, state draft.ClockState, now time.Time) {
	remaining := state.Remaining(now)
	if state.Paused || remaining <= 0 {
		s.timers.stop(sessionID)
		return
	}
	s.timers.schedule(sessionID, remaining, func() {
		s.onTurnExpired(sessionID)
	})
}

// onTurnExpired runs on the timer goroutine. It re-checks persisted state so
// a turn that moved or a clock that was paused in the meantime is ignored.
func (s *DraftService) onTurnExpired(sessionID string) {
	ctx := context.Background()

	session, ok, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil || !ok || session.Status != draft.StatusInProgress {
		return
	}
	slots, err := s.ledger.ListSlots(ctx, sessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "turn expiry check failed", "session_id", sessionID, "error", err)
		return
	}
	state, err := s.loadClock(ctx, session, slots)
	if err != nil {
		s.logger.WarnContext(ctx, "turn expiry check failed", "session_id", sessionID, "error", err)
		return
	}
	now := s.clock.Now().UTC()
	if !state.Expired(now) || state.Paused {
		return
	}
	turn, ok := draft.RecoverSequencer(slots).CurrentTurn()
	if !ok {
		return
	}

	s.policy.OnTurnExpired(ctx, TurnExpired{
		SessionID: sessionID,
		Turn:      turn,
		ExpiredAt: now,
	})
}
