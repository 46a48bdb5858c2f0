package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/league-draft/internal/domain/draft"
)

type DraftSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]draft.Session
	orders   map[string][]draft.OrderEntry
}

func NewDraftSessionRepository() *DraftSessionRepository {
	return &DraftSessionRepository{
		sessions: make(map[string]draft.Session),
		orders:   make(map[string][]draft.OrderEntry),
	}
}

func (r *DraftSessionRepository) Create(_ context.Context, session draft.Session, order []draft.OrderEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("draft session %s already exists", session.ID)
	}

	r.sessions[session.ID] = session
	r.orders[session.ID] = append([]draft.OrderEntry(nil), order...)
	return nil
}

func (r *DraftSessionRepository) GetByID(_ context.Context, sessionID string) (draft.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	return session, ok, nil
}

func (r *DraftSessionRepository) List(_ context.Context) ([]draft.Session, error) {
	r.mu.RLock()
	out := make([]draft.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		out = append(out, session)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *DraftSessionRepository) ListOrder(_ context.Context, sessionID string) ([]draft.OrderEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]draft.OrderEntry(nil), r.orders[sessionID]...), nil
}

func (r *DraftSessionRepository) UpdateStatus(_ context.Context, sessionID string, from, to draft.Status, at time.Time) (draft.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return draft.Session{}, draft.ErrSessionNotFound
	}
	if session.Status != from {
		return draft.Session{}, fmt.Errorf("%w: expected %s, found %s", draft.ErrStatusConflict, from, session.Status)
	}

	r.sessions[sessionID] = applyStatus(session, to, at)
	return r.sessions[sessionID], nil
}

// applyStatus keeps the lifecycle timestamps in step with the status.
func applyStatus(session draft.Session, to draft.Status, at time.Time) draft.Session {
	session.Status = to
	session.UpdatedAt = at
	switch to {
	case draft.StatusInProgress:
		if session.StartedAt == nil {
			startedAt := at
			session.StartedAt = &startedAt
		}
		session.CompletedAt = nil
	case draft.StatusCompleted:
		completedAt := at
		session.CompletedAt = &completedAt
	}
	return session
}
