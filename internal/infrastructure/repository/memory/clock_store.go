package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-draft/internal/domain/draft"
)

// ClockStore holds turn clock baselines for a single API replica.
type ClockStore struct {
	mu     sync.RWMutex
	states map[string]draft.ClockState
}

func NewClockStore() *ClockStore {
	return &ClockStore{states: make(map[string]draft.ClockState)}
}

func (s *ClockStore) Load(_ context.Context, sessionID string) (draft.ClockState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[sessionID]
	return state, ok, nil
}

func (s *ClockStore) Save(_ context.Context, sessionID string, state draft.ClockState) error {
	s.mu.Lock()
	s.states[sessionID] = state
	s.mu.Unlock()
	return nil
}

func (s *ClockStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.states, sessionID)
	s.mu.Unlock()
	return nil
}
