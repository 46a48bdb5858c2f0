package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/league-draft/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	players map[string]roster.Player
}

func NewRosterRepository(seed []roster.Player) *RosterRepository {
	players := make(map[string]roster.Player, len(seed))
	for _, p := range seed {
		players[p.ID] = p
	}

	return &RosterRepository{players: players}
}

func (r *RosterRepository) ListUnowned(_ context.Context) ([]roster.Player, error) {
	r.mu.RLock()
	out := make([]roster.Player, 0, len(r.players))
	for _, p := range r.players {
		if p.Owned() {
			continue
		}
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RosterRepository) GetByID(_ context.Context, playerID string) (roster.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *RosterRepository) AssignOwner(_ context.Context, ownership roster.Ownership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[ownership.PlayerID]
	if !ok {
		return roster.ErrPlayerNotFound
	}

	acquiredAt := ownership.AcquiredAt
	p.OwnerID = ownership.OwnerID
	p.OwnerSessionID = ownership.SessionID
	p.AcquiredAt = &acquiredAt
	r.players[p.ID] = p
	return nil
}

func (r *RosterRepository) ReleaseOwner(_ context.Context, playerID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return roster.ErrPlayerNotFound
	}
	if p.OwnerSessionID != sessionID {
		return nil
	}

	p.OwnerID = ""
	p.OwnerSessionID = ""
	p.AcquiredAt = nil
	r.players[p.ID] = p
	return nil
}
