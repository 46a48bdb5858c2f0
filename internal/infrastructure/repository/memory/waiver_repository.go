package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/league-draft/internal/domain/waiver"
)

type waiverKey struct {
	week     int
	playerID string
}

type WaiverRepository struct {
	mu    sync.RWMutex
	items map[waiverKey]waiver.WaivedPlayer
}

func NewWaiverRepository(seed []waiver.WaivedPlayer) *WaiverRepository {
	items := make(map[waiverKey]waiver.WaivedPlayer, len(seed))
	for _, w := range seed {
		items[waiverKey{week: w.Week, playerID: w.PlayerID}] = w
	}

	return &WaiverRepository{items: items}
}

func (r *WaiverRepository) ListByWeek(_ context.Context, week int) ([]waiver.WaivedPlayer, error) {
	r.mu.RLock()
	out := make([]waiver.WaivedPlayer, 0)
	for key, w := range r.items {
		if key.week == week {
			out = append(out, w)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *WaiverRepository) Get(_ context.Context, week int, playerID string) (waiver.WaivedPlayer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.items[waiverKey{week: week, playerID: playerID}]
	return w, ok, nil
}

func (r *WaiverRepository) Claim(_ context.Context, claim waiver.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := waiverKey{week: claim.Week, playerID: claim.PlayerID}
	w, ok := r.items[key]
	if !ok {
		return waiver.ErrWaiverNotFound
	}
	if w.Claimed() {
		if w.ClaimSessionID == claim.SessionID && w.ClaimedBy == claim.ClaimedBy {
			return nil
		}
		return waiver.ErrAlreadyClaimed
	}

	claimedAt := claim.ClaimedAt
	w.ClaimedBy = claim.ClaimedBy
	w.ClaimSessionID = claim.SessionID
	w.ClaimedAt = &claimedAt
	r.items[key] = w
	return nil
}

func (r *WaiverRepository) Unclaim(_ context.Context, week int, playerID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := waiverKey{week: week, playerID: playerID}
	w, ok := r.items[key]
	if !ok {
		return waiver.ErrWaiverNotFound
	}
	if w.ClaimSessionID != sessionID {
		return nil
	}

	w.ClaimedBy = ""
	w.ClaimSessionID = ""
	w.ClaimedAt = nil
	r.items[key] = w
	return nil
}
