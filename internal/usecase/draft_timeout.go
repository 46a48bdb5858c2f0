package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/platform/logging"
)

// TurnExpired describes a running turn clock that reached zero.
type TurnExpired struct {
	SessionID string
	Turn      draft.Turn
	ExpiredAt time.Time
}

// TimeoutPolicy decides what happens when a turn clock reaches zero. It runs
// outside the session lock; a policy that mutates the draft must go through
// DraftService like any other caller.
type TimeoutPolicy interface {
	OnTurnExpired(ctx context.Context, event TurnExpired)
}

type TimeoutPolicyFunc func(ctx context.Context, event TurnExpired)

func (f TimeoutPolicyFunc) OnTurnExpired(ctx context.Context, event TurnExpired) {
	f(ctx, event)
}

// WarnOnTimeout only logs. The warning flag itself is derived from the clock.
type WarnOnTimeout struct {
	logger *logging.Logger
}

func NewWarnOnTimeout(logger *logging.Logger) *WarnOnTimeout {
	if logger == nil {
		logger = logging.Default()
	}
	return &WarnOnTimeout{logger: logger}
}

func (p *WarnOnTimeout) OnTurnExpired(ctx context.Context, event TurnExpired) {
	p.logger.WarnContext(ctx, "draft turn clock expired",
		"session_id", event.SessionID,
		"round", event.Turn.Round,
		"pick", event.Turn.Pick,
		"participant_id", event.Turn.ParticipantID,
		"expired_at", event.ExpiredAt,
	)
}

type turnTimer struct {
	timer clockwork.Timer
	done  chan struct{}
}

// turnTimers keeps at most one pending expiry timer per session.
type turnTimers struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	active map[string]*turnTimer
}

func newTurnTimers(clock clockwork.Clock) *turnTimers {
	return &turnTimers{clock: clock, active: make(map[string]*turnTimer)}
}

func (t *turnTimers) schedule(sessionID string, after time.Duration, fire func()) {
	entry := &turnTimer{
		timer: t.clock.NewTimer(after),
		done:  make(chan struct{}),
	}

	t.mu.Lock()
	if existing, ok := t.active[sessionID]; ok {
		existing.cancel()
	}
	t.active[sessionID] = entry
	t.mu.Unlock()

	go func() {
		select {
		case <-entry.timer.Chan():
			t.mu.Lock()
			if t.active[sessionID] == entry {
				delete(t.active, sessionID)
			}
			t.mu.Unlock()
			fire()
		case <-entry.done:
		}
	}()
}

func (t *turnTimers) stop(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.active[sessionID]; ok {
		existing.cancel()
		delete(t.active, sessionID)
	}
}

func (t *turnTimers) stopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for sessionID, existing := range t.active {
		existing.cancel()
		delete(t.active, sessionID)
	}
}

func (t *turnTimers) pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

func (e *turnTimer) cancel() {
	stopAndDrainTimer(e.timer)
	close(e.done)
}

func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
