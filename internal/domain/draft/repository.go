package draft

import (
	"context"
	"time"
)

// SessionRepository stores sessions together with their immutable order.
type SessionRepository interface {
	Create(ctx context.Context, session Session, order []OrderEntry) error
	GetByID(ctx context.Context, sessionID string) (Session, bool, error)
	List(ctx context.Context) ([]Session, error)
	ListOrder(ctx context.Context, sessionID string) ([]OrderEntry, error)
	// UpdateStatus moves a session from one status to another and fails with
	// ErrStatusConflict when the stored status is not from.
	UpdateStatus(ctx context.Context, sessionID string, from, to Status, at time.Time) (Session, error)
}

// Ledger is the durable (round, pick) -> assignment store. Every mutation is
// atomic and leaves no partial state on failure.
type Ledger interface {
	InitializeSlots(ctx context.Context, sessionID string, order []OrderEntry) error
	Assign(ctx context.Context, sessionID string, round, pick int, subjectID string, at time.Time) (PickRecord, error)
	Unassign(ctx context.Context, sessionID string, round, pick int) (PickRecord, error)
	// ClearAll empties every slot and returns the records that were filled.
	ClearAll(ctx context.Context, sessionID string) ([]PickRecord, error)
	ListSlots(ctx context.Context, sessionID string) ([]PickRecord, error)
	ListFilled(ctx context.Context, sessionID string) ([]PickRecord, error)
	FindLastFilled(ctx context.Context, sessionID string) (PickRecord, bool, error)
}

// ClockStore keeps the ephemeral turn clock baseline per session.
type ClockStore interface {
	Load(ctx context.Context, sessionID string) (ClockState, bool, error)
	Save(ctx context.Context, sessionID string, state ClockState) error
	Delete(ctx context.Context, sessionID string) error
}
