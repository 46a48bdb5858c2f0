package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/league-draft/internal/domain/draft"
)

type sessionLedger struct {
	slots    map[draft.Slot]draft.PickRecord
	subjects map[string]draft.Slot
}

// DraftLedger keeps pick records per session. Each mutation runs under one
// write lock, so a failed call never leaves a partial change behind.
type DraftLedger struct {
	mu       sync.RWMutex
	sessions map[string]*sessionLedger
}

func NewDraftLedger() *DraftLedger {
	return &DraftLedger{sessions: make(map[string]*sessionLedger)}
}

func (l *DraftLedger) InitializeSlots(_ context.Context, sessionID string, order []draft.OrderEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.sessions[sessionID]; ok && len(existing.slots) > 0 {
		return draft.ErrSlotsAlreadyInitialized
	}

	ledger := &sessionLedger{
		slots:    make(map[draft.Slot]draft.PickRecord, len(order)),
		subjects: make(map[string]draft.Slot),
	}
	for _, entry := range order {
		ledger.slots[entry.Slot()] = draft.PickRecord{
			SessionID:     sessionID,
			Round:         entry.Round,
			Pick:          entry.Pick,
			ParticipantID: entry.ParticipantID,
		}
	}
	l.sessions[sessionID] = ledger
	return nil
}

func (l *DraftLedger) Assign(_ context.Context, sessionID string, round, pick int, subjectID string, at time.Time) (draft.PickRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ledger, ok := l.sessions[sessionID]
	if !ok {
		return draft.PickRecord{}, draft.ErrSlotNotFound
	}
	slot := draft.Slot{Round: round, Pick: pick}
	record, ok := ledger.slots[slot]
	if !ok {
		return draft.PickRecord{}, draft.ErrSlotNotFound
	}
	if record.Filled() {
		return draft.PickRecord{}, draft.ErrSlotAlreadyFilled
	}
	if _, taken := ledger.subjects[subjectID]; taken {
		return draft.PickRecord{}, draft.ErrSubjectAlreadyAssigned
	}

	assignedAt := at
	record.SubjectID = subjectID
	record.AssignedAt = &assignedAt
	ledger.slots[slot] = record
	ledger.subjects[subjectID] = slot
	return record, nil
}

func (l *DraftLedger) Unassign(_ context.Context, sessionID string, round, pick int) (draft.PickRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ledger, ok := l.sessions[sessionID]
	if !ok {
		return draft.PickRecord{}, draft.ErrSlotNotFound
	}
	slot := draft.Slot{Round: round, Pick: pick}
	record, ok := ledger.slots[slot]
	if !ok {
		return draft.PickRecord{}, draft.ErrSlotNotFound
	}
	if !record.Filled() {
		return draft.PickRecord{}, draft.ErrSlotAlreadyEmpty
	}

	previous := record
	delete(ledger.subjects, record.SubjectID)
	record.SubjectID = ""
	record.AssignedAt = nil
	ledger.slots[slot] = record
	return previous, nil
}

func (l *DraftLedger) ClearAll(_ context.Context, sessionID string) ([]draft.PickRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ledger, ok := l.sessions[sessionID]
	if !ok {
		return nil, nil
	}

	cleared := make([]draft.PickRecord, 0, len(ledger.subjects))
	for slot, record := range ledger.slots {
		if !record.Filled() {
			continue
		}
		cleared = append(cleared, record)
		record.SubjectID = ""
		record.AssignedAt = nil
		ledger.slots[slot] = record
	}
	ledger.subjects = make(map[string]draft.Slot)

	sortRecords(cleared)
	return cleared, nil
}

func (l *DraftLedger) ListSlots(_ context.Context, sessionID string) ([]draft.PickRecord, error) {
	return l.list(sessionID, false), nil
}

func (l *DraftLedger) ListFilled(_ context.Context, sessionID string) ([]draft.PickRecord, error) {
	return l.list(sessionID, true), nil
}

func (l *DraftLedger) FindLastFilled(_ context.Context, sessionID string) (draft.PickRecord, bool, error) {
	filled := l.list(sessionID, true)
	if len(filled) == 0 {
		return draft.PickRecord{}, false, nil
	}
	return filled[len(filled)-1], true, nil
}

func (l *DraftLedger) list(sessionID string, filledOnly bool) []draft.PickRecord {
	l.mu.RLock()
	ledger, ok := l.sessions[sessionID]
	if !ok {
		l.mu.RUnlock()
		return nil
	}
	out := make([]draft.PickRecord, 0, len(ledger.slots))
	for _, record := range ledger.slots {
		if filledOnly && !record.Filled() {
			continue
		}
		out = append(out, record)
	}
	l.mu.RUnlock()

	sortRecords(out)
	return out
}

func sortRecords(records []draft.PickRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Slot().Less(records[j].Slot())
	})
}
