package draft

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestSequencer_AdvanceThroughReferenceRound(t *testing.T) {
	entries, err := GenerateSnakeOrder(referenceBaseOrder, 16)
	if err != nil {
		t.Fatalf("generate snake order: %v", err)
	}
	seq := NewSequencer(entries)

	turn, ok := seq.CurrentTurn()
	if !ok || turn.Round != 1 || turn.Pick != 1 || turn.ParticipantID != "A1" {
		t.Fatalf("expected R1P1 A1, got %+v ok=%v", turn, ok)
	}

	seq.Advance()
	turn, _ = seq.CurrentTurn()
	if turn.Round != 1 || turn.Pick != 2 || turn.ParticipantID != "B1" {
		t.Fatalf("expected R1P2 B1, got %+v", turn)
	}

	for i := 0; i < 15; i++ {
		seq.Advance()
	}
	turn, _ = seq.CurrentTurn()
	if turn.Round != 2 || turn.Pick != 1 || turn.ParticipantID != "D4" {
		t.Fatalf("expected R2P1 D4, got %+v", turn)
	}
	if turn.Overall != 17 {
		t.Fatalf("expected overall pick 17, got %d", turn.Overall)
	}

	seq.Retreat()
	turn, _ = seq.CurrentTurn()
	if turn.Round != 1 || turn.Pick != 16 || turn.ParticipantID != referenceBaseOrder[15] {
		t.Fatalf("expected R1P16 %s after retreat, got %+v", referenceBaseOrder[15], turn)
	}
}

func TestSequencer_TerminalAndRetreatBounds(t *testing.T) {
	seq := NewSequencer([]OrderEntry{
		{Round: 1, Pick: 1, ParticipantID: "T1"},
		{Round: 1, Pick: 2, ParticipantID: "T2"},
	})

	seq.Retreat()
	if slot, _ := seq.Current(); slot != (Slot{Round: 1, Pick: 1}) {
		t.Fatalf("expected retreat at first slot to be a no-op, got %s", slot)
	}

	if !seq.Advance() {
		t.Fatalf("expected advance to second slot")
	}
	if seq.Advance() {
		t.Fatalf("expected advance past last slot to report terminal")
	}
	if !seq.Done() {
		t.Fatalf("expected terminal state")
	}
	if seq.Advance() {
		t.Fatalf("expected advance in terminal state to stay terminal")
	}
	if err := seq.ValidateIsCurrentTurn(1, 2); !errors.Is(err, ErrNotCurrentTurn) {
		t.Fatalf("expected ErrNotCurrentTurn in terminal state, got %v", err)
	}

	seq.Retreat()
	if slot, ok := seq.Current(); !ok || slot != (Slot{Round: 1, Pick: 2}) {
		t.Fatalf("expected retreat from terminal to reopen last slot, got %s ok=%v", slot, ok)
	}
}

func TestSequencer_ValidateIsCurrentTurn(t *testing.T) {
	seq := NewSequencer([]OrderEntry{
		{Round: 1, Pick: 1, ParticipantID: "T7"},
		{Round: 1, Pick: 2, ParticipantID: "T3"},
	})

	if err := seq.ValidateIsCurrentTurn(1, 1); err != nil {
		t.Fatalf("expected current turn to validate, got %v", err)
	}
	if err := seq.ValidateIsCurrentTurn(1, 2); !errors.Is(err, ErrNotCurrentTurn) {
		t.Fatalf("expected ErrNotCurrentTurn, got %v", err)
	}
}

func TestSequencer_WaiverSequenceVerbatim(t *testing.T) {
	entries, err := NormalizeCustomOrder([]OrderEntry{
		{Round: 1, Pick: 1, ParticipantID: "T7"},
		{Round: 1, Pick: 2, ParticipantID: "T3"},
		{Round: 1, Pick: 3, ParticipantID: "T7"},
	})
	if err != nil {
		t.Fatalf("normalize custom order: %v", err)
	}
	seq := NewSequencer(entries)

	seq.Advance()
	if turn, _ := seq.CurrentTurn(); turn.Pick != 2 || turn.ParticipantID != "T3" {
		t.Fatalf("expected (2, T3), got %+v", turn)
	}
	seq.Advance()
	if turn, _ := seq.CurrentTurn(); turn.Pick != 3 || turn.ParticipantID != "T7" {
		t.Fatalf("expected (3, T7), got %+v", turn)
	}
}

func TestRecoverSequencer_FirstUnfilledSlot(t *testing.T) {
	entries, err := GenerateSnakeOrder([]string{"A", "B", "C", "D"}, 4)
	if err != nil {
		t.Fatalf("generate snake order: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	assignedAt := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)

	for iteration := 0; iteration < 200; iteration++ {
		records := make([]PickRecord, 0, len(entries))
		for i, entry := range entries {
			record := PickRecord{
				SessionID:     "s1",
				Round:         entry.Round,
				Pick:          entry.Pick,
				ParticipantID: entry.ParticipantID,
			}
			if rng.Intn(3) > 0 {
				record.SubjectID = "p" + string(rune('a'+i%26))
				record.AssignedAt = &assignedAt
			}
			records = append(records, record)
		}
		// Ledger rows come back in arbitrary order.
		rng.Shuffle(len(records), func(i, j int) { records[i], records[j] = records[j], records[i] })

		var want *Slot
		for _, entry := range entries {
			filled := false
			for _, record := range records {
				if record.Slot() == entry.Slot() && record.Filled() {
					filled = true
					break
				}
			}
			if !filled {
				slot := entry.Slot()
				want = &slot
				break
			}
		}

		got, ok := RecoverSequencer(records).Current()
		if want == nil {
			if ok {
				t.Fatalf("iteration %d: expected terminal state, got %s", iteration, got)
			}
			continue
		}
		if !ok || got != *want {
			t.Fatalf("iteration %d: expected %s, got %s ok=%v", iteration, *want, got, ok)
		}
	}
}
