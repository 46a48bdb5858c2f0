package draft

import (
	"fmt"
	"sort"
)

// Sequencer tracks which slot is on the clock. Its pointer is a cache that
// can always be rebuilt from the ledger with RecoverSequencer.
type Sequencer struct {
	slots        []Slot
	participants map[Slot]string
	pos          int
}

// NewSequencer builds a sequencer positioned at the first slot of the order.
func NewSequencer(entries []OrderEntry) *Sequencer {
	s := &Sequencer{
		slots:        make([]Slot, 0, len(entries)),
		participants: make(map[Slot]string, len(entries)),
	}
	for _, entry := range entries {
		s.slots = append(s.slots, entry.Slot())
		s.participants[entry.Slot()] = entry.ParticipantID
	}
	sort.Slice(s.slots, func(i, j int) bool { return s.slots[i].Less(s.slots[j]) })

	return s
}

// RecoverSequencer positions a sequencer at the first unfilled record.
func RecoverSequencer(records []PickRecord) *Sequencer {
	entries := make([]OrderEntry, 0, len(records))
	filled := make(map[Slot]bool, len(records))
	for _, record := range records {
		entries = append(entries, OrderEntry{
			Round:         record.Round,
			Pick:          record.Pick,
			ParticipantID: record.ParticipantID,
		})
		filled[record.Slot()] = record.Filled()
	}

	s := NewSequencer(entries)
	s.pos = len(s.slots)
	for i, slot := range s.slots {
		if !filled[slot] {
			s.pos = i
			break
		}
	}

	return s
}

// Current returns the slot on the clock, or false once the order is exhausted.
func (s *Sequencer) Current() (Slot, bool) {
	if s.Done() {
		return Slot{}, false
	}
	return s.slots[s.pos], true
}

// CurrentTurn describes the slot on the clock including its participant.
func (s *Sequencer) CurrentTurn() (Turn, bool) {
	slot, ok := s.Current()
	if !ok {
		return Turn{}, false
	}
	return Turn{
		Round:         slot.Round,
		Pick:          slot.Pick,
		Overall:       s.pos + 1,
		ParticipantID: s.participants[slot],
	}, true
}

// Done reports the terminal state: no next turn exists.
func (s *Sequencer) Done() bool {
	return s.pos >= len(s.slots)
}

// Advance moves to the next slot. It returns false when the move reached the
// terminal state, which the caller treats as completion.
func (s *Sequencer) Advance() bool {
	if s.Done() {
		return false
	}
	s.pos++
	return !s.Done()
}

// Retreat moves back one slot. Retreating from the first slot is a no-op.
func (s *Sequencer) Retreat() {
	if s.pos == 0 {
		return
	}
	s.pos--
}

// ValidateIsCurrentTurn fails unless (round, pick) is the slot on the clock.
func (s *Sequencer) ValidateIsCurrentTurn(round, pick int) error {
	current, ok := s.Current()
	if !ok {
		return fmt.Errorf("%w: draft has no open turn", ErrNotCurrentTurn)
	}
	if current.Round != round || current.Pick != pick {
		return fmt.Errorf("%w: requested %s, on the clock %s", ErrNotCurrentTurn, Slot{Round: round, Pick: pick}, current)
	}
	return nil
}

// ParticipantFor returns who owns a slot.
func (s *Sequencer) ParticipantFor(slot Slot) (string, bool) {
	participantID, ok := s.participants[slot]
	return participantID, ok
}

// Position is the 1-based overall number of the slot on the clock; it is
// Total()+1 in the terminal state.
func (s *Sequencer) Position() int {
	return s.pos + 1
}

func (s *Sequencer) Total() int {
	return len(s.slots)
}
