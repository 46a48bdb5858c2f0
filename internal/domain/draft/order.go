package draft

import (
	"fmt"
	"sort"
	"strings"
)

// ReferenceLeagueSize is the participant count of the initial league draft.
const ReferenceLeagueSize = 16

// SnakeParticipant returns who picks at (round, pickIndex) in a snake draft.
// round is 1-based; pickIndex is 0-based within the round.
func SnakeParticipant(baseOrder []string, round, pickIndex int) (string, error) {
	n := len(baseOrder)
	if n == 0 {
		return "", fmt.Errorf("%w: base order is empty", ErrInvalidOrder)
	}
	if round < 1 || pickIndex < 0 || pickIndex >= n {
		return "", fmt.Errorf("%w: round=%d pick_index=%d", ErrSlotNotFound, round, pickIndex)
	}
	if round%2 == 1 {
		return baseOrder[pickIndex], nil
	}
	return baseOrder[n-1-pickIndex], nil
}

// CustomParticipant looks (round, pickIndex) up in an explicit sequence.
// A coordinate missing from the sequence does not exist.
func CustomParticipant(sequence []OrderEntry, round, pickIndex int) (string, error) {
	for _, entry := range sequence {
		if entry.Round == round && entry.Pick == pickIndex+1 {
			return entry.ParticipantID, nil
		}
	}
	return "", fmt.Errorf("%w: round=%d pick_index=%d", ErrSlotNotFound, round, pickIndex)
}

// OrderFor resolves the participant for a slot in either mode.
func OrderFor(mode Mode, round, pickIndex int, baseOrder []string, sequence []OrderEntry) (string, error) {
	switch mode {
	case ModeSnake:
		return SnakeParticipant(baseOrder, round, pickIndex)
	case ModeWaiver:
		return CustomParticipant(sequence, round, pickIndex)
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidOrder, mode)
	}
}

// GenerateSnakeOrder expands a base order into every slot of roundCount rounds.
func GenerateSnakeOrder(baseOrder []string, roundCount int) ([]OrderEntry, error) {
	if len(baseOrder) < 2 {
		return nil, fmt.Errorf("%w: snake order needs at least 2 participants", ErrInvalidOrder)
	}
	if roundCount < 1 {
		return nil, fmt.Errorf("%w: round count must be greater than zero", ErrInvalidOrder)
	}
	seen := make(map[string]struct{}, len(baseOrder))
	for _, participantID := range baseOrder {
		participantID = strings.TrimSpace(participantID)
		if participantID == "" {
			return nil, fmt.Errorf("%w: participant id is required", ErrInvalidOrder)
		}
		if _, ok := seen[participantID]; ok {
			return nil, fmt.Errorf("%w: duplicate participant %s in base order", ErrInvalidOrder, participantID)
		}
		seen[participantID] = struct{}{}
	}

	out := make([]OrderEntry, 0, len(baseOrder)*roundCount)
	for round := 1; round <= roundCount; round++ {
		for pickIndex := range baseOrder {
			participantID, err := SnakeParticipant(baseOrder, round, pickIndex)
			if err != nil {
				return nil, err
			}
			out = append(out, OrderEntry{
				Round:         round,
				Pick:          pickIndex + 1,
				ParticipantID: strings.TrimSpace(participantID),
			})
		}
	}

	return out, nil
}

// NormalizeCustomOrder validates an explicit sequence and returns it sorted by slot.
// Rounds may have different sizes, but picks within a round must run 1..k.
func NormalizeCustomOrder(sequence []OrderEntry) ([]OrderEntry, error) {
	if len(sequence) == 0 {
		return nil, fmt.Errorf("%w: custom sequence is empty", ErrInvalidOrder)
	}

	out := make([]OrderEntry, 0, len(sequence))
	seen := make(map[Slot]struct{}, len(sequence))
	for _, entry := range sequence {
		entry.ParticipantID = strings.TrimSpace(entry.ParticipantID)
		if entry.Round < 1 || entry.Pick < 1 {
			return nil, fmt.Errorf("%w: slot %s is out of range", ErrInvalidOrder, entry.Slot())
		}
		if entry.ParticipantID == "" {
			return nil, fmt.Errorf("%w: participant id is required for slot %s", ErrInvalidOrder, entry.Slot())
		}
		if _, ok := seen[entry.Slot()]; ok {
			return nil, fmt.Errorf("%w: duplicate slot %s", ErrInvalidOrder, entry.Slot())
		}
		seen[entry.Slot()] = struct{}{}
		out = append(out, entry)
	}

	sortEntries(out)

	expectedPick := 0
	currentRound := 0
	for _, entry := range out {
		if entry.Round != currentRound {
			currentRound = entry.Round
			expectedPick = 1
		}
		if entry.Pick != expectedPick {
			return nil, fmt.Errorf("%w: round %d skips to pick %d", ErrInvalidOrder, entry.Round, entry.Pick)
		}
		expectedPick++
	}

	return out, nil
}

// Dimensions reports the round count and the largest round size of an order.
func Dimensions(entries []OrderEntry) (roundCount, picksPerRound int) {
	perRound := make(map[int]int)
	for _, entry := range entries {
		if entry.Round > roundCount {
			roundCount = entry.Round
		}
		perRound[entry.Round]++
	}
	for _, count := range perRound {
		if count > picksPerRound {
			picksPerRound = count
		}
	}
	return roundCount, picksPerRound
}

func sortEntries(entries []OrderEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Slot().Less(entries[j].Slot())
	})
}
