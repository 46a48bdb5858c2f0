package draft

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how the pick order of a session is produced.
type Mode string

const (
	ModeSnake  Mode = "snake"
	ModeWaiver Mode = "waiver"
)

func (m Mode) Valid() bool {
	return m == ModeSnake || m == ModeWaiver
}

// Status is the lifecycle state of a draft session.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Session is one complete draft event.
type Session struct {
	ID            string
	Name          string
	Mode          Mode
	Status        Status
	Week          int
	RoundCount    int
	PicksPerRound int
	CreatedBy     string
	StartedAt     *time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s Session) ValidateBasic() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("session name is required")
	}
	if !s.Mode.Valid() {
		return fmt.Errorf("invalid session mode: %s", s.Mode)
	}
	if s.Mode == ModeWaiver && s.Week <= 0 {
		return fmt.Errorf("waiver session week must be greater than zero")
	}
	if s.RoundCount <= 0 {
		return fmt.Errorf("round count must be greater than zero")
	}
	if s.PicksPerRound <= 0 {
		return fmt.Errorf("picks per round must be greater than zero")
	}

	return nil
}

// Slot is a unique (round, pick) coordinate within a session.
type Slot struct {
	Round int
	Pick  int
}

// Less orders slots by round, then pick.
func (s Slot) Less(other Slot) bool {
	if s.Round != other.Round {
		return s.Round < other.Round
	}
	return s.Pick < other.Pick
}

func (s Slot) String() string {
	return fmt.Sprintf("R%dP%d", s.Round, s.Pick)
}

// OrderEntry maps one slot to the participant who picks in it.
type OrderEntry struct {
	Round         int
	Pick          int
	ParticipantID string
}

func (e OrderEntry) Slot() Slot {
	return Slot{Round: e.Round, Pick: e.Pick}
}

// PickRecord is the ledger row for one slot. An empty SubjectID means unfilled.
type PickRecord struct {
	SessionID     string
	Round         int
	Pick          int
	ParticipantID string
	SubjectID     string
	AssignedAt    *time.Time
}

func (p PickRecord) Slot() Slot {
	return Slot{Round: p.Round, Pick: p.Pick}
}

func (p PickRecord) Filled() bool {
	return p.SubjectID != ""
}

// Candidate is a player eligible to be drafted in a session.
type Candidate struct {
	SubjectID string
	Name      string
	Position  string
	TeamName  string
	// WaivedBy and Priority are set for waiver sessions only.
	WaivedBy string
	Priority int
}

// Turn is the slot currently on the clock.
type Turn struct {
	Round         int
	Pick          int
	Overall       int
	ParticipantID string
}

// Snapshot is the read model polled by viewers.
type Snapshot struct {
	Session     Session
	CurrentTurn *Turn
	Slots       []PickRecord
	Pool        []Candidate
	Clock       ClockView
	FilledCount int
	TotalSlots  int
}
