package waiver

import (
	"errors"
	"time"
)

var (
	ErrWaiverNotFound = errors.New("waived player not found")
	ErrAlreadyClaimed = errors.New("waived player already claimed")
)

// WaivedPlayer is a player released by its owner for one week's waiver draft.
type WaivedPlayer struct {
	Week           int
	PlayerID       string
	PlayerName     string
	Position       string
	TeamName       string
	WaivedBy       string
	Priority       int
	ClaimedBy      string
	ClaimSessionID string
	ClaimedAt      *time.Time
}

func (w WaivedPlayer) Claimed() bool {
	return w.ClaimedBy != ""
}

type Claim struct {
	Week      int
	PlayerID  string
	ClaimedBy string
	SessionID string
	ClaimedAt time.Time
}
