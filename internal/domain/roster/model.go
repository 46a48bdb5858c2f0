package roster

import (
	"errors"
	"time"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
)

// Player is a real-world player that league participants draft onto rosters.
type Player struct {
	ID             string
	Name           string
	Position       string
	TeamName       string
	OwnerID        string
	OwnerSessionID string
	AcquiredAt     *time.Time
}

func (p Player) Owned() bool {
	return p.OwnerID != ""
}

// Ownership is a completed draft pick materialised onto a roster.
type Ownership struct {
	PlayerID   string
	OwnerID    string
	SessionID  string
	AcquiredAt time.Time
}
