package postgres

import (
	"database/sql"
	"time"
)

const (
	rosterPlayersTable = "roster_players"
	waivedPlayersTable = "waived_players"
)

var rosterPlayerColumns = []string{
	"public_id", "name", "position", "team_name", "owner_id", "owner_session_id", "acquired_at",
}

type rosterPlayerTableModel struct {
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	Position       string         `db:"position"`
	TeamName       string         `db:"team_name"`
	OwnerID        sql.NullString `db:"owner_id"`
	OwnerSessionID sql.NullString `db:"owner_session_id"`
	AcquiredAt     *time.Time     `db:"acquired_at"`
}

type waivedPlayerTableModel struct {
	Week           int            `db:"week"`
	PlayerID       string         `db:"player_public_id"`
	PlayerName     string         `db:"name"`
	Position       string         `db:"position"`
	TeamName       string         `db:"team_name"`
	WaivedBy       string         `db:"waived_by"`
	Priority       int            `db:"priority"`
	ClaimedBy      sql.NullString `db:"claimed_by"`
	ClaimSessionID sql.NullString `db:"claim_session_id"`
	ClaimedAt      *time.Time     `db:"claimed_at"`
}
