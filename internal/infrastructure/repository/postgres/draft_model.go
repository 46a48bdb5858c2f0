package postgres

import (
	"database/sql"
	"time"
)

const (
	draftSessionsTable = "draft_sessions"
	draftOrderTable    = "draft_order_entries"
	draftPicksTable    = "draft_picks"

	subjectUniqueIndex = "uq_draft_picks_session_subject"
	draftPicksPKey     = "draft_picks_pkey"
)

var draftSessionColumns = []string{
	"public_id", "name", "mode", "status", "week", "round_count", "picks_per_round",
	"created_by", "started_at", "completed_at", "created_at", "updated_at",
}

var draftPickColumns = []string{
	"session_public_id", "round", "pick", "participant_id", "subject_id", "assigned_at",
}

type draftSessionTableModel struct {
	PublicID      string        `db:"public_id"`
	Name          string        `db:"name"`
	Mode          string        `db:"mode"`
	Status        string        `db:"status"`
	Week          sql.NullInt64 `db:"week"`
	RoundCount    int           `db:"round_count"`
	PicksPerRound int           `db:"picks_per_round"`
	CreatedBy     string        `db:"created_by"`
	StartedAt     *time.Time    `db:"started_at"`
	CompletedAt   *time.Time    `db:"completed_at"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

type draftSessionInsertModel struct {
	PublicID      string        `db:"public_id"`
	Name          string        `db:"name"`
	Mode          string        `db:"mode"`
	Status        string        `db:"status"`
	Week          sql.NullInt64 `db:"week"`
	RoundCount    int           `db:"round_count"`
	PicksPerRound int           `db:"picks_per_round"`
	CreatedBy     string        `db:"created_by"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

type draftOrderTableModel struct {
	SessionID     string `db:"session_public_id"`
	Round         int    `db:"round"`
	Pick          int    `db:"pick"`
	ParticipantID string `db:"participant_id"`
}

type draftPickTableModel struct {
	SessionID     string         `db:"session_public_id"`
	Round         int            `db:"round"`
	Pick          int            `db:"pick"`
	ParticipantID string         `db:"participant_id"`
	SubjectID     sql.NullString `db:"subject_id"`
	AssignedAt    sql.NullTime   `db:"assigned_at"`
}
