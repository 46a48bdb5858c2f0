package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-draft/internal/domain/roster"
	qb "github.com/riskibarqy/league-draft/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListUnowned(ctx context.Context) ([]roster.Player, error) {
	query, args, err := qb.Select(rosterPlayerColumns...).From(rosterPlayersTable).
		Where(qb.IsNull("owner_id")).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list unowned players query: %w", err)
	}

	var rows []rosterPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select unowned players: %w", err)
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) GetByID(ctx context.Context, playerID string) (roster.Player, bool, error) {
	query, args, err := qb.Select(rosterPlayerColumns...).From(rosterPlayersTable).
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return roster.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row rosterPlayerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Player{}, false, nil
		}
		return roster.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *RosterRepository) AssignOwner(ctx context.Context, ownership roster.Ownership) error {
	query, args, err := qb.Update(rosterPlayersTable).
		Set("owner_id", ownership.OwnerID).
		Set("owner_session_id", toNullString(ownership.SessionID)).
		Set("acquired_at", ownership.AcquiredAt).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", ownership.PlayerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build assign owner query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("assign owner player=%s: %w", ownership.PlayerID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign owner rows affected: %w", err)
	}
	if affected == 0 {
		return roster.ErrPlayerNotFound
	}
	return nil
}

// ReleaseOwner only clears ownership written by sessionID.
func (r *RosterRepository) ReleaseOwner(ctx context.Context, playerID, sessionID string) error {
	query, args, err := qb.Update(rosterPlayersTable).
		Set("owner_id", nil).
		Set("owner_session_id", nil).
		Set("acquired_at", nil).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", playerID),
			qb.Eq("owner_session_id", sessionID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build release owner query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("release owner player=%s: %w", playerID, err)
	}
	return nil
}

func playerFromRow(row rosterPlayerTableModel) roster.Player {
	return roster.Player{
		ID:             row.PublicID,
		Name:           row.Name,
		Position:       row.Position,
		TeamName:       row.TeamName,
		OwnerID:        nullString(row.OwnerID),
		OwnerSessionID: nullString(row.OwnerSessionID),
		AcquiredAt:     utcPtr(row.AcquiredAt),
	}
}
