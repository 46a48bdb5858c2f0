package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-draft/internal/domain/waiver"
	qb "github.com/riskibarqy/league-draft/internal/platform/querybuilder"
)

const waivedPlayerSource = `waived_players w JOIN roster_players p ON p.public_id = w.player_public_id`

var waivedPlayerColumns = []string{
	"w.week", "w.player_public_id", "p.name", "p.position", "p.team_name", "w.waived_by",
	"w.priority", "w.claimed_by", "w.claim_session_id", "w.claimed_at",
}

type WaiverRepository struct {
	db *sqlx.DB
}

func NewWaiverRepository(db *sqlx.DB) *WaiverRepository {
	return &WaiverRepository{db: db}
}

func (r *WaiverRepository) ListByWeek(ctx context.Context, week int) ([]waiver.WaivedPlayer, error) {
	query, args, err := qb.Select(waivedPlayerColumns...).From(waivedPlayerSource).
		Where(qb.Eq("w.week", week)).
		OrderBy("w.priority", "w.player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list waived players query: %w", err)
	}

	var rows []waivedPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select waived players week=%d: %w", week, err)
	}

	out := make([]waiver.WaivedPlayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, waivedPlayerFromRow(row))
	}
	return out, nil
}

func (r *WaiverRepository) Get(ctx context.Context, week int, playerID string) (waiver.WaivedPlayer, bool, error) {
	query, args, err := qb.Select(waivedPlayerColumns...).From(waivedPlayerSource).
		Where(
			qb.Eq("w.week", week),
			qb.Eq("w.player_public_id", playerID),
		).
		ToSQL()
	if err != nil {
		return waiver.WaivedPlayer{}, false, fmt.Errorf("build get waived player query: %w", err)
	}

	var row waivedPlayerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return waiver.WaivedPlayer{}, false, nil
		}
		return waiver.WaivedPlayer{}, false, fmt.Errorf("get waived player: %w", err)
	}
	return waivedPlayerFromRow(row), true, nil
}

// Claim is idempotent for a repeated claim by the same session.
func (r *WaiverRepository) Claim(ctx context.Context, claim waiver.Claim) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for waiver claim: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("week", "player_public_id", "waived_by", "priority", "claimed_by", "claim_session_id", "claimed_at").
		From(waivedPlayersTable).
		Where(
			qb.Eq("week", claim.Week),
			qb.Eq("player_public_id", claim.PlayerID),
		).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock waived player query: %w", err)
	}
	var current waivedPlayerTableModel
	if err := tx.GetContext(ctx, &current, query, args...); err != nil {
		if isNotFound(err) {
			return waiver.ErrWaiverNotFound
		}
		return fmt.Errorf("lock waived player: %w", err)
	}
	if current.ClaimedBy.Valid {
		if nullString(current.ClaimSessionID) == claim.SessionID && current.ClaimedBy.String == claim.ClaimedBy {
			return nil
		}
		return waiver.ErrAlreadyClaimed
	}

	query, args, err = qb.Update(waivedPlayersTable).
		Set("claimed_by", claim.ClaimedBy).
		Set("claim_session_id", claim.SessionID).
		Set("claimed_at", claim.ClaimedAt).
		Where(
			qb.Eq("week", claim.Week),
			qb.Eq("player_public_id", claim.PlayerID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build claim waived player query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("claim waived player=%s: %w", claim.PlayerID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit waiver claim tx: %w", err)
	}
	return nil
}

func (r *WaiverRepository) Unclaim(ctx context.Context, week int, playerID, sessionID string) error {
	query, args, err := qb.Update(waivedPlayersTable).
		Set("claimed_by", nil).
		Set("claim_session_id", nil).
		Set("claimed_at", nil).
		Where(
			qb.Eq("week", week),
			qb.Eq("player_public_id", playerID),
			qb.Eq("claim_session_id", sessionID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build unclaim waived player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unclaim waived player=%s: %w", playerID, err)
	}
	return nil
}

func waivedPlayerFromRow(row waivedPlayerTableModel) waiver.WaivedPlayer {
	return waiver.WaivedPlayer{
		Week:           row.Week,
		PlayerID:       row.PlayerID,
		PlayerName:     row.PlayerName,
		Position:       row.Position,
		TeamName:       row.TeamName,
		WaivedBy:       row.WaivedBy,
		Priority:       row.Priority,
		ClaimedBy:      nullString(row.ClaimedBy),
		ClaimSessionID: nullString(row.ClaimSessionID),
		ClaimedAt:      utcPtr(row.ClaimedAt),
	}
}
