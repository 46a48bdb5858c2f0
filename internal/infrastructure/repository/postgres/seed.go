package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-draft/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/league-draft/internal/platform/querybuilder"
)

// BootstrapSeed loads the reference player pool and week-1 waivers into an
// empty database. It is a no-op once any roster player exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM roster_players`); err != nil {
		return fmt.Errorf("count roster players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	players := qb.InsertInto(rosterPlayersTable).
		Columns("public_id", "name", "position", "team_name", "owner_id").
		Suffix("ON CONFLICT (public_id) DO NOTHING")
	for _, p := range memory.SeedPlayers() {
		players.Values(p.ID, p.Name, p.Position, p.TeamName, toNullString(p.OwnerID))
	}
	query, args, err := players.ToSQL()
	if err != nil {
		return fmt.Errorf("build seed players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed roster players: %w", err)
	}

	waivers := qb.InsertInto(waivedPlayersTable).
		Columns("week", "player_public_id", "waived_by", "priority").
		Suffix("ON CONFLICT (week, player_public_id) DO NOTHING")
	for _, w := range memory.SeedWaivers() {
		waivers.Values(w.Week, w.PlayerID, w.WaivedBy, w.Priority)
	}
	query, args, err = waivers.ToSQL()
	if err != nil {
		return fmt.Errorf("build seed waivers query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed waived players: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
