package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pompeytony/wff-predictor/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the starter players, gameweeks and fixtures into an
// empty database. A database that already holds players is left alone.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
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

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, name)
VALUES (:public_id, :name)
ON CONFLICT (public_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id": p.ID,
			"name":      p.Name,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, gw := range memory.SeedGameweeks() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO gameweeks (number, deadline_at, is_active, is_complete)
VALUES (:number, :deadline_at, :is_active, :is_complete)
ON CONFLICT (number) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"number":      gw.Number,
			"deadline_at": gw.Deadline,
			"is_active":   gw.IsActive,
			"is_complete": gw.IsComplete,
		})
		if err != nil {
			return fmt.Errorf("bind seed gameweek %d query: %w", gw.Number, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed gameweek %d: %w", gw.Number, err)
		}
	}

	for _, f := range memory.SeedFixtures() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO fixtures (public_id, gameweek, home_team, away_team, kickoff_at)
VALUES (:public_id, :gameweek, :home_team, :away_team, :kickoff_at)
ON CONFLICT (public_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id":  f.ID,
			"gameweek":   f.Gameweek,
			"home_team":  f.HomeTeam,
			"away_team":  f.AwayTeam,
			"kickoff_at": f.KickoffAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed fixture %s query: %w", f.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed fixture %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
