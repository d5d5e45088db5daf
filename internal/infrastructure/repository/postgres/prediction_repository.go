package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
	qb "github.com/pompeytony/wff-predictor/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) ListByFixture(ctx context.Context, fixtureID string) ([]prediction.Prediction, error) {
	query, args, err := predictionBaseSelectBuilder().
		Where(
			qb.Eq("fixture_public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by fixture query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by fixture: %w", err)
	}

	return predictionsFromRows(rows), nil
}

func (r *PredictionRepository) ListByGameweek(ctx context.Context, gw int) ([]prediction.Prediction, error) {
	query, args, err := predictionBaseSelectBuilder().
		Where(
			qb.Eq("gameweek", gw),
			qb.IsNull("deleted_at"),
		).
		OrderBy("player_public_id", "fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by gameweek query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by gameweek: %w", err)
	}

	return predictionsFromRows(rows), nil
}

func (r *PredictionRepository) ListByPlayerAndGameweek(ctx context.Context, playerID string, gw int) ([]prediction.Prediction, error) {
	query, args, err := predictionBaseSelectBuilder().
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("gameweek", gw),
			qb.IsNull("deleted_at"),
		).
		OrderBy("fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by player query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.listByPlayerAndGameweekSingleParam(ctx, playerID, gw)
		}
		return nil, fmt.Errorf("list predictions by player: %w", err)
	}

	return predictionsFromRows(rows), nil
}

func (r *PredictionRepository) listByPlayerAndGameweekSingleParam(ctx context.Context, playerID string, gw int) ([]prediction.Prediction, error) {
	query, _, err := predictionBaseSelectBuilder().
		Where(
			qb.Expr("player_public_id = ($1::text[])[1]"),
			qb.Expr("gameweek = (($1::text[])[2])::int"),
			qb.IsNull("deleted_at"),
		).
		OrderBy("fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions single param fallback query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array([]string{playerID, fmt.Sprintf("%d", gw)})); err != nil {
		return nil, fmt.Errorf("list predictions by player fallback: %w", err)
	}

	return predictionsFromRows(rows), nil
}

// UpsertBatch writes the whole batch in one transaction keyed by
// (player, fixture); a failed item rolls back every other write.
func (r *PredictionRepository) UpsertBatch(ctx context.Context, items []prediction.Prediction) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin prediction upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range items {
		insertModel := predictionInsertModel{
			PlayerID:  item.PlayerID,
			FixtureID: item.FixtureID,
			Gameweek:  item.Gameweek,
			HomeGoals: item.HomeGoals,
			AwayGoals: item.AwayGoals,
			IsJoker:   item.IsJoker,
			Points:    item.Points,
		}
		query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (player_public_id, fixture_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    gameweek = EXCLUDED.gameweek,
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    is_joker = EXCLUDED.is_joker,
    points = EXCLUDED.points,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build prediction upsert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert prediction player=%s fixture=%s: %w", item.PlayerID, item.FixtureID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prediction upsert tx: %w", err)
	}
	return nil
}

func (r *PredictionRepository) UpdatePointsBatch(ctx context.Context, items []prediction.Prediction) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin prediction points tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range items {
		query, args, err := qb.Update("predictions").
			Set("points", item.Points).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("player_public_id", item.PlayerID),
				qb.Eq("fixture_public_id", item.FixtureID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build prediction points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update prediction points player=%s fixture=%s: %w", item.PlayerID, item.FixtureID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prediction points tx: %w", err)
	}
	return nil
}

func (r *PredictionRepository) ClearOtherJokers(ctx context.Context, playerID string, gw int, keepFixtureID string) error {
	query, args, err := qb.Update("predictions").
		SetExpr("is_joker", "FALSE").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("gameweek", gw),
			qb.Eq("is_joker", true),
			qb.Expr("fixture_public_id <> ?", keepFixtureID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear jokers query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear jokers: %w", err)
	}
	return nil
}

func predictionsFromRows(rows []predictionTableModel) []prediction.Prediction {
	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.Prediction{
			PlayerID:  row.PlayerID,
			FixtureID: row.FixtureID,
			Gameweek:  row.Gameweek,
			HomeGoals: row.HomeGoals,
			AwayGoals: row.AwayGoals,
			IsJoker:   row.IsJoker,
			Points:    row.Points,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out
}

func predictionBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("predictions")
}
