package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pompeytony/wff-predictor/internal/domain/standings"
	qb "github.com/pompeytony/wff-predictor/internal/platform/querybuilder"
)

type WeeklyScoreRepository struct {
	db *sqlx.DB
}

func NewWeeklyScoreRepository(db *sqlx.DB) *WeeklyScoreRepository {
	return &WeeklyScoreRepository{db: db}
}

func (r *WeeklyScoreRepository) ListByGameweek(ctx context.Context, gw int) ([]standings.WeeklyScore, error) {
	query, args, err := weeklyScoreBaseSelectBuilder().
		Where(
			qb.Eq("gameweek", gw),
			qb.IsNull("deleted_at"),
		).
		OrderBy("points DESC", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly scores query: %w", err)
	}

	var rows []weeklyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly scores: %w", err)
	}

	return weeklyScoresFromRows(rows), nil
}

func (r *WeeklyScoreRepository) ListAll(ctx context.Context) ([]standings.WeeklyScore, error) {
	query, args, err := weeklyScoreBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("gameweek", "points DESC", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all weekly scores query: %w", err)
	}

	var rows []weeklyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list all weekly scores: %w", err)
	}

	return weeklyScoresFromRows(rows), nil
}

// ReplaceByGameweek soft-deletes the gameweek's rows and inserts the new
// set in one transaction. Weekly scores are always replaced wholesale,
// never patched row by row.
func (r *WeeklyScoreRepository) ReplaceByGameweek(ctx context.Context, gw int, rows []standings.WeeklyScore) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin weekly score replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	clearQuery, clearArgs, err := qb.Update("weekly_scores").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("gameweek", gw),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear weekly scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear weekly scores: %w", err)
	}

	for _, row := range rows {
		insertModel := weeklyScoreInsertModel{
			PlayerID:           row.PlayerID,
			Gameweek:           row.Gameweek,
			Points:             row.Points,
			IsManagerOfTheWeek: row.IsManagerOfTheWeek,
			CalculatedAt:       row.CalculatedAt,
		}
		query, args, err := qb.InsertModel("weekly_scores", insertModel, `ON CONFLICT (player_public_id, gameweek) WHERE deleted_at IS NULL
DO UPDATE SET
    points = EXCLUDED.points,
    is_manager_of_the_week = EXCLUDED.is_manager_of_the_week,
    calculated_at = EXCLUDED.calculated_at,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build weekly score insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert weekly score player=%s gameweek=%d: %w", row.PlayerID, row.Gameweek, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit weekly score replace tx: %w", err)
	}
	return nil
}

func weeklyScoresFromRows(rows []weeklyScoreTableModel) []standings.WeeklyScore {
	out := make([]standings.WeeklyScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.WeeklyScore{
			PlayerID:           row.PlayerID,
			Gameweek:           row.Gameweek,
			Points:             row.Points,
			IsManagerOfTheWeek: row.IsManagerOfTheWeek,
			CalculatedAt:       row.CalculatedAt,
		})
	}
	return out
}

func weeklyScoreBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("weekly_scores")
}
