package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	qb "github.com/pompeytony/wff-predictor/internal/platform/querybuilder"
)

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(qb.IsNull("deleted_at")).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweekFromRow(row))
	}
	return out, nil
}

func (r *GameweekRepository) GetByNumber(ctx context.Context, number int) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(
			qb.Eq("number", number),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build get gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("get gameweek: %w", err)
	}

	return gameweekFromRow(row), true, nil
}

func (r *GameweekRepository) GetActive(ctx context.Context) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("number").
		Limit(1).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build get active gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("get active gameweek: %w", err)
	}

	return gameweekFromRow(row), true, nil
}

// SetActive flips the single-active flag in one transaction so readers
// never observe two active gameweeks.
func (r *GameweekRepository) SetActive(ctx context.Context, number int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set active gameweek tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	clearQuery, clearArgs, err := qb.Update("gameweeks").
		SetExpr("is_active", "FALSE").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear active gameweek query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear active gameweek: %w", err)
	}

	setQuery, setArgs, err := qb.Update("gameweeks").
		SetExpr("is_active", "TRUE").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("number", number),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set active gameweek query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, setQuery, setArgs...); err != nil {
		return fmt.Errorf("set active gameweek: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set active gameweek tx: %w", err)
	}
	return nil
}

func (r *GameweekRepository) MarkComplete(ctx context.Context, number int) error {
	query, args, err := qb.Update("gameweeks").
		SetExpr("is_complete", "TRUE").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("number", number),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark gameweek complete query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark gameweek complete: %w", err)
	}
	return nil
}

func (r *GameweekRepository) LatestCompleted(ctx context.Context) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(
			qb.Eq("is_complete", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("number DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build latest completed gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("latest completed gameweek: %w", err)
	}

	return gameweekFromRow(row), true, nil
}

func gameweekFromRow(row gameweekTableModel) gameweek.Gameweek {
	return gameweek.Gameweek{
		Number:     row.Number,
		Deadline:   row.DeadlineAt,
		IsActive:   row.IsActive,
		IsComplete: row.IsComplete,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
