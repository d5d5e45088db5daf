package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	qb "github.com/pompeytony/wff-predictor/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := fixtureBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("gameweek", "kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, gw int) ([]fixture.Fixture, error) {
	query, args, err := fixtureBaseSelectBuilder().
		Where(
			qb.Eq("gameweek", gw),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures by gameweek query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures by gameweek: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := fixtureBaseSelectBuilder().
		Where(
			qb.Eq("public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}

	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) SaveResult(ctx context.Context, fixtureID string, homeScore, awayScore int) error {
	query, args, err := qb.Update("fixtures").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		SetExpr("is_complete", "TRUE").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save fixture result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save fixture result: %w", err)
	}
	return nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:         row.PublicID,
		Gameweek:   row.Gameweek,
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		KickoffAt:  row.KickoffAt,
		HomeScore:  nullInt64ToIntPtr(row.HomeScore),
		AwayScore:  nullInt64ToIntPtr(row.AwayScore),
		IsComplete: row.IsComplete,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func fixtureBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("fixtures")
}
