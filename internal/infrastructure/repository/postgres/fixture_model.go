package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	ID         int64         `db:"id"`
	PublicID   string        `db:"public_id"`
	Gameweek   int           `db:"gameweek"`
	HomeTeam   string        `db:"home_team"`
	AwayTeam   string        `db:"away_team"`
	KickoffAt  time.Time     `db:"kickoff_at"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	IsComplete bool          `db:"is_complete"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	DeletedAt  *time.Time    `db:"deleted_at"`
}

type fixtureInsertModel struct {
	PublicID  string    `db:"public_id"`
	Gameweek  int       `db:"gameweek"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	KickoffAt time.Time `db:"kickoff_at"`
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	value := int(v.Int64)
	return &value
}
