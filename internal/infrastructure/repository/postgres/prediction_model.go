package postgres

import "time"

type predictionTableModel struct {
	ID        int64      `db:"id"`
	PlayerID  string     `db:"player_public_id"`
	FixtureID string     `db:"fixture_public_id"`
	Gameweek  int        `db:"gameweek"`
	HomeGoals int        `db:"home_goals"`
	AwayGoals int        `db:"away_goals"`
	IsJoker   bool       `db:"is_joker"`
	Points    int        `db:"points"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type predictionInsertModel struct {
	PlayerID  string `db:"player_public_id"`
	FixtureID string `db:"fixture_public_id"`
	Gameweek  int    `db:"gameweek"`
	HomeGoals int    `db:"home_goals"`
	AwayGoals int    `db:"away_goals"`
	IsJoker   bool   `db:"is_joker"`
	Points    int    `db:"points"`
}
