package postgres

import "time"

type weeklyScoreTableModel struct {
	ID                 int64      `db:"id"`
	PlayerID           string     `db:"player_public_id"`
	Gameweek           int        `db:"gameweek"`
	Points             int        `db:"points"`
	IsManagerOfTheWeek bool       `db:"is_manager_of_the_week"`
	CalculatedAt       time.Time  `db:"calculated_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

type weeklyScoreInsertModel struct {
	PlayerID           string    `db:"player_public_id"`
	Gameweek           int       `db:"gameweek"`
	Points             int       `db:"points"`
	IsManagerOfTheWeek bool      `db:"is_manager_of_the_week"`
	CalculatedAt       time.Time `db:"calculated_at"`
}
