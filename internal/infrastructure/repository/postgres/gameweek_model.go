package postgres

import "time"

type gameweekTableModel struct {
	ID         int64      `db:"id"`
	Number     int        `db:"number"`
	DeadlineAt *time.Time `db:"deadline_at"`
	IsActive   bool       `db:"is_active"`
	IsComplete bool       `db:"is_complete"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type gameweekInsertModel struct {
	Number     int        `db:"number"`
	DeadlineAt *time.Time `db:"deadline_at"`
	IsActive   bool       `db:"is_active"`
	IsComplete bool       `db:"is_complete"`
}
