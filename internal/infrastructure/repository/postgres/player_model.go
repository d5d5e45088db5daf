package postgres

import "time"

type playerTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
}
