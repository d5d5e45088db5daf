package gameweek

import "time"

// Gameweek groups fixtures into one scoring round. At most one gameweek
// is active at a time.
type Gameweek struct {
	Number     int
	Deadline   *time.Time
	IsActive   bool
	IsComplete bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DeadlinePassed reports whether predictions for this gameweek are closed.
// Gameweeks without a deadline never close.
func (g Gameweek) DeadlinePassed(now time.Time) bool {
	if g.Deadline == nil || g.Deadline.IsZero() {
		return false
	}
	return !now.Before(*g.Deadline)
}
