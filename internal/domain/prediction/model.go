package prediction

import "time"

// Prediction is one player's predicted scoreline for one fixture. A player
// holds at most one prediction per fixture; resubmitting overwrites it.
// Gameweek is denormalized from the fixture at write time.
type Prediction struct {
	PlayerID  string
	FixtureID string
	Gameweek  int
	HomeGoals int
	AwayGoals int
	IsJoker   bool
	Points    int
	CreatedAt time.Time
	UpdatedAt time.Time
}
