package fixture

import "time"

// Outcome is the sign of a scoreline from the home side's view.
type Outcome int

const (
	OutcomeAwayWin Outcome = -1
	OutcomeDraw    Outcome = 0
	OutcomeHomeWin Outcome = 1
)

// ResultOutcome classifies a final score.
func ResultOutcome(homeGoals, awayGoals int) Outcome {
	switch {
	case homeGoals > awayGoals:
		return OutcomeHomeWin
	case homeGoals < awayGoals:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// Fixture represents one scheduled match. Scores are nil until a result
// has been entered.
type Fixture struct {
	ID         string
	Gameweek   int
	HomeTeam   string
	AwayTeam   string
	KickoffAt  time.Time
	HomeScore  *int
	AwayScore  *int
	IsComplete bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasResult reports whether both scores are present and the fixture is
// marked complete.
func (f Fixture) HasResult() bool {
	return f.IsComplete && f.HomeScore != nil && f.AwayScore != nil
}
