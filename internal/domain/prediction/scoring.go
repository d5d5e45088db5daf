package prediction

import (
	"errors"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
)

// Points awarded per prediction. An exact scoreline and a merely correct
// result currently pay the same; keep both constants so the award table
// can diverge without touching Score.
const (
	PointsExactScore    = 5
	PointsCorrectResult = 5
	PointsWrongResult   = 0

	// ManagerOfTheWeekBonus is added to the best total of each gameweek.
	ManagerOfTheWeekBonus = 5
)

var (
	ErrNegativeGoals     = errors.New("predicted goals cannot be negative")
	ErrDuplicateFixture  = errors.New("duplicate fixture in prediction batch")
	ErrMultipleJokers    = errors.New("more than one joker in gameweek")
	ErrEmptyBatch        = errors.New("prediction batch is empty")
	ErrMissingFixtureRef = errors.New("prediction fixture id is required")
)

// Score awards points for a prediction against a final score. The joker
// doubles whatever the base award is, including zero.
func Score(p Prediction, homeScore, awayScore int) int {
	base := basePoints(p, homeScore, awayScore)
	if p.IsJoker {
		return base * 2
	}
	return base
}

func basePoints(p Prediction, homeScore, awayScore int) int {
	if p.HomeGoals == homeScore && p.AwayGoals == awayScore {
		return PointsExactScore
	}
	if fixture.ResultOutcome(p.HomeGoals, p.AwayGoals) == fixture.ResultOutcome(homeScore, awayScore) {
		return PointsCorrectResult
	}
	return PointsWrongResult
}

// ValidateBatch checks a submission batch before any write. Batches are
// all-or-nothing: one bad entry rejects the lot.
func ValidateBatch(items []Prediction) error {
	if len(items) == 0 {
		return ErrEmptyBatch
	}

	jokers := 0
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.FixtureID == "" {
			return ErrMissingFixtureRef
		}
		if item.HomeGoals < 0 || item.AwayGoals < 0 {
			return ErrNegativeGoals
		}
		if _, dup := seen[item.FixtureID]; dup {
			return ErrDuplicateFixture
		}
		seen[item.FixtureID] = struct{}{}
		if item.IsJoker {
			jokers++
		}
	}
	if jokers > 1 {
		return ErrMultipleJokers
	}

	return nil
}
