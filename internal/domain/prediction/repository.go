package prediction

import "context"

type Repository interface {
	ListByFixture(ctx context.Context, fixtureID string) ([]Prediction, error)
	ListByGameweek(ctx context.Context, gameweek int) ([]Prediction, error)
	ListByPlayerAndGameweek(ctx context.Context, playerID string, gameweek int) ([]Prediction, error)
	// UpsertBatch writes every prediction or none, keyed (player, fixture).
	UpsertBatch(ctx context.Context, items []Prediction) error
	// UpdatePointsBatch rewrites stored points after a rescore, atomically.
	UpdatePointsBatch(ctx context.Context, items []Prediction) error
	// ClearOtherJokers unsets the joker flag on the player's predictions in
	// the gameweek except the one on keepFixtureID.
	ClearOtherJokers(ctx context.Context, playerID string, gameweek int, keepFixtureID string) error
}
