package fixture

import "context"

// Repository exposes fixture reads and the result write.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	ListByGameweek(ctx context.Context, gameweek int) ([]Fixture, error)
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	// SaveResult overwrites both scores and marks the fixture complete.
	// Re-entering a result for an already complete fixture is allowed.
	SaveResult(ctx context.Context, fixtureID string, homeScore, awayScore int) error
}
