package standings

import "context"

type Repository interface {
	ListByGameweek(ctx context.Context, gameweek int) ([]WeeklyScore, error)
	ListAll(ctx context.Context) ([]WeeklyScore, error)
	// ReplaceByGameweek swaps the gameweek's rows wholesale.
	ReplaceByGameweek(ctx context.Context, gameweek int, rows []WeeklyScore) error
}
