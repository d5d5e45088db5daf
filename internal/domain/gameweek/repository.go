package gameweek

import "context"

type Repository interface {
	List(ctx context.Context) ([]Gameweek, error)
	GetByNumber(ctx context.Context, number int) (Gameweek, bool, error)
	GetActive(ctx context.Context) (Gameweek, bool, error)
	// SetActive marks the given gameweek active and deactivates every other
	// one in the same write.
	SetActive(ctx context.Context, number int) error
	MarkComplete(ctx context.Context, number int) error
	// LatestCompleted returns the highest-numbered completed gameweek.
	LatestCompleted(ctx context.Context) (Gameweek, bool, error)
}
