package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
)

type FixtureService struct {
	gameweekRepo gameweek.Repository
	fixtureRepo  fixture.Repository
}

func NewFixtureService(gameweekRepo gameweek.Repository, fixtureRepo fixture.Repository) *FixtureService {
	return &FixtureService{
		gameweekRepo: gameweekRepo,
		fixtureRepo:  fixtureRepo,
	}
}

func (s *FixtureService) ListByGameweek(ctx context.Context, number int) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByGameweek")
	defer span.End()

	if number <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}
	if _, exists, err := s.gameweekRepo.GetByNumber(ctx, number); err != nil {
		return nil, fmt.Errorf("get gameweek for fixture list: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: gameweek %d", ErrNotFound, number)
	}

	fixtures, err := s.fixtureRepo.ListByGameweek(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("list fixtures for gameweek %d: %w", number, err)
	}

	sort.SliceStable(fixtures, func(i, j int) bool {
		if !fixtures[i].KickoffAt.Equal(fixtures[j].KickoffAt) {
			return fixtures[i].KickoffAt.Before(fixtures[j].KickoffAt)
		}
		return fixtures[i].ID < fixtures[j].ID
	})
	return fixtures, nil
}
