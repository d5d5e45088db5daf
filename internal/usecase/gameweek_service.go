package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
	"github.com/pompeytony/wff-predictor/internal/domain/standings"
	"github.com/pompeytony/wff-predictor/internal/platform/cache"
)

// GameweekService owns the gameweek lifecycle and the weekly score
// aggregation.
type GameweekService struct {
	gameweekRepo   gameweek.Repository
	predictionRepo prediction.Repository
	standingsRepo  standings.Repository
	tableCache     *cache.Store
	now            func() time.Time
}

func NewGameweekService(
	gameweekRepo gameweek.Repository,
	predictionRepo prediction.Repository,
	standingsRepo standings.Repository,
	tableCache *cache.Store,
) *GameweekService {
	return &GameweekService{
		gameweekRepo:   gameweekRepo,
		predictionRepo: predictionRepo,
		standingsRepo:  standingsRepo,
		tableCache:     tableCache,
		now:            time.Now,
	}
}

func (s *GameweekService) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.List")
	defer span.End()

	items, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Number < items[j].Number
	})
	return items, nil
}

// Activate makes the gameweek the single active one. The repository write
// deactivates every other gameweek atomically.
func (s *GameweekService) Activate(ctx context.Context, number int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Activate")
	defer span.End()

	if number <= 0 {
		return fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}
	if _, exists, err := s.gameweekRepo.GetByNumber(ctx, number); err != nil {
		return fmt.Errorf("get gameweek for activation: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: gameweek %d", ErrNotFound, number)
	}

	if err := s.gameweekRepo.SetActive(ctx, number); err != nil {
		return fmt.Errorf("set active gameweek: %w", err)
	}
	s.invalidateTables(ctx)
	return nil
}

// Complete marks the gameweek complete and runs the score aggregation so
// the final weekly table is available immediately.
func (s *GameweekService) Complete(ctx context.Context, number int) ([]standings.WeeklyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Complete")
	defer span.End()

	if number <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}
	if _, exists, err := s.gameweekRepo.GetByNumber(ctx, number); err != nil {
		return nil, fmt.Errorf("get gameweek for completion: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: gameweek %d", ErrNotFound, number)
	}

	if err := s.gameweekRepo.MarkComplete(ctx, number); err != nil {
		return nil, fmt.Errorf("mark gameweek complete: %w", err)
	}
	return s.CalculateGameweekScores(ctx, number)
}

// CalculateGameweekScores recomputes the gameweek's weekly scores from
// stored prediction points and replaces the persisted rows wholesale.
// Safe to run any number of times; players without predictions get no
// row, and a gameweek without predictions ends up with none at all.
func (s *GameweekService) CalculateGameweekScores(ctx context.Context, number int) ([]standings.WeeklyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.CalculateGameweekScores")
	defer span.End()

	if number <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}
	if _, exists, err := s.gameweekRepo.GetByNumber(ctx, number); err != nil {
		return nil, fmt.Errorf("get gameweek for calculation: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: gameweek %d", ErrNotFound, number)
	}

	items, err := s.predictionRepo.ListByGameweek(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("list predictions for gameweek %d: %w", number, err)
	}

	rows := aggregateWeeklyScores(items, number, s.now().UTC())
	if err := s.standingsRepo.ReplaceByGameweek(ctx, number, rows); err != nil {
		return nil, fmt.Errorf("replace weekly scores for gameweek %d: %w", number, err)
	}

	s.invalidateTables(ctx)
	return rows, nil
}

func (s *GameweekService) invalidateTables(ctx context.Context) {
	if s.tableCache == nil {
		return
	}
	s.tableCache.DeletePrefix(ctx, tableCacheKeyPrefix)
}

// aggregateWeeklyScores sums prediction points per player and awards the
// Manager of the Week bonus to the best total, ties going to the lowest
// player id. Rows come back sorted points descending, player id ascending.
func aggregateWeeklyScores(items []prediction.Prediction, number int, calculatedAt time.Time) []standings.WeeklyScore {
	totals := make(map[string]int)
	for _, item := range items {
		totals[item.PlayerID] += item.Points
	}
	if len(totals) == 0 {
		return []standings.WeeklyScore{}
	}

	motwPlayerID := ""
	motwPoints := 0
	for playerID, points := range totals {
		switch {
		case motwPlayerID == "",
			points > motwPoints,
			points == motwPoints && playerID < motwPlayerID:
			motwPlayerID = playerID
			motwPoints = points
		}
	}
	totals[motwPlayerID] += prediction.ManagerOfTheWeekBonus

	rows := make([]standings.WeeklyScore, 0, len(totals))
	for playerID, points := range totals {
		rows = append(rows, standings.WeeklyScore{
			PlayerID:           playerID,
			Gameweek:           number,
			Points:             points,
			IsManagerOfTheWeek: playerID == motwPlayerID,
			CalculatedAt:       calculatedAt,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	return rows
}
