package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
	"github.com/pompeytony/wff-predictor/internal/platform/logging"
	"github.com/pompeytony/wff-predictor/internal/platform/resilience"
)

const defaultRescoreWorkers = 4

// ResultService enters fixture results and keeps every derived score
// consistent with them.
type ResultService struct {
	fixtureRepo    fixture.Repository
	predictionRepo prediction.Repository
	gameweekSvc    *GameweekService
	logger         *logging.Logger
	rescoreWorkers int
	resultFlight   resilience.SingleFlight
}

func NewResultService(
	fixtureRepo fixture.Repository,
	predictionRepo prediction.Repository,
	gameweekSvc *GameweekService,
	logger *logging.Logger,
	rescoreWorkers int,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	if rescoreWorkers <= 0 {
		rescoreWorkers = defaultRescoreWorkers
	}
	return &ResultService{
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
		gameweekSvc:    gameweekSvc,
		logger:         logger,
		rescoreWorkers: rescoreWorkers,
	}
}

// EnterResult overwrites the fixture's score, marks it complete, rescores
// every prediction on it and recomputes the owning gameweek's weekly
// scores before returning. Re-entering a result for a complete fixture
// runs the same cascade. Concurrent entries for one fixture collapse
// into a single run.
func (s *ResultService) EnterResult(ctx context.Context, fixtureID string, homeScore, awayScore int) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.EnterResult")
	defer span.End()

	if fixtureID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}
	if homeScore < 0 || awayScore < 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	key := "result:" + fixtureID
	value, err, _ := s.resultFlight.Do(key, func() (any, error) {
		return s.enterResultOnce(ctx, fixtureID, homeScore, awayScore)
	})
	if err != nil {
		return fixture.Fixture{}, err
	}

	updated, ok := value.(fixture.Fixture)
	if !ok {
		return fixture.Fixture{}, fmt.Errorf("unexpected result entry value type %T", value)
	}
	return updated, nil
}

func (s *ResultService) enterResultOnce(ctx context.Context, fixtureID string, homeScore, awayScore int) (fixture.Fixture, error) {
	fx, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture for result: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture %s", ErrNotFound, fixtureID)
	}

	if err := s.fixtureRepo.SaveResult(ctx, fixtureID, homeScore, awayScore); err != nil {
		return fixture.Fixture{}, fmt.Errorf("save fixture result: %w", err)
	}

	rescored, err := s.rescoreFixture(ctx, fixtureID, homeScore, awayScore)
	if err != nil {
		return fixture.Fixture{}, err
	}
	if _, err := s.gameweekSvc.CalculateGameweekScores(ctx, fx.Gameweek); err != nil {
		return fixture.Fixture{}, err
	}

	s.logger.InfoContext(ctx, "fixture result entered",
		"fixture_id", fixtureID,
		"gameweek", fx.Gameweek,
		"home_score", homeScore,
		"away_score", awayScore,
		"predictions_rescored", rescored,
	)

	fx.HomeScore = &homeScore
	fx.AwayScore = &awayScore
	fx.IsComplete = true
	return fx, nil
}

// rescoreFixture recomputes stored points for every prediction on the
// fixture from scratch; points are never patched incrementally.
func (s *ResultService) rescoreFixture(ctx context.Context, fixtureID string, homeScore, awayScore int) (int, error) {
	items, err := s.predictionRepo.ListByFixture(ctx, fixtureID)
	if err != nil {
		return 0, fmt.Errorf("list predictions for fixture %s: %w", fixtureID, err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	for i := range items {
		items[i].Points = prediction.Score(items[i], homeScore, awayScore)
	}
	if err := s.predictionRepo.UpdatePointsBatch(ctx, items); err != nil {
		return 0, fmt.Errorf("update prediction points for fixture %s: %w", fixtureID, err)
	}
	return len(items), nil
}

type RescoreSeasonResult struct {
	FixtureCount    int `json:"fixture_count"`
	PredictionCount int `json:"prediction_count"`
	GameweekCount   int `json:"gameweek_count"`
	WorkerCount     int `json:"worker_count"`
	FailedCount     int `json:"failed_count"`
}

// RescoreSeason recomputes every completed fixture's prediction points on
// a worker pool, then rebuilds every affected gameweek's weekly scores.
// Meant for repairing drift after rule or data fixes.
func (s *ResultService) RescoreSeason(ctx context.Context, maxWorkers int) (RescoreSeasonResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.RescoreSeason")
	defer span.End()

	fixtures, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return RescoreSeasonResult{}, fmt.Errorf("list fixtures for rescore: %w", err)
	}

	completed := make([]fixture.Fixture, 0, len(fixtures))
	gameweekSet := make(map[int]struct{})
	for _, fx := range fixtures {
		if !fx.HasResult() {
			continue
		}
		completed = append(completed, fx)
		gameweekSet[fx.Gameweek] = struct{}{}
	}

	workerCount := maxWorkers
	if workerCount <= 0 {
		workerCount = s.rescoreWorkers
	}
	if workerCount > len(completed) && len(completed) > 0 {
		workerCount = len(completed)
	}

	result := RescoreSeasonResult{
		FixtureCount:  len(completed),
		GameweekCount: len(gameweekSet),
		WorkerCount:   workerCount,
	}
	if len(completed) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RescoreSeasonResult{}, fmt.Errorf("create rescore worker pool: %w", err)
	}
	defer pool.Release()

	var predictionCount atomic.Int64
	var failedCount atomic.Int64
	var workers sync.WaitGroup
	for _, fx := range completed {
		fx := fx
		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()
			rescored, rescoreErr := s.rescoreFixture(ctx, fx.ID, *fx.HomeScore, *fx.AwayScore)
			if rescoreErr != nil {
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "fixture rescore failed", "fixture_id", fx.ID, "error", rescoreErr)
				return
			}
			predictionCount.Add(int64(rescored))
		})
		if submitErr != nil {
			workers.Done()
			failedCount.Add(1)
		}
	}
	workers.Wait()

	numbers := make([]int, 0, len(gameweekSet))
	for number := range gameweekSet {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)
	for _, number := range numbers {
		if _, err := s.gameweekSvc.CalculateGameweekScores(ctx, number); err != nil {
			return RescoreSeasonResult{}, err
		}
	}

	result.PredictionCount = int(predictionCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}
