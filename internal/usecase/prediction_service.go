package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
)

// PredictionService handles prediction submission and lookup.
type PredictionService struct {
	playerRepo     player.Repository
	fixtureRepo    fixture.Repository
	gameweekRepo   gameweek.Repository
	predictionRepo prediction.Repository
	gameweekSvc    *GameweekService
	now            func() time.Time
}

func NewPredictionService(
	playerRepo player.Repository,
	fixtureRepo fixture.Repository,
	gameweekRepo gameweek.Repository,
	predictionRepo prediction.Repository,
	gameweekSvc *GameweekService,
) *PredictionService {
	return &PredictionService{
		playerRepo:     playerRepo,
		fixtureRepo:    fixtureRepo,
		gameweekRepo:   gameweekRepo,
		predictionRepo: predictionRepo,
		gameweekSvc:    gameweekSvc,
		now:            time.Now,
	}
}

type PredictionEntryInput struct {
	FixtureID string
	HomeGoals int
	AwayGoals int
	IsJoker   bool
}

type SubmitPredictionsInput struct {
	PlayerID string
	Entries  []PredictionEntryInput
}

// SubmitPredictions validates and upserts a batch of predictions for one
// player. The batch is all-or-nothing: any invalid entry rejects every
// entry before a single write happens. Every fixture in the batch must
// belong to the same gameweek, and submitting a joker clears the player's
// previous joker in that gameweek.
func (s *PredictionService) SubmitPredictions(ctx context.Context, input SubmitPredictionsInput) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SubmitPredictions")
	defer span.End()

	if input.PlayerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if _, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		return nil, fmt.Errorf("get player for predictions: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: player %s", ErrNotFound, input.PlayerID)
	}

	now := s.now().UTC()
	items := make([]prediction.Prediction, 0, len(input.Entries))
	for _, entry := range input.Entries {
		items = append(items, prediction.Prediction{
			PlayerID:  input.PlayerID,
			FixtureID: entry.FixtureID,
			HomeGoals: entry.HomeGoals,
			AwayGoals: entry.AwayGoals,
			IsJoker:   entry.IsJoker,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := prediction.ValidateBatch(items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	batchGameweek := 0
	jokerFixtureID := ""
	for i := range items {
		fx, exists, err := s.fixtureRepo.GetByID(ctx, items[i].FixtureID)
		if err != nil {
			return nil, fmt.Errorf("get fixture %s for prediction: %w", items[i].FixtureID, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: fixture %s", ErrNotFound, items[i].FixtureID)
		}

		if batchGameweek == 0 {
			batchGameweek = fx.Gameweek
		} else if fx.Gameweek != batchGameweek {
			return nil, fmt.Errorf("%w: batch spans gameweeks %d and %d", ErrInvalidInput, batchGameweek, fx.Gameweek)
		}

		items[i].Gameweek = fx.Gameweek
		if fx.HasResult() {
			items[i].Points = prediction.Score(items[i], *fx.HomeScore, *fx.AwayScore)
		}
		if items[i].IsJoker {
			jokerFixtureID = items[i].FixtureID
		}
	}

	gw, exists, err := s.gameweekRepo.GetByNumber(ctx, batchGameweek)
	if err != nil {
		return nil, fmt.Errorf("get gameweek %d for predictions: %w", batchGameweek, err)
	}
	if exists && gw.DeadlinePassed(now) {
		return nil, fmt.Errorf("%w: gameweek %d deadline has passed", ErrInvalidInput, batchGameweek)
	}

	if err := s.predictionRepo.UpsertBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("upsert prediction batch: %w", err)
	}
	if jokerFixtureID != "" {
		if err := s.predictionRepo.ClearOtherJokers(ctx, input.PlayerID, batchGameweek, jokerFixtureID); err != nil {
			return nil, fmt.Errorf("clear previous joker: %w", err)
		}
		if err := s.rescoreAfterJokerMove(ctx, input.PlayerID, batchGameweek); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// rescoreAfterJokerMove rebuilds stored points for the player's
// predictions in the gameweek once a joker has changed fixture. Clearing
// the flag on an already scored prediction halves its award, so points
// are recomputed from the fixture results rather than left as written.
func (s *PredictionService) rescoreAfterJokerMove(ctx context.Context, playerID string, gw int) error {
	items, err := s.predictionRepo.ListByPlayerAndGameweek(ctx, playerID, gw)
	if err != nil {
		return fmt.Errorf("list predictions after joker move: %w", err)
	}

	changed := make([]prediction.Prediction, 0, len(items))
	for _, item := range items {
		fx, exists, err := s.fixtureRepo.GetByID(ctx, item.FixtureID)
		if err != nil {
			return fmt.Errorf("get fixture %s after joker move: %w", item.FixtureID, err)
		}
		if !exists || !fx.HasResult() {
			continue
		}
		points := prediction.Score(item, *fx.HomeScore, *fx.AwayScore)
		if points == item.Points {
			continue
		}
		item.Points = points
		changed = append(changed, item)
	}
	if len(changed) == 0 {
		return nil
	}

	if err := s.predictionRepo.UpdatePointsBatch(ctx, changed); err != nil {
		return fmt.Errorf("update points after joker move: %w", err)
	}
	if s.gameweekSvc != nil {
		if _, err := s.gameweekSvc.CalculateGameweekScores(ctx, gw); err != nil {
			return err
		}
	}
	return nil
}

// ListPlayerPredictions returns a player's predictions for one gameweek,
// ordered by fixture id.
func (s *PredictionService) ListPlayerPredictions(ctx context.Context, playerID string, gw int) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListPlayerPredictions")
	defer span.End()

	if gw <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}
	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, fmt.Errorf("get player for prediction list: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	items, err := s.predictionRepo.ListByPlayerAndGameweek(ctx, playerID, gw)
	if err != nil {
		return nil, fmt.Errorf("list predictions by player and gameweek: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].FixtureID < items[j].FixtureID
	})
	return items, nil
}
