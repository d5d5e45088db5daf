package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
)

type predictionKey struct {
	playerID  string
	fixtureID string
}

type PredictionRepository struct {
	mu    sync.RWMutex
	byKey map[predictionKey]prediction.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{byKey: make(map[predictionKey]prediction.Prediction)}
}

func (r *PredictionRepository) ListByFixture(_ context.Context, fixtureID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for key, item := range r.byKey {
		if key.fixtureID == fixtureID {
			out = append(out, item)
		}
	}
	sortPredictions(out)
	return out, nil
}

func (r *PredictionRepository) ListByGameweek(_ context.Context, gw int) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.byKey {
		if item.Gameweek == gw {
			out = append(out, item)
		}
	}
	sortPredictions(out)
	return out, nil
}

func (r *PredictionRepository) ListByPlayerAndGameweek(_ context.Context, playerID string, gw int) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for key, item := range r.byKey {
		if key.playerID == playerID && item.Gameweek == gw {
			out = append(out, item)
		}
	}
	sortPredictions(out)
	return out, nil
}

func (r *PredictionRepository) UpsertBatch(_ context.Context, items []prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.byKey[predictionKey{playerID: item.PlayerID, fixtureID: item.FixtureID}] = item
	}
	return nil
}

func (r *PredictionRepository) UpdatePointsBatch(_ context.Context, items []prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		key := predictionKey{playerID: item.PlayerID, fixtureID: item.FixtureID}
		stored, ok := r.byKey[key]
		if !ok {
			continue
		}
		stored.Points = item.Points
		r.byKey[key] = stored
	}
	return nil
}

func (r *PredictionRepository) ClearOtherJokers(_ context.Context, playerID string, gw int, keepFixtureID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.byKey {
		if key.playerID != playerID || item.Gameweek != gw || key.fixtureID == keepFixtureID {
			continue
		}
		if item.IsJoker {
			item.IsJoker = false
			r.byKey[key] = item
		}
	}
	return nil
}

func sortPredictions(items []prediction.Prediction) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PlayerID != items[j].PlayerID {
			return items[i].PlayerID < items[j].PlayerID
		}
		return items[i].FixtureID < items[j].FixtureID
	})
}
