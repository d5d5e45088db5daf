package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
)

type GameweekRepository struct {
	mu       sync.RWMutex
	byNumber map[int]gameweek.Gameweek
}

func NewGameweekRepository(gameweeks []gameweek.Gameweek) *GameweekRepository {
	byNumber := make(map[int]gameweek.Gameweek, len(gameweeks))
	for _, item := range gameweeks {
		byNumber[item.Number] = item
	}
	return &GameweekRepository{byNumber: byNumber}
}

func (r *GameweekRepository) List(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.byNumber))
	for _, item := range r.byNumber {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *GameweekRepository) GetByNumber(_ context.Context, number int) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byNumber[number]
	return item, ok, nil
}

func (r *GameweekRepository) GetActive(_ context.Context) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byNumber {
		if item.IsActive {
			return item, true, nil
		}
	}
	return gameweek.Gameweek{}, false, nil
}

func (r *GameweekRepository) SetActive(_ context.Context, number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.byNumber {
		item.IsActive = key == number
		r.byNumber[key] = item
	}
	return nil
}

func (r *GameweekRepository) MarkComplete(_ context.Context, number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byNumber[number]
	if !ok {
		item = gameweek.Gameweek{Number: number}
	}
	item.IsComplete = true
	r.byNumber[number] = item
	return nil
}

func (r *GameweekRepository) LatestCompleted(_ context.Context) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := gameweek.Gameweek{}
	found := false
	for _, item := range r.byNumber {
		if !item.IsComplete {
			continue
		}
		if !found || item.Number > best.Number {
			best = item
			found = true
		}
	}
	return best, found, nil
}
