package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pompeytony/wff-predictor/internal/domain/standings"
)

type WeeklyScoreRepository struct {
	mu         sync.RWMutex
	byGameweek map[int][]standings.WeeklyScore
}

func NewWeeklyScoreRepository() *WeeklyScoreRepository {
	return &WeeklyScoreRepository{byGameweek: make(map[int][]standings.WeeklyScore)}
}

func (r *WeeklyScoreRepository) ListByGameweek(_ context.Context, gw int) ([]standings.WeeklyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standings.WeeklyScore, len(r.byGameweek[gw]))
	copy(out, r.byGameweek[gw])
	sortWeeklyScores(out)
	return out, nil
}

func (r *WeeklyScoreRepository) ListAll(_ context.Context) ([]standings.WeeklyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standings.WeeklyScore, 0)
	for _, rows := range r.byGameweek {
		out = append(out, rows...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *WeeklyScoreRepository) ReplaceByGameweek(_ context.Context, gw int, rows []standings.WeeklyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]standings.WeeklyScore, len(rows))
	copy(stored, rows)
	r.byGameweek[gw] = stored
	return nil
}

func sortWeeklyScores(items []standings.WeeklyScore) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Points != items[j].Points {
			return items[i].Points > items[j].Points
		}
		return items[i].PlayerID < items[j].PlayerID
	})
}
