package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
)

type FixtureRepository struct {
	mu   sync.RWMutex
	byID map[string]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	byID := make(map[string]fixture.Fixture, len(fixtures))
	for _, item := range fixtures {
		byID[item.ID] = item
	}
	return &FixtureRepository{byID: byID}
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sortFixtures(out)
	return out, nil
}

func (r *FixtureRepository) ListByGameweek(_ context.Context, gw int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.byID {
		if item.Gameweek == gw {
			out = append(out, item)
		}
	}
	sortFixtures(out)
	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) SaveResult(_ context.Context, fixtureID string, homeScore, awayScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[fixtureID]
	if !ok {
		return nil
	}
	item.HomeScore = &homeScore
	item.AwayScore = &awayScore
	item.IsComplete = true
	r.byID[fixtureID] = item
	return nil
}

func sortFixtures(items []fixture.Fixture) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Gameweek != items[j].Gameweek {
			return items[i].Gameweek < items[j].Gameweek
		}
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].ID < items[j].ID
	})
}
