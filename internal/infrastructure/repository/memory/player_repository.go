package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pompeytony/wff-predictor/internal/domain/player"
)

type PlayerRepository struct {
	mu   sync.RWMutex
	byID map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[string]player.Player, len(players))
	for _, item := range players {
		byID[item.ID] = item
	}
	return &PlayerRepository{byID: byID}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[item.ID] = item
	return nil
}
