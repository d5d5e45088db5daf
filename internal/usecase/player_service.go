package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pompeytony/wff-predictor/internal/domain/player"
	idgen "github.com/pompeytony/wff-predictor/internal/platform/id"
)

type PlayerService struct {
	playerRepo player.Repository
	ids        idgen.Generator
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, ids idgen.Generator) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		ids:        ids,
		now:        time.Now,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}

// RegisterPlayer creates a player with a server-issued public id.
func (s *PlayerService) RegisterPlayer(ctx context.Context, name string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.RegisterPlayer")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	publicID, err := s.ids.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now().UTC()
	item := player.Player{
		ID:        publicID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return item, nil
}
