package cache

import (
	"context"
	"strconv"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
	"github.com/pompeytony/wff-predictor/internal/domain/standings"
	basecache "github.com/pompeytony/wff-predictor/internal/platform/cache"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := "player:id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "player:list")
	r.cache.Delete(ctx, "player:id:"+item.ID)
	return nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type GameweekRepository struct {
	next  gameweek.Repository
	cache *basecache.Store
}

func NewGameweekRepository(next gameweek.Repository, cache *basecache.Store) *GameweekRepository {
	return &GameweekRepository{next: next, cache: cache}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	v, err := r.cache.GetOrLoad(ctx, "gameweek:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]gameweek.Gameweek(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gameweek.Gameweek)
	return append([]gameweek.Gameweek(nil), items...), nil
}

func (r *GameweekRepository) GetByNumber(ctx context.Context, number int) (gameweek.Gameweek, bool, error) {
	key := "gameweek:number:" + strconv.Itoa(number)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		return cachedGameweek{value: item, exists: exists}, nil
	})
	if err != nil {
		return gameweek.Gameweek{}, false, err
	}

	cached, _ := v.(cachedGameweek)
	return cached.value, cached.exists, nil
}

func (r *GameweekRepository) GetActive(ctx context.Context) (gameweek.Gameweek, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "gameweek:active", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		return cachedGameweek{value: item, exists: exists}, nil
	})
	if err != nil {
		return gameweek.Gameweek{}, false, err
	}

	cached, _ := v.(cachedGameweek)
	return cached.value, cached.exists, nil
}

// SetActive flips the active flag on every gameweek row, so the whole
// gameweek namespace is dropped rather than individual keys.
func (r *GameweekRepository) SetActive(ctx context.Context, number int) error {
	if err := r.next.SetActive(ctx, number); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "gameweek:")
	return nil
}

func (r *GameweekRepository) MarkComplete(ctx context.Context, number int) error {
	if err := r.next.MarkComplete(ctx, number); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "gameweek:")
	return nil
}

func (r *GameweekRepository) LatestCompleted(ctx context.Context) (gameweek.Gameweek, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "gameweek:latest-completed", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.LatestCompleted(ctx)
		if err != nil {
			return nil, err
		}
		return cachedGameweek{value: item, exists: exists}, nil
	})
	if err != nil {
		return gameweek.Gameweek{}, false, err
	}

	cached, _ := v.(cachedGameweek)
	return cached.value, cached.exists, nil
}

type cachedGameweek struct {
	value  gameweek.Gameweek
	exists bool
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	v, err := r.cache.GetOrLoad(ctx, "fixture:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return append([]fixture.Fixture(nil), items...), nil
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, gw int) ([]fixture.Fixture, error) {
	key := "fixture:gameweek:" + strconv.Itoa(gw)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGameweek(ctx, gw)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return append([]fixture.Fixture(nil), items...), nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	key := "fixture:id:" + fixtureID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, fixtureID)
		if err != nil {
			return nil, err
		}
		return cachedFixtureByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	cached, _ := v.(cachedFixtureByID)
	return cached.value, cached.exists, nil
}

func (r *FixtureRepository) SaveResult(ctx context.Context, fixtureID string, homeScore, awayScore int) error {
	if err := r.next.SaveResult(ctx, fixtureID, homeScore, awayScore); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "fixture:")
	return nil
}

type cachedFixtureByID struct {
	value  fixture.Fixture
	exists bool
}

type WeeklyScoreRepository struct {
	next  standings.Repository
	cache *basecache.Store
}

func NewWeeklyScoreRepository(next standings.Repository, cache *basecache.Store) *WeeklyScoreRepository {
	return &WeeklyScoreRepository{next: next, cache: cache}
}

func (r *WeeklyScoreRepository) ListByGameweek(ctx context.Context, gw int) ([]standings.WeeklyScore, error) {
	key := "weekly-score:gameweek:" + strconv.Itoa(gw)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGameweek(ctx, gw)
		if err != nil {
			return nil, err
		}
		return append([]standings.WeeklyScore(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standings.WeeklyScore)
	return append([]standings.WeeklyScore(nil), items...), nil
}

func (r *WeeklyScoreRepository) ListAll(ctx context.Context) ([]standings.WeeklyScore, error) {
	v, err := r.cache.GetOrLoad(ctx, "weekly-score:all", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]standings.WeeklyScore(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standings.WeeklyScore)
	return append([]standings.WeeklyScore(nil), items...), nil
}

func (r *WeeklyScoreRepository) ReplaceByGameweek(ctx context.Context, gw int, rows []standings.WeeklyScore) error {
	if err := r.next.ReplaceByGameweek(ctx, gw, rows); err != nil {
		return err
	}
	r.cache.Delete(ctx, "weekly-score:gameweek:"+strconv.Itoa(gw))
	r.cache.Delete(ctx, "weekly-score:all")
	return nil
}
