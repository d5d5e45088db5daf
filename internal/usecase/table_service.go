package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
	"github.com/pompeytony/wff-predictor/internal/domain/standings"
	"github.com/pompeytony/wff-predictor/internal/platform/cache"
)

const tableCacheKeyPrefix = "tables:"

// TableService serves the live, final weekly and cumulative season
// tables. Reads go through the shared TTL cache; writes elsewhere
// invalidate by prefix.
type TableService struct {
	playerRepo     player.Repository
	gameweekRepo   gameweek.Repository
	predictionRepo prediction.Repository
	standingsRepo  standings.Repository
	tableCache     *cache.Store
}

func NewTableService(
	playerRepo player.Repository,
	gameweekRepo gameweek.Repository,
	predictionRepo prediction.Repository,
	standingsRepo standings.Repository,
	tableCache *cache.Store,
) *TableService {
	return &TableService{
		playerRepo:     playerRepo,
		gameweekRepo:   gameweekRepo,
		predictionRepo: predictionRepo,
		standingsRepo:  standingsRepo,
		tableCache:     tableCache,
	}
}

// Live builds the in-progress table for the active gameweek from stored
// prediction points. Zero-point entries are flagged as awaiting results
// rather than treated as scored.
func (s *TableService) Live(ctx context.Context) (standings.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TableService.Live")
	defer span.End()

	return s.cached(ctx, tableCacheKeyPrefix+"live", func(ctx context.Context) (standings.Table, error) {
		active, exists, err := s.gameweekRepo.GetActive(ctx)
		if err != nil {
			return standings.Table{}, fmt.Errorf("get active gameweek for live table: %w", err)
		}
		if !exists {
			return standings.Table{}, fmt.Errorf("%w: no active gameweek", ErrNotFound)
		}

		items, err := s.predictionRepo.ListByGameweek(ctx, active.Number)
		if err != nil {
			return standings.Table{}, fmt.Errorf("list predictions for live table: %w", err)
		}

		totals := make(map[string]int)
		for _, item := range items {
			totals[item.PlayerID] += item.Points
		}

		rows := make([]standings.TableRow, 0, len(totals))
		for playerID, points := range totals {
			rows = append(rows, standings.TableRow{
				PlayerID:        playerID,
				Points:          points,
				AwaitingResults: points == 0,
			})
		}

		table := standings.Table{Gameweek: active.Number, IsLive: true, Rows: rankRows(rows)}
		if err := s.fillPlayerNames(ctx, table.Rows); err != nil {
			return standings.Table{}, err
		}
		return table, nil
	})
}

// Weekly serves the persisted final table for a gameweek. Without an
// explicit number it falls back to the most recently completed gameweek.
func (s *TableService) Weekly(ctx context.Context, number *int) (standings.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TableService.Weekly")
	defer span.End()

	target := 0
	if number != nil {
		if *number <= 0 {
			return standings.Table{}, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
		}
		target = *number
	} else {
		latest, exists, err := s.gameweekRepo.LatestCompleted(ctx)
		if err != nil {
			return standings.Table{}, fmt.Errorf("get latest completed gameweek: %w", err)
		}
		if !exists {
			return standings.Table{}, fmt.Errorf("%w: no completed gameweek", ErrNotFound)
		}
		target = latest.Number
	}

	return s.cached(ctx, tableCacheKeyPrefix+"weekly:"+strconv.Itoa(target), func(ctx context.Context) (standings.Table, error) {
		if _, exists, err := s.gameweekRepo.GetByNumber(ctx, target); err != nil {
			return standings.Table{}, fmt.Errorf("get gameweek for weekly table: %w", err)
		} else if !exists {
			return standings.Table{}, fmt.Errorf("%w: gameweek %d", ErrNotFound, target)
		}

		scores, err := s.standingsRepo.ListByGameweek(ctx, target)
		if err != nil {
			return standings.Table{}, fmt.Errorf("list weekly scores for gameweek %d: %w", target, err)
		}

		rows := make([]standings.TableRow, 0, len(scores))
		for _, score := range scores {
			rows = append(rows, standings.TableRow{
				PlayerID:           score.PlayerID,
				Points:             score.Points,
				IsManagerOfTheWeek: score.IsManagerOfTheWeek,
			})
		}

		table := standings.Table{Gameweek: target, Rows: rankRows(rows)}
		if err := s.fillPlayerNames(ctx, table.Rows); err != nil {
			return standings.Table{}, err
		}
		return table, nil
	})
}

// Season sums weekly totals (bonuses included) across completed
// gameweeks.
func (s *TableService) Season(ctx context.Context) (standings.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TableService.Season")
	defer span.End()

	return s.cached(ctx, tableCacheKeyPrefix+"season", func(ctx context.Context) (standings.Table, error) {
		gameweeks, err := s.gameweekRepo.List(ctx)
		if err != nil {
			return standings.Table{}, fmt.Errorf("list gameweeks for season table: %w", err)
		}
		completed := make(map[int]struct{}, len(gameweeks))
		for _, gw := range gameweeks {
			if gw.IsComplete {
				completed[gw.Number] = struct{}{}
			}
		}

		scores, err := s.standingsRepo.ListAll(ctx)
		if err != nil {
			return standings.Table{}, fmt.Errorf("list weekly scores for season table: %w", err)
		}

		totals := make(map[string]int)
		for _, score := range scores {
			if _, ok := completed[score.Gameweek]; !ok {
				continue
			}
			totals[score.PlayerID] += score.Points
		}

		rows := make([]standings.TableRow, 0, len(totals))
		for playerID, points := range totals {
			rows = append(rows, standings.TableRow{PlayerID: playerID, Points: points})
		}

		table := standings.Table{Rows: rankRows(rows)}
		if err := s.fillPlayerNames(ctx, table.Rows); err != nil {
			return standings.Table{}, err
		}
		return table, nil
	})
}

func (s *TableService) cached(ctx context.Context, key string, build func(context.Context) (standings.Table, error)) (standings.Table, error) {
	if s.tableCache == nil {
		return build(ctx)
	}

	value, err := s.tableCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return build(ctx)
	})
	if err != nil {
		return standings.Table{}, err
	}

	table, ok := value.(standings.Table)
	if !ok {
		return standings.Table{}, fmt.Errorf("unexpected cached table type %T", value)
	}
	return table, nil
}

func (s *TableService) fillPlayerNames(ctx context.Context, rows []standings.TableRow) error {
	if len(rows) == 0 {
		return nil
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list players for table names: %w", err)
	}
	nameByID := make(map[string]string, len(players))
	for _, item := range players {
		nameByID[item.ID] = item.Name
	}
	for i := range rows {
		rows[i].PlayerName = nameByID[rows[i].PlayerID]
	}
	return nil
}

// rankRows orders rows points descending with ties on ascending player
// id, then assigns dense ranks: equal points share a rank and the next
// distinct total takes the next integer.
func rankRows(rows []standings.TableRow) []standings.TableRow {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})

	lastPoints := 0
	rank := 0
	for idx := range rows {
		if idx == 0 || rows[idx].Points != lastPoints {
			rank++
			lastPoints = rows[idx].Points
		}
		rows[idx].Rank = rank
	}
	return rows
}
