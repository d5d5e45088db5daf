package usecase_test

import (
	"context"
	"errors"
	. "github.com/pompeytony/wff-predictor/internal/usecase"
	"testing"
	"time"

	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
	"github.com/pompeytony/wff-predictor/internal/domain/standings"
	"github.com/pompeytony/wff-predictor/internal/platform/cache"
)

func TestTableService_Live_FlagsAwaitingResults(t *testing.T) {
	t.Parallel()

	players := newStubPlayerRepository(
		player.Player{ID: "pl-alice", Name: "Alice"},
		player.Player{ID: "pl-bob", Name: "Bob"},
	)
	gameweeks := newStubGameweekRepository(gameweek.Gameweek{Number: 1, IsActive: true})
	predictions := newStubPredictionRepository(
		prediction.Prediction{PlayerID: "pl-alice", FixtureID: "fx-1", Gameweek: 1, Points: 5},
		prediction.Prediction{PlayerID: "pl-bob", FixtureID: "fx-1", Gameweek: 1, Points: 0},
	)
	service := NewTableService(players, gameweeks, predictions, newStubStandingsRepository(), nil)

	table, err := service.Live(context.Background())
	if err != nil {
		t.Fatalf("Live error: %v", err)
	}
	if !table.IsLive || table.Gameweek != 1 {
		t.Fatalf("unexpected table meta: %+v", table)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].PlayerID != "pl-alice" || table.Rows[0].AwaitingResults {
		t.Fatalf("scored player must not be awaiting results: %+v", table.Rows[0])
	}
	if table.Rows[1].PlayerID != "pl-bob" || !table.Rows[1].AwaitingResults {
		t.Fatalf("zero-point player must be awaiting results: %+v", table.Rows[1])
	}
	if table.Rows[0].PlayerName != "Alice" {
		t.Fatalf("player names must be filled in, got %q", table.Rows[0].PlayerName)
	}
}

func TestTableService_Live_NoActiveGameweek(t *testing.T) {
	t.Parallel()

	service := NewTableService(
		newStubPlayerRepository(),
		newStubGameweekRepository(gameweek.Gameweek{Number: 1}),
		newStubPredictionRepository(),
		newStubStandingsRepository(),
		nil,
	)

	_, err := service.Live(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTableService_Weekly_DefaultsToLatestCompleted(t *testing.T) {
	t.Parallel()

	players := newStubPlayerRepository(player.Player{ID: "pl-alice", Name: "Alice"})
	gameweeks := newStubGameweekRepository(
		gameweek.Gameweek{Number: 1, IsComplete: true},
		gameweek.Gameweek{Number: 2, IsComplete: true},
		gameweek.Gameweek{Number: 3, IsActive: true},
	)
	scores := newStubStandingsRepository()
	_ = scores.ReplaceByGameweek(context.Background(), 2, []standings.WeeklyScore{
		{PlayerID: "pl-alice", Gameweek: 2, Points: 15, IsManagerOfTheWeek: true},
	})
	service := NewTableService(players, gameweeks, newStubPredictionRepository(), scores, nil)

	table, err := service.Weekly(context.Background(), nil)
	if err != nil {
		t.Fatalf("Weekly error: %v", err)
	}
	if table.Gameweek != 2 {
		t.Fatalf("expected latest completed gameweek 2, got %d", table.Gameweek)
	}
	if table.IsLive {
		t.Fatalf("weekly table must not be live")
	}
	if len(table.Rows) != 1 || table.Rows[0].Points != 15 || !table.Rows[0].IsManagerOfTheWeek {
		t.Fatalf("unexpected rows: %+v", table.Rows)
	}
}

func TestTableService_Weekly_UnknownGameweek(t *testing.T) {
	t.Parallel()

	service := NewTableService(
		newStubPlayerRepository(),
		newStubGameweekRepository(gameweek.Gameweek{Number: 1, IsComplete: true}),
		newStubPredictionRepository(),
		newStubStandingsRepository(),
		nil,
	)

	target := 9
	if _, err := service.Weekly(context.Background(), &target); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	invalid := 0
	if _, err := service.Weekly(context.Background(), &invalid); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTableService_Season_SumsCompletedGameweeksOnly(t *testing.T) {
	t.Parallel()

	players := newStubPlayerRepository(
		player.Player{ID: "pl-alice", Name: "Alice"},
		player.Player{ID: "pl-bob", Name: "Bob"},
	)
	gameweeks := newStubGameweekRepository(
		gameweek.Gameweek{Number: 1, IsComplete: true},
		gameweek.Gameweek{Number: 2, IsComplete: true},
		gameweek.Gameweek{Number: 3, IsActive: true},
	)
	scores := newStubStandingsRepository()
	ctx := context.Background()
	_ = scores.ReplaceByGameweek(ctx, 1, []standings.WeeklyScore{
		{PlayerID: "pl-alice", Gameweek: 1, Points: 10, IsManagerOfTheWeek: true},
		{PlayerID: "pl-bob", Gameweek: 1, Points: 5},
	})
	_ = scores.ReplaceByGameweek(ctx, 2, []standings.WeeklyScore{
		{PlayerID: "pl-alice", Gameweek: 2, Points: 5},
		{PlayerID: "pl-bob", Gameweek: 2, Points: 10, IsManagerOfTheWeek: true},
	})
	// Gameweek 3 is still in play and must not count yet.
	_ = scores.ReplaceByGameweek(ctx, 3, []standings.WeeklyScore{
		{PlayerID: "pl-bob", Gameweek: 3, Points: 50},
	})
	service := NewTableService(players, gameweeks, newStubPredictionRepository(), scores, nil)

	table, err := service.Season(ctx)
	if err != nil {
		t.Fatalf("Season error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	for _, row := range table.Rows {
		if row.Points != 15 {
			t.Fatalf("season total for %s: want 15, got %d", row.PlayerID, row.Points)
		}
	}
	// Tied totals share rank 1, ordered by player id.
	if table.Rows[0].Rank != 1 || table.Rows[1].Rank != 1 {
		t.Fatalf("tied players must share a rank: %+v", table.Rows)
	}
	if table.Rows[0].PlayerID != "pl-alice" {
		t.Fatalf("ties order by ascending player id, got %s first", table.Rows[0].PlayerID)
	}
}

func TestTableService_RankRows_DenseRanks(t *testing.T) {
	t.Parallel()

	rows := RankRows([]standings.TableRow{
		{PlayerID: "pl-d", Points: 5},
		{PlayerID: "pl-a", Points: 20},
		{PlayerID: "pl-c", Points: 10},
		{PlayerID: "pl-b", Points: 10},
	})

	wantRanks := []int{1, 2, 2, 3}
	wantIDs := []string{"pl-a", "pl-b", "pl-c", "pl-d"}
	for i, row := range rows {
		if row.Rank != wantRanks[i] || row.PlayerID != wantIDs[i] {
			t.Fatalf("row %d: want rank=%d id=%s, got %+v", i, wantRanks[i], wantIDs[i], row)
		}
	}
}

func TestTableService_CachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	players := newStubPlayerRepository(player.Player{ID: "pl-alice", Name: "Alice"})
	gameweeks := newStubGameweekRepository(gameweek.Gameweek{Number: 1, IsActive: true})
	predictions := newStubPredictionRepository(
		prediction.Prediction{PlayerID: "pl-alice", FixtureID: "fx-1", Gameweek: 1, Points: 5},
	)
	scores := newStubStandingsRepository()
	tableCache := cache.NewStore(time.Minute)

	tableSvc := NewTableService(players, gameweeks, predictions, scores, tableCache)
	gameweekSvc := NewGameweekService(gameweeks, predictions, scores, tableCache)

	ctx := context.Background()
	first, err := tableSvc.Live(ctx)
	if err != nil {
		t.Fatalf("Live error: %v", err)
	}
	if first.Rows[0].Points != 5 {
		t.Fatalf("expected 5 points, got %d", first.Rows[0].Points)
	}

	// New points are invisible until a recalculation invalidates tables.
	_ = predictions.UpsertBatch(ctx, []prediction.Prediction{
		{PlayerID: "pl-alice", FixtureID: "fx-1", Gameweek: 1, Points: 10},
	})
	stale, err := tableSvc.Live(ctx)
	if err != nil {
		t.Fatalf("Live error: %v", err)
	}
	if stale.Rows[0].Points != 5 {
		t.Fatalf("expected cached 5 points, got %d", stale.Rows[0].Points)
	}

	if _, err := gameweekSvc.CalculateGameweekScores(ctx, 1); err != nil {
		t.Fatalf("CalculateGameweekScores error: %v", err)
	}
	fresh, err := tableSvc.Live(ctx)
	if err != nil {
		t.Fatalf("Live error: %v", err)
	}
	if fresh.Rows[0].Points != 10 {
		t.Fatalf("expected refreshed 10 points, got %d", fresh.Rows[0].Points)
	}
}
