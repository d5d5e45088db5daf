package usecase_test

import (
	"context"
	"errors"
	. "github.com/pompeytony/wff-predictor/internal/usecase"
	"testing"
	"time"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
)

func newPredictionFixtures() (*stubPlayerRepository, *stubFixtureRepository, *stubGameweekRepository, *stubPredictionRepository) {
	players := newStubPlayerRepository(
		player.Player{ID: "pl-alice", Name: "Alice"},
		player.Player{ID: "pl-bob", Name: "Bob"},
	)
	fixtures := newStubFixtureRepository(
		fixture.Fixture{ID: "fx-1", Gameweek: 1, HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
		fixture.Fixture{ID: "fx-2", Gameweek: 1, HomeTeam: "Leeds", AwayTeam: "Derby"},
		fixture.Fixture{ID: "fx-3", Gameweek: 2, HomeTeam: "Spurs", AwayTeam: "Fulham"},
	)
	gameweeks := newStubGameweekRepository(
		gameweek.Gameweek{Number: 1, IsActive: true},
		gameweek.Gameweek{Number: 2},
	)
	return players, fixtures, gameweeks, newStubPredictionRepository()
}

func TestPredictionService_SubmitPredictions_UpsertsBatch(t *testing.T) {
	t.Parallel()

	players, fixtures, gameweeks, predictions := newPredictionFixtures()
	service := NewPredictionService(players, fixtures, gameweeks, predictions, nil)

	got, err := service.SubmitPredictions(context.Background(), SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries: []PredictionEntryInput{
			{FixtureID: "fx-1", HomeGoals: 2, AwayGoals: 1, IsJoker: true},
			{FixtureID: "fx-2", HomeGoals: 0, AwayGoals: 0},
		},
	})
	if err != nil {
		t.Fatalf("SubmitPredictions error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(got))
	}

	stored, err := predictions.ListByPlayerAndGameweek(context.Background(), "pl-alice", 1)
	if err != nil {
		t.Fatalf("list stored predictions: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored predictions, got %d", len(stored))
	}
	if !stored[0].IsJoker || stored[0].FixtureID != "fx-1" {
		t.Fatalf("expected joker on fx-1, got %+v", stored[0])
	}
	if stored[0].Points != 0 {
		t.Fatalf("fixture has no result yet, points must stay 0, got %d", stored[0].Points)
	}
}

func TestPredictionService_SubmitPredictions_ResubmissionOverwrites(t *testing.T) {
	t.Parallel()

	players, fixtures, gameweeks, predictions := newPredictionFixtures()
	service := NewPredictionService(players, fixtures, gameweeks, predictions, nil)

	ctx := context.Background()
	first := SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0}},
	}
	if _, err := service.SubmitPredictions(ctx, first); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second := SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-1", HomeGoals: 3, AwayGoals: 2}},
	}
	if _, err := service.SubmitPredictions(ctx, second); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	stored, err := predictions.ListByFixture(ctx, "fx-1")
	if err != nil {
		t.Fatalf("list stored predictions: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected one row per (player, fixture), got %d", len(stored))
	}
	if stored[0].HomeGoals != 3 || stored[0].AwayGoals != 2 {
		t.Fatalf("expected overwritten scoreline 3-2, got %d-%d", stored[0].HomeGoals, stored[0].AwayGoals)
	}
}

func TestPredictionService_SubmitPredictions_RejectsTwoJokersWithoutWrites(t *testing.T) {
	t.Parallel()

	players, fixtures, gameweeks, predictions := newPredictionFixtures()
	service := NewPredictionService(players, fixtures, gameweeks, predictions, nil)

	_, err := service.SubmitPredictions(context.Background(), SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries: []PredictionEntryInput{
			{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0, IsJoker: true},
			{FixtureID: "fx-2", HomeGoals: 2, AwayGoals: 2, IsJoker: true},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	stored, listErr := predictions.ListByGameweek(context.Background(), 1)
	if listErr != nil {
		t.Fatalf("list predictions: %v", listErr)
	}
	if len(stored) != 0 {
		t.Fatalf("rejected batch must not write, found %d rows", len(stored))
	}
}

func TestPredictionService_SubmitPredictions_JokerMoveClearsPrevious(t *testing.T) {
	t.Parallel()

	players, fixtures, gameweeks, predictions := newPredictionFixtures()
	service := NewPredictionService(players, fixtures, gameweeks, predictions, nil)

	ctx := context.Background()
	if _, err := service.SubmitPredictions(ctx, SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0, IsJoker: true}},
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := service.SubmitPredictions(ctx, SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-2", HomeGoals: 2, AwayGoals: 0, IsJoker: true}},
	}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	stored, err := predictions.ListByPlayerAndGameweek(ctx, "pl-alice", 1)
	if err != nil {
		t.Fatalf("list predictions: %v", err)
	}
	jokers := 0
	for _, item := range stored {
		if item.IsJoker {
			jokers++
			if item.FixtureID != "fx-2" {
				t.Fatalf("joker should sit on fx-2, found on %s", item.FixtureID)
			}
		}
	}
	if jokers != 1 {
		t.Fatalf("expected exactly one joker in gameweek, got %d", jokers)
	}
}

func TestPredictionService_SubmitPredictions_JokerMoveRescoresScoredPrediction(t *testing.T) {
	t.Parallel()

	players, _, gameweeks, predictions := newPredictionFixtures()
	fixtures := newStubFixtureRepository(
		fixture.Fixture{
			ID:         "fx-1",
			Gameweek:   1,
			HomeTeam:   "Arsenal",
			AwayTeam:   "Chelsea",
			HomeScore:  intPtr(1),
			AwayScore:  intPtr(0),
			IsComplete: true,
		},
		fixture.Fixture{ID: "fx-2", Gameweek: 1, HomeTeam: "Leeds", AwayTeam: "Derby"},
	)
	scores := newStubStandingsRepository()
	gameweekSvc := NewGameweekService(gameweeks, predictions, scores, nil)
	service := NewPredictionService(players, fixtures, gameweeks, predictions, gameweekSvc)

	ctx := context.Background()
	if _, err := service.SubmitPredictions(ctx, SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0, IsJoker: true}},
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	stored, err := predictions.ListByFixture(ctx, "fx-1")
	if err != nil {
		t.Fatalf("list predictions: %v", err)
	}
	if stored[0].Points != prediction.PointsExactScore*2 {
		t.Fatalf("expected doubled points while joker sits on fx-1, got %d", stored[0].Points)
	}

	if _, err := service.SubmitPredictions(ctx, SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-2", HomeGoals: 2, AwayGoals: 0, IsJoker: true}},
	}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	stored, err = predictions.ListByFixture(ctx, "fx-1")
	if err != nil {
		t.Fatalf("list predictions: %v", err)
	}
	if stored[0].IsJoker {
		t.Fatalf("joker flag should have moved off fx-1")
	}
	if stored[0].Points != prediction.PointsExactScore {
		t.Fatalf("cleared joker must drop back to base points, got %d", stored[0].Points)
	}

	rows, err := scores.ListByGameweek(ctx, 1)
	if err != nil {
		t.Fatalf("list weekly scores: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one weekly score row after rescore, got %d", len(rows))
	}
	wantTotal := prediction.PointsExactScore + prediction.ManagerOfTheWeekBonus
	if rows[0].Points != wantTotal {
		t.Fatalf("weekly total must reflect the cleared joker, want %d got %d", wantTotal, rows[0].Points)
	}
}

func TestPredictionService_SubmitPredictions_DeadlineGate(t *testing.T) {
	t.Parallel()

	players, fixtures, _, predictions := newPredictionFixtures()
	deadline := time.Date(2026, 8, 15, 11, 0, 0, 0, time.UTC)
	gameweeks := newStubGameweekRepository(gameweek.Gameweek{Number: 1, IsActive: true, Deadline: &deadline})
	service := NewPredictionService(players, fixtures, gameweeks, predictions, nil)
	service.SetNow(func() time.Time { return deadline.Add(time.Minute) })

	_, err := service.SubmitPredictions(context.Background(), SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput after deadline, got %v", err)
	}

	service.SetNow(func() time.Time { return deadline.Add(-time.Minute) })
	if _, err := service.SubmitPredictions(context.Background(), SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0}},
	}); err != nil {
		t.Fatalf("submit before deadline: %v", err)
	}
}

func TestPredictionService_SubmitPredictions_ScoresCompletedFixtureImmediately(t *testing.T) {
	t.Parallel()

	players, _, gameweeks, predictions := newPredictionFixtures()
	fixtures := newStubFixtureRepository(fixture.Fixture{
		ID:         "fx-1",
		Gameweek:   1,
		HomeTeam:   "Arsenal",
		AwayTeam:   "Chelsea",
		HomeScore:  intPtr(2),
		AwayScore:  intPtr(1),
		IsComplete: true,
	})
	service := NewPredictionService(players, fixtures, gameweeks, predictions, nil)

	got, err := service.SubmitPredictions(context.Background(), SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-1", HomeGoals: 2, AwayGoals: 1, IsJoker: true}},
	})
	if err != nil {
		t.Fatalf("SubmitPredictions error: %v", err)
	}
	if got[0].Points != prediction.PointsExactScore*2 {
		t.Fatalf("expected doubled exact-score points, got %d", got[0].Points)
	}
}

func TestPredictionService_SubmitPredictions_UnknownRefs(t *testing.T) {
	t.Parallel()

	players, fixtures, gameweeks, predictions := newPredictionFixtures()
	service := NewPredictionService(players, fixtures, gameweeks, predictions, nil)

	_, err := service.SubmitPredictions(context.Background(), SubmitPredictionsInput{
		PlayerID: "pl-ghost",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}

	_, err = service.SubmitPredictions(context.Background(), SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-missing", HomeGoals: 1, AwayGoals: 0}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown fixture, got %v", err)
	}
}

func TestPredictionService_SubmitPredictions_RejectsCrossGameweekBatch(t *testing.T) {
	t.Parallel()

	players, fixtures, gameweeks, predictions := newPredictionFixtures()
	service := NewPredictionService(players, fixtures, gameweeks, predictions, nil)

	_, err := service.SubmitPredictions(context.Background(), SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries: []PredictionEntryInput{
			{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0},
			{FixtureID: "fx-3", HomeGoals: 0, AwayGoals: 0},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for cross-gameweek batch, got %v", err)
	}
}
