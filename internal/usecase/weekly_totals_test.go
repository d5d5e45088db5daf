package usecase_test

import (
	"context"
	. "github.com/pompeytony/wff-predictor/internal/usecase"
	"testing"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
	"github.com/pompeytony/wff-predictor/internal/infrastructure/repository/memory"
)

// Persisted weekly totals must always equal the sum of stored prediction
// points plus one bonus per Manager of the Week row, even when a joker
// moves after its fixture has already been scored.
func TestWeeklyScores_StayConsistentThroughJokerMove(t *testing.T) {
	t.Parallel()

	players := memory.NewPlayerRepository([]player.Player{
		{ID: "pl-alice", Name: "Alice"},
		{ID: "pl-bob", Name: "Bob"},
	})
	gameweeks := memory.NewGameweekRepository([]gameweek.Gameweek{{Number: 1, IsActive: true}})
	fixtures := memory.NewFixtureRepository([]fixture.Fixture{
		{ID: "fx-1", Gameweek: 1, HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
		{ID: "fx-2", Gameweek: 1, HomeTeam: "Leeds", AwayTeam: "Derby"},
	})
	predictions := memory.NewPredictionRepository()
	scores := memory.NewWeeklyScoreRepository()

	gameweekSvc := NewGameweekService(gameweeks, predictions, scores, nil)
	predictionSvc := NewPredictionService(players, fixtures, gameweeks, predictions, gameweekSvc)
	resultSvc := NewResultService(fixtures, predictions, gameweekSvc, nil, 0)

	ctx := context.Background()
	if _, err := predictionSvc.SubmitPredictions(ctx, SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries: []PredictionEntryInput{
			{FixtureID: "fx-1", HomeGoals: 2, AwayGoals: 1, IsJoker: true},
			{FixtureID: "fx-2", HomeGoals: 1, AwayGoals: 1},
		},
	}); err != nil {
		t.Fatalf("alice submit: %v", err)
	}
	if _, err := predictionSvc.SubmitPredictions(ctx, SubmitPredictionsInput{
		PlayerID: "pl-bob",
		Entries: []PredictionEntryInput{
			{FixtureID: "fx-1", HomeGoals: 0, AwayGoals: 0},
			{FixtureID: "fx-2", HomeGoals: 1, AwayGoals: 1},
		},
	}); err != nil {
		t.Fatalf("bob submit: %v", err)
	}

	if _, err := resultSvc.EnterResult(ctx, "fx-1", 2, 1); err != nil {
		t.Fatalf("enter fx-1 result: %v", err)
	}

	// Joker moves off the already scored fx-1 onto fx-2.
	if _, err := predictionSvc.SubmitPredictions(ctx, SubmitPredictionsInput{
		PlayerID: "pl-alice",
		Entries:  []PredictionEntryInput{{FixtureID: "fx-2", HomeGoals: 1, AwayGoals: 1, IsJoker: true}},
	}); err != nil {
		t.Fatalf("alice joker move: %v", err)
	}

	if _, err := resultSvc.EnterResult(ctx, "fx-2", 1, 1); err != nil {
		t.Fatalf("enter fx-2 result: %v", err)
	}

	stored, err := predictions.ListByGameweek(ctx, 1)
	if err != nil {
		t.Fatalf("list predictions: %v", err)
	}
	predictionTotal := 0
	for _, item := range stored {
		predictionTotal += item.Points
	}

	rows, err := scores.ListAll(ctx)
	if err != nil {
		t.Fatalf("list weekly scores: %v", err)
	}
	weeklyTotal := 0
	motwCount := 0
	for _, row := range rows {
		weeklyTotal += row.Points
		if row.IsManagerOfTheWeek {
			motwCount++
		}
	}

	if motwCount != 1 {
		t.Fatalf("expected exactly one Manager of the Week, got %d", motwCount)
	}
	if want := predictionTotal + prediction.ManagerOfTheWeekBonus*motwCount; weeklyTotal != want {
		t.Fatalf("weekly totals drifted from prediction points: weekly=%d predictions=%d motw=%d", weeklyTotal, predictionTotal, motwCount)
	}

	// Alice: exact score without the joker on fx-1, doubled exact score
	// on fx-2, plus the bonus.
	wantAlice := prediction.PointsExactScore + prediction.PointsExactScore*2 + prediction.ManagerOfTheWeekBonus
	for _, row := range rows {
		if row.PlayerID != "pl-alice" {
			continue
		}
		if !row.IsManagerOfTheWeek {
			t.Fatalf("alice should hold Manager of the Week, got %+v", row)
		}
		if row.Points != wantAlice {
			t.Fatalf("alice weekly total want %d, got %d", wantAlice, row.Points)
		}
	}
}
