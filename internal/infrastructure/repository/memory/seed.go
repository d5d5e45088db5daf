package memory

import (
	"time"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-001", Name: "Tony"},
		{ID: "pl-002", Name: "Dave"},
		{ID: "pl-003", Name: "Sarah"},
		{ID: "pl-004", Name: "Mike"},
	}
}

func SeedGameweeks() []gameweek.Gameweek {
	deadline1 := time.Date(2026, 8, 15, 11, 0, 0, 0, time.UTC)
	deadline2 := time.Date(2026, 8, 22, 11, 0, 0, 0, time.UTC)
	return []gameweek.Gameweek{
		{Number: 1, Deadline: &deadline1, IsActive: true},
		{Number: 2, Deadline: &deadline2},
	}
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{
			ID:        "fx-001",
			Gameweek:  1,
			HomeTeam:  "Portsmouth",
			AwayTeam:  "Southampton",
			KickoffAt: time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			ID:        "fx-002",
			Gameweek:  1,
			HomeTeam:  "Arsenal",
			AwayTeam:  "Chelsea",
			KickoffAt: time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			ID:        "fx-003",
			Gameweek:  1,
			HomeTeam:  "Leeds United",
			AwayTeam:  "Derby County",
			KickoffAt: time.Date(2026, 8, 15, 16, 30, 0, 0, time.UTC),
		},
		{
			ID:        "fx-004",
			Gameweek:  2,
			HomeTeam:  "Norwich City",
			AwayTeam:  "Ipswich Town",
			KickoffAt: time.Date(2026, 8, 22, 14, 0, 0, 0, time.UTC),
		},
		{
			ID:        "fx-005",
			Gameweek:  2,
			HomeTeam:  "Sunderland",
			AwayTeam:  "Newcastle United",
			KickoffAt: time.Date(2026, 8, 22, 16, 30, 0, 0, time.UTC),
		},
	}
}
