package usecase_test

import (
	"context"
	"sort"
	"sync"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
	"github.com/pompeytony/wff-predictor/internal/domain/standings"
)

func intPtr(v int) *int {
	return &v
}

type stubPlayerRepository struct {
	mu   sync.Mutex
	byID map[string]player.Player
}

func newStubPlayerRepository(items ...player.Player) *stubPlayerRepository {
	byID := make(map[string]player.Player, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &stubPlayerRepository{byID: byID}
}

func (s *stubPlayerRepository) List(_ context.Context) ([]player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]player.Player, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubPlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[playerID]
	return item, ok, nil
}

func (s *stubPlayerRepository) Create(_ context.Context, item player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[item.ID] = item
	return nil
}

type stubGameweekRepository struct {
	mu       sync.Mutex
	byNumber map[int]gameweek.Gameweek
}

func newStubGameweekRepository(items ...gameweek.Gameweek) *stubGameweekRepository {
	byNumber := make(map[int]gameweek.Gameweek, len(items))
	for _, item := range items {
		byNumber[item.Number] = item
	}
	return &stubGameweekRepository{byNumber: byNumber}
}

func (s *stubGameweekRepository) List(_ context.Context) ([]gameweek.Gameweek, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]gameweek.Gameweek, 0, len(s.byNumber))
	for _, item := range s.byNumber {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *stubGameweekRepository) GetByNumber(_ context.Context, number int) (gameweek.Gameweek, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byNumber[number]
	return item, ok, nil
}

func (s *stubGameweekRepository) GetActive(_ context.Context) (gameweek.Gameweek, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.byNumber {
		if item.IsActive {
			return item, true, nil
		}
	}
	return gameweek.Gameweek{}, false, nil
}

func (s *stubGameweekRepository) SetActive(_ context.Context, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, item := range s.byNumber {
		item.IsActive = key == number
		s.byNumber[key] = item
	}
	return nil
}

func (s *stubGameweekRepository) MarkComplete(_ context.Context, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.byNumber[number]
	item.Number = number
	item.IsComplete = true
	s.byNumber[number] = item
	return nil
}

func (s *stubGameweekRepository) LatestCompleted(_ context.Context) (gameweek.Gameweek, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := gameweek.Gameweek{}
	found := false
	for _, item := range s.byNumber {
		if !item.IsComplete {
			continue
		}
		if !found || item.Number > best.Number {
			best = item
			found = true
		}
	}
	return best, found, nil
}

type stubFixtureRepository struct {
	mu   sync.Mutex
	byID map[string]fixture.Fixture
}

func newStubFixtureRepository(items ...fixture.Fixture) *stubFixtureRepository {
	byID := make(map[string]fixture.Fixture, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &stubFixtureRepository{byID: byID}
}

func (s *stubFixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]fixture.Fixture, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubFixtureRepository) ListByGameweek(_ context.Context, gw int) ([]fixture.Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range s.byID {
		if item.Gameweek == gw {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubFixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[fixtureID]
	return item, ok, nil
}

func (s *stubFixtureRepository) SaveResult(_ context.Context, fixtureID string, homeScore, awayScore int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.byID[fixtureID]
	item.HomeScore = &homeScore
	item.AwayScore = &awayScore
	item.IsComplete = true
	s.byID[fixtureID] = item
	return nil
}

type stubPredictionRepository struct {
	mu   sync.Mutex
	rows map[string]prediction.Prediction
}

func newStubPredictionRepository(items ...prediction.Prediction) *stubPredictionRepository {
	repo := &stubPredictionRepository{rows: make(map[string]prediction.Prediction)}
	for _, item := range items {
		repo.rows[predictionKey(item.PlayerID, item.FixtureID)] = item
	}
	return repo
}

func predictionKey(playerID, fixtureID string) string {
	return playerID + "|" + fixtureID
}

func (s *stubPredictionRepository) list(filter func(prediction.Prediction) bool) []prediction.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]prediction.Prediction, 0, len(s.rows))
	for _, item := range s.rows {
		if filter(item) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].FixtureID < out[j].FixtureID
	})
	return out
}

func (s *stubPredictionRepository) ListByFixture(_ context.Context, fixtureID string) ([]prediction.Prediction, error) {
	return s.list(func(p prediction.Prediction) bool { return p.FixtureID == fixtureID }), nil
}

func (s *stubPredictionRepository) ListByGameweek(_ context.Context, gw int) ([]prediction.Prediction, error) {
	return s.list(func(p prediction.Prediction) bool { return p.Gameweek == gw }), nil
}

func (s *stubPredictionRepository) ListByPlayerAndGameweek(_ context.Context, playerID string, gw int) ([]prediction.Prediction, error) {
	return s.list(func(p prediction.Prediction) bool { return p.PlayerID == playerID && p.Gameweek == gw }), nil
}

func (s *stubPredictionRepository) UpsertBatch(_ context.Context, items []prediction.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		s.rows[predictionKey(item.PlayerID, item.FixtureID)] = item
	}
	return nil
}

func (s *stubPredictionRepository) UpdatePointsBatch(_ context.Context, items []prediction.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		key := predictionKey(item.PlayerID, item.FixtureID)
		row, ok := s.rows[key]
		if !ok {
			continue
		}
		row.Points = item.Points
		s.rows[key] = row
	}
	return nil
}

func (s *stubPredictionRepository) ClearOtherJokers(_ context.Context, playerID string, gw int, keepFixtureID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, row := range s.rows {
		if row.PlayerID != playerID || row.Gameweek != gw || row.FixtureID == keepFixtureID {
			continue
		}
		if row.IsJoker {
			row.IsJoker = false
			s.rows[key] = row
		}
	}
	return nil
}

type stubStandingsRepository struct {
	mu           sync.Mutex
	byGameweek   map[int][]standings.WeeklyScore
	replaceCalls int
}

func newStubStandingsRepository() *stubStandingsRepository {
	return &stubStandingsRepository{byGameweek: make(map[int][]standings.WeeklyScore)}
}

func (s *stubStandingsRepository) ListByGameweek(_ context.Context, gw int) ([]standings.WeeklyScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]standings.WeeklyScore, len(s.byGameweek[gw]))
	copy(out, s.byGameweek[gw])
	return out, nil
}

func (s *stubStandingsRepository) ListAll(_ context.Context) ([]standings.WeeklyScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gameweeks := make([]int, 0, len(s.byGameweek))
	for gw := range s.byGameweek {
		gameweeks = append(gameweeks, gw)
	}
	sort.Ints(gameweeks)

	out := make([]standings.WeeklyScore, 0)
	for _, gw := range gameweeks {
		out = append(out, s.byGameweek[gw]...)
	}
	return out, nil
}

func (s *stubStandingsRepository) ReplaceByGameweek(_ context.Context, gw int, rows []standings.WeeklyScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]standings.WeeklyScore, len(rows))
	copy(out, rows)
	s.byGameweek[gw] = out
	s.replaceCalls++
	return nil
}
