package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
	"github.com/pompeytony/wff-predictor/internal/domain/standings"
	"github.com/pompeytony/wff-predictor/internal/usecase"
)

type Handler struct {
	playerService     *usecase.PlayerService
	predictionService *usecase.PredictionService
	fixtureService    *usecase.FixtureService
	resultService     *usecase.ResultService
	gameweekService   *usecase.GameweekService
	tableService      *usecase.TableService
	resultSyncService *usecase.ResultSyncService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	predictionService *usecase.PredictionService,
	fixtureService *usecase.FixtureService,
	resultService *usecase.ResultService,
	gameweekService *usecase.GameweekService,
	tableService *usecase.TableService,
	resultSyncService *usecase.ResultSyncService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		playerService:     playerService,
		predictionService: predictionService,
		fixtureService:    fixtureService,
		resultService:     resultService,
		gameweekService:   gameweekService,
		tableService:      tableService,
		resultSyncService: resultSyncService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type playerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type gameweekDTO struct {
	Number     int    `json:"number"`
	Deadline   string `json:"deadline,omitempty"`
	IsActive   bool   `json:"isActive"`
	IsComplete bool   `json:"isComplete"`
}

type fixtureDTO struct {
	ID         string `json:"id"`
	Gameweek   int    `json:"gameweek"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	Kickoff    string `json:"kickoffAt,omitempty"`
	HomeScore  *int   `json:"homeScore,omitempty"`
	AwayScore  *int   `json:"awayScore,omitempty"`
	IsComplete bool   `json:"isComplete"`
}

type predictionDTO struct {
	PlayerID  string `json:"playerId"`
	FixtureID string `json:"fixtureId"`
	Gameweek  int    `json:"gameweek"`
	HomeGoals int    `json:"homeGoals"`
	AwayGoals int    `json:"awayGoals"`
	IsJoker   bool   `json:"isJoker"`
	Points    int    `json:"points"`
}

type tableDTO struct {
	Gameweek int                  `json:"gameweek,omitempty"`
	IsLive   bool                 `json:"isLive"`
	Rows     []standings.TableRow `json:"rows"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{ID: v.ID, Name: v.Name}
}

func gameweekToDTO(v gameweek.Gameweek) gameweekDTO {
	dto := gameweekDTO{
		Number:     v.Number,
		IsActive:   v.IsActive,
		IsComplete: v.IsComplete,
	}
	if v.Deadline != nil {
		dto.Deadline = v.Deadline.UTC().Format(time.RFC3339)
	}
	return dto
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	dto := fixtureDTO{
		ID:         v.ID,
		Gameweek:   v.Gameweek,
		HomeTeam:   v.HomeTeam,
		AwayTeam:   v.AwayTeam,
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		IsComplete: v.IsComplete,
	}
	if !v.KickoffAt.IsZero() {
		dto.Kickoff = v.KickoffAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func predictionToDTO(v prediction.Prediction) predictionDTO {
	return predictionDTO{
		PlayerID:  v.PlayerID,
		FixtureID: v.FixtureID,
		Gameweek:  v.Gameweek,
		HomeGoals: v.HomeGoals,
		AwayGoals: v.AwayGoals,
		IsJoker:   v.IsJoker,
		Points:    v.Points,
	}
}

func tableToDTO(v standings.Table) tableDTO {
	rows := v.Rows
	if rows == nil {
		rows = []standings.TableRow{}
	}
	return tableDTO{
		Gameweek: v.Gameweek,
		IsLive:   v.IsLive,
		Rows:     rows,
	}
}
