package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/pompeytony/wff-predictor/internal/usecase"
)

type predictionEntryRequest struct {
	FixtureID string `json:"fixtureId" validate:"required"`
	HomeGoals int    `json:"homeGoals" validate:"min=0"`
	AwayGoals int    `json:"awayGoals" validate:"min=0"`
	IsJoker   bool   `json:"isJoker"`
}

type submitPredictionsRequest struct {
	PlayerID string                   `json:"playerId" validate:"required"`
	Entries  []predictionEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

func (h *Handler) SubmitPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPredictions")
	defer span.End()

	var req submitPredictionsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.PredictionEntryInput, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, usecase.PredictionEntryInput{
			FixtureID: entry.FixtureID,
			HomeGoals: entry.HomeGoals,
			AwayGoals: entry.AwayGoals,
			IsJoker:   entry.IsJoker,
		})
	}

	items, err := h.predictionService.SubmitPredictions(ctx, usecase.SubmitPredictionsInput{
		PlayerID: req.PlayerID,
		Entries:  entries,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit predictions failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]predictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListPlayerPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerPredictions")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	rawGameweek := strings.TrimSpace(r.URL.Query().Get("gameweek"))
	if rawGameweek == "" {
		writeError(ctx, w, fmt.Errorf("%w: gameweek query parameter is required", usecase.ErrInvalidInput))
		return
	}
	number, err := strconv.Atoi(rawGameweek)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: gameweek must be an integer: %v", usecase.ErrInvalidInput, err))
		return
	}

	items, err := h.predictionService.ListPlayerPredictions(ctx, playerID, number)
	if err != nil {
		h.logger.WarnContext(ctx, "list player predictions failed", "player_id", playerID, "gameweek", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]predictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
