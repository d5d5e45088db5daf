package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/pompeytony/wff-predictor/internal/usecase"
)

type enterResultRequest struct {
	HomeScore int `json:"homeScore" validate:"min=0"`
	AwayScore int `json:"awayScore" validate:"min=0"`
}

func (h *Handler) ListFixturesByGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByGameweek")
	defer span.End()

	rawNumber := strings.TrimSpace(r.PathValue("gameweekID"))
	number, err := strconv.Atoi(rawNumber)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: gameweek must be an integer: %v", usecase.ErrInvalidInput, err))
		return
	}

	fixtures, err := h.fixtureService.ListByGameweek(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "gameweek", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) EnterFixtureResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnterFixtureResult")
	defer span.End()

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))

	var req enterResultRequest
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

	updated, err := h.resultService.EnterResult(ctx, fixtureID, req.HomeScore, req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "enter fixture result failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(updated))
}
