package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pompeytony/wff-predictor/internal/domain/standings"
	"github.com/pompeytony/wff-predictor/internal/usecase"
)

func (h *Handler) ListGameweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweeks")
	defer span.End()

	gameweeks, err := h.gameweekService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list gameweeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameweekDTO, 0, len(gameweeks))
	for _, gw := range gameweeks {
		items = append(items, gameweekToDTO(gw))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ActivateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateGameweek")
	defer span.End()

	number, err := gameweekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.gameweekService.Activate(ctx, number); err != nil {
		h.logger.WarnContext(ctx, "activate gameweek failed", "gameweek", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"gameweek": number, "isActive": true})
}

func (h *Handler) CompleteGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteGameweek")
	defer span.End()

	number, err := gameweekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.gameweekService.Complete(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "complete gameweek failed", "gameweek", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyScoresToDTO(rows))
}

func (h *Handler) CalculateGameweekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculateGameweekScores")
	defer span.End()

	number, err := gameweekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.gameweekService.CalculateGameweekScores(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "calculate gameweek scores failed", "gameweek", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyScoresToDTO(rows))
}

func gameweekNumberFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("gameweekID"))
	number, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: gameweek must be an integer: %v", usecase.ErrInvalidInput, err)
	}
	return number, nil
}

type weeklyScoreDTO struct {
	PlayerID           string `json:"playerId"`
	Gameweek           int    `json:"gameweek"`
	Points             int    `json:"points"`
	IsManagerOfTheWeek bool   `json:"isManagerOfTheWeek"`
}

func weeklyScoresToDTO(rows []standings.WeeklyScore) []weeklyScoreDTO {
	out := make([]weeklyScoreDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeklyScoreDTO{
			PlayerID:           row.PlayerID,
			Gameweek:           row.Gameweek,
			Points:             row.Points,
			IsManagerOfTheWeek: row.IsManagerOfTheWeek,
		})
	}
	return out
}
