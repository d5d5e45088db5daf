package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pompeytony/wff-predictor/internal/usecase"
)

func (h *Handler) GetLiveTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveTable")
	defer span.End()

	table, err := h.tableService.Live(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get live table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tableToDTO(table))
}

func (h *Handler) GetWeeklyTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyTable")
	defer span.End()

	var number *int
	if raw := strings.TrimSpace(r.URL.Query().Get("gameweek")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: gameweek must be an integer: %v", usecase.ErrInvalidInput, err))
			return
		}
		number = &parsed
	}

	table, err := h.tableService.Weekly(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "get weekly table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tableToDTO(table))
}

func (h *Handler) GetSeasonTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonTable")
	defer span.End()

	table, err := h.tableService.Season(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get season table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tableToDTO(table))
}
