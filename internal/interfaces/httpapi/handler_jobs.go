package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/pompeytony/wff-predictor/internal/usecase"
)

type rescoreSeasonRequest struct {
	MaxWorkers int `json:"maxWorkers" validate:"min=0,max=64"`
}

func (h *Handler) RunSyncResultsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncResultsJob")
	defer span.End()

	if h.resultSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: result sync is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	outcome, err := h.resultSyncService.SyncResults(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync results job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outcome)
}

func (h *Handler) RunRescoreSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRescoreSeasonJob")
	defer span.End()

	var req rescoreSeasonRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.resultService.RescoreSeason(ctx, req.MaxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "run rescore season job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
