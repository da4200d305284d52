package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ligakit/competition-engine/internal/usecase"
)

type recalculateJobRequest struct {
	SeasonID   string `json:"season_id"`
	MaxWorkers int    `json:"max_workers" validate:"min=0,max=16"`
}

// RunRecalculateDisciplineJob triggers a full rebuild of suspension records
// and a standings refresh. With a season_id the rebuild targets one season;
// without it every active season is rebuilt over a worker pool. Repeated
// triggers are safe: the rebuild is idempotent.
func (h *Handler) RunRecalculateDisciplineJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateDisciplineJob")
	defer span.End()

	req, err := h.decodeRecalculateJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if seasonID := strings.TrimSpace(req.SeasonID); seasonID != "" {
		result, err := h.recalcService.RecalculateSeason(ctx, seasonID)
		if err != nil {
			h.logger.WarnContext(ctx, "recalculate discipline job failed", "season_id", seasonID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, result)
		return
	}

	run, err := h.recalcService.RecalculateAll(ctx, req.MaxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate discipline run failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, run)
}

func (h *Handler) decodeRecalculateJobRequest(r *http.Request) (recalculateJobRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req recalculateJobRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return recalculateJobRequest{}, nil
		}
		return recalculateJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return recalculateJobRequest{}, err
	}

	return req, nil
}
