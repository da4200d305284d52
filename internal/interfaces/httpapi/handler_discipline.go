package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ligakit/competition-engine/internal/domain/suspension"
	"github.com/ligakit/competition-engine/internal/usecase"
)

type suspensionCheckRequest struct {
	PlayerIDs []string `json:"player_ids" validate:"required,min=1,dive,required"`
}

type suspensionCheckResponse struct {
	SeasonID   string             `json:"seasonId"`
	MatchID    string             `json:"matchId"`
	Eligible   bool               `json:"eligible"`
	Violations []gateViolationDTO `json:"violations"`
}

type gateViolationDTO struct {
	PlayerID string   `json:"playerId"`
	Reasons  []string `json:"reasons"`
	Message  string   `json:"message"`
}

type playerSuspensionDTO struct {
	PlayerID  string                `json:"playerId"`
	Suspended bool                  `json:"suspended"`
	Reasons   []string              `json:"reasons,omitempty"`
	Records   []suspensionRecordDTO `json:"records,omitempty"`
}

type suspensionRecordDTO struct {
	ID              string   `json:"id"`
	Reason          string   `json:"reason"`
	Status          string   `json:"status"`
	TriggerMatchID  string   `json:"triggerMatchId"`
	TriggerRound    int      `json:"triggerRound"`
	RequiredMatches int      `json:"requiredMatches"`
	ServedMatches   int      `json:"servedMatches"`
	CardEventIDs    []string `json:"cardEventIds,omitempty"`
}

// CheckMatchLineup reports every suspended player in the proposed lineup at
// once so the caller can surface the full violation list in one round trip.
func (h *Handler) CheckMatchLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckMatchLineup")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req suspensionCheckRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	violations, err := h.gateService.CheckSuspensions(ctx, seasonID, matchID, req.PlayerIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "lineup suspension check failed", "season_id", seasonID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gateViolationDTO, 0, len(violations))
	for _, v := range violations {
		items = append(items, gateViolationDTO{
			PlayerID: v.PlayerID,
			Reasons:  v.Reasons,
			Message:  v.Message,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, suspensionCheckResponse{
		SeasonID:   seasonID,
		MatchID:    matchID,
		Eligible:   len(items) == 0,
		Violations: items,
	})
}

// GetPlayerSuspension answers the single-player eligibility question for an
// upcoming match, identified by the match query parameter.
func (h *Handler) GetPlayerSuspension(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSuspension")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	matchID := strings.TrimSpace(r.URL.Query().Get("match_id"))
	if matchID == "" {
		writeError(ctx, w, fmt.Errorf("%w: match_id query parameter is required", usecase.ErrInvalidInput))
		return
	}

	verdict, err := h.disciplinary.IsSuspended(ctx, seasonID, matchID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "player suspension query failed", "season_id", seasonID, "player_id", playerID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerSuspensionDTO{
		PlayerID:  verdict.PlayerID,
		Suspended: verdict.Suspended,
		Reasons:   verdict.Reasons,
		Records:   suspensionRecordsToDTO(ctx, verdict.Records),
	})
}

func suspensionRecordsToDTO(ctx context.Context, records []suspension.Record) []suspensionRecordDTO {
	_, span := startSpan(ctx, "httpapi.suspensionRecordsToDTO")
	defer span.End()

	items := make([]suspensionRecordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, suspensionRecordDTO{
			ID:              rec.ID,
			Reason:          rec.Reason,
			Status:          rec.Status,
			TriggerMatchID:  rec.TriggerMatchID,
			TriggerRound:    rec.TriggerRound,
			RequiredMatches: rec.RequiredMatches,
			ServedMatches:   rec.ServedMatches,
			CardEventIDs:    append([]string(nil), rec.CardEventIDs...),
		})
	}
	return items
}
