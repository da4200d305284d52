package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ligakit/competition-engine/internal/domain/standings"
)

type standingsRowDTO struct {
	Rank           int    `json:"rank"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	ComputedAt     string `json:"computedAt,omitempty"`
}

type standingsTableDTO struct {
	SeasonID string            `json:"seasonId"`
	Mode     string            `json:"mode"`
	Rows     []standingsRowDTO `json:"rows"`
}

func (h *Handler) GetSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStandings")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	mode := strings.TrimSpace(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = standings.ModeLive
	}

	rows, err := h.standingsService.Compute(ctx, seasonID, mode)
	if err != nil {
		h.logger.WarnContext(ctx, "compute standings failed", "season_id", seasonID, "mode", mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsTableDTO{
		SeasonID: seasonID,
		Mode:     mode,
		Rows:     standingsRowsToDTO(ctx, rows),
	})
}

func standingsRowsToDTO(ctx context.Context, rows []standings.Row) []standingsRowDTO {
	_, span := startSpan(ctx, "httpapi.standingsRowsToDTO")
	defer span.End()

	items := make([]standingsRowDTO, 0, len(rows))
	for _, row := range rows {
		item := standingsRowDTO{
			Rank:           row.Rank,
			TeamID:         row.TeamID,
			TeamName:       row.TeamName,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		}
		if row.ComputedAt != nil {
			item.ComputedAt = row.ComputedAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	return items
}
