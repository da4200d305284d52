package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ligakit/competition-engine/internal/domain/match"
	qb "github.com/ligakit/competition-engine/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	return r.listBySeason(ctx, r.db, seasonID, false)
}

func (r *MatchRepository) ListCompletedBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	return r.listBySeason(ctx, r.db, seasonID, true)
}

func (r *MatchRepository) listBySeason(ctx context.Context, q sqlx.QueryerContext, seasonID string, completedOnly bool) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Eq("season_public_id", seasonID),
		qb.IsNull("deleted_at"),
	}
	if completedOnly {
		conditions = append(conditions, qb.Eq("status", match.StatusCompleted))
	}

	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("round", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by season query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by season: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMatchRow(row))
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, seasonID, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}

	return mapMatchRow(row), true, nil
}

func mapMatchRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.PublicID,
		SeasonID:   row.SeasonID,
		Round:      row.Round,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeScore:  nullInt64ToIntPtr(row.HomeScore),
		AwayScore:  nullInt64ToIntPtr(row.AwayScore),
		Status:     match.NormalizeStatus(row.Status),
		KickoffAt:  row.KickoffAt,
		FinishedAt: nullTimeToTimePtr(row.FinishedAt),
	}
}
