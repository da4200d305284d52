package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ligakit/competition-engine/internal/domain/standings"
	qb "github.com/ligakit/competition-engine/internal/platform/querybuilder"
)

// StandingsRepository persists the materialized season table. Writes replace
// the whole season in one transaction so readers never see a half-updated
// table; the rows are a cache of the pure computation and are never patched.
type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) ListBySeason(ctx context.Context, seasonID string) ([]standings.Row, error) {
	query, args, err := qb.Select("*").From("team_season_statistics").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank", "points DESC", "goal_difference DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season standings query: %w", err)
	}

	var rows []standingsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season standings: %w", err)
	}

	out := make([]standings.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.Row{
			SeasonID:       row.SeasonID,
			TeamID:         row.TeamID,
			TeamName:       row.TeamName,
			Rank:           row.Rank,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
			ComputedAt:     nullTimeToTimePtr(row.ComputedAt),
		})
	}

	return out, nil
}

func (r *StandingsRepository) ReplaceBySeason(ctx context.Context, seasonID string, rows []standings.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace season standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("team_season_statistics").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear season standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear season standings: %w", err)
	}

	for _, item := range rows {
		insertModel := standingsInsertModel{
			SeasonID:       seasonID,
			TeamID:         item.TeamID,
			TeamName:       item.TeamName,
			Rank:           item.Rank,
			Played:         item.Played,
			Won:            item.Won,
			Drawn:          item.Drawn,
			Lost:           item.Lost,
			GoalsFor:       item.GoalsFor,
			GoalsAgainst:   item.GoalsAgainst,
			GoalDifference: item.GoalDifference,
			Points:         item.Points,
			ComputedAt:     item.ComputedAt,
		}
		query, args, err := qb.InsertModel("team_season_statistics", insertModel, `ON CONFLICT (season_public_id, team_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    team_name = EXCLUDED.team_name,
    rank = EXCLUDED.rank,
    played = EXCLUDED.played,
    won = EXCLUDED.won,
    drawn = EXCLUDED.drawn,
    lost = EXCLUDED.lost,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    goal_difference = EXCLUDED.goal_difference,
    points = EXCLUDED.points,
    computed_at = EXCLUDED.computed_at,
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert season standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert season standing team=%s: %w", item.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace season standings tx: %w", err)
	}
	return nil
}
