package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ligakit/competition-engine/internal/domain/ruleset"
	qb "github.com/ligakit/competition-engine/internal/platform/querybuilder"
)

type rulesetTableModel struct {
	ID                          int64      `db:"id"`
	SeasonID                    string     `db:"season_public_id"`
	RedCardBanMatches           int        `db:"red_card_ban_matches"`
	YellowAccumulationThreshold int        `db:"yellow_accumulation_threshold"`
	YellowBanMatches            int        `db:"yellow_ban_matches"`
	CarryOverRemainder          bool       `db:"carry_over_remainder"`
	CreatedAt                   time.Time  `db:"created_at"`
	UpdatedAt                   time.Time  `db:"updated_at"`
	DeletedAt                   *time.Time `db:"deleted_at"`
}

type RulesetRepository struct {
	db *sqlx.DB
}

func NewRulesetRepository(db *sqlx.DB) *RulesetRepository {
	return &RulesetRepository{db: db}
}

func (r *RulesetRepository) GetBySeason(ctx context.Context, seasonID string) (ruleset.DisciplineRules, bool, error) {
	query, args, err := qb.Select("*").From("discipline_rulesets").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return ruleset.DisciplineRules{}, false, fmt.Errorf("build select ruleset query: %w", err)
	}

	var row rulesetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return ruleset.DisciplineRules{}, false, nil
		}
		return ruleset.DisciplineRules{}, false, fmt.Errorf("select ruleset by season: %w", err)
	}

	return ruleset.DisciplineRules{
		SeasonID:                    row.SeasonID,
		RedCardBanMatches:           row.RedCardBanMatches,
		YellowAccumulationThreshold: row.YellowAccumulationThreshold,
		YellowBanMatches:            row.YellowBanMatches,
		CarryOverRemainder:          row.CarryOverRemainder,
	}, true, nil
}
