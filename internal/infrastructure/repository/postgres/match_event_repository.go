package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ligakit/competition-engine/internal/domain/match"
	"github.com/ligakit/competition-engine/internal/domain/matchevent"
	qb "github.com/ligakit/competition-engine/internal/platform/querybuilder"
)

// MatchEventRepository reads the append-only event ledger. Voided entries are
// filtered in SQL so a void is visible on the very next read; there is no
// cache between the ledger and a fold.
type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) ListBySeason(ctx context.Context, seasonID string) ([]matchevent.SeasonEvent, error) {
	return r.listBySeason(ctx, r.db, seasonID, false)
}

func (r *MatchEventRepository) ListCardEventsBySeason(ctx context.Context, seasonID string) ([]matchevent.SeasonEvent, error) {
	return r.listBySeason(ctx, r.db, seasonID, true)
}

// listBySeason accepts the queryer so the rebuild snapshot can run it inside
// its read-only transaction.
func (r *MatchEventRepository) listBySeason(ctx context.Context, q sqlx.QueryerContext, seasonID string, cardsOnly bool) ([]matchevent.SeasonEvent, error) {
	conditions := []qb.Condition{
		qb.Eq("m.season_public_id", seasonID),
		qb.Eq("e.voided", false),
		qb.IsNull("e.deleted_at"),
		qb.IsNull("m.deleted_at"),
	}
	if cardsOnly {
		conditions = append(conditions, qb.Eq("e.event_type", matchevent.TypeCard))
	}

	// Ordering is the ledger contract: round, then match id, then insertion
	// sequence. Minute is display-only.
	query, args, err := qb.Select(
		"e.public_id AS event_public_id",
		"e.match_public_id",
		"e.team_public_id",
		"e.event_type",
		"e.player_public_id",
		"e.related_player_public_id",
		"e.minute",
		"e.stoppage_offset",
		"e.card_type",
		"e.seq",
		"e.voided",
		"m.season_public_id",
		"m.round",
		"m.home_team_public_id",
		"m.away_team_public_id",
		"m.home_score",
		"m.away_score",
		"m.status AS match_status",
		"m.kickoff_at",
	).From("match_events e JOIN matches m ON m.public_id = e.match_public_id").
		Where(conditions...).
		OrderBy("m.round", "m.public_id", "e.seq").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season events query: %w", err)
	}

	var rows []matchEventJoinModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select season events: %w", err)
	}

	out := make([]matchevent.SeasonEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapSeasonEventRow(row))
	}

	return out, nil
}

func mapSeasonEventRow(row matchEventJoinModel) matchevent.SeasonEvent {
	m := match.Match{
		ID:         row.MatchID,
		SeasonID:   row.SeasonID,
		Round:      row.Round,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeScore:  nullInt64ToIntPtr(row.HomeScore),
		AwayScore:  nullInt64ToIntPtr(row.AwayScore),
		Status:     match.NormalizeStatus(row.MatchStatus),
	}
	if row.MatchKickoffAt.Valid {
		m.KickoffAt = row.MatchKickoffAt.Time
	}

	return matchevent.SeasonEvent{
		Match: m,
		Event: matchevent.Event{
			ID:              row.EventID,
			MatchID:         row.MatchID,
			TeamID:          row.TeamID,
			Type:            matchevent.NormalizeType(row.EventType),
			PlayerID:        row.PlayerID.String,
			RelatedPlayerID: row.RelatedPlayerID.String,
			Minute:          row.Minute,
			StoppageOffset:  row.StoppageOffset,
			CardType:        row.CardType.String,
			Sequence:        row.Sequence,
			Voided:          row.Voided,
		},
	}
}
