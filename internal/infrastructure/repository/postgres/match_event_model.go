package postgres

import "database/sql"

// matchEventJoinModel carries one ledger entry joined with its parent match,
// aliased so sqlx can scan both sides from a single row.
type matchEventJoinModel struct {
	EventID         string         `db:"event_public_id"`
	MatchID         string         `db:"match_public_id"`
	TeamID          string         `db:"team_public_id"`
	EventType       string         `db:"event_type"`
	PlayerID        sql.NullString `db:"player_public_id"`
	RelatedPlayerID sql.NullString `db:"related_player_public_id"`
	Minute          int            `db:"minute"`
	StoppageOffset  int            `db:"stoppage_offset"`
	CardType        sql.NullString `db:"card_type"`
	Sequence        int64          `db:"seq"`
	Voided          bool           `db:"voided"`

	SeasonID       string        `db:"season_public_id"`
	Round          int           `db:"round"`
	HomeTeamID     string        `db:"home_team_public_id"`
	AwayTeamID     string        `db:"away_team_public_id"`
	HomeScore      sql.NullInt64 `db:"home_score"`
	AwayScore      sql.NullInt64 `db:"away_score"`
	MatchStatus    string        `db:"match_status"`
	MatchKickoffAt sql.NullTime  `db:"kickoff_at"`
}
