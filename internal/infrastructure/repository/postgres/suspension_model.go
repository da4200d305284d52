package postgres

import (
	"time"

	"github.com/lib/pq"
)

type suspensionTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	SeasonID        string         `db:"season_public_id"`
	PlayerID        string         `db:"player_public_id"`
	TeamID          string         `db:"team_public_id"`
	Reason          string         `db:"reason"`
	TriggerEventID  string         `db:"trigger_event_public_id"`
	TriggerMatchID  string         `db:"trigger_match_public_id"`
	TriggerRound    int            `db:"trigger_round"`
	RequiredMatches int            `db:"required_matches"`
	ServedMatches   int            `db:"served_matches"`
	Status          string         `db:"status"`
	CardEventIDs    pq.StringArray `db:"card_event_ids"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type suspensionInsertModel struct {
	PublicID        string         `db:"public_id"`
	SeasonID        string         `db:"season_public_id"`
	PlayerID        string         `db:"player_public_id"`
	TeamID          string         `db:"team_public_id"`
	Reason          string         `db:"reason"`
	TriggerEventID  string         `db:"trigger_event_public_id"`
	TriggerMatchID  string         `db:"trigger_match_public_id"`
	TriggerRound    int            `db:"trigger_round"`
	RequiredMatches int            `db:"required_matches"`
	ServedMatches   int            `db:"served_matches"`
	Status          string         `db:"status"`
	CardEventIDs    pq.StringArray `db:"card_event_ids"`
}
