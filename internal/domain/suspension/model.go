package suspension

import (
	"fmt"
	"strings"
	"time"
)

const (
	ReasonRedCard      = "RED_CARD"
	ReasonAccumulation = "ACCUMULATION"
)

const (
	StatusActive    = "ACTIVE"
	StatusServed    = "SERVED"
	StatusCancelled = "CANCELLED"
	StatusArchived  = "ARCHIVED"
)

// Record is one ban for one player in one season. Lifecycle: created ACTIVE
// by a rebuild fold, served matches advance while the player's team completes
// matches, flips to SERVED at RequiredMatches. A later rebuild that does not
// reproduce the record archives it; an administrative override cancels it.
// SERVED, ARCHIVED and CANCELLED are terminal.
type Record struct {
	ID              string
	SeasonID        string
	PlayerID        string
	TeamID          string
	Reason          string
	TriggerEventID  string
	TriggerMatchID  string
	TriggerRound    int
	RequiredMatches int
	ServedMatches   int
	Status          string
	// CardEventIDs are the ledger entries consumed by this record. A card is
	// consumed exactly once; cancelling the record does not release its cards.
	CardEventIDs []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Fingerprint identifies the same logical ban across rebuilds: the fold is
// deterministic, so a re-run that reproduces the ban reproduces this key.
func (r Record) Fingerprint() string {
	return Fingerprint(r.SeasonID, r.PlayerID, r.Reason, r.TriggerEventID)
}

func Fingerprint(seasonID, playerID, reason, triggerEventID string) string {
	return strings.Join([]string{seasonID, playerID, reason, triggerEventID}, "|")
}

func (r Record) IsTerminal() bool {
	switch r.Status {
	case StatusServed, StatusCancelled, StatusArchived:
		return true
	default:
		return false
	}
}

// CanTransition enforces the state machine: only ACTIVE records move.
func (r Record) CanTransition(next string) bool {
	if r.Status != StatusActive {
		return false
	}
	switch next {
	case StatusServed, StatusCancelled, StatusArchived:
		return true
	default:
		return false
	}
}

func (r Record) Validate() error {
	if r.SeasonID == "" {
		return fmt.Errorf("suspension season id is required")
	}
	if r.PlayerID == "" {
		return fmt.Errorf("suspension player id is required")
	}
	if r.TeamID == "" {
		return fmt.Errorf("suspension team id is required")
	}
	switch r.Reason {
	case ReasonRedCard, ReasonAccumulation:
	default:
		return fmt.Errorf("invalid suspension reason: %s", r.Reason)
	}
	if r.TriggerEventID == "" {
		return fmt.Errorf("suspension trigger event id is required")
	}
	if r.RequiredMatches < 1 {
		return fmt.Errorf("suspension required matches must be >= 1")
	}
	if r.ServedMatches < 0 || r.ServedMatches > r.RequiredMatches {
		return fmt.Errorf("suspension served matches out of range: %d of %d", r.ServedMatches, r.RequiredMatches)
	}
	switch r.Status {
	case StatusActive, StatusServed, StatusCancelled, StatusArchived:
	default:
		return fmt.Errorf("invalid suspension status: %s", r.Status)
	}

	return nil
}

// Describe renders the human-readable reason surfaced by the lineup gate.
func (r Record) Describe() string {
	remaining := r.RequiredMatches - r.ServedMatches
	switch r.Reason {
	case ReasonRedCard:
		return fmt.Sprintf("red card suspension: %d of %d match(es) remaining", remaining, r.RequiredMatches)
	case ReasonAccumulation:
		return fmt.Sprintf("card accumulation suspension: %d of %d match(es) remaining", remaining, r.RequiredMatches)
	default:
		return fmt.Sprintf("suspension: %d of %d match(es) remaining", remaining, r.RequiredMatches)
	}
}
