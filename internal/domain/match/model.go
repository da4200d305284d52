package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Match is one round-robin pairing inside a season. Round is the ordering key
// for all before/after standings and disciplinary logic; kickoff time is
// informational only. A completed match is immutable except through the
// correction path, which voids events and triggers recalculation.
type Match struct {
	ID         string
	SeasonID   string
	Round      int
	HomeTeamID string
	AwayTeamID string
	HomeScore  *int
	AwayScore  *int
	Status     string
	KickoffAt  time.Time
	FinishedAt *time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsCompletedStatus(status string) bool {
	return NormalizeStatus(status) == StatusCompleted
}

func IsCancelledStatus(status string) bool {
	return NormalizeStatus(status) == StatusCancelled
}

// Involves reports whether the given team plays in this match.
func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

// HasScores reports whether both final scores are recorded.
func (m Match) HasScores() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// Before orders matches by round, then match id as the deterministic
// tie-break inside a round. On-pitch minute never participates in ordering.
func (m Match) Before(other Match) bool {
	if m.Round != other.Round {
		return m.Round < other.Round
	}
	return m.ID < other.ID
}
