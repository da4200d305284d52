package standings

import "time"

const (
	ModeLive  = "live"
	ModeFinal = "final"
)

// Row is one team's line in the standings table. It is wholly derived from
// completed match scores: safe to drop and rebuild at any time, never
// hand-edited. Rank is the 1-based output index of the last computation.
type Row struct {
	SeasonID       string
	TeamID         string
	TeamName       string
	Rank           int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	ComputedAt     *time.Time
}

func IsValidMode(mode string) bool {
	return mode == ModeLive || mode == ModeFinal
}
