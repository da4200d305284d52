package suspension

import (
	"context"

	"github.com/ligakit/competition-engine/internal/domain/match"
	"github.com/ligakit/competition-engine/internal/domain/matchevent"
	"github.com/ligakit/competition-engine/internal/domain/player"
)

// RebuildSnapshot is one season-wide view of everything a disciplinary
// rebuild folds over.
type RebuildSnapshot struct {
	Cards     []matchevent.SeasonEvent
	Players   []player.Player
	Matches   []match.Match
	Cancelled []Record
}

// SnapshotReader captures all four sets as of a single point in time. A
// reader backed by a shared database must use snapshot isolation or
// equivalent: a void or match completion landing between the reads must not
// produce a mixed view.
type SnapshotReader interface {
	ReadRebuildSnapshot(ctx context.Context, seasonID string) (RebuildSnapshot, error)
}
