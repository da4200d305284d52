package memory

import (
	"context"

	"github.com/ligakit/competition-engine/internal/domain/suspension"
)

// DisciplineSnapshotReader assembles a rebuild snapshot from the in-memory
// repositories. The reads are sequential under each repository's lock, which
// is consistent enough for a single-process store.
type DisciplineSnapshotReader struct {
	events      *EventRepository
	players     *PlayerRepository
	matches     *MatchRepository
	suspensions *SuspensionRepository
}

func NewDisciplineSnapshotReader(
	events *EventRepository,
	players *PlayerRepository,
	matches *MatchRepository,
	suspensions *SuspensionRepository,
) *DisciplineSnapshotReader {
	return &DisciplineSnapshotReader{
		events:      events,
		players:     players,
		matches:     matches,
		suspensions: suspensions,
	}
}

func (r *DisciplineSnapshotReader) ReadRebuildSnapshot(ctx context.Context, seasonID string) (suspension.RebuildSnapshot, error) {
	var snap suspension.RebuildSnapshot
	var err error

	if snap.Cards, err = r.events.ListCardEventsBySeason(ctx, seasonID); err != nil {
		return snap, err
	}
	if snap.Players, err = r.players.ListBySeason(ctx, seasonID); err != nil {
		return snap, err
	}
	if snap.Matches, err = r.matches.ListBySeason(ctx, seasonID); err != nil {
		return snap, err
	}
	if snap.Cancelled, err = r.suspensions.ListBySeason(ctx, seasonID, suspension.StatusCancelled); err != nil {
		return snap, err
	}

	return snap, nil
}
