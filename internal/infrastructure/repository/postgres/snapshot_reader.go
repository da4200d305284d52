package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ligakit/competition-engine/internal/domain/suspension"
)

// DisciplineSnapshotReader serves a rebuild's read phase from a single
// REPEATABLE READ read-only transaction. A void or match completion landing
// between the four reads cannot leak a mixed view into the fold.
type DisciplineSnapshotReader struct {
	db          *sqlx.DB
	events      *MatchEventRepository
	players     *PlayerRepository
	matches     *MatchRepository
	suspensions *SuspensionRepository
}

func NewDisciplineSnapshotReader(db *sqlx.DB) *DisciplineSnapshotReader {
	return &DisciplineSnapshotReader{
		db:          db,
		events:      NewMatchEventRepository(db),
		players:     NewPlayerRepository(db),
		matches:     NewMatchRepository(db),
		suspensions: NewSuspensionRepository(db),
	}
}

func (r *DisciplineSnapshotReader) ReadRebuildSnapshot(ctx context.Context, seasonID string) (suspension.RebuildSnapshot, error) {
	var snap suspension.RebuildSnapshot

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return snap, fmt.Errorf("begin rebuild snapshot tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if snap.Cards, err = r.events.listBySeason(ctx, tx, seasonID, true); err != nil {
		return snap, err
	}
	if snap.Players, err = r.players.listBySeason(ctx, tx, seasonID); err != nil {
		return snap, err
	}
	if snap.Matches, err = r.matches.listBySeason(ctx, tx, seasonID, false); err != nil {
		return snap, err
	}
	if snap.Cancelled, err = r.suspensions.listBySeason(ctx, tx, seasonID, suspension.StatusCancelled); err != nil {
		return snap, err
	}

	if err := tx.Commit(); err != nil {
		return snap, fmt.Errorf("commit rebuild snapshot tx: %w", err)
	}
	return snap, nil
}
