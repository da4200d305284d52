package matchevent

import (
	"context"

	"github.com/ligakit/competition-engine/internal/domain/match"
)

// SeasonEvent joins a ledger entry with its parent match so folds can order
// by (round, match id, insertion sequence) without a second lookup.
type SeasonEvent struct {
	Match match.Match
	Event Event
}

// Repository is the ledger read surface consumed by the engine. Voided
// entries are filtered out at the source and voiding must be visible on the
// very next read: there is no caching layer between the ledger and a fold.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]SeasonEvent, error)
	ListCardEventsBySeason(ctx context.Context, seasonID string) ([]SeasonEvent, error)
}
