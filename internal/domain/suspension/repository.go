package suspension

import "context"

// ReplaceOutcome reports what an atomic season replace did.
type ReplaceOutcome struct {
	Archived int
	Created  int
	Updated  int
}

// Repository persists suspension records. ReplaceBySeason is the only write
// path used by rebuilds and must be atomic from a reader's perspective:
// previously ACTIVE or SERVED records not reproduced (matched by fingerprint)
// are archived, reproduced ones are updated in place and new ones inserted,
// all inside one transaction. CANCELLED records are left untouched.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string, statuses ...string) ([]Record, error)
	// ListCurrentByPlayer returns the player's ACTIVE and SERVED records.
	// SERVED rows are included because their serving credit may come from
	// matches ordered after an earlier, still-pending match.
	ListCurrentByPlayer(ctx context.Context, seasonID, playerID string) ([]Record, error)
	ReplaceBySeason(ctx context.Context, seasonID string, records []Record) (ReplaceOutcome, error)
}
