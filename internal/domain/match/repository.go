package match

import "context"

// Repository exposes the match reads the engine folds over. The engine never
// writes matches; corrections happen upstream and arrive as new reads.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	ListCompletedBySeason(ctx context.Context, seasonID string) ([]Match, error)
	GetByID(ctx context.Context, seasonID, matchID string) (Match, bool, error)
}
