package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Player, error)
	GetByIDs(ctx context.Context, seasonID string, playerIDs []string) ([]Player, error)
}
