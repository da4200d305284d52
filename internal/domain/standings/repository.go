package standings

import "context"

// Repository persists the materialized standings table. The table is a cache
// of the pure computation: writes always replace the whole season at once so
// readers never observe a partially updated table.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Row, error)
	ReplaceBySeason(ctx context.Context, seasonID string, rows []Row) error
}
