package memory

import (
	"context"
	"sync"

	"github.com/ligakit/competition-engine/internal/domain/standings"
)

type StandingsRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]standings.Row
}

func NewStandingsRepository() *StandingsRepository {
	return &StandingsRepository{bySeason: make(map[string][]standings.Row)}
}

func (r *StandingsRepository) ListBySeason(_ context.Context, seasonID string) ([]standings.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySeason[seasonID]
	out := make([]standings.Row, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *StandingsRepository) ReplaceBySeason(_ context.Context, seasonID string, rows []standings.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]standings.Row, 0, len(rows))
	stored = append(stored, rows...)
	r.bySeason[seasonID] = stored
	return nil
}
