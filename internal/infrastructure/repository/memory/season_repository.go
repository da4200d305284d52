package memory

import (
	"context"
	"sync"

	"github.com/ligakit/competition-engine/internal/domain/season"
)

type SeasonRepository struct {
	mu   sync.RWMutex
	byID map[string]season.Season
	ids  []string
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	byID := make(map[string]season.Season, len(seasons))
	ids := make([]string, 0, len(seasons))
	for _, item := range seasons {
		if _, exists := byID[item.ID]; !exists {
			ids = append(ids, item.ID)
		}
		byID[item.ID] = item
	}

	return &SeasonRepository{byID: byID, ids: ids}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[seasonID]
	return item, ok, nil
}
