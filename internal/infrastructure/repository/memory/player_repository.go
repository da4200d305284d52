package memory

import (
	"context"
	"sync"

	"github.com/ligakit/competition-engine/internal/domain/player"
)

type PlayerRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	bySeason := make(map[string][]player.Player)
	for _, item := range players {
		bySeason[item.SeasonID] = append(bySeason[item.SeasonID], item)
	}

	return &PlayerRepository{bySeason: bySeason}
}

func (r *PlayerRepository) ListBySeason(_ context.Context, seasonID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySeason[seasonID]
	out := make([]player.Player, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, seasonID string, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}

	out := make([]player.Player, 0, len(wanted))
	for _, item := range r.bySeason[seasonID] {
		if _, ok := wanted[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}
