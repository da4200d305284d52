package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ligakit/competition-engine/internal/domain/team"
)

type TeamRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	bySeason := make(map[string][]team.Team)
	for _, item := range teams {
		bySeason[item.SeasonID] = append(bySeason[item.SeasonID], item)
	}
	for seasonID := range bySeason {
		items := bySeason[seasonID]
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		bySeason[seasonID] = items
	}

	return &TeamRepository{bySeason: bySeason}
}

func (r *TeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySeason[seasonID]
	out := make([]team.Team, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, seasonID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.bySeason[seasonID] {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}
