package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ligakit/competition-engine/internal/domain/match"
)

type MatchRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	bySeason := make(map[string][]match.Match)
	for _, item := range matches {
		bySeason[item.SeasonID] = append(bySeason[item.SeasonID], item)
	}
	for seasonID := range bySeason {
		items := bySeason[seasonID]
		sort.SliceStable(items, func(i, j int) bool { return items[i].Before(items[j]) })
		bySeason[seasonID] = items
	}

	return &MatchRepository{bySeason: bySeason}
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySeason[seasonID]
	out := make([]match.Match, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *MatchRepository) ListCompletedBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.bySeason[seasonID] {
		if match.IsCompletedStatus(item.Status) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, seasonID, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.bySeason[seasonID] {
		if item.ID == matchID {
			return item, true, nil
		}
	}
	return match.Match{}, false, nil
}

// SetStatus marks a match with a new status and optional final score. It
// exists for dev seeding and tests; the engine itself never writes matches.
func (r *MatchRepository) SetStatus(seasonID, matchID, status string, homeScore, awayScore *int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.bySeason[seasonID]
	for i := range items {
		if items[i].ID == matchID {
			items[i].Status = match.NormalizeStatus(status)
			items[i].HomeScore = homeScore
			items[i].AwayScore = awayScore
			return
		}
	}
}
