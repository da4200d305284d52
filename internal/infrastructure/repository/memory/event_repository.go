package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ligakit/competition-engine/internal/domain/match"
	"github.com/ligakit/competition-engine/internal/domain/matchevent"
)

type EventRepository struct {
	mu       sync.RWMutex
	matches  map[string]match.Match
	bySeason map[string][]matchevent.Event
}

func NewEventRepository(matches []match.Match, events []matchevent.Event) *EventRepository {
	matchIndex := make(map[string]match.Match, len(matches))
	seasonByMatch := make(map[string]string, len(matches))
	for _, m := range matches {
		matchIndex[m.ID] = m
		seasonByMatch[m.ID] = m.SeasonID
	}

	bySeason := make(map[string][]matchevent.Event)
	for _, ev := range events {
		seasonID, ok := seasonByMatch[ev.MatchID]
		if !ok {
			continue
		}
		bySeason[seasonID] = append(bySeason[seasonID], ev)
	}

	repo := &EventRepository{matches: matchIndex, bySeason: bySeason}
	for seasonID := range bySeason {
		repo.sortSeasonLocked(seasonID)
	}
	return repo
}

func (r *EventRepository) ListBySeason(_ context.Context, seasonID string) ([]matchevent.SeasonEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collectLocked(seasonID, func(matchevent.Event) bool { return true }), nil
}

func (r *EventRepository) ListCardEventsBySeason(_ context.Context, seasonID string) ([]matchevent.SeasonEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collectLocked(seasonID, func(ev matchevent.Event) bool { return ev.IsCard() }), nil
}

func (r *EventRepository) collectLocked(seasonID string, keep func(matchevent.Event) bool) []matchevent.SeasonEvent {
	out := make([]matchevent.SeasonEvent, 0)
	for _, ev := range r.bySeason[seasonID] {
		if ev.Voided || !keep(ev) {
			continue
		}
		out = append(out, matchevent.SeasonEvent{Match: r.matches[ev.MatchID], Event: ev})
	}
	return out
}

func (r *EventRepository) sortSeasonLocked(seasonID string) {
	items := r.bySeason[seasonID]
	sort.SliceStable(items, func(i, j int) bool {
		mi, mj := r.matches[items[i].MatchID], r.matches[items[j].MatchID]
		if mi.Round != mj.Round {
			return mi.Round < mj.Round
		}
		if mi.ID != mj.ID {
			return mi.ID < mj.ID
		}
		return items[i].Sequence < items[j].Sequence
	})
	r.bySeason[seasonID] = items
}

// Void flips the voided flag on an event. Voided events stay in the ledger
// but disappear from every listing.
func (r *EventRepository) Void(seasonID, eventID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.bySeason[seasonID]
	for i := range items {
		if items[i].ID == eventID {
			items[i].Voided = true
			return
		}
	}
}
