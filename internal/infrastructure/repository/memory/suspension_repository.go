package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ligakit/competition-engine/internal/domain/suspension"
)

type SuspensionRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]suspension.Record
	now      func() time.Time
}

func NewSuspensionRepository(records []suspension.Record) *SuspensionRepository {
	bySeason := make(map[string][]suspension.Record)
	for _, rec := range records {
		bySeason[rec.SeasonID] = append(bySeason[rec.SeasonID], rec)
	}

	return &SuspensionRepository{bySeason: bySeason, now: time.Now}
}

func (r *SuspensionRepository) ListBySeason(_ context.Context, seasonID string, statuses ...string) ([]suspension.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(statuses))
	for _, status := range statuses {
		wanted[status] = struct{}{}
	}

	out := make([]suspension.Record, 0)
	for _, rec := range r.bySeason[seasonID] {
		if len(wanted) > 0 {
			if _, ok := wanted[rec.Status]; !ok {
				continue
			}
		}
		out = append(out, cloneRecord(rec))
	}
	sortRecords(out)
	return out, nil
}

func (r *SuspensionRepository) ListCurrentByPlayer(_ context.Context, seasonID, playerID string) ([]suspension.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]suspension.Record, 0)
	for _, rec := range r.bySeason[seasonID] {
		if rec.PlayerID != playerID {
			continue
		}
		if rec.Status != suspension.StatusActive && rec.Status != suspension.StatusServed {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	sortRecords(out)
	return out, nil
}

func (r *SuspensionRepository) ReplaceBySeason(_ context.Context, seasonID string, records []suspension.Record) (suspension.ReplaceOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	existing := r.bySeason[seasonID]
	byFingerprint := make(map[string]int, len(existing))
	for i, rec := range existing {
		if rec.Status == suspension.StatusActive || rec.Status == suspension.StatusServed {
			byFingerprint[rec.Fingerprint()] = i
		}
	}

	var outcome suspension.ReplaceOutcome
	reproduced := make(map[int]struct{}, len(records))
	next := existing

	for _, rec := range records {
		idx, ok := byFingerprint[rec.Fingerprint()]
		if !ok {
			stored := cloneRecord(rec)
			stored.CreatedAt = now
			stored.UpdatedAt = now
			next = append(next, stored)
			outcome.Created++
			continue
		}

		reproduced[idx] = struct{}{}
		current := next[idx]
		if current.ServedMatches == rec.ServedMatches && current.Status == rec.Status {
			continue
		}
		current.ServedMatches = rec.ServedMatches
		current.Status = rec.Status
		current.CardEventIDs = append([]string(nil), rec.CardEventIDs...)
		current.UpdatedAt = now
		next[idx] = current
		outcome.Updated++
	}

	for _, idx := range byFingerprint {
		if _, ok := reproduced[idx]; ok {
			continue
		}
		next[idx].Status = suspension.StatusArchived
		next[idx].UpdatedAt = now
		outcome.Archived++
	}

	r.bySeason[seasonID] = next
	return outcome, nil
}

// Cancel marks a record CANCELLED; later rebuilds never resurrect it.
func (r *SuspensionRepository) Cancel(seasonID, recordID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.bySeason[seasonID]
	for i := range items {
		if items[i].ID == recordID && items[i].CanTransition(suspension.StatusCancelled) {
			items[i].Status = suspension.StatusCancelled
			items[i].UpdatedAt = r.now()
			return
		}
	}
}

func sortRecords(items []suspension.Record) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].TriggerRound != items[j].TriggerRound {
			return items[i].TriggerRound < items[j].TriggerRound
		}
		if items[i].TriggerMatchID != items[j].TriggerMatchID {
			return items[i].TriggerMatchID < items[j].TriggerMatchID
		}
		return items[i].ID < items[j].ID
	})
}

func cloneRecord(rec suspension.Record) suspension.Record {
	rec.CardEventIDs = append([]string(nil), rec.CardEventIDs...)
	return rec
}
