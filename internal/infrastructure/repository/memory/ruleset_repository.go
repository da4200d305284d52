package memory

import (
	"context"
	"sync"

	"github.com/ligakit/competition-engine/internal/domain/ruleset"
)

type RulesetRepository struct {
	mu       sync.RWMutex
	bySeason map[string]ruleset.DisciplineRules
}

func NewRulesetRepository(rules []ruleset.DisciplineRules) *RulesetRepository {
	bySeason := make(map[string]ruleset.DisciplineRules, len(rules))
	for _, item := range rules {
		bySeason[item.SeasonID] = item
	}

	return &RulesetRepository{bySeason: bySeason}
}

func (r *RulesetRepository) GetBySeason(_ context.Context, seasonID string) (ruleset.DisciplineRules, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules, ok := r.bySeason[seasonID]
	return rules, ok, nil
}
