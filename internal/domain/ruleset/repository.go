package ruleset

import "context"

type Repository interface {
	GetBySeason(ctx context.Context, seasonID string) (DisciplineRules, bool, error)
}
