package season

import "time"

// Season is one full run of the competition: the scope over which standings
// and disciplinary accumulation are computed.
type Season struct {
	ID        string
	Name      string
	IsActive  bool
	StartsAt  *time.Time
	EndsAt    *time.Time
	CreatedAt time.Time
}
