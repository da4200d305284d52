package ruleset

import "fmt"

// DisciplineRules configures card-driven bans for one season. An absent or
// invalid ruleset is a configuration error and the engine fails closed: it
// must never default to "nobody is suspended".
type DisciplineRules struct {
	SeasonID string
	// RedCardBanMatches is the ban length for a straight red card.
	RedCardBanMatches int
	// YellowAccumulationThreshold is the unconsumed-yellow count that triggers
	// an accumulation ban. Accumulation tracks the whole season.
	YellowAccumulationThreshold int
	// YellowBanMatches is the ban length for an accumulation trigger.
	YellowBanMatches int
	// CarryOverRemainder keeps yellows beyond the threshold counting toward
	// the next ban instead of hard-resetting the counter to zero.
	CarryOverRemainder bool
}

// Default returns the ruleset applied when an organizer has not tuned one.
// These are only seed values: a season with no persisted ruleset row still
// fails closed.
func Default(seasonID string) DisciplineRules {
	return DisciplineRules{
		SeasonID:                    seasonID,
		RedCardBanMatches:           1,
		YellowAccumulationThreshold: 2,
		YellowBanMatches:            1,
	}
}

func (r DisciplineRules) Validate() error {
	if r.SeasonID == "" {
		return fmt.Errorf("ruleset season id is required")
	}
	if r.RedCardBanMatches < 1 {
		return fmt.Errorf("red card ban matches must be >= 1, got %d", r.RedCardBanMatches)
	}
	if r.YellowAccumulationThreshold < 1 {
		return fmt.Errorf("yellow accumulation threshold must be >= 1, got %d", r.YellowAccumulationThreshold)
	}
	if r.YellowBanMatches < 1 {
		return fmt.Errorf("yellow ban matches must be >= 1, got %d", r.YellowBanMatches)
	}

	return nil
}
