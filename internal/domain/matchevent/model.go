package matchevent

import (
	"fmt"
	"strings"
)

const (
	TypeGoal         = "GOAL"
	TypeAssist       = "ASSIST"
	TypeCard         = "CARD"
	TypeSubstitution = "SUBSTITUTION"
)

const (
	CardYellow = "YELLOW"
	CardRed    = "RED"
)

// Event is one append-only ledger entry tied to a match and a team.
// Corrections never mutate fields: an admin voids the entry and reinserts a
// replacement, so the ledger stays auditable and folds stay replayable.
// Minute and StoppageOffset exist for display ordering only; disciplinary
// folds order by (round, match id, Sequence).
type Event struct {
	ID              string
	MatchID         string
	TeamID          string
	Type            string
	PlayerID        string
	RelatedPlayerID string
	Minute          int
	StoppageOffset  int
	CardType        string
	Sequence        int64
	Voided          bool
}

func NormalizeType(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func NormalizeCardType(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func (e Event) IsCard() bool {
	return NormalizeType(e.Type) == TypeCard
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.MatchID == "" {
		return fmt.Errorf("event match id is required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("event team id is required")
	}
	switch NormalizeType(e.Type) {
	case TypeGoal, TypeAssist, TypeCard, TypeSubstitution:
	default:
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	if e.IsCard() {
		switch NormalizeCardType(e.CardType) {
		case CardYellow, CardRed:
		default:
			return fmt.Errorf("invalid card type: %s", e.CardType)
		}
	}

	return nil
}
