package player

import "fmt"

// Player is one registered athlete in a season squad. Suspensions are keyed
// by player id, so the id must stay stable across corrections.
type Player struct {
	ID       string
	SeasonID string
	TeamID   string
	Name     string
	Number   int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.SeasonID == "" {
		return fmt.Errorf("player season id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
