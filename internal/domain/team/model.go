package team

import "fmt"

// Team is one club competing in a season. Name is the deterministic last
// tie-break key for final standings, so it must be stable and non-empty.
type Team struct {
	ID       string
	SeasonID string
	Name     string
	Short    string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.SeasonID == "" {
		return fmt.Errorf("team season id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
