package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"
)

// GateViolation is one suspended player inside a proposed lineup, annotated
// with the human-readable reason the caller surfaces to the submitter.
type GateViolation struct {
	PlayerID string   `json:"player_id"`
	Reasons  []string `json:"reasons"`
	Message  string   `json:"message"`
}

// SuspensionGateService is the read-path consumed by the lineup-submission
// workflow. It never mutates lineup state: it only reports which of the
// proposed players are suspended for the given match. Every player is
// evaluated, never just the first hit, so the caller can reject a submission
// with the complete violation list at once.
type SuspensionGateService struct {
	disciplinary *DisciplinaryService
}

func NewSuspensionGateService(disciplinary *DisciplinaryService) *SuspensionGateService {
	return &SuspensionGateService{disciplinary: disciplinary}
}

func (s *SuspensionGateService) CheckSuspensions(ctx context.Context, seasonID, matchID string, playerIDs []string) ([]GateViolation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionGateService.CheckSuspensions")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	matchID = strings.TrimSpace(matchID)
	if seasonID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: season_id and match_id are required", ErrInvalidInput)
	}
	if len(playerIDs) == 0 {
		return nil, fmt.Errorf("%w: player_ids cannot be empty", ErrInvalidInput)
	}

	cleaned := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		cleaned = append(cleaned, id)
	}

	verdicts := make([]SuspensionVerdict, len(cleaned))
	errs := make([]error, len(cleaned))

	var wg conc.WaitGroup
	for i, playerID := range cleaned {
		i, playerID := i, playerID
		wg.Go(func() {
			verdicts[i], errs[i] = s.disciplinary.IsSuspended(ctx, seasonID, matchID, playerID)
		})
	}
	wg.Wait()

	var combined error
	for _, err := range errs {
		combined = crerr.CombineErrors(combined, err)
	}
	if combined != nil {
		return nil, fmt.Errorf("check suspensions for match %s: %w", matchID, combined)
	}

	violations := make([]GateViolation, 0, len(cleaned))
	for _, v := range verdicts {
		if !v.Suspended {
			continue
		}
		messages := make([]string, 0, len(v.Records))
		for _, rec := range v.Records {
			messages = append(messages, rec.Describe())
		}
		violations = append(violations, GateViolation{
			PlayerID: v.PlayerID,
			Reasons:  v.Reasons,
			Message:  strings.Join(messages, "; "),
		})
	}

	return violations, nil
}
