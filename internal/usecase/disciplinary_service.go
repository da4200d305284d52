package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ligakit/competition-engine/internal/domain/match"
	"github.com/ligakit/competition-engine/internal/domain/matchevent"
	"github.com/ligakit/competition-engine/internal/domain/player"
	"github.com/ligakit/competition-engine/internal/domain/ruleset"
	"github.com/ligakit/competition-engine/internal/domain/season"
	"github.com/ligakit/competition-engine/internal/domain/suspension"
	idgen "github.com/ligakit/competition-engine/internal/platform/id"
	"github.com/ligakit/competition-engine/internal/platform/logging"
)

// RebuildIssue is one per-player integrity problem collected during a season
// rebuild. A corrupt record for one player never aborts recomputation for the
// rest of the season.
type RebuildIssue struct {
	PlayerID string `json:"player_id"`
	EventID  string `json:"event_id,omitempty"`
	Message  string `json:"message"`
}

// RebuildResult reports what a full season rebuild did.
type RebuildResult struct {
	SeasonID string         `json:"season_id"`
	Archived int            `json:"archived"`
	Created  int            `json:"created"`
	Updated  int            `json:"updated"`
	Errors   []RebuildIssue `json:"errors,omitempty"`
}

// SuspensionVerdict answers "is player P suspended for match M" together with
// the triggering reasons for user-facing messaging.
type SuspensionVerdict struct {
	PlayerID  string
	Suspended bool
	Reasons   []string
	Records   []suspension.Record
}

// DisciplinaryService folds non-voided card events into suspension records
// and answers suspension queries against the persisted state. The fold is
// deterministic: events are processed in (round, match id, insertion
// sequence) order, never by on-pitch minute, so two cards in the same minute
// replay identically.
type DisciplinaryService struct {
	seasonRepo     season.Repository
	playerRepo     player.Repository
	matchRepo      match.Repository
	eventRepo      matchevent.Repository
	suspensionRepo suspension.Repository
	rulesetRepo    ruleset.Repository
	snapshots      suspension.SnapshotReader
	idGenerator    idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewDisciplinaryService(
	seasonRepo season.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	suspensionRepo suspension.Repository,
	rulesetRepo ruleset.Repository,
	idGenerator idgen.Generator,
	logger *logging.Logger,
) *DisciplinaryService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGenerator == nil {
		idGenerator = idgen.NewRandomGenerator()
	}

	return &DisciplinaryService{
		seasonRepo:     seasonRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		eventRepo:      eventRepo,
		suspensionRepo: suspensionRepo,
		rulesetRepo:    rulesetRepo,
		idGenerator:    idGenerator,
		logger:         logger,
		now:            time.Now,
	}
}

// SetSnapshotReader routes a rebuild's read phase through one consistent
// season-wide snapshot. Without it the reads fall back to sequential
// repository calls, which is only safe against single-process backends.
func (s *DisciplinaryService) SetSnapshotReader(reader suspension.SnapshotReader) {
	s.snapshots = reader
}

func (s *DisciplinaryService) readRebuildSnapshot(ctx context.Context, seasonID string) (suspension.RebuildSnapshot, error) {
	if s.snapshots != nil {
		snap, err := s.snapshots.ReadRebuildSnapshot(ctx, seasonID)
		if err != nil {
			return suspension.RebuildSnapshot{}, fmt.Errorf("read rebuild snapshot: %w", err)
		}
		return snap, nil
	}

	var snap suspension.RebuildSnapshot
	var err error
	if snap.Cards, err = s.eventRepo.ListCardEventsBySeason(ctx, seasonID); err != nil {
		return suspension.RebuildSnapshot{}, fmt.Errorf("list season card events: %w", err)
	}
	if snap.Players, err = s.playerRepo.ListBySeason(ctx, seasonID); err != nil {
		return suspension.RebuildSnapshot{}, fmt.Errorf("list season players: %w", err)
	}
	if snap.Matches, err = s.matchRepo.ListBySeason(ctx, seasonID); err != nil {
		return suspension.RebuildSnapshot{}, fmt.Errorf("list season matches: %w", err)
	}
	if snap.Cancelled, err = s.suspensionRepo.ListBySeason(ctx, seasonID, suspension.StatusCancelled); err != nil {
		return suspension.RebuildSnapshot{}, fmt.Errorf("list cancelled suspensions: %w", err)
	}
	return snap, nil
}

// RebuildSeason recomputes the full suspension set for a season from the
// event ledger and atomically replaces the persisted set. It is idempotent:
// re-running over the same ledger reproduces the same ACTIVE/SERVED records
// (matched by fingerprint), differing only in archive bookkeeping. Cancelled
// records are never reopened and their cards stay consumed.
func (s *DisciplinaryService) RebuildSeason(ctx context.Context, seasonID string) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DisciplinaryService.RebuildSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return RebuildResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return RebuildResult{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	rules, err := s.loadRules(ctx, seasonID)
	if err != nil {
		return RebuildResult{}, err
	}

	snap, err := s.readRebuildSnapshot(ctx, seasonID)
	if err != nil {
		return RebuildResult{}, err
	}
	sortSeasonEvents(snap.Cards)

	playersByID := make(map[string]player.Player, len(snap.Players))
	for _, p := range snap.Players {
		playersByID[p.ID] = p
	}
	completedByTeam := groupCompletedMatchesByTeam(snap.Matches)

	cancelledFingerprints := make(map[string]struct{}, len(snap.Cancelled))
	for _, rec := range snap.Cancelled {
		cancelledFingerprints[rec.Fingerprint()] = struct{}{}
	}

	records, issues := s.foldCards(seasonID, snap.Cards, playersByID, rules, cancelledFingerprints)

	for i := range records {
		serveRecord(&records[i], completedByTeam[records[i].TeamID])
	}

	outcome, err := s.suspensionRepo.ReplaceBySeason(ctx, seasonID, records)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("replace season suspensions: %w", err)
	}

	result := RebuildResult{
		SeasonID: seasonID,
		Archived: outcome.Archived,
		Created:  outcome.Created,
		Updated:  outcome.Updated,
		Errors:   issues,
	}

	s.logger.InfoContext(ctx, "season discipline rebuilt",
		"season_id", seasonID,
		"archived", result.Archived,
		"created", result.Created,
		"updated", result.Updated,
		"issues", len(result.Errors),
	)

	return result, nil
}

// IsSuspended is a pure read over the persisted suspension set: it never
// re-runs the card fold. A player is suspended for a match when any current
// record triggered strictly before that match has not yet met its
// requirement as of that match, counting only completed team matches ordered
// between the trigger and the queried match. The record's terminal served
// total is not enough: a postponed match stays covered even after a later
// match credited the ban.
func (s *DisciplinaryService) IsSuspended(ctx context.Context, seasonID, matchID, playerID string) (SuspensionVerdict, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DisciplinaryService.IsSuspended")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	matchID = strings.TrimSpace(matchID)
	playerID = strings.TrimSpace(playerID)
	if seasonID == "" || matchID == "" || playerID == "" {
		return SuspensionVerdict{}, fmt.Errorf("%w: season_id, match_id and player_id are required", ErrInvalidInput)
	}

	// An unconfigured ruleset fails closed here as well: answering "not
	// suspended" without rules would let banned players onto the pitch.
	if _, err := s.loadRules(ctx, seasonID); err != nil {
		return SuspensionVerdict{}, err
	}

	target, exists, err := s.matchRepo.GetByID(ctx, seasonID, matchID)
	if err != nil {
		return SuspensionVerdict{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return SuspensionVerdict{}, fmt.Errorf("%w: match=%s season=%s", ErrNotFound, matchID, seasonID)
	}

	current, err := s.suspensionRepo.ListCurrentByPlayer(ctx, seasonID, playerID)
	if err != nil {
		return SuspensionVerdict{}, fmt.Errorf("list current suspensions: %w", err)
	}

	allMatches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return SuspensionVerdict{}, fmt.Errorf("list season matches: %w", err)
	}
	completedByTeam := groupCompletedMatchesByTeam(allMatches)

	verdict := SuspensionVerdict{PlayerID: playerID}
	for _, rec := range current {
		if !triggeredBefore(rec, target) {
			continue
		}
		if servedAsOf(rec, completedByTeam[rec.TeamID], target) >= rec.RequiredMatches {
			continue
		}
		verdict.Suspended = true
		verdict.Reasons = append(verdict.Reasons, rec.Reason)
		verdict.Records = append(verdict.Records, rec)
	}

	return verdict, nil
}

func (s *DisciplinaryService) loadRules(ctx context.Context, seasonID string) (ruleset.DisciplineRules, error) {
	rules, found, err := s.rulesetRepo.GetBySeason(ctx, seasonID)
	if err != nil {
		return ruleset.DisciplineRules{}, fmt.Errorf("get discipline ruleset: %w", err)
	}
	if !found {
		return ruleset.DisciplineRules{}, configurationErrorf("no discipline ruleset configured for season %s", seasonID)
	}
	if err := rules.Validate(); err != nil {
		return ruleset.DisciplineRules{}, configurationErrorf("invalid discipline ruleset for season %s: %v", seasonID, err)
	}
	return rules, nil
}

type pendingYellow struct {
	eventID string
	match   match.Match
}

// foldCards walks the ordered card stream once, producing the season's
// suspension records. Yellow cards accumulate per player until the threshold;
// the contributing cards are consumed exactly once and the counter resets
// (or keeps the remainder when the ruleset says so). Red cards produce a
// record immediately. Records whose fingerprint matches a cancelled record
// are dropped, but their cards remain consumed.
func (s *DisciplinaryService) foldCards(
	seasonID string,
	cards []matchevent.SeasonEvent,
	playersByID map[string]player.Player,
	rules ruleset.DisciplineRules,
	cancelledFingerprints map[string]struct{},
) ([]suspension.Record, []RebuildIssue) {
	records := make([]suspension.Record, 0)
	issues := make([]RebuildIssue, 0)
	pendingByPlayer := make(map[string][]pendingYellow)

	appendRecord := func(rec suspension.Record) {
		if _, wasCancelled := cancelledFingerprints[rec.Fingerprint()]; wasCancelled {
			return
		}
		records = append(records, rec)
	}

	for _, se := range cards {
		ev := se.Event
		if ev.Voided || !ev.IsCard() {
			continue
		}

		if ev.PlayerID == "" {
			issues = append(issues, RebuildIssue{
				EventID: ev.ID,
				Message: fmt.Sprintf("card event %s in match %s has no acting player", ev.ID, ev.MatchID),
			})
			continue
		}
		p, known := playersByID[ev.PlayerID]
		if !known {
			issues = append(issues, RebuildIssue{
				PlayerID: ev.PlayerID,
				EventID:  ev.ID,
				Message:  fmt.Sprintf("card event %s in match %s references unknown player %s", ev.ID, ev.MatchID, ev.PlayerID),
			})
			continue
		}
		if p.TeamID != ev.TeamID {
			issues = append(issues, RebuildIssue{
				PlayerID: ev.PlayerID,
				EventID:  ev.ID,
				Message:  fmt.Sprintf("card event %s in match %s booked player %s against team %s, but the player is rostered to team %s", ev.ID, ev.MatchID, ev.PlayerID, ev.TeamID, p.TeamID),
			})
			continue
		}

		switch matchevent.NormalizeCardType(ev.CardType) {
		case matchevent.CardRed:
			appendRecord(s.newRecord(seasonID, p, se, suspension.ReasonRedCard, rules.RedCardBanMatches, []string{ev.ID}))

		case matchevent.CardYellow:
			pending := append(pendingByPlayer[ev.PlayerID], pendingYellow{eventID: ev.ID, match: se.Match})
			if len(pending) >= rules.YellowAccumulationThreshold {
				consumed := make([]string, 0, rules.YellowAccumulationThreshold)
				for _, y := range pending[:rules.YellowAccumulationThreshold] {
					consumed = append(consumed, y.eventID)
				}
				appendRecord(s.newRecord(seasonID, p, se, suspension.ReasonAccumulation, rules.YellowBanMatches, consumed))

				if rules.CarryOverRemainder {
					pending = append([]pendingYellow(nil), pending[rules.YellowAccumulationThreshold:]...)
				} else {
					pending = nil
				}
			}
			pendingByPlayer[ev.PlayerID] = pending

		default:
			issues = append(issues, RebuildIssue{
				PlayerID: ev.PlayerID,
				EventID:  ev.ID,
				Message:  fmt.Sprintf("card event %s in match %s has invalid card type %q", ev.ID, ev.MatchID, ev.CardType),
			})
		}
	}

	return records, issues
}

func (s *DisciplinaryService) newRecord(
	seasonID string,
	p player.Player,
	trigger matchevent.SeasonEvent,
	reason string,
	required int,
	consumedCardIDs []string,
) suspension.Record {
	recordID, err := s.idGenerator.NewID()
	if err != nil {
		// Insert path assigns an id of its own when this is empty.
		recordID = ""
	}

	now := s.now().UTC()
	return suspension.Record{
		ID:              recordID,
		SeasonID:        seasonID,
		PlayerID:        p.ID,
		TeamID:          p.TeamID,
		Reason:          reason,
		TriggerEventID:  trigger.Event.ID,
		TriggerMatchID:  trigger.Match.ID,
		TriggerRound:    trigger.Match.Round,
		RequiredMatches: required,
		ServedMatches:   0,
		Status:          suspension.StatusActive,
		CardEventIDs:    consumedCardIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// serveRecord walks the team's completed matches strictly after the trigger,
// in non-decreasing round order, crediting one served match each until the
// requirement is met. Matches at or before the trigger never count: a ban
// cannot retroactively consume a past match.
func serveRecord(rec *suspension.Record, teamCompleted []match.Match) {
	for _, m := range teamCompleted {
		if rec.ServedMatches >= rec.RequiredMatches {
			break
		}
		if m.Round < rec.TriggerRound {
			continue
		}
		if m.Round == rec.TriggerRound && m.ID <= rec.TriggerMatchID {
			continue
		}
		rec.ServedMatches++
	}
	if rec.ServedMatches >= rec.RequiredMatches {
		rec.Status = suspension.StatusServed
	}
}

// servedAsOf counts the completed team matches that credit a suspension
// before the queried match: strictly after the trigger, strictly before the
// target, capped at the requirement.
func servedAsOf(rec suspension.Record, teamCompleted []match.Match, target match.Match) int {
	served := 0
	for _, m := range teamCompleted {
		if served >= rec.RequiredMatches {
			break
		}
		if m.Round < rec.TriggerRound {
			continue
		}
		if m.Round == rec.TriggerRound && m.ID <= rec.TriggerMatchID {
			continue
		}
		if !m.Before(target) {
			continue
		}
		served++
	}
	return served
}

func triggeredBefore(rec suspension.Record, target match.Match) bool {
	if rec.TriggerRound != target.Round {
		return rec.TriggerRound < target.Round
	}
	return rec.TriggerMatchID < target.ID
}

func groupCompletedMatchesByTeam(all []match.Match) map[string][]match.Match {
	byTeam := make(map[string][]match.Match)
	for _, m := range all {
		if !match.IsCompletedStatus(m.Status) {
			continue
		}
		byTeam[m.HomeTeamID] = append(byTeam[m.HomeTeamID], m)
		byTeam[m.AwayTeamID] = append(byTeam[m.AwayTeamID], m)
	}
	for teamID := range byTeam {
		ms := byTeam[teamID]
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].Before(ms[j]) })
		byTeam[teamID] = ms
	}
	return byTeam
}

// sortSeasonEvents enforces the disciplinary ordering contract regardless of
// how the ledger read came back: round, then match id, then insertion
// sequence. The on-pitch minute is display-only and unreliable for two cards
// in the same minute.
func sortSeasonEvents(events []matchevent.SeasonEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Match.Round != b.Match.Round {
			return a.Match.Round < b.Match.Round
		}
		if a.Match.ID != b.Match.ID {
			return a.Match.ID < b.Match.ID
		}
		return a.Event.Sequence < b.Event.Sequence
	})
}
