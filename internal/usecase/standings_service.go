package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ligakit/competition-engine/internal/domain/match"
	"github.com/ligakit/competition-engine/internal/domain/season"
	"github.com/ligakit/competition-engine/internal/domain/standings"
	"github.com/ligakit/competition-engine/internal/domain/team"
	"github.com/ligakit/competition-engine/internal/platform/cache"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// StandingsService computes the season table as a pure fold over completed
// matches. Live mode orders by points, goal difference and goals for; final
// mode additionally breaks remaining ties with a recursive head-to-head
// mini-table and falls back to alphabetical team name, so the ordering is
// total and deterministic. Rank is always the 1-based output index of the
// current call, never patched incrementally.
type StandingsService struct {
	seasonRepo    season.Repository
	teamRepo      team.Repository
	matchRepo     match.Repository
	standingsRepo standings.Repository
	finalCache    *cache.Store
	now           func() time.Time
}

func NewStandingsService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	standingsRepo standings.Repository,
) *StandingsService {
	return &StandingsService{
		seasonRepo:    seasonRepo,
		teamRepo:      teamRepo,
		matchRepo:     matchRepo,
		standingsRepo: standingsRepo,
		now:           time.Now,
	}
}

// SetFinalCache enables caching of final-mode computations. Final standings
// are only requested once a phase is frozen, so a short TTL cache is safe;
// live mode always recomputes.
func (s *StandingsService) SetFinalCache(store *cache.Store) {
	s.finalCache = store
}

// InvalidateFinalCache drops the cached final table for a season. The
// recalculation path calls this after voided events changed the inputs a
// frozen table was computed from.
func (s *StandingsService) InvalidateFinalCache(ctx context.Context, seasonID string) {
	if s.finalCache == nil {
		return
	}
	s.finalCache.Delete(ctx, finalStandingsCacheKey(strings.TrimSpace(seasonID)))
}

func (s *StandingsService) Compute(ctx context.Context, seasonID, mode string) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Compute")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = standings.ModeLive
	}
	if !standings.IsValidMode(mode) {
		return nil, fmt.Errorf("%w: mode must be %q or %q", ErrInvalidInput, standings.ModeLive, standings.ModeFinal)
	}

	if mode == standings.ModeFinal && s.finalCache != nil {
		value, err := s.finalCache.GetOrLoad(ctx, finalStandingsCacheKey(seasonID), func(ctx context.Context) (any, error) {
			return s.compute(ctx, seasonID, mode)
		})
		if err != nil {
			return nil, err
		}
		rows, ok := value.([]standings.Row)
		if !ok {
			return nil, fmt.Errorf("unexpected cached standings type %T", value)
		}
		return cloneRows(rows), nil
	}

	return s.compute(ctx, seasonID, mode)
}

// Persist recomputes the table and replaces the materialized rows wholesale.
// The stored table is only a cache of Compute; partial updates are never
// applied to it.
func (s *StandingsService) Persist(ctx context.Context, seasonID, mode string) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Persist")
	defer span.End()

	rows, err := s.Compute(ctx, seasonID, mode)
	if err != nil {
		return nil, err
	}

	if s.standingsRepo != nil {
		if err := s.standingsRepo.ReplaceBySeason(ctx, strings.TrimSpace(seasonID), rows); err != nil {
			return nil, fmt.Errorf("replace season standings: %w", err)
		}
	}

	return rows, nil
}

func (s *StandingsService) compute(ctx context.Context, seasonID, mode string) ([]standings.Row, error) {
	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season teams: %w", err)
	}

	completed, err := s.matchRepo.ListCompletedBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list completed matches: %w", err)
	}

	entries := make(map[string]*tableEntry, len(teams))
	for _, t := range teams {
		entries[t.ID] = &tableEntry{teamID: t.ID, teamName: t.Name}
	}

	for _, m := range completed {
		if !m.HasScores() {
			return nil, integrityErrorf("completed match %s (round %d) has no recorded score", m.ID, m.Round)
		}
		home, ok := entries[m.HomeTeamID]
		if !ok {
			return nil, integrityErrorf("match %s references unknown home team %s", m.ID, m.HomeTeamID)
		}
		away, ok := entries[m.AwayTeamID]
		if !ok {
			return nil, integrityErrorf("match %s references unknown away team %s", m.ID, m.AwayTeamID)
		}
		home.record(*m.HomeScore, *m.AwayScore)
		away.record(*m.AwayScore, *m.HomeScore)
	}

	ordered := make([]*tableEntry, 0, len(entries))
	for _, e := range entries {
		ordered = append(ordered, e)
	}
	sortEntries(ordered)

	if mode == standings.ModeFinal {
		ordered = breakTiesHeadToHead(ordered, completed)
	}

	computedAt := s.now().UTC()
	rows := make([]standings.Row, 0, len(ordered))
	for i, e := range ordered {
		rows = append(rows, standings.Row{
			SeasonID:       seasonID,
			TeamID:         e.teamID,
			TeamName:       e.teamName,
			Rank:           i + 1,
			Played:         e.played,
			Won:            e.won,
			Drawn:          e.drawn,
			Lost:           e.lost,
			GoalsFor:       e.goalsFor,
			GoalsAgainst:   e.goalsAgainst,
			GoalDifference: e.goalDifference(),
			Points:         e.points,
			ComputedAt:     &computedAt,
		})
	}

	return rows, nil
}

type tableEntry struct {
	teamID       string
	teamName     string
	played       int
	won          int
	drawn        int
	lost         int
	goalsFor     int
	goalsAgainst int
	points       int
}

func (e *tableEntry) record(scored, conceded int) {
	e.played++
	e.goalsFor += scored
	e.goalsAgainst += conceded
	switch {
	case scored > conceded:
		e.won++
		e.points += pointsPerWin
	case scored == conceded:
		e.drawn++
		e.points += pointsPerDraw
	default:
		e.lost++
	}
}

func (e *tableEntry) goalDifference() int {
	return e.goalsFor - e.goalsAgainst
}

// sortEntries applies the three ranking keys with an alphabetical fallback so
// repeated computations over the same input are byte-for-byte identical.
func sortEntries(entries []*tableEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return compareEntries(entries[i], entries[j]) < 0
	})
}

func compareEntries(a, b *tableEntry) int {
	if a.points != b.points {
		if a.points > b.points {
			return -1
		}
		return 1
	}
	if a.goalDifference() != b.goalDifference() {
		if a.goalDifference() > b.goalDifference() {
			return -1
		}
		return 1
	}
	if a.goalsFor != b.goalsFor {
		if a.goalsFor > b.goalsFor {
			return -1
		}
		return 1
	}
	if a.teamName != b.teamName {
		if a.teamName < b.teamName {
			return -1
		}
		return 1
	}
	return strings.Compare(a.teamID, b.teamID)
}

func rankingKeysEqual(a, b *tableEntry) bool {
	return a.points == b.points &&
		a.goalDifference() == b.goalDifference() &&
		a.goalsFor == b.goalsFor
}

// breakTiesHeadToHead reorders every group still tied on the three primary
// keys using a mini-table restricted to the matches played among exactly the
// tied teams, recursively. A group where head-to-head resolves nothing (for
// example a three-way beat cycle) keeps its alphabetical order.
func breakTiesHeadToHead(entries []*tableEntry, completed []match.Match) []*tableEntry {
	out := make([]*tableEntry, 0, len(entries))
	for start := 0; start < len(entries); {
		end := start + 1
		for end < len(entries) && rankingKeysEqual(entries[start], entries[end]) {
			end++
		}
		group := entries[start:end]
		if len(group) > 1 {
			out = append(out, orderGroupHeadToHead(group, completed)...)
		} else {
			out = append(out, group[0])
		}
		start = end
	}
	return out
}

func orderGroupHeadToHead(group []*tableEntry, completed []match.Match) []*tableEntry {
	members := make(map[string]*tableEntry, len(group))
	for _, e := range group {
		members[e.teamID] = e
	}

	mini := make(map[string]*tableEntry, len(group))
	for _, e := range group {
		mini[e.teamID] = &tableEntry{teamID: e.teamID, teamName: e.teamName}
	}
	for _, m := range completed {
		home, homeIn := mini[m.HomeTeamID]
		away, awayIn := mini[m.AwayTeamID]
		if !homeIn || !awayIn || !m.HasScores() {
			continue
		}
		home.record(*m.HomeScore, *m.AwayScore)
		away.record(*m.AwayScore, *m.HomeScore)
	}

	miniOrdered := make([]*tableEntry, 0, len(mini))
	for _, e := range mini {
		miniOrdered = append(miniOrdered, e)
	}
	sortEntries(miniOrdered)

	out := make([]*tableEntry, 0, len(group))
	for start := 0; start < len(miniOrdered); {
		end := start + 1
		for end < len(miniOrdered) && rankingKeysEqual(miniOrdered[start], miniOrdered[end]) {
			end++
		}
		sub := miniOrdered[start:end]
		if len(sub) > 1 && len(sub) < len(group) {
			// A strict subgroup is still tied: recurse over the matches played
			// among just those teams.
			subEntries := make([]*tableEntry, 0, len(sub))
			for _, e := range sub {
				subEntries = append(subEntries, members[e.teamID])
			}
			out = append(out, orderGroupHeadToHead(subEntries, completed)...)
		} else {
			// Either resolved, or the whole group is still tied after
			// head-to-head: sortEntries already left it alphabetical.
			for _, e := range sub {
				out = append(out, members[e.teamID])
			}
		}
		start = end
	}
	return out
}

func finalStandingsCacheKey(seasonID string) string {
	return "standings:final:" + seasonID
}

func cloneRows(rows []standings.Row) []standings.Row {
	out := make([]standings.Row, len(rows))
	copy(out, rows)
	return out
}
