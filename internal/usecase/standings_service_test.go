package usecase

import (
	"context"
	"github.com/cockroachdb/errors"
	"reflect"
	"testing"
	"time"

	"github.com/ligakit/competition-engine/internal/domain/match"
	"github.com/ligakit/competition-engine/internal/domain/season"
	"github.com/ligakit/competition-engine/internal/domain/standings"
	"github.com/ligakit/competition-engine/internal/domain/team"
	"github.com/ligakit/competition-engine/internal/infrastructure/repository/memory"
	"github.com/ligakit/competition-engine/internal/platform/cache"
)

type standingsBackends struct {
	matches   *memory.MatchRepository
	standings *memory.StandingsRepository
	service   *StandingsService
}

func newStandingsBackends(teams []team.Team, matches []match.Match) *standingsBackends {
	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{ID: testSeasonID, Name: "Liga Test", IsActive: true},
	})
	matchRepo := memory.NewMatchRepository(matches)
	standingsRepo := memory.NewStandingsRepository()

	svc := NewStandingsService(seasonRepo, memory.NewTeamRepository(teams), matchRepo, standingsRepo)
	svc.now = func() time.Time { return time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC) }

	return &standingsBackends{matches: matchRepo, standings: standingsRepo, service: svc}
}

func completedMatch(id string, round int, home, away string, homeScore, awayScore int) match.Match {
	hs, as := homeScore, awayScore
	return match.Match{
		ID:         id,
		SeasonID:   testSeasonID,
		Round:      round,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  &hs,
		AwayScore:  &as,
		Status:     match.StatusCompleted,
		KickoffAt:  time.Date(2026, 3, round, 19, 0, 0, 0, time.UTC),
	}
}

func rankedTeamIDs(rows []standings.Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.TeamID)
	}
	return out
}

func TestStandingsService_Compute_LiveOrdering(t *testing.T) {
	t.Parallel()

	backends := newStandingsBackends(
		[]team.Team{
			{ID: "t-a", SeasonID: testSeasonID, Name: "Arema"},
			{ID: "t-b", SeasonID: testSeasonID, Name: "Borneo"},
			{ID: "t-c", SeasonID: testSeasonID, Name: "Cilegon"},
		},
		[]match.Match{
			completedMatch("m-01", 1, "t-a", "t-b", 2, 0),
			completedMatch("m-02", 2, "t-a", "t-c", 1, 0),
			completedMatch("m-03", 3, "t-b", "t-c", 1, 0),
		},
	)

	rows, err := backends.service.Compute(context.Background(), testSeasonID, standings.ModeLive)
	if err != nil {
		t.Fatalf("compute standings: %v", err)
	}

	got := rankedTeamIDs(rows)
	want := []string{"t-a", "t-b", "t-c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got=%v want=%v", got, want)
		}
	}

	top := rows[0]
	if top.Rank != 1 || top.Played != 2 || top.Won != 2 || top.Points != 6 {
		t.Fatalf("unexpected leader row: %+v", top)
	}
	if top.GoalsFor != 3 || top.GoalsAgainst != 0 || top.GoalDifference != 3 {
		t.Fatalf("unexpected leader goals: %+v", top)
	}

	// Recomputing over the same input yields an identical table.
	again, err := backends.service.Compute(context.Background(), testSeasonID, standings.ModeLive)
	if err != nil {
		t.Fatalf("recompute standings: %v", err)
	}
	for i := range rows {
		if rows[i].TeamID != again[i].TeamID || rows[i].Rank != again[i].Rank || rows[i].Points != again[i].Points {
			t.Fatalf("recomputation diverged at index %d: %+v vs %+v", i, rows[i], again[i])
		}
	}
}

func TestStandingsService_Compute_FinalHeadToHeadBreaksTie(t *testing.T) {
	t.Parallel()

	// Zulu and Alpha finish level on points, goal difference and goals for.
	// Zulu won the only meeting, so final mode ranks Zulu first while live
	// mode falls back to the alphabetical name order.
	teams := []team.Team{
		{ID: "t-alpha", SeasonID: testSeasonID, Name: "Alpha City"},
		{ID: "t-zulu", SeasonID: testSeasonID, Name: "Zulu United"},
		{ID: "t-charlie", SeasonID: testSeasonID, Name: "Charlie FC"},
	}
	matches := []match.Match{
		completedMatch("m-01", 1, "t-zulu", "t-alpha", 2, 1),
		completedMatch("m-02", 2, "t-alpha", "t-charlie", 1, 0),
		completedMatch("m-03", 3, "t-charlie", "t-zulu", 1, 0),
	}

	backends := newStandingsBackends(teams, matches)

	live, err := backends.service.Compute(context.Background(), testSeasonID, standings.ModeLive)
	if err != nil {
		t.Fatalf("compute live standings: %v", err)
	}
	if got := rankedTeamIDs(live); got[0] != "t-alpha" || got[1] != "t-zulu" {
		t.Fatalf("live mode must order tied teams alphabetically, got %v", got)
	}

	final, err := backends.service.Compute(context.Background(), testSeasonID, standings.ModeFinal)
	if err != nil {
		t.Fatalf("compute final standings: %v", err)
	}
	if got := rankedTeamIDs(final); got[0] != "t-zulu" || got[1] != "t-alpha" || got[2] != "t-charlie" {
		t.Fatalf("final mode must rank the head-to-head winner first, got %v", got)
	}
}

func TestStandingsService_Compute_FinalThreeWayCycleStaysAlphabetical(t *testing.T) {
	t.Parallel()

	// Arema beat Borneo, Borneo beat Cilegon, Cilegon beat Arema, all 1-0.
	// Head-to-head resolves nothing, so the alphabetical order holds.
	teams := []team.Team{
		{ID: "t-a", SeasonID: testSeasonID, Name: "Arema"},
		{ID: "t-b", SeasonID: testSeasonID, Name: "Borneo"},
		{ID: "t-c", SeasonID: testSeasonID, Name: "Cilegon"},
	}
	matches := []match.Match{
		completedMatch("m-01", 1, "t-a", "t-b", 1, 0),
		completedMatch("m-02", 2, "t-b", "t-c", 1, 0),
		completedMatch("m-03", 3, "t-c", "t-a", 1, 0),
	}

	backends := newStandingsBackends(teams, matches)

	final, err := backends.service.Compute(context.Background(), testSeasonID, standings.ModeFinal)
	if err != nil {
		t.Fatalf("compute final standings: %v", err)
	}
	got := rankedTeamIDs(final)
	want := []string{"t-a", "t-b", "t-c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cycle must keep alphabetical order: got=%v want=%v", got, want)
		}
	}
}

func TestStandingsService_Compute_CompletedMatchWithoutScore(t *testing.T) {
	t.Parallel()

	broken := match.Match{
		ID:         "m-01",
		SeasonID:   testSeasonID,
		Round:      1,
		HomeTeamID: "t-a",
		AwayTeamID: "t-b",
		Status:     match.StatusCompleted,
		KickoffAt:  time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC),
	}
	backends := newStandingsBackends(
		[]team.Team{
			{ID: "t-a", SeasonID: testSeasonID, Name: "Arema"},
			{ID: "t-b", SeasonID: testSeasonID, Name: "Borneo"},
		},
		[]match.Match{broken},
	)

	if _, err := backends.service.Compute(context.Background(), testSeasonID, standings.ModeLive); !errors.Is(err, ErrIntegrity) {
		t.Fatalf("expected integrity error, got %v", err)
	}
}

func TestStandingsService_Compute_InputValidation(t *testing.T) {
	t.Parallel()

	backends := newStandingsBackends(nil, nil)

	if _, err := backends.service.Compute(context.Background(), testSeasonID, "playoffs"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid mode error, got %v", err)
	}
	if _, err := backends.service.Compute(context.Background(), "", standings.ModeLive); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected missing season error, got %v", err)
	}
	if _, err := backends.service.Compute(context.Background(), "liga-unknown", standings.ModeLive); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStandingsService_Persist_ReplacesStoredTable(t *testing.T) {
	t.Parallel()

	backends := newStandingsBackends(
		[]team.Team{
			{ID: "t-a", SeasonID: testSeasonID, Name: "Arema"},
			{ID: "t-b", SeasonID: testSeasonID, Name: "Borneo"},
		},
		[]match.Match{completedMatch("m-01", 1, "t-a", "t-b", 3, 1)},
	)

	rows, err := backends.service.Persist(context.Background(), testSeasonID, standings.ModeLive)
	if err != nil {
		t.Fatalf("persist standings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	stored, err := backends.standings.ListBySeason(context.Background(), testSeasonID)
	if err != nil {
		t.Fatalf("list stored standings: %v", err)
	}
	if len(stored) != 2 || stored[0].TeamID != "t-a" || stored[0].Rank != 1 {
		t.Fatalf("unexpected stored table: %+v", stored)
	}
}

func TestStandingsService_FinalCache_ServesFrozenTable(t *testing.T) {
	t.Parallel()

	backends := newStandingsBackends(
		[]team.Team{
			{ID: "t-a", SeasonID: testSeasonID, Name: "Arema"},
			{ID: "t-b", SeasonID: testSeasonID, Name: "Borneo"},
		},
		[]match.Match{
			completedMatch("m-01", 1, "t-a", "t-b", 1, 0),
			{
				ID:         "m-02",
				SeasonID:   testSeasonID,
				Round:      2,
				HomeTeamID: "t-b",
				AwayTeamID: "t-a",
				Status:     match.StatusScheduled,
				KickoffAt:  time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC),
			},
		},
	)
	backends.service.SetFinalCache(cache.NewStore(time.Minute))

	first, err := backends.service.Compute(context.Background(), testSeasonID, standings.ModeFinal)
	if err != nil {
		t.Fatalf("compute final standings: %v", err)
	}
	if first[0].TeamID != "t-a" || first[0].Points != 3 {
		t.Fatalf("unexpected initial leader: %+v", first[0])
	}

	// A late result lands, but the cached final table keeps serving until it
	// expires. Live mode sees the new result immediately.
	home, away := 4, 0
	backends.matches.SetStatus(testSeasonID, "m-02", match.StatusCompleted, &home, &away)

	cached, err := backends.service.Compute(context.Background(), testSeasonID, standings.ModeFinal)
	if err != nil {
		t.Fatalf("compute cached final standings: %v", err)
	}
	if cached[0].TeamID != "t-a" || cached[0].Points != 3 {
		t.Fatalf("expected the cached final table, got %+v", cached[0])
	}

	live, err := backends.service.Compute(context.Background(), testSeasonID, standings.ModeLive)
	if err != nil {
		t.Fatalf("compute live standings: %v", err)
	}
	if live[0].TeamID != "t-b" {
		t.Fatalf("live mode must pick up the new result, got %+v", live[0])
	}
}

func TestStandingsService_Compute_DeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	backends := newStandingsBackends(
		[]team.Team{
			{ID: "t-a", SeasonID: testSeasonID, Name: "Arema"},
			{ID: "t-b", SeasonID: testSeasonID, Name: "Borneo"},
			{ID: "t-c", SeasonID: testSeasonID, Name: "Cilegon"},
		},
		[]match.Match{
			completedMatch("m-01", 1, "t-a", "t-b", 2, 0),
			completedMatch("m-02", 2, "t-a", "t-c", 1, 0),
			completedMatch("m-03", 3, "t-b", "t-c", 1, 0),
		},
	)

	for _, mode := range []string{standings.ModeLive, standings.ModeFinal} {
		first, err := backends.service.Compute(context.Background(), testSeasonID, mode)
		if err != nil {
			t.Fatalf("first compute (%s): %v", mode, err)
		}
		second, err := backends.service.Compute(context.Background(), testSeasonID, mode)
		if err != nil {
			t.Fatalf("second compute (%s): %v", mode, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("independent %s computations diverged:\nfirst:  %+v\nsecond: %+v", mode, first, second)
		}
	}
}
