package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ligakit/competition-engine/internal/domain/matchevent"
	"github.com/ligakit/competition-engine/internal/domain/ruleset"
	"github.com/ligakit/competition-engine/internal/domain/season"
	"github.com/ligakit/competition-engine/internal/domain/standings"
	"github.com/ligakit/competition-engine/internal/infrastructure/repository/memory"
	"github.com/ligakit/competition-engine/internal/platform/logging"
)

func TestRecalculationService_RecalculateSeason_RefreshesStandings(t *testing.T) {
	t.Parallel()

	backends := newTwoTeamBackends([]matchevent.Event{
		yellowCard("ev-y1", "m-01", "t-alpha", "p-alpha-1", 1),
		yellowCard("ev-y2", "m-03", "t-alpha", "p-alpha-1", 1),
	}, []ruleset.DisciplineRules{strictRules()})

	standingsSvc := NewStandingsService(backends.seasons, backends.teams, backends.matches, backends.standings)
	svc := NewRecalculationService(backends.seasons, backends.disciplinaryService(), logging.NewNop())
	svc.SetStandingsRefresher(standingsSvc)

	result, err := svc.RecalculateSeason(context.Background(), testSeasonID)
	if err != nil {
		t.Fatalf("recalculate season: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("expected 1 created suspension, got %+v", result)
	}

	rows, err := backends.standings.ListBySeason(context.Background(), testSeasonID)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected the standings table refreshed after rebuild, got %d rows", len(rows))
	}
	if rows[0].Rank != 1 {
		t.Fatalf("unexpected stored table: %+v", rows)
	}
}

func TestRecalculationService_RecalculateSeason_UnknownSeason(t *testing.T) {
	t.Parallel()

	backends := newTwoTeamBackends(nil, []ruleset.DisciplineRules{strictRules()})
	svc := NewRecalculationService(backends.seasons, backends.disciplinaryService(), logging.NewNop())

	if _, err := svc.RecalculateSeason(context.Background(), "liga-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.RecalculateSeason(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRecalculationService_RecalculateAll_FansOutOverActiveSeasons(t *testing.T) {
	t.Parallel()

	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{ID: "liga-a", Name: "Liga A", IsActive: true},
		{ID: "liga-b", Name: "Liga B", IsActive: true},
		{ID: "liga-old", Name: "Liga Old", IsActive: false},
	})
	rulesetRepo := memory.NewRulesetRepository([]ruleset.DisciplineRules{
		ruleset.Default("liga-a"),
		// liga-b has no ruleset, so its task fails closed without aborting
		// the run.
	})

	disciplinary := NewDisciplinaryService(
		seasonRepo,
		memory.NewPlayerRepository(nil),
		memory.NewMatchRepository(nil),
		memory.NewEventRepository(nil, nil),
		memory.NewSuspensionRepository(nil),
		rulesetRepo,
		nil,
		logging.NewNop(),
	)
	svc := NewRecalculationService(seasonRepo, disciplinary, logging.NewNop())

	run, err := svc.RecalculateAll(context.Background(), 2)
	if err != nil {
		t.Fatalf("recalculate all: %v", err)
	}

	if run.SeasonCount != 2 {
		t.Fatalf("inactive seasons must be skipped, got %+v", run)
	}
	if run.WorkerCount != 2 {
		t.Fatalf("unexpected worker count: %d", run.WorkerCount)
	}
	if run.SuccessCount != 1 || run.FailedCount != 1 {
		t.Fatalf("expected one success and one configuration failure, got %+v", run)
	}
	if len(run.Tasks) != 2 || run.Tasks[0].SeasonID != "liga-a" || run.Tasks[1].SeasonID != "liga-b" {
		t.Fatalf("tasks must be sorted by season id, got %+v", run.Tasks)
	}
	if run.Tasks[0].Status != recalcStatusSuccess {
		t.Fatalf("unexpected liga-a task: %+v", run.Tasks[0])
	}
	if run.Tasks[1].Status != recalcStatusFailed || run.Tasks[1].Message == "" {
		t.Fatalf("unexpected liga-b task: %+v", run.Tasks[1])
	}
}

func TestRecalculationService_RecalculateAll_NoActiveSeasons(t *testing.T) {
	t.Parallel()

	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{ID: "liga-old", Name: "Liga Old", IsActive: false},
	})
	disciplinary := NewDisciplinaryService(
		seasonRepo,
		memory.NewPlayerRepository(nil),
		memory.NewMatchRepository(nil),
		memory.NewEventRepository(nil, nil),
		memory.NewSuspensionRepository(nil),
		memory.NewRulesetRepository(nil),
		nil,
		logging.NewNop(),
	)
	svc := NewRecalculationService(seasonRepo, disciplinary, logging.NewNop())

	run, err := svc.RecalculateAll(context.Background(), 0)
	if err != nil {
		t.Fatalf("recalculate all: %v", err)
	}
	if run.SeasonCount != 0 || len(run.Tasks) != 0 {
		t.Fatalf("expected an empty run, got %+v", run)
	}
}

func TestNormalizeRecalcWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		requested int
		tasks     int
		want      int
	}{
		{requested: 0, tasks: 10, want: defaultRecalcWorkers},
		{requested: -3, tasks: 10, want: defaultRecalcWorkers},
		{requested: 64, tasks: 100, want: maxRecalcWorkers},
		{requested: 8, tasks: 3, want: 3},
		{requested: 2, tasks: 0, want: 2},
	}
	for _, tc := range cases {
		if got := normalizeRecalcWorkerCount(tc.requested, tc.tasks); got != tc.want {
			t.Fatalf("normalizeRecalcWorkerCount(%d, %d) = %d, want %d", tc.requested, tc.tasks, got, tc.want)
		}
	}
}

func TestRecalculationService_RecalculateSeason_StandingsModeStaysLive(t *testing.T) {
	t.Parallel()

	backends := newTwoTeamBackends(nil, []ruleset.DisciplineRules{strictRules()})
	standingsSvc := NewStandingsService(backends.seasons, backends.teams, backends.matches, backends.standings)
	svc := NewRecalculationService(backends.seasons, backends.disciplinaryService(), logging.NewNop())
	svc.SetStandingsRefresher(standingsSvc)

	if _, err := svc.RecalculateSeason(context.Background(), testSeasonID); err != nil {
		t.Fatalf("recalculate season: %v", err)
	}

	rows, err := standingsSvc.Compute(context.Background(), testSeasonID, standings.ModeLive)
	if err != nil {
		t.Fatalf("compute standings: %v", err)
	}
	stored, err := backends.standings.ListBySeason(context.Background(), testSeasonID)
	if err != nil {
		t.Fatalf("list stored standings: %v", err)
	}
	if len(stored) != len(rows) {
		t.Fatalf("stored table must mirror the live computation, got %d vs %d rows", len(stored), len(rows))
	}
	for i := range rows {
		if stored[i].TeamID != rows[i].TeamID || stored[i].Points != rows[i].Points {
			t.Fatalf("stored row %d diverged: %+v vs %+v", i, stored[i], rows[i])
		}
	}
}

type failingSubmitPool struct {
	allowed int
	submits int
}

func (p *failingSubmitPool) Submit(task func()) error {
	p.submits++
	if p.submits > p.allowed {
		return errors.New("pool exhausted")
	}
	task()
	return nil
}

func (p *failingSubmitPool) Release() {}

func TestRecalculationService_RecalculateAll_SubmitFailureKeepsPartialRun(t *testing.T) {
	t.Parallel()

	seasonRepo := memory.NewSeasonRepository([]season.Season{
		{ID: "liga-a", Name: "Liga A", IsActive: true},
		{ID: "liga-b", Name: "Liga B", IsActive: true},
	})
	rulesetRepo := memory.NewRulesetRepository([]ruleset.DisciplineRules{
		ruleset.Default("liga-a"),
		ruleset.Default("liga-b"),
	})
	disciplinary := NewDisciplinaryService(
		seasonRepo,
		memory.NewPlayerRepository(nil),
		memory.NewMatchRepository(nil),
		memory.NewEventRepository(nil, nil),
		memory.NewSuspensionRepository(nil),
		rulesetRepo,
		nil,
		logging.NewNop(),
	)
	svc := NewRecalculationService(seasonRepo, disciplinary, logging.NewNop())
	svc.newPool = func(int) (recalcPool, error) {
		return &failingSubmitPool{allowed: 1}, nil
	}

	run, err := svc.RecalculateAll(context.Background(), 2)
	if err == nil {
		t.Fatal("expected a submit error")
	}
	if len(run.Tasks) != 1 || run.Tasks[0].SeasonID != "liga-a" {
		t.Fatalf("expected the already-submitted task in the partial run, got %+v", run.Tasks)
	}
	if run.Tasks[0].Status != recalcStatusSuccess || run.SuccessCount != 1 || run.FailedCount != 0 {
		t.Fatalf("unexpected partial run: %+v", run)
	}
}
