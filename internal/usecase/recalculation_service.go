package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ligakit/competition-engine/internal/domain/season"
	"github.com/ligakit/competition-engine/internal/domain/standings"
	"github.com/ligakit/competition-engine/internal/platform/logging"
	"github.com/ligakit/competition-engine/internal/platform/resilience"
	"github.com/panjf2000/ants/v2"
)

const (
	recalcStatusSuccess = "success"
	recalcStatusFailed  = "failed"

	defaultRecalcWorkers = 4
	maxRecalcWorkers     = 16
)

// RecalcTaskResult is one season's row in a fan-out recalculation run.
type RecalcTaskResult struct {
	SeasonID   string         `json:"season_id"`
	Status     string         `json:"status"`
	Archived   int            `json:"archived"`
	Created    int            `json:"created"`
	Errors     []RebuildIssue `json:"errors,omitempty"`
	DurationMs int64          `json:"duration_ms"`
	Message    string         `json:"message,omitempty"`
}

// RecalcRunResult summarizes a multi-season recalculation run.
type RecalcRunResult struct {
	SeasonCount  int                `json:"season_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	WorkerCount  int                `json:"worker_count"`
	Tasks        []RecalcTaskResult `json:"tasks"`
}

// RecalculationService is the only component allowed to trigger a full
// disciplinary rebuild. It is idempotent and safe to call while events are
// still being recorded for other matches: the rebuild reads a season-wide
// snapshot and replaces atomically, so two concurrent triggers converge on
// the same deterministic result (last commit simply re-archives). In-process
// duplicates are additionally collapsed by a per-season singleflight.
type RecalculationService struct {
	seasonRepo   season.Repository
	disciplinary *DisciplinaryService
	standingsSvc *StandingsService
	flight       resilience.SingleFlight
	breaker      *resilience.CircuitBreaker
	newPool      func(size int) (recalcPool, error)
	logger       *logging.Logger
}

// recalcPool is the slice of the worker pool RecalculateAll uses.
type recalcPool interface {
	Submit(task func()) error
	Release()
}

func NewRecalculationService(
	seasonRepo season.Repository,
	disciplinary *DisciplinaryService,
	logger *logging.Logger,
) *RecalculationService {
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.DefaultCircuitBreakerConfig()

	return &RecalculationService{
		seasonRepo:   seasonRepo,
		disciplinary: disciplinary,
		breaker:      resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		newPool: func(size int) (recalcPool, error) {
			return ants.NewPool(size)
		},
		logger: logger,
	}
}

// SetStandingsRefresher also refreshes the materialized standings table after
// each rebuild, since the corrections that warrant a disciplinary rebuild
// usually touched match scores too.
func (s *RecalculationService) SetStandingsRefresher(svc *StandingsService) {
	s.standingsSvc = svc
}

func (s *RecalculationService) RecalculateSeason(ctx context.Context, seasonID string) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.RecalculateSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return RebuildResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	if err := s.breaker.Allow(); err != nil {
		return RebuildResult{}, fmt.Errorf("%w: recalculation temporarily suspended: %v", ErrDependencyUnavailable, err)
	}

	value, err, shared := s.flight.Do("recalc:"+seasonID, func() (any, error) {
		result, err := s.disciplinary.RebuildSeason(ctx, seasonID)
		if err != nil {
			// Caller mistakes do not indicate an unhealthy dependency.
			if !errorsIsAny(err, ErrInvalidInput, ErrNotFound) {
				s.breaker.RecordFailure()
			}
			return nil, err
		}
		s.breaker.RecordSuccess()

		if s.standingsSvc != nil {
			s.standingsSvc.InvalidateFinalCache(ctx, seasonID)
			if _, err := s.standingsSvc.Persist(ctx, seasonID, standings.ModeLive); err != nil {
				s.logger.WarnContext(ctx, "standings refresh after rebuild failed",
					"season_id", seasonID,
					"error", err,
				)
			}
		}

		return result, nil
	})
	if err != nil {
		return RebuildResult{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "joined in-flight recalculation", "season_id", seasonID)
	}

	result, ok := value.(RebuildResult)
	if !ok {
		return RebuildResult{}, fmt.Errorf("unexpected recalculation result type %T", value)
	}
	return result, nil
}

// RecalculateAll rebuilds every active season over a bounded worker pool,
// collecting one task row per season. A failed season never aborts the run.
func (s *RecalculationService) RecalculateAll(ctx context.Context, maxWorkers int) (RecalcRunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.RecalculateAll")
	defer span.End()

	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return RecalcRunResult{}, fmt.Errorf("list seasons: %w", err)
	}

	targets := make([]string, 0, len(seasons))
	for _, item := range seasons {
		if item.IsActive {
			targets = append(targets, item.ID)
		}
	}

	workerCount := normalizeRecalcWorkerCount(maxWorkers, len(targets))
	run := RecalcRunResult{
		SeasonCount: len(targets),
		WorkerCount: workerCount,
		Tasks:       make([]RecalcTaskResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return run, nil
	}

	results := make(chan RecalcTaskResult, len(targets))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := s.newPool(workerCount)
	if err != nil {
		return RecalcRunResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	// A failed submit stops the fan-out but never abandons in-flight tasks:
	// the run drains what was submitted and reports the partial result
	// alongside the error.
	var submitErr error
	var workers sync.WaitGroup
	for _, seasonID := range targets {
		seasonID := seasonID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecalcTaskResult{SeasonID: seasonID}

			result, err := s.RecalculateSeason(ctx, seasonID)
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = recalcStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = recalcStatusSuccess
				row.Archived = result.Archived
				row.Created = result.Created
				row.Errors = result.Errors
				successCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("submit recalculation task for season %s: %w", seasonID, err)
			break
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		run.Tasks = append(run.Tasks, row)
	}
	sort.SliceStable(run.Tasks, func(i, j int) bool {
		return run.Tasks[i].SeasonID < run.Tasks[j].SeasonID
	})

	run.SuccessCount = int(successCount.Load())
	run.FailedCount = int(failedCount.Load())
	return run, submitErr
}

func normalizeRecalcWorkerCount(requested, taskCount int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultRecalcWorkers
	}
	if workers > maxRecalcWorkers {
		workers = maxRecalcWorkers
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
