package app

import (
	"log/slog"

	"github.com/ligakit/competition-engine/internal/config"
	"github.com/ligakit/competition-engine/internal/platform/cache"
	idgen "github.com/ligakit/competition-engine/internal/platform/id"
	"github.com/ligakit/competition-engine/internal/platform/logging"
	"github.com/ligakit/competition-engine/internal/usecase"
)

func usecaseStandings(cfg config.Config, repos repositories) *usecase.StandingsService {
	svc := usecase.NewStandingsService(repos.seasons, repos.teams, repos.matches, repos.standings)
	if cfg.CacheEnabled {
		svc.SetFinalCache(cache.NewStore(cfg.CacheTTL))
	}
	return svc
}

func usecaseDisciplinary(repos repositories, logger *logging.Logger) *usecase.DisciplinaryService {
	svc := usecase.NewDisciplinaryService(
		repos.seasons,
		repos.players,
		repos.matches,
		repos.events,
		repos.suspensions,
		repos.rulesets,
		idgen.NewRandomGenerator(),
		logger,
	)
	svc.SetSnapshotReader(repos.snapshots)
	return svc
}

func usecaseGate(disciplinary *usecase.DisciplinaryService) *usecase.SuspensionGateService {
	return usecase.NewSuspensionGateService(disciplinary)
}

func usecaseRecalc(
	repos repositories,
	disciplinary *usecase.DisciplinaryService,
	standingsSvc *usecase.StandingsService,
	logger *logging.Logger,
) *usecase.RecalculationService {
	svc := usecase.NewRecalculationService(repos.seasons, disciplinary, logger)
	svc.SetStandingsRefresher(standingsSvc)
	return svc
}

// SlogLevel maps the structured logging level onto the slog scale used by
// the operational helpers (pprof, pyroscope, request logging).
func SlogLevel(level logging.Level) slog.Level {
	switch level {
	case logging.LevelDebug:
		return slog.LevelDebug
	case logging.LevelWarn:
		return slog.LevelWarn
	case logging.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
