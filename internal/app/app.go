package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/ligakit/competition-engine/internal/config"
	"github.com/ligakit/competition-engine/internal/domain/match"
	"github.com/ligakit/competition-engine/internal/domain/matchevent"
	"github.com/ligakit/competition-engine/internal/domain/player"
	"github.com/ligakit/competition-engine/internal/domain/ruleset"
	"github.com/ligakit/competition-engine/internal/domain/season"
	"github.com/ligakit/competition-engine/internal/domain/standings"
	"github.com/ligakit/competition-engine/internal/domain/suspension"
	"github.com/ligakit/competition-engine/internal/domain/team"
	"github.com/ligakit/competition-engine/internal/infrastructure/repository/memory"
	"github.com/ligakit/competition-engine/internal/infrastructure/repository/postgres"
	"github.com/ligakit/competition-engine/internal/interfaces/httpapi"
	"github.com/ligakit/competition-engine/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"
)

type repositories struct {
	seasons     season.Repository
	teams       team.Repository
	players     player.Repository
	matches     match.Repository
	events      matchevent.Repository
	standings   standings.Repository
	suspensions suspension.Repository
	rulesets    ruleset.Repository
	snapshots   suspension.SnapshotReader
}

// NewHTTPServer wires the full engine: repositories (postgres when DB_URL is
// set, seeded in-memory otherwise), services, and the HTTP router.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	standingsSvc := usecaseStandings(cfg, repos)
	disciplinarySvc := usecaseDisciplinary(repos, logger)
	gateSvc := usecaseGate(disciplinarySvc)
	recalcSvc := usecaseRecalc(repos, disciplinarySvc, standingsSvc, logger)

	httpLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: SlogLevel(cfg.LogLevel),
	}))

	handler := httpapi.NewHandler(standingsSvc, gateSvc, disciplinarySvc, recalcSvc, httpLogger)
	router := httpapi.NewRouter(handler, httpLogger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("DB_URL not set, using seeded in-memory repositories")
		matches := memory.SeedMatches()
		eventRepo := memory.NewEventRepository(matches, memory.SeedMatchEvents())
		playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
		matchRepo := memory.NewMatchRepository(matches)
		suspensionRepo := memory.NewSuspensionRepository(nil)
		return repositories{
			seasons:     memory.NewSeasonRepository(memory.SeedSeasons()),
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			players:     playerRepo,
			matches:     matchRepo,
			events:      eventRepo,
			standings:   memory.NewStandingsRepository(),
			suspensions: suspensionRepo,
			rulesets:    memory.NewRulesetRepository(memory.SeedRulesets()),
			snapshots:   memory.NewDisciplineSnapshotReader(eventRepo, playerRepo, matchRepo, suspensionRepo),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}

	return repositories{
		seasons:     postgres.NewSeasonRepository(db),
		teams:       postgres.NewTeamRepository(db),
		players:     postgres.NewPlayerRepository(db),
		matches:     postgres.NewMatchRepository(db),
		events:      postgres.NewMatchEventRepository(db),
		standings:   postgres.NewStandingsRepository(db),
		suspensions: postgres.NewSuspensionRepository(db),
		rulesets:    postgres.NewRulesetRepository(db),
		snapshots:   postgres.NewDisciplineSnapshotReader(db),
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}
