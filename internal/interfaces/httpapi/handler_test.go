package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ligakit/competition-engine/internal/infrastructure/repository/memory"
	"github.com/ligakit/competition-engine/internal/platform/logging"
	"github.com/ligakit/competition-engine/internal/usecase"
)

const testJobToken = "job-token-test"

// newSeededRouter wires the full route stack over the seeded in-memory
// repositories, the same shape the application uses without a database.
func newSeededRouter(t *testing.T) http.Handler {
	t.Helper()

	seedMatches := memory.SeedMatches()
	seasons := memory.NewSeasonRepository(memory.SeedSeasons())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	matches := memory.NewMatchRepository(seedMatches)
	events := memory.NewEventRepository(seedMatches, memory.SeedMatchEvents())
	suspensions := memory.NewSuspensionRepository(nil)
	standingsRepo := memory.NewStandingsRepository()
	rulesets := memory.NewRulesetRepository(memory.SeedRulesets())

	standingsSvc := usecase.NewStandingsService(seasons, teams, matches, standingsRepo)
	disciplinary := usecase.NewDisciplinaryService(seasons, players, matches, events, suspensions, rulesets, nil, logging.NewNop())
	gate := usecase.NewSuspensionGateService(disciplinary)
	recalc := usecase.NewRecalculationService(seasons, disciplinary, logging.NewNop())
	recalc.SetStandingsRefresher(standingsSvc)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(standingsSvc, gate, disciplinary, recalc, logger)

	return NewRouter(handler, logger, nil, testJobToken)
}

func decodeEnvelopeData(t *testing.T, body []byte, out any) {
	t.Helper()

	var envelope struct {
		APIVersion string          `json:"apiVersion"`
		Data       json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Equal(t, "2.0", envelope.APIVersion)
	require.NotEmpty(t, envelope.Data)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func triggerRecalculation(t *testing.T, router http.Handler) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate-discipline", strings.NewReader(`{"season_id":"liga-2026"}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_GetSeasonStandings(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/liga-2026/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var table standingsTableDTO
	decodeEnvelopeData(t, rec.Body.Bytes(), &table)
	require.Equal(t, "liga-2026", table.SeasonID)
	require.Equal(t, "live", table.Mode)
	require.Len(t, table.Rows, 4)

	top := table.Rows[0]
	require.Equal(t, 1, top.Rank)
	require.Equal(t, "t-persija", top.TeamID)
	require.Equal(t, 6, top.Points)
	require.Equal(t, 2, top.Played)
	require.NotEmpty(t, top.ComputedAt)
}

func TestRouter_GetSeasonStandings_InvalidMode(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/liga-2026/standings?mode=playoffs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_ARGUMENT")
}

func TestRouter_RecalculateJob_RequiresToken(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate-discipline", strings.NewReader(`{"season_id":"liga-2026"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RecalculateJob_RebuildsSeason(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate-discipline", strings.NewReader(`{"season_id":"liga-2026"}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result usecase.RebuildResult
	decodeEnvelopeData(t, rec.Body.Bytes(), &result)
	require.Equal(t, "liga-2026", result.SeasonID)
	// The seed ledger carries one red card and no player over the yellow
	// threshold.
	require.Equal(t, 1, result.Created)
	require.Empty(t, result.Errors)
}

func TestRouter_CheckMatchLineup_ReportsSuspendedPlayer(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	triggerRecalculation(t, router)

	body := `{"player_ids":["p-prb-03","p-prb-07","p-prb-09"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/seasons/liga-2026/matches/m-r3-01/suspension-checks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp suspensionCheckResponse
	decodeEnvelopeData(t, rec.Body.Bytes(), &resp)
	require.False(t, resp.Eligible)
	require.Len(t, resp.Violations, 1)
	require.Equal(t, "p-prb-03", resp.Violations[0].PlayerID)
	require.NotEmpty(t, resp.Violations[0].Message)
}

func TestRouter_CheckMatchLineup_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	body := `{"player_ids":["p-prb-03"],"lineup_name":"starting XI"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/seasons/liga-2026/matches/m-r3-01/suspension-checks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_GetPlayerSuspension(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	triggerRecalculation(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/liga-2026/players/p-prb-03/suspension?match_id=m-r3-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var verdict playerSuspensionDTO
	decodeEnvelopeData(t, rec.Body.Bytes(), &verdict)
	require.Equal(t, "p-prb-03", verdict.PlayerID)
	require.True(t, verdict.Suspended)
	require.Len(t, verdict.Records, 1)
	require.Equal(t, "m-r2-01", verdict.Records[0].TriggerMatchID)

	// Missing match_id is a caller mistake, not a 404.
	req = httptest.NewRequest(http.MethodGet, "/v1/seasons/liga-2026/players/p-prb-03/suspension", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}
