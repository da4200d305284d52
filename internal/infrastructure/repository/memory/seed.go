package memory

import (
	"time"

	"github.com/ligakit/competition-engine/internal/domain/match"
	"github.com/ligakit/competition-engine/internal/domain/matchevent"
	"github.com/ligakit/competition-engine/internal/domain/player"
	"github.com/ligakit/competition-engine/internal/domain/ruleset"
	"github.com/ligakit/competition-engine/internal/domain/season"
	"github.com/ligakit/competition-engine/internal/domain/team"
)

const SeasonIDLiga2026 = "liga-2026"

func SeedSeasons() []season.Season {
	startsAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	endsAt := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)
	return []season.Season{
		{
			ID:       SeasonIDLiga2026,
			Name:     "Liga 2026",
			IsActive: true,
			StartsAt: &startsAt,
			EndsAt:   &endsAt,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "t-persija", SeasonID: SeasonIDLiga2026, Name: "Persija Jakarta", Short: "PSJ"},
		{ID: "t-persib", SeasonID: SeasonIDLiga2026, Name: "Persib Bandung", Short: "PSB"},
		{ID: "t-persebaya", SeasonID: SeasonIDLiga2026, Name: "Persebaya Surabaya", Short: "PRB"},
		{ID: "t-baliutd", SeasonID: SeasonIDLiga2026, Name: "Bali United", Short: "BU"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p-psj-01", SeasonID: SeasonIDLiga2026, TeamID: "t-persija", Name: "Andritany Ardhiyasa", Number: 1},
		{ID: "p-psj-04", SeasonID: SeasonIDLiga2026, TeamID: "t-persija", Name: "Hansamu Yama", Number: 4},
		{ID: "p-psj-08", SeasonID: SeasonIDLiga2026, TeamID: "t-persija", Name: "Maciej Gajos", Number: 8},
		{ID: "p-psj-09", SeasonID: SeasonIDLiga2026, TeamID: "t-persija", Name: "Gustavo Almeida", Number: 9},
		{ID: "p-psb-01", SeasonID: SeasonIDLiga2026, TeamID: "t-persib", Name: "Teja Paku Alam", Number: 1},
		{ID: "p-psb-05", SeasonID: SeasonIDLiga2026, TeamID: "t-persib", Name: "Nick Kuipers", Number: 5},
		{ID: "p-psb-10", SeasonID: SeasonIDLiga2026, TeamID: "t-persib", Name: "Marc Klok", Number: 10},
		{ID: "p-psb-11", SeasonID: SeasonIDLiga2026, TeamID: "t-persib", Name: "David da Silva", Number: 11},
		{ID: "p-prb-03", SeasonID: SeasonIDLiga2026, TeamID: "t-persebaya", Name: "Dusan Stevanovic", Number: 3},
		{ID: "p-prb-07", SeasonID: SeasonIDLiga2026, TeamID: "t-persebaya", Name: "Bruno Moreira", Number: 7},
		{ID: "p-prb-09", SeasonID: SeasonIDLiga2026, TeamID: "t-persebaya", Name: "Paulo Henrique", Number: 9},
		{ID: "p-bu-02", SeasonID: SeasonIDLiga2026, TeamID: "t-baliutd", Name: "Ricky Fajrin", Number: 2},
		{ID: "p-bu-06", SeasonID: SeasonIDLiga2026, TeamID: "t-baliutd", Name: "Eber Bessa", Number: 6},
		{ID: "p-bu-10", SeasonID: SeasonIDLiga2026, TeamID: "t-baliutd", Name: "Mitsuru Maruoka", Number: 10},
	}
}

func SeedMatches() []match.Match {
	completed := func(id string, round int, home, away string, hs, as int, day int) match.Match {
		kickoff := time.Date(2026, 2, day, 19, 0, 0, 0, time.UTC)
		finished := kickoff.Add(2 * time.Hour)
		return match.Match{
			ID:         id,
			SeasonID:   SeasonIDLiga2026,
			Round:      round,
			HomeTeamID: home,
			AwayTeamID: away,
			HomeScore:  &hs,
			AwayScore:  &as,
			Status:     match.StatusCompleted,
			KickoffAt:  kickoff,
			FinishedAt: &finished,
		}
	}

	return []match.Match{
		completed("m-r1-01", 1, "t-persija", "t-persib", 2, 1, 7),
		completed("m-r1-02", 1, "t-persebaya", "t-baliutd", 0, 0, 8),
		completed("m-r2-01", 2, "t-persib", "t-persebaya", 3, 1, 14),
		completed("m-r2-02", 2, "t-baliutd", "t-persija", 1, 2, 15),
		{
			ID:         "m-r3-01",
			SeasonID:   SeasonIDLiga2026,
			Round:      3,
			HomeTeamID: "t-persija",
			AwayTeamID: "t-persebaya",
			Status:     match.StatusScheduled,
			KickoffAt:  time.Date(2026, 2, 21, 19, 0, 0, 0, time.UTC),
		},
		{
			ID:         "m-r3-02",
			SeasonID:   SeasonIDLiga2026,
			Round:      3,
			HomeTeamID: "t-persib",
			AwayTeamID: "t-baliutd",
			Status:     match.StatusScheduled,
			KickoffAt:  time.Date(2026, 2, 22, 19, 0, 0, 0, time.UTC),
		},
	}
}

func SeedMatchEvents() []matchevent.Event {
	return []matchevent.Event{
		{ID: "ev-0001", MatchID: "m-r1-01", TeamID: "t-persija", Type: matchevent.TypeGoal, PlayerID: "p-psj-09", Minute: 12, Sequence: 1},
		{ID: "ev-0002", MatchID: "m-r1-01", TeamID: "t-persib", Type: matchevent.TypeCard, PlayerID: "p-psb-05", Minute: 23, CardType: matchevent.CardYellow, Sequence: 2},
		{ID: "ev-0003", MatchID: "m-r1-01", TeamID: "t-persib", Type: matchevent.TypeGoal, PlayerID: "p-psb-11", Minute: 41, Sequence: 3},
		{ID: "ev-0004", MatchID: "m-r1-01", TeamID: "t-persija", Type: matchevent.TypeGoal, PlayerID: "p-psj-08", Minute: 78, Sequence: 4},
		{ID: "ev-0005", MatchID: "m-r1-02", TeamID: "t-baliutd", Type: matchevent.TypeCard, PlayerID: "p-bu-06", Minute: 55, CardType: matchevent.CardYellow, Sequence: 1},
		{ID: "ev-0006", MatchID: "m-r2-01", TeamID: "t-persib", Type: matchevent.TypeGoal, PlayerID: "p-psb-11", Minute: 9, Sequence: 1},
		{ID: "ev-0007", MatchID: "m-r2-01", TeamID: "t-persebaya", Type: matchevent.TypeCard, PlayerID: "p-prb-03", Minute: 31, CardType: matchevent.CardRed, Sequence: 2},
		{ID: "ev-0008", MatchID: "m-r2-01", TeamID: "t-persib", Type: matchevent.TypeGoal, PlayerID: "p-psb-10", Minute: 58, Sequence: 3},
		{ID: "ev-0009", MatchID: "m-r2-01", TeamID: "t-persib", Type: matchevent.TypeGoal, PlayerID: "p-psb-11", Minute: 72, Sequence: 4},
		{ID: "ev-0010", MatchID: "m-r2-01", TeamID: "t-persebaya", Type: matchevent.TypeGoal, PlayerID: "p-prb-09", Minute: 88, Sequence: 5},
		{ID: "ev-0011", MatchID: "m-r2-02", TeamID: "t-baliutd", Type: matchevent.TypeGoal, PlayerID: "p-bu-10", Minute: 17, Sequence: 1},
		{ID: "ev-0012", MatchID: "m-r2-02", TeamID: "t-baliutd", Type: matchevent.TypeCard, PlayerID: "p-bu-02", Minute: 40, CardType: matchevent.CardYellow, Sequence: 2},
		{ID: "ev-0013", MatchID: "m-r2-02", TeamID: "t-persija", Type: matchevent.TypeGoal, PlayerID: "p-psj-09", Minute: 52, Sequence: 3},
		{ID: "ev-0014", MatchID: "m-r2-02", TeamID: "t-persija", Type: matchevent.TypeGoal, PlayerID: "p-psj-09", Minute: 81, Sequence: 4},
	}
}

func SeedRulesets() []ruleset.DisciplineRules {
	return []ruleset.DisciplineRules{ruleset.Default(SeasonIDLiga2026)}
}
