package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-livescore/internal/infrastructure/repository/memory"
)

const testRound = 7

// Catalogue: ids 1..15, 4-4-2 starters then bench GK, DEF, MID, FWD. Team 1 plays team 2.
func testCatalogue() []player.Player {
	positions := []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender, player.PositionDefender, player.PositionDefender, player.PositionDefender,
		player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder,
		player.PositionForward, player.PositionForward,
		player.PositionGoalkeeper, player.PositionDefender, player.PositionMidfielder, player.PositionForward,
	}
	out := make([]player.Player, 0, len(positions))
	for i, pos := range positions {
		out = append(out, player.Player{ID: int64(i + 1), TeamID: 1, Name: "p", Position: pos})
	}
	return out
}

// testSquad: player id equals slot, captain slot 10 (x2), vice slot 9, bench multiplier 0.
func testSquad(participantID int64) fantasy.Squad {
	picks := make([]fantasy.Pick, 0, fantasy.SquadSize)
	for slot := 1; slot <= fantasy.SquadSize; slot++ {
		multiplier := 1
		if slot > fantasy.StartingSize {
			multiplier = 0
		}
		picks = append(picks, fantasy.Pick{Slot: slot, PlayerID: int64(slot), Multiplier: multiplier})
	}
	picks[9].Multiplier = 2
	picks[9].IsCaptain = true
	picks[8].IsViceCaptain = true
	return fantasy.Squad{Round: testRound, ParticipantID: participantID, ActiveChip: fantasy.ChipNone, Picks: picks}
}

// Everyone plays 90 minutes for 2 points unless overridden.
func testPerformances(overrides ...playerstats.Performance) []playerstats.Performance {
	byID := make(map[int64]playerstats.Performance, fantasy.SquadSize)
	for id := int64(1); id <= fantasy.SquadSize; id++ {
		byID[id] = playerstats.Performance{Round: testRound, PlayerID: id, Points: 2, Minutes: 90}
	}
	for _, o := range overrides {
		o.Round = testRound
		byID[o.PlayerID] = o
	}
	out := make([]playerstats.Performance, 0, len(byID))
	for _, item := range byID {
		out = append(out, item)
	}
	return out
}

type testStores struct {
	fixtures     *memory.FixtureRepository
	players      *memory.PlayerRepository
	stats        *memory.PlayerStatsRepository
	squads       *memory.SquadRepository
	scores       *memory.LiveScoreRepository
	participants *memory.ParticipantRepository
}

func newTestStores(finished bool, perfs []playerstats.Performance, squads ...fantasy.Squad) testStores {
	ctx := context.Background()
	st := testStores{
		fixtures:     memory.NewFixtureRepository(fixture.Fixture{ID: 100, Round: testRound, HomeTeamID: 1, AwayTeamID: 2, Finished: finished}),
		players:      memory.NewPlayerRepository(testCatalogue()...),
		stats:        memory.NewPlayerStatsRepository(),
		squads:       memory.NewSquadRepository(),
		scores:       memory.NewLiveScoreRepository(),
		participants: memory.NewParticipantRepository(),
	}
	_ = st.stats.UpsertMany(ctx, testRound, perfs)
	for _, squad := range squads {
		_ = st.squads.Upsert(ctx, squad)
	}
	return st
}

func (st testStores) service(ingestion *IngestionService) *LiveScoreService {
	return NewLiveScoreService(st.fixtures, st.players, st.stats, st.squads, st.scores, st.participants, ingestion, LiveScoreConfig{Workers: 2}, nil, nil)
}
