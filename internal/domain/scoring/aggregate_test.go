package scoring

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squadFixture: player id equals slot, captain on slot 10 (x2), bench multiplier 0.
func squadFixture(chip fantasy.Chip, transferCost int) fantasy.Squad {
	picks := make([]fantasy.Pick, 0, fantasy.SquadSize)
	for slot := 1; slot <= fantasy.SquadSize; slot++ {
		pick := fantasy.Pick{Slot: slot, PlayerID: int64(slot), Multiplier: 1}
		if slot > fantasy.StartingSize {
			pick.Multiplier = 0
		}
		picks = append(picks, pick)
	}
	picks[9].Multiplier = 2
	picks[9].IsCaptain = true
	picks[8].IsViceCaptain = true
	return fantasy.Squad{Round: 7, ParticipantID: 42, ActiveChip: chip, TransferCost: transferCost, Picks: picks}
}

func flatPerformances(points int) playerstats.Performances {
	items := make([]playerstats.Performance, 0, fantasy.SquadSize)
	for id := int64(1); id <= fantasy.SquadSize; id++ {
		items = append(items, playerstats.Performance{Round: 7, PlayerID: id, Points: points, Minutes: 90})
	}
	return playerstats.NewPerformances(items)
}

func TestAggregate_CaptainAndTransferCost(t *testing.T) {
	t.Parallel()

	perfs := flatPerformances(2)
	perfs[10] = playerstats.Performance{Round: 7, PlayerID: 10, Points: 10, Minutes: 90}

	got := Aggregate(AggregateInput{Squad: squadFixture(fantasy.ChipNone, 4), Performances: perfs})

	// ten starters at 2, captain 10x2, minus 4
	assert.Equal(t, 10*2+20-4, got.EventTotal)
	require.Len(t, got.Picks, fantasy.SquadSize)
	assert.Equal(t, 20, got.Picks[9].CountedPoints)
	assert.False(t, got.Picks[11].Counted)
	assert.Equal(t, "none", got.ActiveChip)
}

func TestAggregate_MissingPointsCountAsZero(t *testing.T) {
	t.Parallel()

	got := Aggregate(AggregateInput{Squad: squadFixture(fantasy.ChipNone, 0), Performances: playerstats.NewPerformances(nil)})
	assert.Equal(t, 0, got.EventTotal)

	negative := Aggregate(AggregateInput{Squad: squadFixture(fantasy.ChipNone, 8)})
	assert.Equal(t, -8, negative.EventTotal)
}

func TestAggregate_BenchBoostCountsWholeSquad(t *testing.T) {
	t.Parallel()

	squad := squadFixture(fantasy.ChipBenchBoost, 0)
	for i := fantasy.StartingSize; i < fantasy.SquadSize; i++ {
		squad.Picks[i].Multiplier = 1
	}

	got := Aggregate(AggregateInput{Squad: squad, Performances: flatPerformances(1)})
	assert.Equal(t, 14+2, got.EventTotal)
	assert.Empty(t, got.SubstitutedIn())
}

func TestAggregate_PromotedBenchPlayerKeepsItsMultiplier(t *testing.T) {
	t.Parallel()

	squad := squadFixture(fantasy.ChipNone, 0)

	positions := map[int]player.Position{1: player.PositionGoalkeeper, 12: player.PositionGoalkeeper}
	for slot := 2; slot <= 5; slot++ {
		positions[slot] = player.PositionDefender
	}
	for slot := 6; slot <= 9; slot++ {
		positions[slot] = player.PositionMidfielder
	}
	positions[10], positions[11] = player.PositionForward, player.PositionForward
	positions[13], positions[14], positions[15] = player.PositionDefender, player.PositionMidfielder, player.PositionForward

	catalogue := make(map[int64]player.Player, len(positions))
	for slot, pos := range positions {
		catalogue[int64(slot)] = player.Player{ID: int64(slot), TeamID: 1, Position: pos}
	}

	perfs := flatPerformances(3)
	perfs[1] = playerstats.Performance{Round: 7, PlayerID: 1, Points: 0, Minutes: 0}
	teams := fixture.BuildTeamStates([]fixture.Fixture{{ID: 1, Round: 7, HomeTeamID: 1, AwayTeamID: 2, Finished: true}})

	subs := fantasy.ResolveAutoSubs(squad, catalogue, perfs, teams)
	require.Equal(t, []int64{12}, subs.IDs())

	got := Aggregate(AggregateInput{Squad: squad, Performances: perfs, Substitutions: subs})
	// nine outfield starters at 3, captain 3x2, keeper 0, promoted keeper 3x0
	assert.Equal(t, 9*3+6, got.EventTotal)
	require.Len(t, got.SubstitutedIn(), 1)
	promoted := got.SubstitutedIn()[0]
	assert.Equal(t, int64(12), promoted.PlayerID)
	assert.Equal(t, 0, promoted.Multiplier)
	assert.Equal(t, 0, promoted.CountedPoints)
	assert.True(t, promoted.Counted)
}

func TestAggregate_PromotedBenchPointsTimesMultiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		benchMultiplier  int
		wantEventTotal   int
		wantBenchCounted int
	}{
		{name: "bench multiplier zero", benchMultiplier: 0, wantEventTotal: 10 * 2, wantBenchCounted: 0},
		{name: "bench multiplier one", benchMultiplier: 1, wantEventTotal: 10*2 + 7, wantBenchCounted: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			squad := squadFixture(fantasy.ChipNone, 0)
			squad.Picks[9].Multiplier = 1
			squad.Picks[11].Multiplier = tt.benchMultiplier

			items := make([]playerstats.Performance, 0, fantasy.SquadSize)
			for id := int64(1); id <= fantasy.SquadSize; id++ {
				items = append(items, playerstats.Performance{Round: 7, PlayerID: id, Points: 2, Minutes: 90})
			}
			items[0] = playerstats.Performance{Round: 7, PlayerID: 1, Points: 0, Minutes: 0}
			items[11] = playerstats.Performance{Round: 7, PlayerID: 12, Points: 7, Minutes: 90}

			got := Aggregate(AggregateInput{
				Squad:         squad,
				Performances:  playerstats.NewPerformances(items),
				Substitutions: fantasy.NewSubstitutionSet([]fantasy.Substitution{{OutSlot: 1, OutPlayerID: 1, InSlot: 12, InPlayerID: 12}}),
			})
			assert.Equal(t, tt.wantEventTotal, got.EventTotal)
			assert.Equal(t, tt.wantBenchCounted, got.Picks[11].CountedPoints)
		})
	}
}

func TestAggregate_BenchBoostIgnoresSubstitutionSet(t *testing.T) {
	t.Parallel()

	squad := squadFixture(fantasy.ChipBenchBoost, 0)
	for i := fantasy.StartingSize; i < fantasy.SquadSize; i++ {
		squad.Picks[i].Multiplier = 1
	}
	perfs := flatPerformances(2)

	without := Aggregate(AggregateInput{Squad: squad, Performances: perfs})
	with := Aggregate(AggregateInput{Squad: squad, Performances: perfs, Substitutions: fantasy.NewSubstitutionSet([]fantasy.Substitution{{OutSlot: 1, OutPlayerID: 1, InSlot: 12, InPlayerID: 12}})})
	assert.Equal(t, without.EventTotal, with.EventTotal)
}

func TestAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	in := AggregateInput{Squad: squadFixture(fantasy.ChipTripleCaptain, 4), Performances: flatPerformances(5)}
	first := Aggregate(in)
	second := Aggregate(in)
	assert.Equal(t, first, second)

	at := time.Date(2026, 1, 2, 15, 0, 0, 0, time.FixedZone("x", 3600))
	score := first.LiveScore(at)
	assert.Equal(t, LiveScore{Round: 7, ParticipantID: 42, EventTotal: first.EventTotal, CalculatedAt: at.UTC()}, score)
}
