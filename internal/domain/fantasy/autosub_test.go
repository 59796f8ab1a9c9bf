package fantasy

import (
	"testing"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	finishedTeam   int64 = 1
	unfinishedTeam int64 = 2
)

type autoSubFixture struct {
	squad        Squad
	players      map[int64]player.Player
	performances playerstats.Performances
	teams        fixture.TeamStates
}

// newAutoSubFixture builds a 4-4-2 squad whose bench order is GK, DEF, MID, FWD.
// Player id equals slot; every player plays 90 minutes for a finished team.
func newAutoSubFixture() *autoSubFixture {
	positions := []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender, player.PositionDefender, player.PositionDefender, player.PositionDefender,
		player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder,
		player.PositionForward, player.PositionForward,
		player.PositionGoalkeeper, player.PositionDefender, player.PositionMidfielder, player.PositionForward,
	}

	f := &autoSubFixture{
		players:      make(map[int64]player.Player, SquadSize),
		performances: make(playerstats.Performances, SquadSize),
		teams: fixture.BuildTeamStates([]fixture.Fixture{
			{ID: 1, HomeTeamID: finishedTeam, AwayTeamID: 3, Finished: true},
			{ID: 2, HomeTeamID: unfinishedTeam, AwayTeamID: 4, Finished: false},
		}),
	}
	for idx, pos := range positions {
		slot := idx + 1
		id := int64(slot)
		f.squad.Picks = append(f.squad.Picks, Pick{Slot: slot, PlayerID: id, Multiplier: 1})
		f.players[id] = player.Player{ID: id, TeamID: finishedTeam, Position: pos}
		f.performances[id] = playerstats.Performance{PlayerID: id, Points: 2, Minutes: 90}
	}
	return f
}

func (f *autoSubFixture) benched(playerID int64) {
	perf := f.performances[playerID]
	perf.Minutes = 0
	perf.Points = 0
	f.performances[playerID] = perf
}

func (f *autoSubFixture) setPosition(playerID int64, pos player.Position) {
	info := f.players[playerID]
	info.Position = pos
	f.players[playerID] = info
}

func (f *autoSubFixture) resolve() SubstitutionSet {
	return ResolveAutoSubs(f.squad, f.players, f.performances, f.teams)
}

func TestResolveAutoSubs_NoSubstitutionsWhenEveryonePlayed(t *testing.T) {
	f := newAutoSubFixture()

	set := f.resolve()

	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.IDs())
}

func TestResolveAutoSubs_FirstEligibleBenchPlayerWins(t *testing.T) {
	f := newAutoSubFixture()
	f.benched(1)
	f.benched(13)

	set := f.resolve()

	require.Equal(t, []int64{12}, set.IDs())
	assert.Equal(t, []Substitution{{OutSlot: 1, OutPlayerID: 1, InSlot: 12, InPlayerID: 12}}, set.Substitutions())
	assert.False(t, set.Contains(13))
}

func TestResolveAutoSubs_SkipsCandidateThatBreaksFormation(t *testing.T) {
	f := newAutoSubFixture()
	// Bench order DEF then GK: promoting the defender for the keeper leaves no goalkeeper.
	f.setPosition(12, player.PositionDefender)
	f.setPosition(13, player.PositionGoalkeeper)
	f.benched(1)

	set := f.resolve()

	require.Equal(t, []int64{13}, set.IDs())
	assert.False(t, set.Contains(12))
}

func TestResolveAutoSubs_OutfieldStarterSkipsBenchGoalkeeper(t *testing.T) {
	f := newAutoSubFixture()
	f.benched(2)

	set := f.resolve()

	require.Equal(t, []int64{13}, set.IDs())
}

func TestResolveAutoSubs_MinimumDefendersEnforced(t *testing.T) {
	f := newAutoSubFixture()
	// Turn the 4-4-2 into 3-5-2 and order the bench GK, MID, DEF, FWD.
	f.setPosition(5, player.PositionMidfielder)
	f.setPosition(13, player.PositionMidfielder)
	f.setPosition(14, player.PositionDefender)
	f.benched(2)

	set := f.resolve()

	require.Equal(t, []int64{14}, set.IDs())
}

func TestResolveAutoSubs_UnfinishedTeamIsNeverSubstituted(t *testing.T) {
	f := newAutoSubFixture()
	info := f.players[3]
	info.TeamID = unfinishedTeam
	f.players[3] = info
	f.benched(3)

	set := f.resolve()

	assert.Equal(t, 0, set.Len())
}

func TestResolveAutoSubs_TeamWithoutFixtureIsNotFinished(t *testing.T) {
	f := newAutoSubFixture()
	info := f.players[4]
	info.TeamID = 77
	f.players[4] = info
	f.benched(4)

	set := f.resolve()

	assert.Equal(t, 0, set.Len())
}

func TestResolveAutoSubs_MissingStarterDataCountsAsZeroMinutes(t *testing.T) {
	f := newAutoSubFixture()
	delete(f.performances, 6)

	set := f.resolve()

	// The bench defender would make 5-3-2, which is not an accepted shape.
	require.Equal(t, []int64{14}, set.IDs())
}

func TestResolveAutoSubs_BenchWithoutDataIsIneligible(t *testing.T) {
	f := newAutoSubFixture()
	f.benched(2)
	delete(f.performances, 13)

	set := f.resolve()

	require.Equal(t, []int64{14}, set.IDs())
}

func TestResolveAutoSubs_UnknownBenchRoleIsSkipped(t *testing.T) {
	f := newAutoSubFixture()
	f.benched(2)
	delete(f.players, 13)

	set := f.resolve()

	require.Equal(t, []int64{14}, set.IDs())
}

func TestResolveAutoSubs_BenchPlayerRelievesOnlyOneStarter(t *testing.T) {
	f := newAutoSubFixture()
	f.benched(2)
	f.benched(3)
	f.benched(14)
	f.benched(15)

	set := f.resolve()

	require.Equal(t, []int64{13}, set.IDs())
	subs := set.Substitutions()
	require.Len(t, subs, 1)
	assert.Equal(t, 2, subs[0].OutSlot)
}

func TestResolveAutoSubs_StartersProcessedInSlotOrder(t *testing.T) {
	f := newAutoSubFixture()
	f.benched(6)
	f.benched(10)
	// Shuffle the input picks; ordering must come from slots.
	f.squad.Picks[0], f.squad.Picks[14] = f.squad.Picks[14], f.squad.Picks[0]
	f.squad.Picks[5], f.squad.Picks[9] = f.squad.Picks[9], f.squad.Picks[5]

	set := f.resolve()

	subs := set.Substitutions()
	require.Len(t, subs, 2)
	assert.Equal(t, Substitution{OutSlot: 6, OutPlayerID: 6, InSlot: 14, InPlayerID: 14}, subs[0])
	assert.Equal(t, Substitution{OutSlot: 10, OutPlayerID: 10, InSlot: 15, InPlayerID: 15}, subs[1])
}

func TestResolveAutoSubs_SizeBoundedByStartersNeedingReplacement(t *testing.T) {
	f := newAutoSubFixture()
	for id := int64(1); id <= StartingSize; id++ {
		f.benched(id)
	}

	set := f.resolve()

	assert.LessOrEqual(t, set.Len(), StartingSize)
	seen := make(map[int64]struct{})
	for _, id := range set.IDs() {
		_, dup := seen[id]
		require.False(t, dup, "player %d promoted twice", id)
		seen[id] = struct{}{}
	}
	assert.Equal(t, []int64{12, 13, 14}, set.IDs())
}
