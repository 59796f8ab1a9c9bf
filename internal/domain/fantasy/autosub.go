package fantasy

import (
	"sort"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
)

// Substitution pairs a starter that did not play with the bench player scoring in its place.
type Substitution struct {
	OutSlot     int
	OutPlayerID int64
	InSlot      int
	InPlayerID  int64
}

// SubstitutionSet is the set of bench players promoted into the scoring eleven.
type SubstitutionSet struct {
	promoted map[int64]struct{}
	subs     []Substitution
}

func (s SubstitutionSet) Contains(playerID int64) bool {
	_, ok := s.promoted[playerID]
	return ok
}

func (s SubstitutionSet) Len() int {
	return len(s.subs)
}

// IDs returns promoted player ids in ascending order.
func (s SubstitutionSet) IDs() []int64 {
	out := make([]int64, 0, len(s.promoted))
	for id := range s.promoted {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewSubstitutionSet rebuilds a set from stored pairs. Repeated bench players are kept once.
func NewSubstitutionSet(subs []Substitution) SubstitutionSet {
	set := SubstitutionSet{promoted: make(map[int64]struct{}, len(subs))}
	for _, sub := range subs {
		if _, seen := set.promoted[sub.InPlayerID]; seen {
			continue
		}
		set.promoted[sub.InPlayerID] = struct{}{}
		set.subs = append(set.subs, sub)
	}
	return set
}

// Substitutions returns the resolved pairs in the order they were made.
func (s SubstitutionSet) Substitutions() []Substitution {
	return append([]Substitution(nil), s.subs...)
}

// ResolveAutoSubs emulates the provider's automatic substitution rule for one squad.
//
// A starter is replaced only when it has zero minutes and every fixture of its team has
// finished. Starters are handled in slot order; for each one the bench is scanned in slot
// order (12 first) and the first unused bench player who played and keeps the formation
// legal is promoted. A bench player relieves at most one starter.
func ResolveAutoSubs(
	squad Squad,
	players map[int64]player.Player,
	performances playerstats.Performances,
	teams fixture.TeamStates,
) SubstitutionSet {
	set := SubstitutionSet{promoted: make(map[int64]struct{})}

	picks := squad.SortedPicks()
	starters := make([]Pick, 0, StartingSize)
	bench := make([]Pick, 0, SquadSize-StartingSize)
	for _, pick := range picks {
		switch {
		case pick.IsStarter():
			starters = append(starters, pick)
		case pick.IsBench():
			bench = append(bench, pick)
		}
	}

	positionOf := func(playerID int64) player.Position {
		return players[playerID].Position
	}

	startingPositions := make([]player.Position, 0, len(starters))
	for _, pick := range starters {
		startingPositions = append(startingPositions, positionOf(pick.PlayerID))
	}
	current := CountFormation(startingPositions)

	for _, starter := range starters {
		if !needsReplacement(starter, players, performances, teams) {
			continue
		}

		for _, candidate := range bench {
			if set.Contains(candidate.PlayerID) {
				continue
			}
			if !performances.Played(candidate.PlayerID) {
				continue
			}

			next := current.Swap(positionOf(starter.PlayerID), positionOf(candidate.PlayerID))
			if !IsLegalFormation(next) {
				continue
			}

			current = next
			set.promoted[candidate.PlayerID] = struct{}{}
			set.subs = append(set.subs, Substitution{
				OutSlot:     starter.Slot,
				OutPlayerID: starter.PlayerID,
				InSlot:      candidate.Slot,
				InPlayerID:  candidate.PlayerID,
			})
			break
		}
	}

	return set
}

func needsReplacement(
	starter Pick,
	players map[int64]player.Player,
	performances playerstats.Performances,
	teams fixture.TeamStates,
) bool {
	info, known := players[starter.PlayerID]
	if !known || !teams.Finished(info.TeamID) {
		return false
	}
	perf, _ := performances.Lookup(starter.PlayerID)
	return perf.Minutes == 0
}
