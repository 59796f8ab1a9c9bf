package fixture

// TeamStates records, per team, whether every fixture that team plays in a round has finished.
// The zero value is an empty mapping in which no team is finished.
type TeamStates struct {
	finished map[int64]bool
}

// BuildTeamStates folds the fixtures of one round into per-team completion.
// A team seen in several fixtures (double round) is finished only when all of them are.
// The result does not depend on fixture order.
func BuildTeamStates(fixtures []Fixture) TeamStates {
	finished := make(map[int64]bool, len(fixtures)*2)
	mark := func(teamID int64, done bool) {
		if teamID <= 0 {
			return
		}
		if prev, seen := finished[teamID]; seen {
			finished[teamID] = prev && done
			return
		}
		finished[teamID] = done
	}

	for _, item := range fixtures {
		mark(item.HomeTeamID, item.Finished)
		mark(item.AwayTeamID, item.Finished)
	}

	return TeamStates{finished: finished}
}

// Finished reports completion for teamID. Unknown teams are not finished.
func (s TeamStates) Finished(teamID int64) bool {
	return s.finished[teamID]
}

// Len returns the number of teams with at least one fixture in the round.
func (s TeamStates) Len() int {
	return len(s.finished)
}

// Teams returns a copy of the underlying mapping.
func (s TeamStates) Teams() map[int64]bool {
	out := make(map[int64]bool, len(s.finished))
	for teamID, done := range s.finished {
		out[teamID] = done
	}
	return out
}
