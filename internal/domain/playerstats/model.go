package playerstats

// Performance is one player's live output for a round.
type Performance struct {
	Round    int
	PlayerID int64
	Points   int
	Minutes  int
}

// Performances indexes one round's performances by player id.
type Performances map[int64]Performance

func NewPerformances(items []Performance) Performances {
	out := make(Performances, len(items))
	for _, item := range items {
		out[item.PlayerID] = item
	}
	return out
}

// Lookup returns the performance for playerID and whether data exists for it.
func (p Performances) Lookup(playerID int64) (Performance, bool) {
	item, ok := p[playerID]
	return item, ok
}

// Points returns the player's points, zero when no data was recorded.
func (p Performances) Points(playerID int64) int {
	return p[playerID].Points
}

// Played reports whether data exists for playerID and the player recorded minutes.
func (p Performances) Played(playerID int64) bool {
	item, ok := p[playerID]
	return ok && item.Minutes > 0
}
