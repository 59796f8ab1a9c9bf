package participant

import "strings"

// Participant is one fantasy manager entered in a classic league.
type Participant struct {
	ID         int64
	LeagueID   int64
	EntryName  string
	PlayerName string
}

func (p Participant) Normalize() Participant {
	p.EntryName = strings.TrimSpace(p.EntryName)
	p.PlayerName = strings.TrimSpace(p.PlayerName)
	return p
}

// Index maps participants by id; later duplicates win.
func Index(items []Participant) map[int64]Participant {
	out := make(map[int64]Participant, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}
