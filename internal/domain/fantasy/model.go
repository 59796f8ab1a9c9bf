package fantasy

import (
	"sort"
	"strings"
)

const (
	SquadSize     = 15
	StartingSize  = 11
	FirstBenchPos = StartingSize + 1
)

// Chip is the participant's active chip for a round.
type Chip string

const (
	ChipNone          Chip = "none"
	ChipBenchBoost    Chip = "bboost"
	ChipTripleCaptain Chip = "3xc"
	ChipFreeHit       Chip = "freehit"
	ChipWildcard      Chip = "wildcard"
	ChipManager       Chip = "manager"
)

// ParseChip normalises a provider chip name. Empty and unknown values map to ChipNone.
func ParseChip(value string) Chip {
	switch Chip(strings.ToLower(strings.TrimSpace(value))) {
	case ChipBenchBoost:
		return ChipBenchBoost
	case ChipTripleCaptain:
		return ChipTripleCaptain
	case ChipFreeHit:
		return ChipFreeHit
	case ChipWildcard:
		return ChipWildcard
	case ChipManager:
		return ChipManager
	default:
		return ChipNone
	}
}

// ActiveLimit is the highest squad slot that scores without substitution.
func (c Chip) ActiveLimit() int {
	if c == ChipBenchBoost {
		return SquadSize
	}
	return StartingSize
}

// Pick is one squad slot of a participant's selection for a round.
type Pick struct {
	Slot          int
	PlayerID      int64
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
}

func (p Pick) IsStarter() bool {
	return p.Slot >= 1 && p.Slot <= StartingSize
}

func (p Pick) IsBench() bool {
	return p.Slot > StartingSize && p.Slot <= SquadSize
}

// Squad is one participant's full selection for one round.
type Squad struct {
	Round         int
	ParticipantID int64
	ActiveChip    Chip
	TransferCost  int
	Picks         []Pick
}

// SortedPicks returns the picks ordered by slot ascending.
func (s Squad) SortedPicks() []Pick {
	out := append([]Pick(nil), s.Picks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Slot < out[j].Slot
	})
	return out
}
