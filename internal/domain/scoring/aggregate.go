package scoring

import (
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
)

// AggregateInput is everything needed to total one participant's round.
type AggregateInput struct {
	Squad         fantasy.Squad
	Performances  playerstats.Performances
	Substitutions fantasy.SubstitutionSet
}

// Aggregate returns the per-slot breakdown and event total for one squad:
// points x multiplier for every pick within the chip's active limit or promoted by
// automatic substitution, minus the transfer cost. Missing points count as zero.
// Bench boost counts slots 12-15 already, so the substitution set has no effect under it.
func Aggregate(in AggregateInput) Breakdown {
	limit := in.Squad.ActiveChip.ActiveLimit()
	chip := in.Squad.ActiveChip
	if chip == "" {
		chip = fantasy.ChipNone
	}

	out := Breakdown{
		Round:         in.Squad.Round,
		ParticipantID: in.Squad.ParticipantID,
		ActiveChip:    string(chip),
		TransferCost:  in.Squad.TransferCost,
		Picks:         make([]PickPoints, 0, len(in.Squad.Picks)),
	}

	total := 0
	for _, pick := range in.Squad.SortedPicks() {
		perf, _ := in.Performances.Lookup(pick.PlayerID)
		row := PickPoints{
			Slot:          pick.Slot,
			PlayerID:      pick.PlayerID,
			Multiplier:    pick.Multiplier,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
			Minutes:       perf.Minutes,
			BasePoints:    perf.Points,
		}

		subbedIn := in.Substitutions.Contains(pick.PlayerID)
		if pick.Slot <= limit || subbedIn {
			row.Counted = true
			row.AutoSubbedIn = subbedIn && pick.Slot > limit
			row.CountedPoints = perf.Points * pick.Multiplier
			total += row.CountedPoints
		}
		out.Picks = append(out.Picks, row)
	}

	out.EventTotal = total - in.Squad.TransferCost
	return out
}

// EventTotal is Aggregate reduced to its total.
func EventTotal(in AggregateInput) int {
	return Aggregate(in).EventTotal
}
