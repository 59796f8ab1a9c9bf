package fantasy

import (
	"fmt"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
)

// Formation counts roles among the eleven scoring players.
type Formation struct {
	Goalkeepers int
	Defenders   int
	Midfielders int
	Forwards    int
}

type outfieldShape struct {
	defenders   int
	midfielders int
	forwards    int
}

var legalShapes = map[outfieldShape]struct{}{
	{3, 5, 2}: {},
	{4, 4, 2}: {},
	{4, 5, 1}: {},
	{3, 4, 3}: {},
	{4, 3, 3}: {},
	{5, 2, 3}: {},
	{5, 3, 1}: {},
}

func (f Formation) Total() int {
	return f.Goalkeepers + f.Defenders + f.Midfielders + f.Forwards
}

func (f Formation) String() string {
	return fmt.Sprintf("%d-%d-%d", f.Defenders, f.Midfielders, f.Forwards)
}

// IsLegalFormation reports whether f is one of the game's accepted line-ups.
func IsLegalFormation(f Formation) bool {
	if f.Total() != StartingSize || f.Goalkeepers != 1 {
		return false
	}
	_, ok := legalShapes[outfieldShape{f.Defenders, f.Midfielders, f.Forwards}]
	return ok
}

// CountFormation tallies positions. Every role starts at zero; unknown positions count nowhere.
func CountFormation(positions []player.Position) Formation {
	var f Formation
	for _, pos := range positions {
		f = f.with(pos, 1)
	}
	return f
}

func (f Formation) with(pos player.Position, delta int) Formation {
	switch pos {
	case player.PositionGoalkeeper:
		f.Goalkeepers += delta
	case player.PositionDefender:
		f.Defenders += delta
	case player.PositionMidfielder:
		f.Midfielders += delta
	case player.PositionForward:
		f.Forwards += delta
	}
	return f
}

// Swap returns the formation after out leaves and in joins.
func (f Formation) Swap(out, in player.Position) Formation {
	return f.with(out, -1).with(in, 1)
}
