package player

import "fmt"

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// PositionFromElementType maps the provider's numeric element_type (1..4) to a Position.
func PositionFromElementType(elementType int) (Position, bool) {
	switch elementType {
	case 1:
		return PositionGoalkeeper, true
	case 2:
		return PositionDefender, true
	case 3:
		return PositionMidfielder, true
	case 4:
		return PositionForward, true
	default:
		return "", false
	}
}

// Player is one entry of the provider's player catalogue.
type Player struct {
	ID       int64
	TeamID   int64
	Name     string
	Position Position
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id must be greater than zero: %d", p.ID)
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}

// Index keys players by id.
func Index(players []Player) map[int64]Player {
	out := make(map[int64]Player, len(players))
	for _, item := range players {
		out[item.ID] = item
	}
	return out
}
