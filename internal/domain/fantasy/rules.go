package fantasy

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSquadSize       = errors.New("invalid squad size")
	ErrInvalidSquadSlot       = errors.New("invalid squad slot")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
	ErrInvalidCaptaincy       = errors.New("invalid captaincy")
	ErrInvalidMultiplier      = errors.New("invalid pick multiplier")
)

// IsMalformedSquad reports whether err came from ValidateSquad.
func IsMalformedSquad(err error) bool {
	return errors.Is(err, ErrInvalidSquadSize) ||
		errors.Is(err, ErrInvalidSquadSlot) ||
		errors.Is(err, ErrDuplicatePlayerInSquad) ||
		errors.Is(err, ErrInvalidCaptaincy) ||
		errors.Is(err, ErrInvalidMultiplier)
}

// ValidateSquad checks that a round selection can be scored.
func ValidateSquad(s Squad) error {
	if len(s.Picks) != SquadSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidSquadSize, SquadSize, len(s.Picks))
	}

	slotSet := make(map[int]struct{}, SquadSize)
	playerSet := make(map[int64]struct{}, SquadSize)
	captains := 0
	viceCaptains := 0

	for _, pick := range s.Picks {
		if pick.Slot < 1 || pick.Slot > SquadSize {
			return fmt.Errorf("%w: slot %d out of range", ErrInvalidSquadSlot, pick.Slot)
		}
		if _, exists := slotSet[pick.Slot]; exists {
			return fmt.Errorf("%w: slot %d used twice", ErrInvalidSquadSlot, pick.Slot)
		}
		slotSet[pick.Slot] = struct{}{}

		if pick.PlayerID <= 0 {
			return fmt.Errorf("%w: player id is required in slot %d", ErrInvalidSquadSlot, pick.Slot)
		}
		if _, exists := playerSet[pick.PlayerID]; exists {
			return fmt.Errorf("%w: %d", ErrDuplicatePlayerInSquad, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}

		if pick.Multiplier < 0 || pick.Multiplier > 3 {
			return fmt.Errorf("%w: slot=%d multiplier=%d", ErrInvalidMultiplier, pick.Slot, pick.Multiplier)
		}
		if pick.IsCaptain && pick.IsViceCaptain {
			return fmt.Errorf("%w: player %d is both captain and vice captain", ErrInvalidCaptaincy, pick.PlayerID)
		}
		if pick.IsCaptain {
			captains++
		}
		if pick.IsViceCaptain {
			viceCaptains++
		}
	}

	if captains != 1 || viceCaptains != 1 {
		return fmt.Errorf("%w: captains=%d vice_captains=%d", ErrInvalidCaptaincy, captains, viceCaptains)
	}

	return nil
}
