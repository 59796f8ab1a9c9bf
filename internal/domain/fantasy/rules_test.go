package fantasy

import (
	"errors"
	"testing"
)

func validSquad() Squad {
	picks := make([]Pick, 0, SquadSize)
	for slot := 1; slot <= SquadSize; slot++ {
		multiplier := 1
		if slot > StartingSize {
			multiplier = 0
		}
		picks = append(picks, Pick{Slot: slot, PlayerID: int64(100 + slot), Multiplier: multiplier})
	}
	picks[6].IsCaptain = true
	picks[6].Multiplier = 2
	picks[9].IsViceCaptain = true

	return Squad{Round: 7, ParticipantID: 42, ActiveChip: ChipNone, Picks: picks}
}

func TestValidateSquad(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Squad)
		targetErr error
	}{
		{
			name:   "valid squad",
			mutate: func(_ *Squad) {},
		},
		{
			name: "missing pick",
			mutate: func(s *Squad) {
				s.Picks = s.Picks[:14]
			},
			targetErr: ErrInvalidSquadSize,
		},
		{
			name: "extra pick",
			mutate: func(s *Squad) {
				s.Picks = append(s.Picks, Pick{Slot: 16, PlayerID: 999})
			},
			targetErr: ErrInvalidSquadSize,
		},
		{
			name: "slot out of range",
			mutate: func(s *Squad) {
				s.Picks[14].Slot = 16
			},
			targetErr: ErrInvalidSquadSlot,
		},
		{
			name: "slot used twice",
			mutate: func(s *Squad) {
				s.Picks[14].Slot = 1
			},
			targetErr: ErrInvalidSquadSlot,
		},
		{
			name: "duplicate player",
			mutate: func(s *Squad) {
				s.Picks[2].PlayerID = s.Picks[1].PlayerID
			},
			targetErr: ErrDuplicatePlayerInSquad,
		},
		{
			name: "no captain",
			mutate: func(s *Squad) {
				s.Picks[6].IsCaptain = false
			},
			targetErr: ErrInvalidCaptaincy,
		},
		{
			name: "two captains",
			mutate: func(s *Squad) {
				s.Picks[3].IsCaptain = true
			},
			targetErr: ErrInvalidCaptaincy,
		},
		{
			name: "captain is vice captain",
			mutate: func(s *Squad) {
				s.Picks[9].IsViceCaptain = false
				s.Picks[6].IsViceCaptain = true
			},
			targetErr: ErrInvalidCaptaincy,
		},
		{
			name: "multiplier too large",
			mutate: func(s *Squad) {
				s.Picks[0].Multiplier = 4
			},
			targetErr: ErrInvalidMultiplier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			squad := validSquad()
			tt.mutate(&squad)

			err := ValidateSquad(squad)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
			if !IsMalformedSquad(err) {
				t.Fatalf("expected malformed squad classification for %v", err)
			}
		})
	}
}

func TestParseChip(t *testing.T) {
	if got := ParseChip(" BBOOST "); got != ChipBenchBoost {
		t.Fatalf("unexpected chip: %s", got)
	}
	if got := ParseChip(""); got != ChipNone {
		t.Fatalf("unexpected chip for empty value: %s", got)
	}
	if got := ParseChip("mystery"); got != ChipNone {
		t.Fatalf("unexpected chip for unknown value: %s", got)
	}
	if ChipBenchBoost.ActiveLimit() != 15 || ChipTripleCaptain.ActiveLimit() != 11 {
		t.Fatalf("unexpected active limits")
	}
}
