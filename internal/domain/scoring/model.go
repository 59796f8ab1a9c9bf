package scoring

import "time"

// LiveScore is the provisional total of one participant for one round.
// At most one exists per (Round, ParticipantID); a recalculation replaces it.
type LiveScore struct {
	Round         int
	ParticipantID int64
	EventTotal    int
	CalculatedAt  time.Time
}

// PickPoints is one squad slot's contribution to a live score.
type PickPoints struct {
	Slot          int
	PlayerID      int64
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
	Minutes       int
	BasePoints    int
	Counted       bool
	AutoSubbedIn  bool
	CountedPoints int
}

// Breakdown explains how a live score was assembled.
type Breakdown struct {
	Round         int
	ParticipantID int64
	ActiveChip    string
	TransferCost  int
	EventTotal    int
	Picks         []PickPoints
}

// LiveScore reduces the breakdown to the stored record.
func (b Breakdown) LiveScore(at time.Time) LiveScore {
	return LiveScore{
		Round:         b.Round,
		ParticipantID: b.ParticipantID,
		EventTotal:    b.EventTotal,
		CalculatedAt:  at.UTC(),
	}
}

// SubstitutedIn returns the bench slots counted through automatic substitution.
func (b Breakdown) SubstitutedIn() []PickPoints {
	out := make([]PickPoints, 0)
	for _, row := range b.Picks {
		if row.AutoSubbedIn {
			out = append(out, row)
		}
	}
	return out
}
