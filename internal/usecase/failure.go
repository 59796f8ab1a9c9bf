package usecase

import (
	"sort"

	crerr "github.com/cockroachdb/errors"
)

// Failure stages reported per participant.
const (
	StageFetchSquad = "fetch_squad"
	StageLoadSquad  = "load_squad"
	StageValidate   = "validate"
	StageStore      = "store"
)

// ParticipantFailure records why one participant was skipped; other participants
// of the same run are unaffected.
type ParticipantFailure struct {
	ParticipantID int64
	Stage         string
	Err           error
}

func newParticipantFailure(participantID int64, stage string, err error) ParticipantFailure {
	return ParticipantFailure{
		ParticipantID: participantID,
		Stage:         stage,
		Err:           crerr.Wrapf(err, "participant %d %s", participantID, stage),
	}
}

func (f ParticipantFailure) Error() string {
	if f.Err == nil {
		return f.Stage
	}
	return f.Err.Error()
}

func (f ParticipantFailure) Unwrap() error {
	return f.Err
}

func sortFailures(items []ParticipantFailure) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ParticipantID < items[j].ParticipantID
	})
}
