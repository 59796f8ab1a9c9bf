package fantasy

import "context"

// Repository describes squad persistence needs from use cases.
type Repository interface {
	GetByRoundAndParticipant(ctx context.Context, round int, participantID int64) (Squad, bool, error)
	ListParticipantsByRound(ctx context.Context, round int) ([]int64, error)
	Upsert(ctx context.Context, squad Squad) error
}
