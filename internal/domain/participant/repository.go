package participant

import "context"

type Repository interface {
	List(ctx context.Context) ([]Participant, error)
	UpsertMany(ctx context.Context, items []Participant) error
}
