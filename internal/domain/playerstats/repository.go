package playerstats

import "context"

// Repository stores live per-round player performances.
type Repository interface {
	ListByRound(ctx context.Context, round int) ([]Performance, error)
	UpsertMany(ctx context.Context, round int, items []Performance) error
}
