package fixture

import "context"

// Repository exposes fixture persistence operations.
type Repository interface {
	ListByRound(ctx context.Context, round int) ([]Fixture, error)
	UpsertMany(ctx context.Context, fixtures []Fixture) error
}
