package player

import "context"

// Repository exposes the player catalogue.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	UpsertMany(ctx context.Context, players []Player) error
}
