package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[int64]player.Player
}

func NewPlayerRepository(players ...player.Player) *PlayerRepository {
	repo := &PlayerRepository{players: make(map[int64]player.Player, len(players))}
	_ = repo.UpsertMany(context.Background(), players)
	return repo
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, item := range r.players {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerRepository) UpsertMany(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range players {
		r.players[item.ID] = item
	}
	return nil
}
