package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu      sync.RWMutex
	byRound map[int]map[int64]playerstats.Performance
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{byRound: make(map[int]map[int64]playerstats.Performance)}
}

func (r *PlayerStatsRepository) ListByRound(_ context.Context, round int) ([]playerstats.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byRound[round]
	out := make([]playerstats.Performance, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

// UpsertMany replaces each listed player's performance; players not listed keep theirs.
func (r *PlayerStatsRepository) UpsertMany(_ context.Context, round int, items []playerstats.Performance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.byRound[round]
	if !ok {
		bucket = make(map[int64]playerstats.Performance, len(items))
		r.byRound[round] = bucket
	}
	for _, item := range items {
		item.Round = round
		bucket[item.PlayerID] = item
	}
	return nil
}
