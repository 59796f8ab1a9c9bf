package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
)

type FixtureRepository struct {
	mu      sync.RWMutex
	byRound map[int]map[int64]fixture.Fixture
}

func NewFixtureRepository(fixtures ...fixture.Fixture) *FixtureRepository {
	repo := &FixtureRepository{byRound: make(map[int]map[int64]fixture.Fixture)}
	_ = repo.UpsertMany(context.Background(), fixtures)
	return repo
}

func (r *FixtureRepository) ListByRound(_ context.Context, round int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byRound[round]
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FixtureRepository) UpsertMany(_ context.Context, fixtures []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range fixtures {
		bucket, ok := r.byRound[item.Round]
		if !ok {
			bucket = make(map[int64]fixture.Fixture)
			r.byRound[item.Round] = bucket
		}
		bucket[item.ID] = item
	}
	return nil
}
