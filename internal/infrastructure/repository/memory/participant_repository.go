package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/participant"
)

type ParticipantRepository struct {
	mu    sync.RWMutex
	items map[int64]participant.Participant
}

func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{items: make(map[int64]participant.Participant)}
}

func (r *ParticipantRepository) List(_ context.Context) ([]participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Participant, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ParticipantRepository) UpsertMany(_ context.Context, items []participant.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[item.ID] = item
	}
	return nil
}
