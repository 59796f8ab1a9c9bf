package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/scoring"
)

type LiveScoreRepository struct {
	mu      sync.RWMutex
	byRound map[int]map[int64]scoring.LiveScore
}

func NewLiveScoreRepository() *LiveScoreRepository {
	return &LiveScoreRepository{byRound: make(map[int]map[int64]scoring.LiveScore)}
}

func (r *LiveScoreRepository) UpsertLiveScore(_ context.Context, score scoring.LiveScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.byRound[score.Round]
	if !ok {
		bucket = make(map[int64]scoring.LiveScore)
		r.byRound[score.Round] = bucket
	}
	bucket[score.ParticipantID] = score
	return nil
}

func (r *LiveScoreRepository) ListLiveScoresByRound(_ context.Context, round int) ([]scoring.LiveScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.LiveScore, 0, len(r.byRound[round]))
	for _, item := range r.byRound[round] {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })
	return out, nil
}
