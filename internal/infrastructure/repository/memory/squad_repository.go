package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
)

type squadKey struct {
	round         int
	participantID int64
}

type SquadRepository struct {
	mu     sync.RWMutex
	squads map[squadKey]fantasy.Squad
}

func NewSquadRepository() *SquadRepository {
	return &SquadRepository{squads: make(map[squadKey]fantasy.Squad)}
}

func (r *SquadRepository) GetByRoundAndParticipant(_ context.Context, round int, participantID int64) (fantasy.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	squad, ok := r.squads[squadKey{round: round, participantID: participantID}]
	if !ok {
		return fantasy.Squad{}, false, nil
	}
	return cloneSquad(squad), true, nil
}

func (r *SquadRepository) ListParticipantsByRound(_ context.Context, round int) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int64, 0)
	for key := range r.squads {
		if key.round == round {
			out = append(out, key.participantID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *SquadRepository) Upsert(_ context.Context, squad fantasy.Squad) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.squads[squadKey{round: squad.Round, participantID: squad.ParticipantID}] = cloneSquad(squad)
	return nil
}

func cloneSquad(squad fantasy.Squad) fantasy.Squad {
	squad.Picks = append([]fantasy.Pick(nil), squad.Picks...)
	return squad
}
