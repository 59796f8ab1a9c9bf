package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/participant"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/scoring"
	basecache "github.com/riskibarqy/fantasy-livescore/internal/platform/cache"
)

const (
	keyPlayerList        = "player:list"
	keyParticipantList   = "participant:list"
	prefixFixtureRound   = "fixture:round:"
	prefixStatsRound     = "stats:round:"
	prefixLiveScoreRound = "livescore:round:"
)

func roundKey(prefix string, round int) string {
	return prefix + strconv.Itoa(round)
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store[[]player.Player]) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := r.cache.GetOrLoad(ctx, keyPlayerList, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) UpsertMany(ctx context.Context, players []player.Player) error {
	if err := r.next.UpsertMany(ctx, players); err != nil {
		return err
	}
	r.cache.Invalidate(keyPlayerList)
	return nil
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store[[]fixture.Fixture]
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store[[]fixture.Fixture]) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) ListByRound(ctx context.Context, round int) ([]fixture.Fixture, error) {
	items, err := r.cache.GetOrLoad(ctx, roundKey(prefixFixtureRound, round), func(ctx context.Context) ([]fixture.Fixture, error) {
		items, err := r.next.ListByRound(ctx, round)
		if err != nil {
			return nil, err
		}
		return cloneFixtures(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneFixtures(items), nil
}

// UpsertMany drops every cached round since one batch may span several rounds.
func (r *FixtureRepository) UpsertMany(ctx context.Context, fixtures []fixture.Fixture) error {
	if err := r.next.UpsertMany(ctx, fixtures); err != nil {
		return err
	}
	r.cache.InvalidatePrefix(prefixFixtureRound)
	return nil
}

func cloneFixtures(items []fixture.Fixture) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		if item.KickoffAt != nil {
			kickoff := *item.KickoffAt
			item.KickoffAt = &kickoff
		}
		out = append(out, item)
	}
	return out
}

type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store[[]playerstats.Performance]
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store[[]playerstats.Performance]) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

func (r *PlayerStatsRepository) ListByRound(ctx context.Context, round int) ([]playerstats.Performance, error) {
	items, err := r.cache.GetOrLoad(ctx, roundKey(prefixStatsRound, round), func(ctx context.Context) ([]playerstats.Performance, error) {
		items, err := r.next.ListByRound(ctx, round)
		if err != nil {
			return nil, err
		}
		return append([]playerstats.Performance(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]playerstats.Performance(nil), items...), nil
}

func (r *PlayerStatsRepository) UpsertMany(ctx context.Context, round int, items []playerstats.Performance) error {
	if err := r.next.UpsertMany(ctx, round, items); err != nil {
		return err
	}
	r.cache.Invalidate(roundKey(prefixStatsRound, round))
	return nil
}

type ParticipantRepository struct {
	next  participant.Repository
	cache *basecache.Store[[]participant.Participant]
}

func NewParticipantRepository(next participant.Repository, cache *basecache.Store[[]participant.Participant]) *ParticipantRepository {
	return &ParticipantRepository{next: next, cache: cache}
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	items, err := r.cache.GetOrLoad(ctx, keyParticipantList, func(ctx context.Context) ([]participant.Participant, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]participant.Participant(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]participant.Participant(nil), items...), nil
}

func (r *ParticipantRepository) UpsertMany(ctx context.Context, items []participant.Participant) error {
	if err := r.next.UpsertMany(ctx, items); err != nil {
		return err
	}
	r.cache.Invalidate(keyParticipantList)
	return nil
}

// LiveScoreRepository caches the per-round table read by the API. Every write
// drops the round it touched.
type LiveScoreRepository struct {
	next  scoring.Repository
	cache *basecache.Store[[]scoring.LiveScore]
}

func NewLiveScoreRepository(next scoring.Repository, cache *basecache.Store[[]scoring.LiveScore]) *LiveScoreRepository {
	return &LiveScoreRepository{next: next, cache: cache}
}

func (r *LiveScoreRepository) UpsertLiveScore(ctx context.Context, score scoring.LiveScore) error {
	if err := r.next.UpsertLiveScore(ctx, score); err != nil {
		return err
	}
	r.cache.Invalidate(roundKey(prefixLiveScoreRound, score.Round))
	return nil
}

func (r *LiveScoreRepository) ListLiveScoresByRound(ctx context.Context, round int) ([]scoring.LiveScore, error) {
	items, err := r.cache.GetOrLoad(ctx, roundKey(prefixLiveScoreRound, round), func(ctx context.Context) ([]scoring.LiveScore, error) {
		items, err := r.next.ListLiveScoresByRound(ctx, round)
		if err != nil {
			return nil, err
		}
		return append([]scoring.LiveScore(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]scoring.LiveScore(nil), items...), nil
}

var (
	_ player.Repository      = (*PlayerRepository)(nil)
	_ fixture.Repository     = (*FixtureRepository)(nil)
	_ playerstats.Repository = (*PlayerStatsRepository)(nil)
	_ participant.Repository = (*ParticipantRepository)(nil)
	_ scoring.Repository     = (*LiveScoreRepository)(nil)
)
