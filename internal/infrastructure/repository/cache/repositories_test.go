package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-livescore/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/fantasy-livescore/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPlayerRepository struct {
	player.Repository
	lists int
	err   error
}

func (r *countingPlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	r.lists++
	if r.err != nil {
		return nil, r.err
	}
	return r.Repository.List(ctx)
}

func TestPlayerRepository_CachesUntilUpsert(t *testing.T) {
	ctx := context.Background()
	next := &countingPlayerRepository{Repository: memory.NewPlayerRepository(
		player.Player{ID: 1, TeamID: 1, Name: "Raya", Position: player.PositionGoalkeeper},
	)}
	repo := NewPlayerRepository(next, basecache.NewStore[[]player.Player](time.Minute))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Raya", second[0].Name)
	assert.Equal(t, 1, next.lists)

	require.NoError(t, repo.UpsertMany(ctx, []player.Player{{ID: 2, TeamID: 2, Name: "Saka", Position: player.PositionMidfielder}}))
	third, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, next.lists)
}

func TestPlayerRepository_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	next := &countingPlayerRepository{Repository: memory.NewPlayerRepository(), err: errors.New("db down")}
	repo := NewPlayerRepository(next, basecache.NewStore[[]player.Player](time.Minute))

	_, err := repo.List(ctx)
	require.Error(t, err)
	_, err = repo.List(ctx)
	require.Error(t, err)
	assert.Equal(t, 2, next.lists)
}

func TestLiveScoreRepository_InvalidatesTouchedRound(t *testing.T) {
	ctx := context.Background()
	repo := NewLiveScoreRepository(memory.NewLiveScoreRepository(), basecache.NewStore[[]scoring.LiveScore](time.Minute))
	at := time.Date(2026, 10, 3, 15, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertLiveScore(ctx, scoring.LiveScore{Round: 7, ParticipantID: 1, EventTotal: 40, CalculatedAt: at}))
	items, err := repo.ListLiveScoresByRound(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, repo.UpsertLiveScore(ctx, scoring.LiveScore{Round: 7, ParticipantID: 1, EventTotal: 52, CalculatedAt: at}))
	items, err = repo.ListLiveScoresByRound(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 52, items[0].EventTotal)
}

func TestFixtureRepository_UpsertDropsAllRounds(t *testing.T) {
	ctx := context.Background()
	repo := NewFixtureRepository(memory.NewFixtureRepository(
		fixture.Fixture{ID: 1, Round: 1, HomeTeamID: 1, AwayTeamID: 2},
		fixture.Fixture{ID: 2, Round: 2, HomeTeamID: 3, AwayTeamID: 4},
	), basecache.NewStore[[]fixture.Fixture](time.Minute))

	for _, round := range []int{1, 2} {
		items, err := repo.ListByRound(ctx, round)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.False(t, items[0].Finished)
	}

	require.NoError(t, repo.UpsertMany(ctx, []fixture.Fixture{
		{ID: 1, Round: 1, HomeTeamID: 1, AwayTeamID: 2, Finished: true},
		{ID: 2, Round: 2, HomeTeamID: 3, AwayTeamID: 4, Finished: true},
	}))
	for _, round := range []int{1, 2} {
		items, err := repo.ListByRound(ctx, round)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Finished)
	}
}

// gatedLiveScoreRepository reads its snapshot, then parks the first list until released.
type gatedLiveScoreRepository struct {
	scoring.Repository
	read    chan struct{}
	release chan struct{}
	gated   bool
}

func (r *gatedLiveScoreRepository) ListLiveScoresByRound(ctx context.Context, round int) ([]scoring.LiveScore, error) {
	items, err := r.Repository.ListLiveScoresByRound(ctx, round)
	if !r.gated {
		r.gated = true
		close(r.read)
		<-r.release
	}
	return items, err
}

func TestLiveScoreRepository_WriteDuringReadIsNotShadowed(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 3, 15, 0, 0, 0, time.UTC)
	store := memory.NewLiveScoreRepository()
	require.NoError(t, store.UpsertLiveScore(ctx, scoring.LiveScore{Round: 7, ParticipantID: 1, EventTotal: 40, CalculatedAt: at}))

	next := &gatedLiveScoreRepository{Repository: store, read: make(chan struct{}), release: make(chan struct{})}
	repo := NewLiveScoreRepository(next, basecache.NewStore[[]scoring.LiveScore](time.Minute))

	stale := make(chan []scoring.LiveScore, 1)
	go func() {
		items, _ := repo.ListLiveScoresByRound(ctx, 7)
		stale <- items
	}()

	<-next.read
	require.NoError(t, repo.UpsertLiveScore(ctx, scoring.LiveScore{Round: 7, ParticipantID: 1, EventTotal: 52, CalculatedAt: at}))
	close(next.release)
	require.Equal(t, 40, (<-stale)[0].EventTotal)

	items, err := repo.ListLiveScoresByRound(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 52, items[0].EventTotal)
}
