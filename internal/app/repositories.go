package app

import (
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-livescore/internal/config"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/participant"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-livescore/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-livescore/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-livescore/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/fantasy-livescore/internal/platform/cache"
)

type repositories struct {
	players      player.Repository
	fixtures     fixture.Repository
	stats        playerstats.Repository
	squads       fantasy.Repository
	scores       scoring.Repository
	participants participant.Repository
}

// newRepositories picks the backing store by driver; db is only read for postgres.
func newRepositories(cfg config.Config, db *sqlx.DB) repositories {
	var repos repositories
	if cfg.StorageDriver == config.StoragePostgres && db != nil {
		repos = repositories{
			players:      postgres.NewPlayerRepository(db),
			fixtures:     postgres.NewFixtureRepository(db),
			stats:        postgres.NewPlayerStatsRepository(db),
			squads:       postgres.NewSquadRepository(db),
			scores:       postgres.NewLiveScoreRepository(db),
			participants: postgres.NewParticipantRepository(db),
		}
	} else {
		repos = repositories{
			players:      memory.NewPlayerRepository(),
			fixtures:     memory.NewFixtureRepository(),
			stats:        memory.NewPlayerStatsRepository(),
			squads:       memory.NewSquadRepository(),
			scores:       memory.NewLiveScoreRepository(),
			participants: memory.NewParticipantRepository(),
		}
	}

	if !cfg.CacheEnabled {
		return repos
	}
	repos.players = cache.NewPlayerRepository(repos.players, basecache.NewStore[[]player.Player](cfg.CacheTTL))
	repos.fixtures = cache.NewFixtureRepository(repos.fixtures, basecache.NewStore[[]fixture.Fixture](cfg.CacheTTL))
	repos.stats = cache.NewPlayerStatsRepository(repos.stats, basecache.NewStore[[]playerstats.Performance](cfg.CacheTTL))
	repos.scores = cache.NewLiveScoreRepository(repos.scores, basecache.NewStore[[]scoring.LiveScore](cfg.CacheTTL))
	repos.participants = cache.NewParticipantRepository(repos.participants, basecache.NewStore[[]participant.Participant](cfg.CacheTTL))
	return repos
}
