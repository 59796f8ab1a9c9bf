package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/participant"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
)

// LiveDataProvider is the upstream fantasy data source.
type LiveDataProvider interface {
	FetchPlayers(ctx context.Context) ([]player.Player, error)
	FetchFixtures(ctx context.Context, round int) ([]fixture.Fixture, error)
	FetchLivePerformances(ctx context.Context, round int) ([]playerstats.Performance, error)
	// FetchLeagueParticipants pages through the league standings until exhausted.
	FetchLeagueParticipants(ctx context.Context, leagueID int64) ([]participant.Participant, error)
	FetchSquad(ctx context.Context, participantID int64, round int) (fantasy.Squad, error)
}
