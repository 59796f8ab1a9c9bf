package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/participant"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/metrics"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultFetchConcurrency = 8

type IngestionConfig struct {
	FetchConcurrency int
}

type IngestInput struct {
	LeagueID int64
	Round    int
}

type IngestResult struct {
	Players      int
	Fixtures     int
	Performances int
	Participants int
	Squads       int
	Failures     []ParticipantFailure
}

// IngestionService pulls one round's data from the provider into the repositories.
type IngestionService struct {
	provider     LiveDataProvider
	players      player.Repository
	fixtures     fixture.Repository
	stats        playerstats.Repository
	squads       fantasy.Repository
	participants participant.Repository
	concurrency  int
	logger       *logging.Logger
	metrics      *metrics.Manager
}

func NewIngestionService(
	provider LiveDataProvider,
	players player.Repository,
	fixtures fixture.Repository,
	stats playerstats.Repository,
	squads fantasy.Repository,
	participants participant.Repository,
	cfg IngestionConfig,
	logger *logging.Logger,
	m *metrics.Manager,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = defaultFetchConcurrency
	}
	return &IngestionService{
		provider:     provider,
		players:      players,
		fixtures:     fixtures,
		stats:        stats,
		squads:       squads,
		participants: participants,
		concurrency:  cfg.FetchConcurrency,
		logger:       logger,
		metrics:      m,
	}
}

// IngestRound refreshes catalogue, fixtures, live performances and every league
// participant's squad for the round. Round-wide fetch errors abort the run; a failed
// squad fetch only skips that participant.
func (s *IngestionService) IngestRound(ctx context.Context, in IngestInput) (result IngestResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestRound",
		attribute.Int64("league_id", in.LeagueID),
		attribute.Int("round", in.Round),
	)
	started := time.Now()
	defer func() {
		s.metrics.ObserveRoundStage("ingest", err, time.Since(started))
		finishSpan(span, err)
	}()

	if in.LeagueID <= 0 || in.Round <= 0 {
		return IngestResult{}, fmt.Errorf("%w: league id and round must be greater than zero", ErrInvalidInput)
	}

	players, err := s.provider.FetchPlayers(ctx)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: fetch players: %w", ErrDependencyUnavailable, err)
	}
	if err := s.players.UpsertMany(ctx, players); err != nil {
		return IngestResult{}, fmt.Errorf("store players: %w", err)
	}
	result.Players = len(players)

	fixtures, err := s.provider.FetchFixtures(ctx, in.Round)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: fetch fixtures round=%d: %w", ErrDependencyUnavailable, in.Round, err)
	}
	for i := range fixtures {
		fixtures[i].Round = in.Round
		fixtures[i].Status = fixture.NormalizeStatus(fixtures[i].Status)
	}
	if err := s.fixtures.UpsertMany(ctx, fixtures); err != nil {
		return IngestResult{}, fmt.Errorf("store fixtures: %w", err)
	}
	result.Fixtures = len(fixtures)

	performances, err := s.provider.FetchLivePerformances(ctx, in.Round)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: fetch live performances round=%d: %w", ErrDependencyUnavailable, in.Round, err)
	}
	for i := range performances {
		performances[i].Round = in.Round
	}
	if err := s.stats.UpsertMany(ctx, in.Round, performances); err != nil {
		return IngestResult{}, fmt.Errorf("store live performances: %w", err)
	}
	result.Performances = len(performances)

	members, err := s.provider.FetchLeagueParticipants(ctx, in.LeagueID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: fetch league participants league=%d: %w", ErrDependencyUnavailable, in.LeagueID, err)
	}
	for i := range members {
		members[i] = members[i].Normalize()
		members[i].LeagueID = in.LeagueID
	}
	if err := s.participants.UpsertMany(ctx, members); err != nil {
		return IngestResult{}, fmt.Errorf("store participants: %w", err)
	}
	result.Participants = len(members)

	squads, failures := s.fetchSquads(ctx, members, in.Round)
	if ctx.Err() != nil {
		return IngestResult{}, ctx.Err()
	}
	for _, squad := range squads {
		if err := s.squads.Upsert(ctx, squad); err != nil {
			failures = append(failures, newParticipantFailure(squad.ParticipantID, StageStore, err))
			continue
		}
		result.Squads++
	}
	sortFailures(failures)
	result.Failures = failures

	for _, f := range failures {
		s.metrics.ParticipantFailed(f.Stage)
		s.logger.WarnContext(ctx, "participant squad ingestion skipped",
			"round", in.Round,
			"participant_id", f.ParticipantID,
			"stage", f.Stage,
			"error", f.Err,
		)
	}
	s.logger.InfoContext(ctx, "round ingestion completed",
		"league_id", in.LeagueID,
		"round", in.Round,
		"players", result.Players,
		"fixtures", result.Fixtures,
		"performances", result.Performances,
		"participants", result.Participants,
		"squads", result.Squads,
		"failed", len(result.Failures),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, nil
}

type squadFetch struct {
	squad   fantasy.Squad
	failure *ParticipantFailure
}

func (s *IngestionService) fetchSquads(ctx context.Context, members []participant.Participant, round int) ([]fantasy.Squad, []ParticipantFailure) {
	p := pool.NewWithResults[squadFetch]().WithMaxGoroutines(s.concurrency)
	for _, member := range members {
		id := member.ID
		p.Go(func() squadFetch {
			if err := ctx.Err(); err != nil {
				f := newParticipantFailure(id, StageFetchSquad, err)
				return squadFetch{failure: &f}
			}
			squad, err := s.provider.FetchSquad(ctx, id, round)
			if err != nil {
				f := newParticipantFailure(id, StageFetchSquad, err)
				return squadFetch{failure: &f}
			}
			squad.Round = round
			squad.ParticipantID = id
			return squadFetch{squad: squad}
		})
	}

	squads := make([]fantasy.Squad, 0, len(members))
	failures := make([]ParticipantFailure, 0)
	for _, item := range p.Wait() {
		if item.failure != nil {
			failures = append(failures, *item.failure)
			continue
		}
		squads = append(squads, item.squad)
	}
	return squads, failures
}
