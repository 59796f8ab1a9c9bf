package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/participant"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const defaultScoreWorkers = 8

type LiveScoreConfig struct {
	Workers int
}

// LiveScoreService recalculates and serves provisional round scores.
type LiveScoreService struct {
	fixtures     fixture.Repository
	players      player.Repository
	stats        playerstats.Repository
	squads       fantasy.Repository
	scores       scoring.Repository
	participants participant.Repository
	ingestion    *IngestionService
	workers      int
	now          func() time.Time
	logger       *logging.Logger
	metrics      *metrics.Manager
}

func NewLiveScoreService(
	fixtures fixture.Repository,
	players player.Repository,
	stats playerstats.Repository,
	squads fantasy.Repository,
	scores scoring.Repository,
	participants participant.Repository,
	ingestion *IngestionService,
	cfg LiveScoreConfig,
	logger *logging.Logger,
	m *metrics.Manager,
) *LiveScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultScoreWorkers
	}
	return &LiveScoreService{
		fixtures:     fixtures,
		players:      players,
		stats:        stats,
		squads:       squads,
		scores:       scores,
		participants: participants,
		ingestion:    ingestion,
		workers:      cfg.Workers,
		now:          time.Now,
		logger:       logger,
		metrics:      m,
	}
}

type RoundResult struct {
	Round               int
	Participants        int
	Scored              int
	Substitutions       int
	AllFixturesFinished bool
	Failures            []ParticipantFailure
}

// roundState is the read-only input shared by every participant of one run.
type roundState struct {
	round        int
	teams        fixture.TeamStates
	catalogue    map[int64]player.Player
	performances playerstats.Performances
	finished     bool
}

func (s *LiveScoreService) loadRoundState(ctx context.Context, round int) (roundState, error) {
	fixtures, err := s.fixtures.ListByRound(ctx, round)
	if err != nil {
		return roundState{}, fmt.Errorf("list fixtures round=%d: %w", round, err)
	}
	players, err := s.players.List(ctx)
	if err != nil {
		return roundState{}, fmt.Errorf("list players: %w", err)
	}
	performances, err := s.stats.ListByRound(ctx, round)
	if err != nil {
		return roundState{}, fmt.Errorf("list performances round=%d: %w", round, err)
	}
	return roundState{
		round:        round,
		teams:        fixture.BuildTeamStates(fixtures),
		catalogue:    player.Index(players),
		performances: playerstats.NewPerformances(performances),
		finished:     fixture.AllFinished(fixtures),
	}, nil
}

// evaluate validates the squad, resolves automatic substitutions and totals it.
// Bench boost already counts every slot, so no substitution is resolved for it.
func (st roundState) evaluate(squad fantasy.Squad) (scoring.Breakdown, fantasy.SubstitutionSet, error) {
	if err := fantasy.ValidateSquad(squad); err != nil {
		return scoring.Breakdown{}, fantasy.SubstitutionSet{}, fmt.Errorf("%w: %w", ErrMalformedSquad, err)
	}
	var subs fantasy.SubstitutionSet
	if squad.ActiveChip != fantasy.ChipBenchBoost {
		subs = fantasy.ResolveAutoSubs(squad, st.catalogue, st.performances, st.teams)
	}
	breakdown := scoring.Aggregate(scoring.AggregateInput{
		Squad:         squad,
		Performances:  st.performances,
		Substitutions: subs,
	})
	return breakdown, subs, nil
}

type participantOutcome struct {
	participantID int64
	substitutions int
	failure       *ParticipantFailure
}

// ScoreRound recalculates and stores the live score of every participant with a squad
// for the round. A participant's first failure stops only that participant.
func (s *LiveScoreService) ScoreRound(ctx context.Context, round int) (result RoundResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveScoreService.ScoreRound", attribute.Int("round", round))
	started := time.Now()
	defer func() {
		s.metrics.ObserveRoundStage("score", err, time.Since(started))
		finishSpan(span, err)
	}()

	if round <= 0 {
		return RoundResult{}, fmt.Errorf("%w: round must be greater than zero", ErrInvalidInput)
	}

	state, err := s.loadRoundState(ctx, round)
	if err != nil {
		return RoundResult{}, err
	}
	ids, err := s.squads.ListParticipantsByRound(ctx, round)
	if err != nil {
		return RoundResult{}, fmt.Errorf("list participants round=%d: %w", round, err)
	}

	result = RoundResult{
		Round:               round,
		Participants:        len(ids),
		AllFixturesFinished: state.finished,
		Failures:            make([]ParticipantFailure, 0),
	}
	if len(ids) == 0 {
		return result, nil
	}

	workerCount := s.workers
	if workerCount > len(ids) {
		workerCount = len(ids)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RoundResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	outcomes := make(chan participantOutcome, len(ids))
	calculatedAt := s.now().UTC()

	var wg sync.WaitGroup
	for _, id := range ids {
		participantID := id
		wg.Add(1)
		if err := workerPool.Submit(func() {
			defer wg.Done()
			outcomes <- s.scoreParticipant(ctx, state, participantID, calculatedAt)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return RoundResult{}, fmt.Errorf("submit participant to worker pool: %w", err)
		}
	}
	wg.Wait()
	close(outcomes)

	for outcome := range outcomes {
		if outcome.failure != nil {
			result.Failures = append(result.Failures, *outcome.failure)
			s.metrics.ParticipantFailed(outcome.failure.Stage)
			continue
		}
		result.Scored++
		result.Substitutions += outcome.substitutions
		s.metrics.ParticipantScored()
		s.metrics.SubstitutionsMade(outcome.substitutions)
	}
	sortFailures(result.Failures)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	for _, f := range result.Failures {
		s.logger.WarnContext(ctx, "participant live score skipped",
			"round", round,
			"participant_id", f.ParticipantID,
			"stage", f.Stage,
			"error", f.Err,
		)
	}
	s.logger.InfoContext(ctx, "round live scores calculated",
		"round", round,
		"participants", result.Participants,
		"scored", result.Scored,
		"failed", len(result.Failures),
		"substitutions", result.Substitutions,
		"all_fixtures_finished", result.AllFixturesFinished,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, nil
}

func (s *LiveScoreService) scoreParticipant(ctx context.Context, state roundState, participantID int64, at time.Time) participantOutcome {
	fail := func(stage string, err error) participantOutcome {
		f := newParticipantFailure(participantID, stage, err)
		return participantOutcome{participantID: participantID, failure: &f}
	}

	if err := ctx.Err(); err != nil {
		return fail(StageLoadSquad, err)
	}
	squad, ok, err := s.squads.GetByRoundAndParticipant(ctx, state.round, participantID)
	if err != nil {
		return fail(StageLoadSquad, err)
	}
	if !ok {
		return fail(StageLoadSquad, ErrNotFound)
	}

	breakdown, subs, err := state.evaluate(squad)
	if err != nil {
		return fail(StageValidate, err)
	}
	if err := s.scores.UpsertLiveScore(ctx, breakdown.LiveScore(at)); err != nil {
		return fail(StageStore, err)
	}
	return participantOutcome{participantID: participantID, substitutions: subs.Len()}
}

type RefreshInput struct {
	LeagueID   int64
	Round      int
	SkipIngest bool
}

type RefreshResult struct {
	Ingest *IngestResult
	Score  RoundResult
}

// RefreshRound ingests the round from the provider (unless skipped) and rescores it.
func (s *LiveScoreService) RefreshRound(ctx context.Context, in RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveScoreService.RefreshRound", attribute.Int("round", in.Round))
	var err error
	defer func() { finishSpan(span, err) }()

	var out RefreshResult
	if !in.SkipIngest {
		if s.ingestion == nil {
			err = fmt.Errorf("%w: ingestion is not configured", ErrDependencyUnavailable)
			return RefreshResult{}, err
		}
		var ingested IngestResult
		ingested, err = s.ingestion.IngestRound(ctx, IngestInput{LeagueID: in.LeagueID, Round: in.Round})
		if err != nil {
			return RefreshResult{}, fmt.Errorf("ingest round: %w", err)
		}
		out.Ingest = &ingested
	}

	out.Score, err = s.ScoreRound(ctx, in.Round)
	if err != nil {
		return out, fmt.Errorf("score round: %w", err)
	}
	return out, nil
}

type LiveTableEntry struct {
	Rank          int
	ParticipantID int64
	EntryName     string
	PlayerName    string
	EventTotal    int
	CalculatedAt  time.Time
}

// ListLiveTable returns the round's stored scores, highest first. Equal totals share a rank
// and the next distinct total takes the following rank.
func (s *LiveScoreService) ListLiveTable(ctx context.Context, round int) ([]LiveTableEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveScoreService.ListLiveTable", attribute.Int("round", round))
	defer span.End()

	if round <= 0 {
		return nil, fmt.Errorf("%w: round must be greater than zero", ErrInvalidInput)
	}
	records, err := s.scores.ListLiveScoresByRound(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("list live scores round=%d: %w", round, err)
	}
	names := map[int64]participant.Participant{}
	if s.participants != nil {
		members, err := s.participants.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list participants: %w", err)
		}
		names = participant.Index(members)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].EventTotal != records[j].EventTotal {
			return records[i].EventTotal > records[j].EventTotal
		}
		return records[i].ParticipantID < records[j].ParticipantID
	})

	out := make([]LiveTableEntry, 0, len(records))
	rank := 0
	for i, record := range records {
		if i == 0 || record.EventTotal != records[i-1].EventTotal {
			rank++
		}
		member := names[record.ParticipantID]
		out = append(out, LiveTableEntry{
			Rank:          rank,
			ParticipantID: record.ParticipantID,
			EntryName:     member.EntryName,
			PlayerName:    member.PlayerName,
			EventTotal:    record.EventTotal,
			CalculatedAt:  record.CalculatedAt,
		})
	}
	return out, nil
}

type ParticipantBreakdown struct {
	scoring.Breakdown
	Substitutions       []fantasy.Substitution
	AllFixturesFinished bool
}

// GetParticipantBreakdown recomputes one participant's score from stored data without
// persisting it.
func (s *LiveScoreService) GetParticipantBreakdown(ctx context.Context, round int, participantID int64) (ParticipantBreakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveScoreService.GetParticipantBreakdown",
		attribute.Int("round", round),
		attribute.Int64("participant_id", participantID),
	)
	defer span.End()

	if round <= 0 || participantID <= 0 {
		return ParticipantBreakdown{}, fmt.Errorf("%w: round and participant id must be greater than zero", ErrInvalidInput)
	}
	squad, ok, err := s.squads.GetByRoundAndParticipant(ctx, round, participantID)
	if err != nil {
		return ParticipantBreakdown{}, fmt.Errorf("get squad round=%d participant=%d: %w", round, participantID, err)
	}
	if !ok {
		return ParticipantBreakdown{}, fmt.Errorf("%w: squad round=%d participant=%d", ErrNotFound, round, participantID)
	}

	state, err := s.loadRoundState(ctx, round)
	if err != nil {
		return ParticipantBreakdown{}, err
	}
	breakdown, subs, err := state.evaluate(squad)
	if err != nil {
		return ParticipantBreakdown{}, err
	}
	return ParticipantBreakdown{
		Breakdown:           breakdown,
		Substitutions:       subs.Substitutions(),
		AllFixturesFinished: state.finished,
	}, nil
}

// IsMalformedSquadFailure reports whether f was caused by squad validation.
func IsMalformedSquadFailure(f ParticipantFailure) bool {
	return errors.Is(f.Err, ErrMalformedSquad)
}
