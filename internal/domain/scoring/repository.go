package scoring

import "context"

type Repository interface {
	// UpsertLiveScore inserts or fully replaces the record keyed by (round, participant).
	UpsertLiveScore(ctx context.Context, score LiveScore) error
	ListLiveScoresByRound(ctx context.Context, round int) ([]LiveScore, error)
}
