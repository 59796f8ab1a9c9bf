package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
)

const defaultRefreshInterval = time.Minute

type roundRefresher interface {
	RefreshRound(ctx context.Context, in RefreshInput) (RefreshResult, error)
}

// LiveRefresher repeats a round refresh on an interval while matches are in progress.
type LiveRefresher struct {
	service  roundRefresher
	input    RefreshInput
	interval time.Duration
	logger   *logging.Logger
}

func NewLiveRefresher(service roundRefresher, input RefreshInput, interval time.Duration, logger *logging.Logger) *LiveRefresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveRefresher{service: service, input: input, interval: interval, logger: logger}
}

// Run refreshes immediately and then on every tick. It returns nil after the first pass
// that observed every fixture of the round finished, or ctx.Err() on cancellation.
// A failed pass is logged and retried on the next tick.
func (r *LiveRefresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for pass := 1; ; pass++ {
		result, err := r.service.RefreshRound(ctx, r.input)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			r.logger.WarnContext(ctx, "live refresh pass failed", "round", r.input.Round, "pass", pass, "error", err)
		case result.Score.AllFixturesFinished:
			r.logger.InfoContext(ctx, "live refresh finished, all fixtures complete",
				"round", r.input.Round,
				"passes", pass,
				"scored", result.Score.Scored,
			)
			return nil
		default:
			r.logger.DebugContext(ctx, "live refresh pass completed",
				"round", r.input.Round,
				"pass", pass,
				"scored", result.Score.Scored,
				"failed", len(result.Score.Failures),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
