package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/scoring"
	qb "github.com/riskibarqy/fantasy-livescore/internal/platform/querybuilder"
)

type LiveScoreRepository struct {
	db *sqlx.DB
}

func NewLiveScoreRepository(db *sqlx.DB) *LiveScoreRepository {
	return &LiveScoreRepository{db: db}
}

func (r *LiveScoreRepository) UpsertLiveScore(ctx context.Context, score scoring.LiveScore) error {
	query, args, err := qb.InsertInto("live_scores").
		Columns(columnsOf(liveScoreTableModel{})...).
		Values(score.Round, score.ParticipantID, score.EventTotal, score.CalculatedAt.UTC()).
		OnConflict("round", "participant_id").
		DoUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert live score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert live score round=%d participant=%d: %w", score.Round, score.ParticipantID, err)
	}
	return nil
}

func (r *LiveScoreRepository) ListLiveScoresByRound(ctx context.Context, round int) ([]scoring.LiveScore, error) {
	query, args, err := qb.Select(columnsOf(liveScoreTableModel{})...).
		From("live_scores").
		Where(qb.Eq("round", round)).
		OrderBy("event_total DESC", "participant_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list live scores query: %w", err)
	}

	var rows []liveScoreTableModel
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list live scores round=%d: %w", round, err)
	}

	out := make([]scoring.LiveScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.LiveScore{
			Round:         row.Round,
			ParticipantID: row.ParticipantID,
			EventTotal:    row.EventTotal,
			CalculatedAt:  row.CalculatedAt.UTC(),
		})
	}
	return out, nil
}
