package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
	qb "github.com/riskibarqy/fantasy-livescore/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) ListByRound(ctx context.Context, round int) ([]playerstats.Performance, error) {
	query, args, err := qb.Select(columnsOf(playerRoundStatTableModel{})...).
		From("player_round_stats").
		Where(qb.Eq("round", round)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player round stats query: %w", err)
	}

	var rows []playerRoundStatTableModel
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player round stats round=%d: %w", round, err)
	}

	out := make([]playerstats.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.Performance{
			Round:    row.Round,
			PlayerID: row.PlayerID,
			Points:   row.Points,
			Minutes:  row.Minutes,
		})
	}
	return out, nil
}

func (r *PlayerStatsRepository) UpsertMany(ctx context.Context, round int, items []playerstats.Performance) error {
	rows := make([]playerRoundStatTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, playerRoundStatTableModel{
			Round:    round,
			PlayerID: item.PlayerID,
			Points:   item.Points,
			Minutes:  item.Minutes,
		})
	}
	return upsertModels(ctx, r.db, "player_round_stats", rows, []string{"round", "player_id"})
}
