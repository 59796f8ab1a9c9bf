package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-livescore/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(columnsOf(playerTableModel{})...).
		From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:       row.ID,
			TeamID:   row.TeamID,
			Name:     row.Name,
			Position: player.Position(row.Position),
		})
	}
	return out, nil
}

func (r *PlayerRepository) UpsertMany(ctx context.Context, players []player.Player) error {
	rows := make([]playerTableModel, 0, len(players))
	for _, item := range players {
		rows = append(rows, playerTableModel{
			ID:       item.ID,
			TeamID:   item.TeamID,
			Name:     item.Name,
			Position: string(item.Position),
		})
	}
	return upsertModels(ctx, r.db, "players", rows, []string{"id"})
}
