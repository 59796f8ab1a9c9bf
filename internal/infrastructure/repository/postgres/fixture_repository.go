package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	qb "github.com/riskibarqy/fantasy-livescore/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListByRound(ctx context.Context, round int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(columnsOf(fixtureTableModel{})...).
		From("fixtures").
		Where(qb.Eq("round", round)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by round query: %w", err)
	}

	var rows []fixtureTableModel
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by round=%d: %w", round, err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture{
			ID:         row.ID,
			Round:      row.Round,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			KickoffAt:  row.KickoffAt,
			Status:     fixture.NormalizeStatus(row.Status),
			Finished:   row.Finished,
		})
	}
	return out, nil
}

func (r *FixtureRepository) UpsertMany(ctx context.Context, fixtures []fixture.Fixture) error {
	rows := make([]fixtureTableModel, 0, len(fixtures))
	for _, item := range fixtures {
		rows = append(rows, fixtureTableModel{
			ID:         item.ID,
			Round:      item.Round,
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			KickoffAt:  item.KickoffAt,
			Status:     fixture.NormalizeStatus(item.Status),
			Finished:   item.Finished,
		})
	}
	return upsertModels(ctx, r.db, "fixtures", rows, []string{"id"})
}
