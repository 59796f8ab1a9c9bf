package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/participant"
	qb "github.com/riskibarqy/fantasy-livescore/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	query, args, err := qb.Select(columnsOf(participantTableModel{})...).
		From("participants").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participants query: %w", err)
	}

	var rows []participantTableModel
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participant.Participant{
			ID:         row.ID,
			LeagueID:   row.LeagueID,
			EntryName:  row.EntryName,
			PlayerName: row.PlayerName,
		})
	}
	return out, nil
}

func (r *ParticipantRepository) UpsertMany(ctx context.Context, items []participant.Participant) error {
	rows := make([]participantTableModel, 0, len(items))
	for _, item := range participant.Index(items) {
		item = item.Normalize()
		rows = append(rows, participantTableModel{
			ID:         item.ID,
			LeagueID:   item.LeagueID,
			EntryName:  item.EntryName,
			PlayerName: item.PlayerName,
		})
	}
	return upsertModels(ctx, r.db, "participants", rows, []string{"id"})
}
