package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	qb "github.com/riskibarqy/fantasy-livescore/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByRoundAndParticipant(ctx context.Context, round int, participantID int64) (fantasy.Squad, bool, error) {
	query, args, err := qb.Select(columnsOf(squadTableModel{})...).
		From("squads").
		Where(
			qb.Eq("round", round),
			qb.Eq("participant_id", participantID),
		).
		ToSQL()
	if err != nil {
		return fantasy.Squad{}, false, fmt.Errorf("build get squad query: %w", err)
	}

	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Squad{}, false, nil
		}
		return fantasy.Squad{}, false, fmt.Errorf("get squad round=%d participant=%d: %w", round, participantID, err)
	}

	picksQuery, picksArgs, err := qb.Select(columnsOf(squadPickTableModel{})...).
		From("squad_picks").
		Where(
			qb.Eq("round", round),
			qb.Eq("participant_id", participantID),
		).
		OrderBy("pick_index").
		ToSQL()
	if err != nil {
		return fantasy.Squad{}, false, fmt.Errorf("build get squad picks query: %w", err)
	}

	var pickRows []squadPickTableModel
	if err := selectWithRetry(ctx, r.db, &pickRows, picksQuery, picksArgs...); err != nil {
		return fantasy.Squad{}, false, fmt.Errorf("get squad picks round=%d participant=%d: %w", round, participantID, err)
	}

	picks := make([]fantasy.Pick, 0, len(pickRows))
	for _, pick := range pickRows {
		picks = append(picks, fantasy.Pick{
			Slot:          pick.Slot,
			PlayerID:      pick.PlayerID,
			Multiplier:    pick.Multiplier,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}

	return fantasy.Squad{
		Round:         row.Round,
		ParticipantID: row.ParticipantID,
		ActiveChip:    fantasy.ParseChip(row.ActiveChip),
		TransferCost:  row.TransferCost,
		Picks:         picks,
	}, true, nil
}

func (r *SquadRepository) ListParticipantsByRound(ctx context.Context, round int) ([]int64, error) {
	query, args, err := qb.Select("participant_id").
		From("squads").
		Where(qb.Eq("round", round)).
		OrderBy("participant_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list squad participants query: %w", err)
	}

	var ids []int64
	if err := selectWithRetry(ctx, r.db, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list squad participants round=%d: %w", round, err)
	}
	return ids, nil
}

// Upsert replaces the squad header and all of its picks in one transaction.
func (r *SquadRepository) Upsert(ctx context.Context, squad fantasy.Squad) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert squad: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	header := []squadTableModel{{
		Round:         squad.Round,
		ParticipantID: squad.ParticipantID,
		ActiveChip:    string(squad.ActiveChip),
		TransferCost:  squad.TransferCost,
	}}
	if err := execUpsert(ctx, tx, "squads", header, []string{"round", "participant_id"}); err != nil {
		return err
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("squad_picks").
		Where(
			qb.Eq("round", squad.Round),
			qb.Eq("participant_id", squad.ParticipantID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete squad picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete squad picks participant=%d: %w", squad.ParticipantID, err)
	}

	picks := make([]squadPickTableModel, 0, len(squad.Picks))
	for i, pick := range squad.Picks {
		picks = append(picks, squadPickTableModel{
			Round:         squad.Round,
			ParticipantID: squad.ParticipantID,
			PickIndex:     i,
			Slot:          pick.Slot,
			PlayerID:      pick.PlayerID,
			Multiplier:    pick.Multiplier,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}
	if len(picks) > 0 {
		if err := execUpsert(ctx, tx, "squad_picks", picks, []string{"round", "participant_id", "pick_index"}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert squad tx: %w", err)
	}
	return nil
}
