package querybuilder

import (
	"errors"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("participant_id", "event_total").
		From("live_scores").
		Where(Eq("round", 7), Eq("participant_id", int64(3))).
		OrderBy("event_total DESC", "participant_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT participant_id, event_total FROM live_scores WHERE round = $1 AND participant_id = $2 ORDER BY event_total DESC, participant_id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != 7 || args[1] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_OnConflictDoUpdate(t *testing.T) {
	query, args, err := InsertInto("live_scores").
		Columns("round", "participant_id", "event_total").
		Values(7, int64(42), 55).
		Values(7, int64(43), 61).
		OnConflict("round", "participant_id").
		DoUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO live_scores (round, participant_id, event_total) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (round, participant_id) DO UPDATE SET event_total = EXCLUDED.event_total"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_Errors(t *testing.T) {
	if _, _, err := InsertInto("t").Columns("a").ToSQL(); !errors.Is(err, ErrMissingRows) {
		t.Fatalf("expected missing rows, got %v", err)
	}
	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected row width error")
	}
	if _, _, err := Select().From("t").ToSQL(); !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected missing columns, got %v", err)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("squad_picks").Where(Eq("round", 7), Eq("participant_id", int64(42))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM squad_picks WHERE round = $1 AND participant_id = $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type pickRow struct {
	Round    int    `db:"round"`
	PlayerID int64  `db:"player_id"`
	Note     string `db:"-"`
	hidden   int
}

func TestInsertModels(t *testing.T) {
	b, err := InsertModels("squad_picks", []pickRow{{Round: 7, PlayerID: 1}, {Round: 7, PlayerID: 2, hidden: 1}})
	if err != nil {
		t.Fatalf("insert models: %v", err)
	}
	query, args, err := b.OnConflict("round", "player_id").DoUpdate().ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	want := "INSERT INTO squad_picks (round, player_id) VALUES ($1, $2), ($3, $4) ON CONFLICT (round, player_id) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 || args[3] != int64(2) {
		t.Fatalf("unexpected args: %+v", args)
	}

	cols, err := Columns(&pickRow{})
	if err != nil || len(cols) != 2 {
		t.Fatalf("unexpected columns %v err %v", cols, err)
	}
}
