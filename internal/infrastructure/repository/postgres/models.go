package postgres

import (
	"time"

	qb "github.com/riskibarqy/fantasy-livescore/internal/platform/querybuilder"
)

type playerTableModel struct {
	ID       int64  `db:"id"`
	TeamID   int64  `db:"team_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
}

type fixtureTableModel struct {
	ID         int64      `db:"id"`
	Round      int        `db:"round"`
	HomeTeamID int64      `db:"home_team_id"`
	AwayTeamID int64      `db:"away_team_id"`
	KickoffAt  *time.Time `db:"kickoff_at"`
	Status     string     `db:"status"`
	Finished   bool       `db:"finished"`
}

type playerRoundStatTableModel struct {
	Round    int   `db:"round"`
	PlayerID int64 `db:"player_id"`
	Points   int   `db:"points"`
	Minutes  int   `db:"minutes"`
}

type squadTableModel struct {
	Round         int    `db:"round"`
	ParticipantID int64  `db:"participant_id"`
	ActiveChip    string `db:"active_chip"`
	TransferCost  int    `db:"transfer_cost"`
}

// squadPickTableModel is keyed by pick_index so a squad with repeated slots can still be
// stored and rejected later by validation.
type squadPickTableModel struct {
	Round         int   `db:"round"`
	ParticipantID int64 `db:"participant_id"`
	PickIndex     int   `db:"pick_index"`
	Slot          int   `db:"slot"`
	PlayerID      int64 `db:"player_id"`
	Multiplier    int   `db:"multiplier"`
	IsCaptain     bool  `db:"is_captain"`
	IsViceCaptain bool  `db:"is_vice_captain"`
}

type liveScoreTableModel struct {
	Round         int       `db:"round"`
	ParticipantID int64     `db:"participant_id"`
	EventTotal    int       `db:"event_total"`
	CalculatedAt  time.Time `db:"calculated_at"`
}

type participantTableModel struct {
	ID         int64  `db:"id"`
	LeagueID   int64  `db:"league_id"`
	EntryName  string `db:"entry_name"`
	PlayerName string `db:"player_name"`
}

// columnsOf panics only on a programming error in the models above.
func columnsOf(model any) []string {
	cols, err := qb.Columns(model)
	if err != nil {
		panic(err)
	}
	return cols
}
