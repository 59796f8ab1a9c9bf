package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-livescore/internal/usecase"
)

type liveRefreshRequest struct {
	LeagueID   int64 `json:"league_id" validate:"gte=0"`
	Round      int   `json:"round" validate:"required,gt=0,lte=60"`
	SkipIngest bool  `json:"skip_ingest"`
}

type liveTableDTO struct {
	Round   int                 `json:"round"`
	Entries []liveTableEntryDTO `json:"entries"`
}

type liveTableEntryDTO struct {
	Rank          int    `json:"rank"`
	ParticipantID int64  `json:"participant_id"`
	EntryName     string `json:"entry_name"`
	PlayerName    string `json:"player_name"`
	EventTotal    int    `json:"event_total"`
	CalculatedAt  string `json:"calculated_at"`
}

type breakdownDTO struct {
	Round               int               `json:"round"`
	ParticipantID       int64             `json:"participant_id"`
	ActiveChip          string            `json:"active_chip"`
	TransferCost        int               `json:"transfer_cost"`
	EventTotal          int               `json:"event_total"`
	AllFixturesFinished bool              `json:"all_fixtures_finished"`
	Picks               []pickPointsDTO   `json:"picks"`
	Substitutions       []substitutionDTO `json:"substitutions"`
}

type pickPointsDTO struct {
	Slot          int   `json:"slot"`
	PlayerID      int64 `json:"player_id"`
	Multiplier    int   `json:"multiplier"`
	IsCaptain     bool  `json:"is_captain"`
	IsViceCaptain bool  `json:"is_vice_captain"`
	Minutes       int   `json:"minutes"`
	BasePoints    int   `json:"base_points"`
	Counted       bool  `json:"counted"`
	AutoSubbedIn  bool  `json:"auto_subbed_in"`
	CountedPoints int   `json:"counted_points"`
}

type substitutionDTO struct {
	OutSlot     int   `json:"out_slot"`
	OutPlayerID int64 `json:"out_player_id"`
	InSlot      int   `json:"in_slot"`
	InPlayerID  int64 `json:"in_player_id"`
}

type refreshResultDTO struct {
	Ingest *ingestResultDTO `json:"ingest,omitempty"`
	Score  roundResultDTO   `json:"score"`
}

type ingestResultDTO struct {
	Players      int          `json:"players"`
	Fixtures     int          `json:"fixtures"`
	Performances int          `json:"performances"`
	Participants int          `json:"participants"`
	Squads       int          `json:"squads"`
	Failures     []failureDTO `json:"failures"`
}

type roundResultDTO struct {
	Round               int          `json:"round"`
	Participants        int          `json:"participants"`
	Scored              int          `json:"scored"`
	Substitutions       int          `json:"substitutions"`
	AllFixturesFinished bool         `json:"all_fixtures_finished"`
	Failures            []failureDTO `json:"failures"`
}

type failureDTO struct {
	ParticipantID  int64  `json:"participant_id"`
	Stage          string `json:"stage"`
	MalformedSquad bool   `json:"malformed_squad"`
	Message        string `json:"message"`
}

func liveTableToDTO(round int, entries []usecase.LiveTableEntry) liveTableDTO {
	out := liveTableDTO{Round: round, Entries: make([]liveTableEntryDTO, 0, len(entries))}
	for _, entry := range entries {
		out.Entries = append(out.Entries, liveTableEntryDTO{
			Rank:          entry.Rank,
			ParticipantID: entry.ParticipantID,
			EntryName:     entry.EntryName,
			PlayerName:    entry.PlayerName,
			EventTotal:    entry.EventTotal,
			CalculatedAt:  entry.CalculatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func breakdownToDTO(v usecase.ParticipantBreakdown) breakdownDTO {
	out := breakdownDTO{
		Round:               v.Round,
		ParticipantID:       v.ParticipantID,
		ActiveChip:          v.ActiveChip,
		TransferCost:        v.TransferCost,
		EventTotal:          v.EventTotal,
		AllFixturesFinished: v.AllFixturesFinished,
		Picks:               make([]pickPointsDTO, 0, len(v.Picks)),
		Substitutions:       make([]substitutionDTO, 0, len(v.Substitutions)),
	}
	for _, pick := range v.Picks {
		out.Picks = append(out.Picks, pickPointsDTO{
			Slot:          pick.Slot,
			PlayerID:      pick.PlayerID,
			Multiplier:    pick.Multiplier,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
			Minutes:       pick.Minutes,
			BasePoints:    pick.BasePoints,
			Counted:       pick.Counted,
			AutoSubbedIn:  pick.AutoSubbedIn,
			CountedPoints: pick.CountedPoints,
		})
	}
	for _, sub := range v.Substitutions {
		out.Substitutions = append(out.Substitutions, substitutionDTO{
			OutSlot:     sub.OutSlot,
			OutPlayerID: sub.OutPlayerID,
			InSlot:      sub.InSlot,
			InPlayerID:  sub.InPlayerID,
		})
	}
	return out
}

func refreshResultToDTO(v usecase.RefreshResult) refreshResultDTO {
	out := refreshResultDTO{
		Score: roundResultDTO{
			Round:               v.Score.Round,
			Participants:        v.Score.Participants,
			Scored:              v.Score.Scored,
			Substitutions:       v.Score.Substitutions,
			AllFixturesFinished: v.Score.AllFixturesFinished,
			Failures:            failuresToDTO(v.Score.Failures),
		},
	}
	if v.Ingest != nil {
		out.Ingest = &ingestResultDTO{
			Players:      v.Ingest.Players,
			Fixtures:     v.Ingest.Fixtures,
			Performances: v.Ingest.Performances,
			Participants: v.Ingest.Participants,
			Squads:       v.Ingest.Squads,
			Failures:     failuresToDTO(v.Ingest.Failures),
		}
	}
	return out
}

func failuresToDTO(items []usecase.ParticipantFailure) []failureDTO {
	out := make([]failureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, failureDTO{
			ParticipantID:  item.ParticipantID,
			Stage:          item.Stage,
			MalformedSquad: usecase.IsMalformedSquadFailure(item),
			Message:        item.Error(),
		})
	}
	return out
}
