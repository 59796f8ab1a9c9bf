package fplapi

type bootstrapResponse struct {
	Elements []bootstrapElement `json:"elements"`
	Teams    []bootstrapTeam    `json:"teams"`
	Events   []bootstrapEvent   `json:"events"`
}

type bootstrapElement struct {
	ID          int64  `json:"id"`
	Team        int64  `json:"team"`
	ElementType int    `json:"element_type"`
	WebName     string `json:"web_name"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
}

type bootstrapTeam struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type bootstrapEvent struct {
	ID          int  `json:"id"`
	IsCurrent   bool `json:"is_current"`
	IsNext      bool `json:"is_next"`
	Finished    bool `json:"finished"`
	DataChecked bool `json:"data_checked"`
}

type fixtureItem struct {
	ID                  int64   `json:"id"`
	Event               *int    `json:"event"`
	TeamH               int64   `json:"team_h"`
	TeamA               int64   `json:"team_a"`
	KickoffTime         *string `json:"kickoff_time"`
	Started             *bool   `json:"started"`
	Finished            bool    `json:"finished"`
	FinishedProvisional bool    `json:"finished_provisional"`
}

type liveResponse struct {
	Elements []liveElement `json:"elements"`
}

type liveElement struct {
	ID      int64         `json:"id"`
	Stats   liveStats     `json:"stats"`
	Explain []liveExplain `json:"explain"`
}

type liveStats struct {
	Minutes     int `json:"minutes"`
	TotalPoints int `json:"total_points"`
}

type liveExplain struct {
	Fixture int64            `json:"fixture"`
	Stats   []liveExplainRow `json:"stats"`
}

type liveExplainRow struct {
	Identifier string `json:"identifier"`
	Points     int    `json:"points"`
	Value      int    `json:"value"`
}

type standingsResponse struct {
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Standings struct {
		HasNext bool             `json:"has_next"`
		Page    int              `json:"page"`
		Results []standingResult `json:"results"`
	} `json:"standings"`
}

type standingResult struct {
	Entry      int64  `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	Total      int    `json:"total"`
}

type picksResponse struct {
	ActiveChip   *string      `json:"active_chip"`
	EntryHistory entryHistory `json:"entry_history"`
	Picks        []pickItem   `json:"picks"`
}

type entryHistory struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
}

type pickItem struct {
	Element       int64 `json:"element"`
	Position      int   `json:"position"`
	Multiplier    int   `json:"multiplier"`
	IsCaptain     bool  `json:"is_captain"`
	IsViceCaptain bool  `json:"is_vice_captain"`
}
