package fplapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/participant"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/player"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/playerstats"
)

// maxStandingsPages bounds league paging against a provider that never clears has_next.
const maxStandingsPages = 400

func (c *Client) FetchPlayers(ctx context.Context) ([]player.Player, error) {
	var payload bootstrapResponse
	if err := c.getJSON(ctx, "bootstrap_static", "/bootstrap-static/", nil, &payload); err != nil {
		return nil, err
	}

	out := make([]player.Player, 0, len(payload.Elements))
	for _, item := range payload.Elements {
		pos, ok := player.PositionFromElementType(item.ElementType)
		if !ok {
			c.logger.DebugContext(ctx, "skip element with unknown element type", "element_id", item.ID, "element_type", item.ElementType)
			continue
		}
		name := strings.TrimSpace(item.WebName)
		if name == "" {
			name = strings.TrimSpace(item.FirstName + " " + item.SecondName)
		}
		out = append(out, player.Player{ID: item.ID, TeamID: item.Team, Name: name, Position: pos})
	}
	return out, nil
}

// CurrentRound returns the round flagged current, or the next one before the season starts.
func (c *Client) CurrentRound(ctx context.Context) (int, error) {
	var payload bootstrapResponse
	if err := c.getJSON(ctx, "bootstrap_static", "/bootstrap-static/", nil, &payload); err != nil {
		return 0, err
	}
	next := 0
	for _, event := range payload.Events {
		if event.IsCurrent {
			return event.ID, nil
		}
		if event.IsNext && next == 0 {
			next = event.ID
		}
	}
	if next > 0 {
		return next, nil
	}
	return 0, crerr.New("no current or next round in bootstrap payload")
}

func (c *Client) FetchFixtures(ctx context.Context, round int) ([]fixture.Fixture, error) {
	query := url.Values{}
	query.Set("event", strconv.Itoa(round))

	var payload []fixtureItem
	if err := c.getJSON(ctx, "fixtures", "/fixtures/", query, &payload); err != nil {
		return nil, err
	}

	out := make([]fixture.Fixture, 0, len(payload))
	for _, item := range payload {
		if item.Event != nil && *item.Event != round {
			continue
		}
		kickoff := parseKickoff(item.KickoffTime)
		started := item.Started != nil && *item.Started
		// provisional completion is what the provider itself uses for live substitutions
		finished := item.Finished || item.FinishedProvisional
		out = append(out, fixture.Fixture{
			ID:         item.ID,
			Round:      round,
			HomeTeamID: item.TeamH,
			AwayTeamID: item.TeamA,
			KickoffAt:  kickoff,
			Status:     fixture.StatusFromFlags(kickoff, started, finished),
			Finished:   finished,
		})
	}
	return out, nil
}

// FetchLivePerformances sums explain rows across every fixture of the round, so a player
// with two matches gets both. Elements without explain rows fall back to total_points.
func (c *Client) FetchLivePerformances(ctx context.Context, round int) ([]playerstats.Performance, error) {
	var payload liveResponse
	if err := c.getJSON(ctx, "event_live", fmt.Sprintf("/event/%d/live/", round), nil, &payload); err != nil {
		return nil, err
	}

	out := make([]playerstats.Performance, 0, len(payload.Elements))
	for _, item := range payload.Elements {
		points := item.Stats.TotalPoints
		if len(item.Explain) > 0 {
			points = 0
			for _, block := range item.Explain {
				for _, row := range block.Stats {
					points += row.Points
				}
			}
		}
		out = append(out, playerstats.Performance{
			Round:    round,
			PlayerID: item.ID,
			Points:   points,
			Minutes:  item.Stats.Minutes,
		})
	}
	return out, nil
}

func (c *Client) FetchLeagueParticipants(ctx context.Context, leagueID int64) ([]participant.Participant, error) {
	out := make([]participant.Participant, 0)
	seen := make(map[int64]struct{})
	for page := 1; page <= maxStandingsPages; page++ {
		query := url.Values{}
		query.Set("page_standings", strconv.Itoa(page))

		var payload standingsResponse
		path := fmt.Sprintf("/leagues-classic/%d/standings/", leagueID)
		if err := c.getJSON(ctx, "league_standings", path, query, &payload); err != nil {
			return nil, crerr.Wrapf(err, "standings page %d", page)
		}
		for _, row := range payload.Standings.Results {
			if _, dup := seen[row.Entry]; dup || row.Entry <= 0 {
				continue
			}
			seen[row.Entry] = struct{}{}
			out = append(out, participant.Participant{
				ID:         row.Entry,
				LeagueID:   leagueID,
				EntryName:  row.EntryName,
				PlayerName: row.PlayerName,
			})
		}
		if !payload.Standings.HasNext {
			return out, nil
		}
	}
	return nil, crerr.Newf("league %d standings exceeded %d pages", leagueID, maxStandingsPages)
}

func (c *Client) FetchSquad(ctx context.Context, participantID int64, round int) (fantasy.Squad, error) {
	var payload picksResponse
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", participantID, round)
	if err := c.getJSON(ctx, "entry_picks", path, nil, &payload); err != nil {
		return fantasy.Squad{}, err
	}

	chip := fantasy.ChipNone
	if payload.ActiveChip != nil {
		chip = fantasy.ParseChip(*payload.ActiveChip)
	}
	picks := make([]fantasy.Pick, 0, len(payload.Picks))
	for _, item := range payload.Picks {
		picks = append(picks, fantasy.Pick{
			Slot:          item.Position,
			PlayerID:      item.Element,
			Multiplier:    item.Multiplier,
			IsCaptain:     item.IsCaptain,
			IsViceCaptain: item.IsViceCaptain,
		})
	}
	return fantasy.Squad{
		Round:         round,
		ParticipantID: participantID,
		ActiveChip:    chip,
		TransferCost:  payload.EntryHistory.EventTransfersCost,
		Picks:         picks,
	}, nil
}

func parseKickoff(raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*raw))
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}
