package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-livescore/internal/usecase"
)

func (h *Handler) GetLiveTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveTable")
	defer span.End()

	round, err := pathRound(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.liveScores.ListLiveTable(ctx, round)
	if err != nil {
		h.logger.WarnContext(ctx, "list live table failed", "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, liveTableToDTO(round, entries))
}

func (h *Handler) GetParticipantLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetParticipantLive")
	defer span.End()

	round, err := pathRound(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	participantID, err := parsePositiveInt64("participantID", r.PathValue("participantID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	breakdown, err := h.liveScores.GetParticipantBreakdown(ctx, round, participantID)
	if err != nil {
		h.logger.WarnContext(ctx, "get participant breakdown failed", "round", round, "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, breakdownToDTO(breakdown))
}

func (h *Handler) RunLiveRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLiveRefreshJob")
	defer span.End()

	var req liveRefreshRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := req.LeagueID
	if leagueID == 0 {
		leagueID = h.defaultLeagueID
	}
	if !req.SkipIngest && leagueID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: league_id is required unless skip_ingest is set", usecase.ErrInvalidInput))
		return
	}

	result, err := h.liveScores.RefreshRound(ctx, usecase.RefreshInput{
		LeagueID:   leagueID,
		Round:      req.Round,
		SkipIngest: req.SkipIngest,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run live refresh job failed", "league_id", leagueID, "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refreshResultToDTO(result))
}
