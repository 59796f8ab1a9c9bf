package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-livescore/internal/usecase"
)

type Handler struct {
	liveScores      *usecase.LiveScoreService
	metrics         *metrics.Manager
	defaultLeagueID int64
	logger          *logging.Logger
	validator       *validator.Validate
}

// NewHandler wires the HTTP surface. defaultLeagueID is used by refresh jobs whose body
// omits league_id.
func NewHandler(
	liveScores *usecase.LiveScoreService,
	m *metrics.Manager,
	defaultLeagueID int64,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		liveScores:      liveScores,
		metrics:         m,
		defaultLeagueID: defaultLeagueID,
		logger:          logger.Named("httpapi"),
		validator:       validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.Handler().ServeHTTP(w, r)
}

func parsePositiveInt64(name, raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func pathRound(r *http.Request) (int, error) {
	value, err := parsePositiveInt64("round", r.PathValue("round"))
	if err != nil {
		return 0, err
	}
	return int(value), nil
}
