package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/metrics"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	InternalJobToken   string
	MetricsEnabled     bool
}

func NewRouter(handler *Handler, logger *logging.Logger, m *metrics.Manager, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsEnabled)
	registerLiveScoreRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	return RequestTracing(RequestLogging(logger, m, mux, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}
