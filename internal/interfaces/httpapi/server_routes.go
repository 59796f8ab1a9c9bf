package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsEnabled {
		mux.HandleFunc("GET /metrics", handler.Metrics)
	}
}

func registerLiveScoreRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rounds/{round}/live-table", handler.GetLiveTable)
	mux.HandleFunc("GET /v1/rounds/{round}/participants/{participantID}/live", handler.GetParticipantLive)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/live-refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunLiveRefreshJob)))
}
