package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RecordsScoringCounters(t *testing.T) {
	t.Parallel()

	m := NewManager(WithNamespace("test"))
	m.ParticipantScored()
	m.ParticipantScored()
	m.ParticipantFailed("malformed_squad")
	m.SubstitutionsMade(3)
	m.SubstitutionsMade(-1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.participantsScored))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.participantsFailed.WithLabelValues("malformed_squad")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.substitutions))
}

func TestManager_ProviderAndBreaker(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.ProviderRequest("event_live", nil, 10*time.Millisecond)
	m.ProviderRequest("event_live", errors.New("boom"), time.Second)
	m.BreakerState("fplapi", "open")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerRequests.WithLabelValues("event_live", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.breakerState.WithLabelValues("fplapi")))
}

func TestManager_Handler(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.HTTPRequest("GET /healthz", http.MethodGet, http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "fantasy_livescore_http_requests_total"))
}

func TestManager_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Manager
	assert.NotPanics(t, func() {
		m.ParticipantScored()
		m.ParticipantFailed("x")
		m.ObserveRoundStage("score", nil, time.Second)
		m.BreakerState("x", "open")
	})
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
