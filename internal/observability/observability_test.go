package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/fantasy-livescore/internal/config"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	stack, err := Start(config.Config{ServiceName: "fantasy-livescore", AppEnv: config.EnvDev}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if stack.tracing || stack.profiler != nil || stack.pprofServer != nil {
		t.Fatalf("expected nothing started, got %+v", stack)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_UptraceEnabledWithoutDSNIsNoop(t *testing.T) {
	stack, err := Start(config.Config{UptraceEnabled: true}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if stack.tracing {
		t.Fatalf("expected tracing to stay off without a DSN")
	}
}

func TestShutdown_NilStack(t *testing.T) {
	var stack *Stack
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown nil stack: %v", err)
	}
}

func TestShutdown_FlushesTracingOnce(t *testing.T) {
	calls := 0
	flushErr := errors.New("exporter unreachable")
	stack := &Stack{
		logger:  logging.NewNop(),
		tracing: true,
		uptraceFlush: func(context.Context) error {
			calls++
			return flushErr
		},
	}

	if err := stack.Shutdown(context.Background()); !errors.Is(err, flushErr) {
		t.Fatalf("expected flush error, got %v", err)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one flush, got %d", calls)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from pprof index, got %d", rec.Code)
	}
}
