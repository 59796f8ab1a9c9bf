// Package observability starts tracing, continuous profiling and the pprof listener.
package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/fantasy-livescore/internal/config"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Stack holds whatever was enabled at start. Shutdown stops it in reverse order.
type Stack struct {
	logger       *logging.Logger
	tracing      bool
	profiler     *pyroscope.Profiler
	pprofServer  *http.Server
	uptraceFlush func(context.Context) error
}

func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger.Named("observability"), uptraceFlush: uptrace.Shutdown}

	s.startTracing(cfg)
	if err := s.startProfiler(cfg); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, err
	}
	s.startPprof(cfg)
	return s, nil
}

func (s *Stack) startTracing(cfg config.Config) {
	switch {
	case !cfg.UptraceEnabled:
		s.logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		s.logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	s.tracing = true
	s.logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)
}

func (s *Stack) startProfiler(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		s.logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              map[string]string{"env": cfg.AppEnv, "service": cfg.ServiceName},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
		},
	})
	if err != nil {
		return err
	}
	s.profiler = profiler
	s.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

func (s *Stack) startPprof(cfg config.Config) {
	if !cfg.PprofEnabled {
		return
	}
	s.pprofServer = &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           pprofMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func(srv *http.Server) {
		s.logger.Info("pprof server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("pprof server failed", "error", err)
		}
	}(s.pprofServer)
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// Shutdown is safe on a nil or partially started Stack.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.pprofServer != nil {
		errs = append(errs, s.pprofServer.Shutdown(ctx))
		s.pprofServer = nil
	}
	if s.profiler != nil {
		errs = append(errs, s.profiler.Stop())
		s.profiler = nil
	}
	if s.tracing {
		errs = append(errs, s.uptraceFlush(ctx))
		s.tracing = false
	}
	return errors.Join(errs...)
}
