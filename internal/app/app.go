package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-livescore/external/fplapi"
	"github.com/riskibarqy/fantasy-livescore/internal/config"
	"github.com/riskibarqy/fantasy-livescore/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-livescore/internal/observability"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-livescore/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived dependency of the service.
type App struct {
	cfg        config.Config
	logger     *logging.Logger
	metrics    *metrics.Manager
	db         *sqlx.DB
	provider   *fplapi.Client
	liveScores *usecase.LiveScoreService
	telemetry  *observability.Stack
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("start observability: %w", err)
	}

	a := &App{cfg: cfg, logger: logger, telemetry: telemetry}
	if cfg.MetricsEnabled {
		a.metrics = metrics.NewManager(metrics.WithRuntimeCollectors())
	}

	if cfg.StorageDriver == config.StoragePostgres {
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.db = db
	}
	repos := newRepositories(cfg, a.db)

	a.provider = fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		Logger:     logger,
		Metrics:    a.metrics,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})

	ingestion := usecase.NewIngestionService(
		a.provider,
		repos.players,
		repos.fixtures,
		repos.stats,
		repos.squads,
		repos.participants,
		usecase.IngestionConfig{FetchConcurrency: cfg.LiveFetchConcurrency},
		logger,
		a.metrics,
	)
	a.liveScores = usecase.NewLiveScoreService(
		repos.fixtures,
		repos.players,
		repos.stats,
		repos.squads,
		repos.scores,
		repos.participants,
		ingestion,
		usecase.LiveScoreConfig{Workers: cfg.LiveScoreWorkers},
		logger,
		a.metrics,
	)

	logger.Info("app initialized",
		"env", cfg.AppEnv,
		"storage", cfg.StorageDriver,
		"cache", cfg.CacheEnabled,
		"metrics", cfg.MetricsEnabled,
	)
	return a, nil
}

func (a *App) LiveScores() *usecase.LiveScoreService {
	return a.liveScores
}

// ResolveRound returns round when positive, otherwise the provider's current round.
func (a *App) ResolveRound(ctx context.Context, round int) (int, error) {
	if round > 0 {
		return round, nil
	}
	current, err := a.provider.CurrentRound(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve current round: %w", err)
	}
	return current, nil
}

func (a *App) NewHTTPServer() (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.liveScores, a.metrics, a.cfg.FPLLeagueID, a.logger)
	router := httpapi.NewRouter(handler, a.logger, a.metrics, httpapi.RouterConfig{
		CORSAllowedOrigins: a.cfg.CORSAllowedOrigins,
		InternalJobToken:   a.cfg.InternalJobToken,
		MetricsEnabled:     a.cfg.MetricsEnabled,
	})

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

// Serve runs the HTTP server and the optional live refresher until ctx is
// cancelled, then shuts them down.
func (a *App) Serve(ctx context.Context) error {
	srv, err := a.NewHTTPServer()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	refreshDone := make(chan struct{})
	if a.cfg.LiveRefreshEnabled {
		go func() {
			defer close(refreshDone)
			a.runRefresher(ctx)
		}()
	} else {
		close(refreshDone)
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	<-refreshDone
	a.logger.Info("http server stopped")
	return nil
}

func (a *App) runRefresher(ctx context.Context) {
	round, err := a.ResolveRound(ctx, a.cfg.LiveRefreshRound)
	if err != nil {
		a.logger.ErrorContext(ctx, "live refresher disabled", "error", err)
		return
	}

	refresher := usecase.NewLiveRefresher(a.liveScores, usecase.RefreshInput{
		LeagueID: a.cfg.FPLLeagueID,
		Round:    round,
	}, a.cfg.LiveRefreshInterval, a.logger.Named("refresher"))

	a.logger.InfoContext(ctx, "live refresher starting",
		"round", round,
		"league_id", a.cfg.FPLLeagueID,
		"interval", a.cfg.LiveRefreshInterval,
	)
	if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.WarnContext(ctx, "live refresher stopped", "error", err)
	}
}

// Close releases every dependency; it is safe on a partially built App.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	errs = append(errs, a.telemetry.Shutdown(ctx))
	return errors.Join(errs...)
}
