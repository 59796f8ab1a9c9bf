package fplapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-livescore/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-livescore/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultUserAgent = "fantasy-livescore/1.0"
	maxResponseBytes = 8 << 20
	breakerName      = "fplapi"
)

var (
	errTransient = crerr.New("fpl api transient failure")
	// ErrNotFound is returned for 404 responses, e.g. an entry that has not picked for the round.
	ErrNotFound = crerr.New("fpl api resource not found")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	Metrics        *metrics.Manager
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the public fantasy API. Identical concurrent GETs share one request.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	metrics      *metrics.Manager
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("fplapi")

	var httpClient *http.Client
	if cfg.HTTPClient != nil {
		// shallow copy; the caller's client keeps its own timeout
		copied := *cfg.HTTPClient
		httpClient = &copied
	} else {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		cfg.Metrics.BreakerState(breakerName, string(to))
		logger.Warn("fpl api circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		userAgent:    userAgent,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
		metrics:      cfg.Metrics,
		breaker:      breaker,
	}
}

var _ usecase.LiveDataProvider = (*Client)(nil)

// getJSON fetches path and decodes the body into target. endpoint labels metrics.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, target any) error {
	started := time.Now()
	raw, err := c.fetch(ctx, path, query)
	c.metrics.ProviderRequest(endpoint, err, time.Since(started))
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode %s payload", endpoint)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "fpl api circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: fantasy data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// The shared request outlives any single caller's cancellation; the client timeout bounds it.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(flightCtx, fullURL)
		if reqErr != nil && crerr.Is(reqErr, errTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.roundTrip(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case status == http.StatusNotFound:
			return nil, crerr.Wrapf(ErrNotFound, "GET %s", fullURL)
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw)), errTransient)
		default:
			return nil, crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw))
		}

		if ctx.Err() != nil || attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "fpl api request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) roundTrip(ctx context.Context, fullURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return nil, resp.StatusCode, crerr.Wrap(err, "read response body")
	}
	// the pooled buffer is reused after Put
	return append([]byte(nil), buf.B...), resp.StatusCode, nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 200 {
		return text
	}
	return text[:200] + "..."
}
