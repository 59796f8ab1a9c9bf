package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	LogLevel                   logging.Level
	CORSAllowedOrigins         []string
	StorageDriver              string
	DBURL                      string
	DBDisablePreparedBinary    bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	FPLBaseURL                 string
	FPLTimeout                 time.Duration
	FPLMaxRetries              int
	FPLCircuitEnabled          bool
	FPLCircuitFailureCount     int
	FPLCircuitOpenTimeout      time.Duration
	FPLCircuitHalfOpenMaxReq   int
	FPLLeagueID                int64
	LiveScoreWorkers           int
	LiveFetchConcurrency       int
	LiveRefreshEnabled         bool
	LiveRefreshInterval        time.Duration
	LiveRefreshRound           int
	InternalJobToken           string
	MetricsEnabled             bool
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	readTimeout, err := getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	storageDriver, err := parseStorageDriver(getEnv("STORAGE_DRIVER", StorageMemory))
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsPositiveDuration("CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}

	fplTimeout, err := getEnvAsPositiveDuration("FPL_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	fplMaxRetries, err := getEnvAsInt("FPL_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if fplMaxRetries < 0 {
		return Config{}, fmt.Errorf("FPL_MAX_RETRIES must be >= 0")
	}
	fplCircuitEnabled, err := strconv.ParseBool(getEnv("FPL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_ENABLED: %w", err)
	}
	fplCircuitFailureCount, err := getEnvAsInt("FPL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if fplCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	fplCircuitOpenTimeout, err := getEnvAsPositiveDuration("FPL_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	fplCircuitHalfOpenMaxReq, err := getEnvAsInt("FPL_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if fplCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	fplLeagueID, err := getEnvAsInt64("FPL_LEAGUE_ID", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_LEAGUE_ID: %w", err)
	}
	if fplLeagueID < 0 {
		return Config{}, fmt.Errorf("FPL_LEAGUE_ID must be >= 0")
	}

	liveScoreWorkers, err := getEnvAsInt("LIVE_SCORE_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_SCORE_WORKERS: %w", err)
	}
	if liveScoreWorkers < 1 {
		return Config{}, fmt.Errorf("LIVE_SCORE_WORKERS must be >= 1")
	}
	liveFetchConcurrency, err := getEnvAsInt("LIVE_FETCH_CONCURRENCY", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_FETCH_CONCURRENCY: %w", err)
	}
	if liveFetchConcurrency < 1 {
		return Config{}, fmt.Errorf("LIVE_FETCH_CONCURRENCY must be >= 1")
	}
	liveRefreshEnabled, err := strconv.ParseBool(getEnv("LIVE_REFRESH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_REFRESH_ENABLED: %w", err)
	}
	liveRefreshInterval, err := getEnvAsPositiveDuration("LIVE_REFRESH_INTERVAL", "1m")
	if err != nil {
		return Config{}, err
	}
	liveRefreshRound, err := getEnvAsInt("LIVE_REFRESH_ROUND", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_REFRESH_ROUND: %w", err)
	}
	if liveRefreshRound < 0 {
		return Config{}, fmt.Errorf("LIVE_REFRESH_ROUND must be >= 0")
	}
	if liveRefreshEnabled && fplLeagueID == 0 {
		return Config{}, fmt.Errorf("FPL_LEAGUE_ID is required when LIVE_REFRESH_ENABLED=true")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "fantasy-livescore"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		LogLevel:                   logLevel,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		StorageDriver:              storageDriver,
		DBURL:                      dbURL,
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		FPLBaseURL:                 strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		FPLTimeout:                 fplTimeout,
		FPLMaxRetries:              fplMaxRetries,
		FPLCircuitEnabled:          fplCircuitEnabled,
		FPLCircuitFailureCount:     fplCircuitFailureCount,
		FPLCircuitOpenTimeout:      fplCircuitOpenTimeout,
		FPLCircuitHalfOpenMaxReq:   fplCircuitHalfOpenMaxReq,
		FPLLeagueID:                fplLeagueID,
		LiveScoreWorkers:           liveScoreWorkers,
		LiveFetchConcurrency:       liveFetchConcurrency,
		LiveRefreshEnabled:         liveRefreshEnabled,
		LiveRefreshInterval:        liveRefreshInterval,
		LiveRefreshRound:           liveRefreshRound,
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		MetricsEnabled:             metricsEnabled,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.FPLBaseURL == "" {
		return Config{}, fmt.Errorf("FPL_BASE_URL cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StoragePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", v, StorageMemory, StoragePostgres)
	}
}
