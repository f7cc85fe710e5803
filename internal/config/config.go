package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MattRWallace/NHLPredictor/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config stores runtime configuration for the pipeline binaries.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	StoreDriver string
	DBURL       string

	NHLBaseURL             string
	NHLTimeout             time.Duration
	NHLMaxRetries          int
	NHLCircuitEnabled      bool
	NHLCircuitFailureCount int
	NHLCircuitOpenTimeout  time.Duration
	NHLCircuitHalfOpenMax  int

	BuilderSeasons    []string
	BuilderMaxWorkers int
	RawArchiveEnabled bool

	DatasetOutput string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storeDriver := strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", StoreMemory)))
	switch storeDriver {
	case StoreMemory, StorePostgres:
	default:
		return Config{}, fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s", storeDriver, StoreMemory, StorePostgres)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storeDriver == StorePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORE_DRIVER=postgres")
	}

	nhlTimeout, err := time.ParseDuration(getEnv("NHL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_TIMEOUT: %w", err)
	}
	if nhlTimeout <= 0 {
		return Config{}, fmt.Errorf("NHL_TIMEOUT must be > 0")
	}

	nhlMaxRetries, err := getEnvAsInt("NHL_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_MAX_RETRIES: %w", err)
	}
	if nhlMaxRetries < 0 {
		return Config{}, fmt.Errorf("NHL_MAX_RETRIES must be >= 0")
	}

	nhlCircuitEnabled, err := strconv.ParseBool(getEnv("NHL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_ENABLED: %w", err)
	}

	nhlCircuitFailureCount, err := getEnvAsInt("NHL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if nhlCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NHL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	nhlCircuitOpenTimeout, err := time.ParseDuration(getEnv("NHL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if nhlCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NHL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	nhlCircuitHalfOpenMax, err := getEnvAsInt("NHL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if nhlCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("NHL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	builderMaxWorkers, err := getEnvAsInt("BUILDER_MAX_WORKERS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse BUILDER_MAX_WORKERS: %w", err)
	}
	if builderMaxWorkers < 1 {
		return Config{}, fmt.Errorf("BUILDER_MAX_WORKERS must be >= 1")
	}

	rawArchiveEnabled, err := strconv.ParseBool(getEnv("RAW_ARCHIVE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RAW_ARCHIVE_ENABLED: %w", err)
	}

	seasons, err := parseSeasons(getEnv("BUILDER_SEASONS", "current"), time.Now())
	if err != nil {
		return Config{}, fmt.Errorf("parse BUILDER_SEASONS: %w", err)
	}

	return Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "nhl-predictor"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:               parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		StoreDriver:            storeDriver,
		DBURL:                  dbURL,
		NHLBaseURL:             strings.TrimSpace(getEnv("NHL_BASE_URL", "https://api-web.nhle.com/v1")),
		NHLTimeout:             nhlTimeout,
		NHLMaxRetries:          nhlMaxRetries,
		NHLCircuitEnabled:      nhlCircuitEnabled,
		NHLCircuitFailureCount: nhlCircuitFailureCount,
		NHLCircuitOpenTimeout:  nhlCircuitOpenTimeout,
		NHLCircuitHalfOpenMax:  nhlCircuitHalfOpenMax,
		BuilderSeasons:         seasons,
		BuilderMaxWorkers:      builderMaxWorkers,
		RawArchiveEnabled:      rawArchiveEnabled,
		DatasetOutput:          strings.TrimSpace(getEnv("DATASET_OUTPUT", "dataset.csv")),
	}, nil
}

// parseSeasons accepts a comma-separated list of 8-digit season codes
// ("20232024") and the keyword "current", which resolves from the wall clock.
// The NHL season rolls over in July.
func parseSeasons(raw string, now time.Time) ([]string, error) {
	items := splitCSV(raw)
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one season is required")
	}

	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		season := strings.ToLower(item)
		if season == "current" {
			season = CurrentSeason(now)
		}
		if len(season) != 8 {
			return nil, fmt.Errorf("invalid season %q, expected form 20232024", item)
		}
		first, err := strconv.Atoi(season[:4])
		if err != nil {
			return nil, fmt.Errorf("invalid season %q: %w", item, err)
		}
		second, err := strconv.Atoi(season[4:])
		if err != nil {
			return nil, fmt.Errorf("invalid season %q: %w", item, err)
		}
		if second != first+1 {
			return nil, fmt.Errorf("invalid season %q: years must be consecutive", item)
		}
		if _, ok := seen[season]; ok {
			continue
		}
		seen[season] = struct{}{}
		out = append(out, season)
	}

	return out, nil
}

func CurrentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() < time.July {
		year--
	}
	return fmt.Sprintf("%d%d", year, year+1)
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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
