package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/MattRWallace/NHLPredictor/external/nhl"
	"github.com/MattRWallace/NHLPredictor/internal/config"
	"github.com/MattRWallace/NHLPredictor/internal/domain/game"
	"github.com/MattRWallace/NHLPredictor/internal/domain/goaliestats"
	"github.com/MattRWallace/NHLPredictor/internal/domain/player"
	"github.com/MattRWallace/NHLPredictor/internal/domain/rawdata"
	"github.com/MattRWallace/NHLPredictor/internal/domain/skaterstats"
	"github.com/MattRWallace/NHLPredictor/internal/infrastructure/repository/memory"
	"github.com/MattRWallace/NHLPredictor/internal/infrastructure/repository/postgres"
	"github.com/MattRWallace/NHLPredictor/internal/platform/logging"
	"github.com/MattRWallace/NHLPredictor/internal/platform/resilience"
	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

// App wires configuration, the provider client, the selected store, and the
// pipeline services for the command binaries.
type App struct {
	Config     config.Config
	Logger     *logging.Logger
	Builder    *usecase.BuilderService
	Summarizer *usecase.SummarizerService

	db *sqlx.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)

	var (
		db         *sqlx.DB
		gameRepo   game.Repository
		playerRepo player.Repository
		skaterRepo skaterstats.Repository
		goalieRepo goaliestats.Repository
		rawRepo    rawdata.Repository
	)
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err = sqlx.Connect("postgres", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		gameRepo = postgres.NewGameRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		skaterRepo = postgres.NewSkaterStatsRepository(db)
		goalieRepo = postgres.NewGoalieStatsRepository(db)
		rawRepo = postgres.NewRawDataRepository(db)
	default:
		gameRepo = memory.NewGameRepository()
		playerRepo = memory.NewPlayerRepository()
		skaterRepo = memory.NewSkaterStatsRepository()
		goalieRepo = memory.NewGoalieStatsRepository()
		rawRepo = memory.NewRawDataRepository()
	}

	client := nhl.NewClient(nhl.ClientConfig{
		BaseURL:    cfg.NHLBaseURL,
		Timeout:    cfg.NHLTimeout,
		MaxRetries: cfg.NHLMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLCircuitEnabled,
			FailureThreshold: cfg.NHLCircuitFailureCount,
			OpenTimeout:      cfg.NHLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLCircuitHalfOpenMax,
		},
	})

	builder := usecase.NewBuilderService(
		client, gameRepo, playerRepo, skaterRepo, goalieRepo, rawRepo, logger,
		usecase.BuilderConfig{
			MaxWorkers: cfg.BuilderMaxWorkers,
			ArchiveRaw: cfg.RawArchiveEnabled,
		},
	)
	summarizer := usecase.NewSummarizerService(gameRepo, skaterRepo, goalieRepo, logger)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Builder:    builder,
		Summarizer: summarizer,
		db:         db,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Warn("close database", "error", err)
		}
	}
	_ = a.Logger.Sync()
}
