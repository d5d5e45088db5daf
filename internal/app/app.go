package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pompeytony/wff-predictor/external/scorefeed"
	"github.com/pompeytony/wff-predictor/internal/config"
	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/domain/gameweek"
	"github.com/pompeytony/wff-predictor/internal/domain/player"
	"github.com/pompeytony/wff-predictor/internal/domain/prediction"
	"github.com/pompeytony/wff-predictor/internal/domain/standings"
	cachedrepo "github.com/pompeytony/wff-predictor/internal/infrastructure/repository/cache"
	"github.com/pompeytony/wff-predictor/internal/infrastructure/repository/memory"
	"github.com/pompeytony/wff-predictor/internal/infrastructure/repository/postgres"
	"github.com/pompeytony/wff-predictor/internal/interfaces/httpapi"
	basecache "github.com/pompeytony/wff-predictor/internal/platform/cache"
	idgen "github.com/pompeytony/wff-predictor/internal/platform/id"
	"github.com/pompeytony/wff-predictor/internal/platform/logging"
	"github.com/pompeytony/wff-predictor/internal/platform/resilience"
	"github.com/pompeytony/wff-predictor/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
)

type repositories struct {
	players      player.Repository
	gameweeks    gameweek.Repository
	fixtures     fixture.Repository
	predictions  prediction.Repository
	weeklyScores standings.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router. The
// returned cleanup closes the database connection when one was opened.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cachedrepo.NewPlayerRepository(repos.players, store)
		repos.gameweeks = cachedrepo.NewGameweekRepository(repos.gameweeks, store)
		repos.fixtures = cachedrepo.NewFixtureRepository(repos.fixtures, store)
		repos.weeklyScores = cachedrepo.NewWeeklyScoreRepository(repos.weeklyScores, store)
	}

	svcLogger := logging.Default()
	tableCache := basecache.NewStore(cfg.CacheTTL)

	playerSvc := usecase.NewPlayerService(repos.players, idgen.NewRandomGenerator())
	gameweekSvc := usecase.NewGameweekService(repos.gameweeks, repos.predictions, repos.weeklyScores, tableCache)
	predictionSvc := usecase.NewPredictionService(repos.players, repos.fixtures, repos.gameweeks, repos.predictions, gameweekSvc)
	fixtureSvc := usecase.NewFixtureService(repos.gameweeks, repos.fixtures)
	resultSvc := usecase.NewResultService(repos.fixtures, repos.predictions, gameweekSvc, svcLogger, cfg.RescoreMaxWorkers)
	tableSvc := usecase.NewTableService(repos.players, repos.gameweeks, repos.predictions, repos.weeklyScores, tableCache)

	var feed usecase.ScoreFeed
	if cfg.ScoreFeedEnabled {
		feed = scorefeed.NewClient(scorefeed.ClientConfig{
			BaseURL:    cfg.ScoreFeedBaseURL,
			Token:      cfg.ScoreFeedToken,
			Timeout:    cfg.ScoreFeedTimeout,
			MaxRetries: cfg.ScoreFeedMaxRetries,
			Logger:     svcLogger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ScoreFeedCircuitEnabled,
				FailureThreshold: cfg.ScoreFeedCircuitFailureCount,
				OpenTimeout:      cfg.ScoreFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ScoreFeedCircuitHalfOpenMaxReq,
			},
		})
	}
	resultSyncSvc := usecase.NewResultSyncService(feed, repos.fixtures, resultSvc, svcLogger)

	handler := httpapi.NewHandler(
		playerSvc,
		predictionSvc,
		fixtureSvc,
		resultSvc,
		gameweekSvc,
		tableSvc,
		resultSyncSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, func(), error) {
	if useMemoryStorage(cfg.DBURL) {
		logger.Info("using in-memory storage", "reason", "DB_URL empty or set to memory")
		return repositories{
			players:      memory.NewPlayerRepository(memory.SeedPlayers()),
			gameweeks:    memory.NewGameweekRepository(memory.SeedGameweeks()),
			fixtures:     memory.NewFixtureRepository(memory.SeedFixtures()),
			predictions:  memory.NewPredictionRepository(),
			weeklyScores: memory.NewWeeklyScoreRepository(),
		}, func() {}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	}

	return repositories{
		players:      postgres.NewPlayerRepository(db),
		gameweeks:    postgres.NewGameweekRepository(db),
		fixtures:     postgres.NewFixtureRepository(db),
		predictions:  postgres.NewPredictionRepository(db),
		weeklyScores: postgres.NewWeeklyScoreRepository(db),
	}, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", dbURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func useMemoryStorage(dbURL string) bool {
	value := strings.ToLower(strings.TrimSpace(dbURL))
	return value == "" || value == "memory"
}
