package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/afriquefoot/matchlive/external/scoreboard"
	"github.com/afriquefoot/matchlive/internal/config"
	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	"github.com/afriquefoot/matchlive/internal/domain/prematch"
	"github.com/afriquefoot/matchlive/internal/domain/stream"
	"github.com/afriquefoot/matchlive/internal/infrastructure/repository/cache"
	"github.com/afriquefoot/matchlive/internal/infrastructure/repository/postgres"
	"github.com/afriquefoot/matchlive/internal/infrastructure/revalidation"
	"github.com/afriquefoot/matchlive/internal/interfaces/httpapi"
	basecache "github.com/afriquefoot/matchlive/internal/platform/cache"
	"github.com/afriquefoot/matchlive/internal/platform/logging"
	"github.com/afriquefoot/matchlive/internal/platform/resilience"
	"github.com/afriquefoot/matchlive/internal/usecase"
)

// App owns the process-wide resources: the HTTP server, the database pool
// and the revalidation worker pool.
type App struct {
	Server       *http.Server
	DB           *sqlx.DB
	Revalidation *usecase.RevalidationService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	var (
		commentaryRepo commentary.Repository = postgres.NewCommentaryRepository(db)
		streamRepo     stream.Repository     = postgres.NewStreamRepository(db)
		prematchSource prematch.Source       = postgres.NewPrematchSource(db)
	)

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		commentaryRepo = cache.NewCommentaryRepository(commentaryRepo, store)
		streamRepo = cache.NewStreamRepository(streamRepo, store)
		prematchSource = cache.NewPrematchSource(prematchSource, store)
	}

	var feed usecase.ScoreFeed
	if cfg.ScoreboardEnabled {
		feed = scoreboard.NewClient(scoreboard.ClientConfig{
			BaseURL:     cfg.ScoreboardBaseURL,
			Competition: cfg.ScoreboardCompetition,
			Timeout:     cfg.ScoreboardTimeout,
			MaxRetries:  cfg.ScoreboardMaxRetries,
			Logger:      logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ScoreboardCircuitEnabled,
				FailureThreshold: cfg.ScoreboardCircuitFailureCount,
				OpenTimeout:      cfg.ScoreboardCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ScoreboardCircuitHalfOpenMaxReq,
			},
		})
	}

	var pageRevalidator usecase.PageRevalidator
	if cfg.RevalidateEnabled {
		pageRevalidator = revalidation.NewClient(revalidation.ClientConfig{
			BaseURL: cfg.RevalidateBaseURL,
			Secret:  cfg.RevalidateSecret,
			Retries: cfg.RevalidateRetries,
			Timeout: cfg.RevalidateTimeout,
			Logger:  logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.RevalidateCircuitEnabled,
				FailureThreshold: cfg.RevalidateCircuitFailureCount,
				OpenTimeout:      cfg.RevalidateCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.RevalidateCircuitHalfOpenMaxReq,
			},
		})
	}

	revalidationService, err := usecase.NewRevalidationService(
		pageRevalidator,
		cfg.RevalidateWorkers,
		cfg.RevalidateTimeout,
		logger,
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("build revalidation service: %w", err)
	}

	commentaryService := usecase.NewCommentaryService(commentaryRepo, cfg.CommentaryPageLimit)
	handler := httpapi.NewHandler(
		usecase.NewIngestionService(commentaryRepo, revalidationService),
		commentaryService,
		usecase.NewLiveUpdateService(commentaryService, feed, logger),
		usecase.NewStreamService(streamRepo, revalidationService),
		usecase.NewDiscoveryService(commentaryRepo, prematchSource, logger),
	)

	router := httpapi.NewRouter(handler, cfg.WebhookSecret, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:       server,
		DB:           db,
		Revalidation: revalidationService,
	}, nil
}

// Close releases everything except the HTTP server, which the caller shuts
// down first so in-flight requests can still reach the database.
func (a *App) Close(_ context.Context) error {
	a.Revalidation.Close()
	return a.DB.Close()
}
