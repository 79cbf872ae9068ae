package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/the-gaffer/external/gemini"
	"github.com/riskibarqy/the-gaffer/internal/config"
	"github.com/riskibarqy/the-gaffer/internal/domain/fixture"
	"github.com/riskibarqy/the-gaffer/internal/domain/media"
	cacherepo "github.com/riskibarqy/the-gaffer/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/the-gaffer/internal/infrastructure/repository/kv"
	"github.com/riskibarqy/the-gaffer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/the-gaffer/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/the-gaffer/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/the-gaffer/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/the-gaffer/internal/platform/id"
	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
	"github.com/riskibarqy/the-gaffer/internal/platform/resilience"
	"github.com/riskibarqy/the-gaffer/internal/usecase"
)

const storageConnectTimeout = 10 * time.Second

// NewHTTPServer wires storage, services and the router. The returned cleanup
// releases the storage connection and the image edit pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, closeStore, err := newKVStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var fixtures fixture.Repository = memory.NewFixtureRepository(memory.SeedFixtures(time.Now()))
	if cfg.CacheEnabled {
		store = cacherepo.NewKVStore(store, cfg.CacheTTL)
		fixtures = cacherepo.NewFixtureRepository(fixtures, cfg.CacheTTL)
	}

	ids := idgen.NewRandomGenerator()
	solutions := kv.NewSolutionRepository(store, logger)
	completions := kv.NewCompletionRepository(store, logger)

	sessionSvc := usecase.NewSessionService(kv.NewSessionRepository(store, logger), logger)
	mediaSvc, err := usecase.NewMediaService(newImageEditor(cfg, logger), ids, logger, usecase.MediaServiceConfig{
		Workers:    cfg.ImageEditorWorkers,
		JobTimeout: cfg.ImageEditorTimeout,
		JobTTL:     cfg.ImageEditorJobTTL,
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	handler := httpapi.NewHandler(
		sessionSvc,
		usecase.NewOnboardingService(sessionSvc, ids),
		usecase.NewRegulationsService(sessionSvc),
		usecase.NewDashboardService(sessionSvc, fixtures, solutions, completions, ids, logger),
		usecase.NewLeagueTableService(sessionSvc),
		usecase.NewVaultService(sessionSvc, fixtures, solutions),
		mediaSvc,
		cfg.UploadMaxBytes,
		logger,
	)
	router := httpapi.NewRouter(handler, sessionSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func() {
		mediaSvc.Close()
		closeStore()
	}

	return server, cleanup, nil
}

func newKVStore(cfg config.Config, logger *logging.Logger) (kvstore.Store, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), storageConnectTimeout)
	defer cancel()

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := sqlx.ConnectContext(ctx, "postgres", postgres.DSN(cfg.DBURL, cfg.DBDisablePreparedBinary))
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", postgres.DatabaseName(cfg.DBURL))
		return postgres.NewKVStore(db), func() {
			if err := db.Close(); err != nil {
				logger.Warn("close postgres failed", "error", err)
			}
		}, nil
	case config.StorageRedis:
		client, err := redisrepo.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return redisrepo.NewKVStore(client, redisrepo.DefaultKeyPrefix), func() {
			if err := client.Close(); err != nil {
				logger.Warn("close redis failed", "error", err)
			}
		}, nil
	case config.StorageMemory:
		logger.Warn("storage ready", "driver", cfg.StorageDriver, "note", "state is lost on restart")
		return memory.NewKVStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// newImageEditor returns nil when no API key is configured, which disables
// the media routes.
func newImageEditor(cfg config.Config, logger *logging.Logger) media.Editor {
	if !cfg.ImageEditorEnabled() {
		logger.Info("image editor disabled", "reason", "IMAGE_EDITOR_API_KEY empty")
		return nil
	}

	return gemini.NewClient(gemini.Config{
		BaseURL: cfg.ImageEditorBaseURL,
		APIKey:  cfg.ImageEditorAPIKey,
		Model:   cfg.ImageEditorModel,
		Timeout: cfg.ImageEditorTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ImageEditorCircuitEnabled,
			FailureThreshold: cfg.ImageEditorCircuitFailureCount,
			OpenTimeout:      cfg.ImageEditorCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ImageEditorCircuitHalfOpenMax,
		},
	}, logger)
}
