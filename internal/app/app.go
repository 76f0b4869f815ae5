// Package app wires configuration, storage, cache, the scoring engine and
// the HTTP surface into one runnable unit.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/api"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/config"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/recommend"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/repository"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/service"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/pkg/cache"
	dbbuilder "github.com/catarina-mdias/twitter-customer-support-app-sub001/pkg/database"
)

type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	perf       *service.PerformanceService
	httpServer *http.Server
	watchStop  context.CancelFunc
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("database pool initialized", zap.String("path", cfg.DBPath))

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("cache client initialized", zap.String("addr", cfg.RedisAddr))

	ticketRepo := repository.NewTicketRepository(dbPool)
	if err := ticketRepo.EnsureSchema(ctx); err != nil {
		cacheClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("schema init failed: %w", err)
	}

	scoringCfg, err := config.LoadScoring(cfg.ScoringConfigPath)
	if err != nil {
		cacheClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("scoring config load failed: %w", err)
	}

	engine, err := scoring.NewEngine(scoringCfg, logger)
	if err != nil {
		cacheClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("scoring engine init failed: %w", err)
	}

	perf := service.NewPerformanceService(ticketRepo, engine, recommend.DefaultTable(), logger)

	handlers := api.NewHandlers(perf, cacheClient, logger, cfg.CacheTTL)
	router := api.NewRouter(handlers, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		perf:       perf,
		httpServer: httpServer,
	}, nil
}

// startScoringWatch hot-reloads the scoring configuration on file change
// and swaps the engine under the running service.
func (a *App) startScoringWatch(ctx context.Context) {
	if !a.cfg.WatchScoring || a.cfg.ScoringConfigPath == "" {
		return
	}

	watchCtx, cancel := context.WithCancel(ctx)
	a.watchStop = cancel

	go func() {
		err := config.WatchScoring(watchCtx, a.cfg.ScoringConfigPath, a.logger, func(newCfg scoring.Config) {
			engine, err := scoring.NewEngine(newCfg, a.logger)
			if err != nil {
				a.logger.Error("rejected reloaded scoring config", zap.Error(err))
				return
			}
			a.perf.SwapEngine(engine)
			a.logger.Info("scoring engine swapped",
				zap.String("path", a.cfg.ScoringConfigPath))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("scoring config watch stopped", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting", zap.Int("port", a.cfg.HTTPPort))

	a.startScoringWatch(context.Background())

	serveErr := make(chan error, 1)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-quit:
		a.logger.Info("application shutting down", zap.String("signal", sig.String()))
	}

	if a.watchStop != nil {
		a.watchStop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http shutdown error", zap.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed")
	_ = a.logger.Sync()
	return nil
}
