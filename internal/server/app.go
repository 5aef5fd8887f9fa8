// Package server wires the todokeeper server together: storage backend,
// password hasher and token service, services, the HTTP API and the gRPC
// health endpoint. It owns graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/cache"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/todokeeper/internal/server/observability"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	gs "github.com/dmitrijs2005/todokeeper/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     repomanager.RepositoryManager
	cache       cache.Cache
	tokens      *auth.TokenService
	registry    *prometheus.Registry
	metrics     *observability.Metrics
	readiness   *observability.Readiness
	authService *services.AuthService
	todoService *services.TodoService
}

// NewApp validates c and builds every component. With the postgres backend
// it waits for the database and applies migrations.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOutput io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(logOutput, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	if c.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	manager, err := openStorage(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.PasswordHasher, c.BcryptCost)
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration)

	var todoCache cache.Cache = cache.Nop{}
	if c.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, c.CacheTTL, logger)
		if err != nil {
			logger.Warn(ctx, "redis unavailable, running without cache", "error", err)
		} else {
			todoCache = rc
		}
	}

	registry := observability.NewRegistry()

	app := &App{
		config:      c,
		logger:      logger,
		manager:     manager,
		cache:       todoCache,
		tokens:      tokens,
		registry:    registry,
		metrics:     observability.NewMetrics(registry),
		readiness:   observability.NewReadiness(manager, c.RequestTimeout, logger),
		authService: services.NewAuthService(manager, hasher, tokens, logger),
		todoService: services.NewTodoService(manager, todoCache, logger),
	}

	return app, nil
}

func openStorage(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.StorageBackend == config.StorageMemory {
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	m := repomanager.NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}

// Router returns the HTTP handler of the API.
func (app *App) Router() *gin.Engine {
	h := httpapi.NewHandler(app.authService, app.todoService, app.readiness, app.metrics, app.logger)
	return httpapi.NewRouter(httpapi.RouterConfig{
		Handler:        h,
		Tokens:         app.tokens,
		Metrics:        app.metrics,
		Registry:       app.registry,
		Logger:         app.logger,
		RequestTimeout: app.config.RequestTimeout,
	})
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled, a signal arrives or a server fails, then
// shuts everything down. The first server error is returned.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg      sync.WaitGroup
		errMu   sync.Mutex
		runErrs []error
	)
	fail := func(err error) {
		app.logger.Error(ctx, err.Error())
		errMu.Lock()
		runErrs = append(runErrs, err)
		errMu.Unlock()
		cancelFunc()
	}

	var grpcServer *gs.GRPCServer
	if app.config.EndpointAddrGRPC != "" {
		grpcServer = gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := grpcServer.Run(ctx); err != nil {
				fail(fmt.Errorf("grpc server: %w", err))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.readiness.Run(ctx, app.config.HealthCheckInterval, func(ok bool) {
			if grpcServer != nil {
				grpcServer.SetServing(ok)
			}
		})
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.Router(), app.config.ShutdownTimeout, app.logger)
		if err := s.Run(ctx); err != nil {
			fail(fmt.Errorf("http server: %w", err))
		}
	}()

	wg.Wait()

	app.close(context.WithoutCancel(ctx))
	app.logger.Info(ctx, "App stopped")

	return errors.Join(runErrs...)
}

func (app *App) close(ctx context.Context) {
	if err := app.cache.Close(); err != nil {
		app.logger.Warn(ctx, "cache close failed", "error", err)
	}
	if err := app.manager.Close(); err != nil {
		app.logger.Warn(ctx, "storage close failed", "error", err)
	}
}
