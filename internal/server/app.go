// Package server initializes and runs the application server: it opens the
// database, applies migrations, wires the services and serves the HTTP API
// until the process is told to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ummataliyev/estatehub/internal/logging"
	"github.com/ummataliyev/estatehub/internal/server/auth"
	"github.com/ummataliyev/estatehub/internal/server/config"
	"github.com/ummataliyev/estatehub/internal/server/httpapi"
	"github.com/ummataliyev/estatehub/internal/server/services"
	"github.com/ummataliyev/estatehub/internal/server/uow"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop
// signal before the listener is torn down.
const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     *uow.Manager
	rateLimiter *httpapi.RateLimiter
	handler     http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := uow.NewManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.JWTAlgorithm,
		cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	db := manager.DB()
	rateLimiter := httpapi.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	handler := httpapi.NewRouter(&httpapi.Deps{
		Logger:      logger,
		Metrics:     httpapi.NewMetrics(),
		RateLimiter: rateLimiter,
		Ping:        db.PingContext,

		Auth:      services.NewAuthService(db, tokens, hasher, logger),
		Users:     services.NewUserService(db, hasher, cfg.MaxPageSize, logger),
		Complexes: services.NewComplexService(db, cfg.MaxPageSize, logger),
		Buildings: services.NewBuildingService(db, cfg.MaxPageSize, logger),
		Media:     services.NewMediaService(cfg),
	})

	return &App{
		config:      cfg,
		logger:      logger,
		manager:     manager,
		rateLimiter: rateLimiter,
		handler:     handler,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run applies migrations and serves until ctx is cancelled or a stop signal
// arrives, then drains in-flight requests and releases the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	if err := app.manager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}

	app.rateLimiter.Stop()
	return app.manager.Close()
}
