package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yulian302/filestream/config"
	"github.com/Yulian302/filestream/logging"
	"github.com/Yulian302/filestream/store"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/sdk/trace"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config config.Config
	Logger *slog.Logger

	Store *store.DiskStore
	Redis *redis.Client

	Services       *Services
	TracerProvider *trace.TracerProvider
}

func SetupApp() (*App, error) {
	cfg := config.LoadConfig()

	logger := logging.CreateLogger(cfg.Env, cfg.Debug)
	slog.SetDefault(logger)

	diskStore, err := store.NewDiskStore(cfg.UploadsRoot)
	if err != nil {
		return nil, fmt.Errorf("init uploads store: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: logger,
		Store:  diskStore,
		Redis:  initRedis(cfg),
	}

	app.Services = BuildServices(app)

	return app, nil
}

// initRedis is optional wiring: without a configured host the rate limiter
// is simply not installed.
func initRedis(cfg config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost,
		Password: "",
		DB:       0,
	})
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests for up to
// shutdownTimeout before giving up.
func (a *App) Run(r *gin.Engine) error {
	srv := &http.Server{
		Addr:    a.Config.ListenAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.Logger.Info("server started", slog.String("addr", a.Config.ListenAddr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (a *App) Shutdown(ctx context.Context) {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.TracerProvider != nil {
		_ = a.TracerProvider.Shutdown(ctx)
	}
}
