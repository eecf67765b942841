package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"notehub/docs"
	"notehub/internal/auth"
	"notehub/internal/config"
	"notehub/internal/database"
	"notehub/internal/database/migration"
	handlers "notehub/internal/http/handler"
	"notehub/internal/http/middleware"
	"notehub/internal/otel"
	"notehub/internal/repository"
	"notehub/internal/repository/memory"
	"notehub/internal/repository/postgres"
	"notehub/internal/service"
	"notehub/internal/storage"
)

const (
	devJWTSecret    = "notehub-development-secret"
	shutdownTimeout = 5 * time.Second
)

// backend is the selected repository plus whatever must be released on shutdown.
type backend struct {
	repo  repository.Repository
	db    handlers.Pinger
	close func() error
}

func newBackend(cfg *config.AppConfig, log *zap.Logger) (*backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Info("store_selected", zap.String("backend", config.BackendMemory))
		return &backend{repo: memory.New(), close: func() error { return nil }}, nil
	case config.BackendPostgres:
		open := func(ctx context.Context) (*sql.DB, error) {
			return database.NewPostgres(ctx, cfg.Database)
		}
		var hook database.ConnectHook
		if cfg.Database.AutoMigrate {
			hook = func(ctx context.Context, db *sql.DB) error {
				return migration.EnsureMigrated(ctx, db, log, cfg.Database.Host)
			}
		}
		lazy := database.NewLazy(open, hook)
		log.Info("store_selected", zap.String("backend", config.BackendPostgres), zap.String("db_host", cfg.Database.Host))
		return &backend{repo: postgres.New(lazy), db: lazy, close: lazy.Close}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func newStorage(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (storage.Storage, error) {
	if cfg.MinIO.Endpoint == "" {
		log.Warn("object_storage_in_memory", zap.String("reason", "MINIO_ENDPOINT not set"))
		return storage.NewMemory(), nil
	}
	return storage.NewMinIO(ctx, cfg.MinIO)
}

func newTokenManager(cfg *config.AppConfig, log *zap.Logger) (*auth.TokenManager, error) {
	secret := cfg.Auth.JWTSecret
	if secret == "" && cfg.IsDevelopment() {
		log.Warn("jwt_secret_defaulted", zap.String("env", cfg.Env))
		secret = devJWTSecret
	}
	return auth.NewTokenManager(secret, cfg.Auth.AccessExpiry)
}

func serve(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	be, err := newBackend(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.close(); err != nil {
			log.Warn("database_close_failed", zap.Error(err))
		}
	}()

	objStore, err := newStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	tokens, err := newTokenManager(cfg, log)
	if err != nil {
		return fmt.Errorf("init tokens: %w", err)
	}

	noteSvc := service.NewNoteService(objStore, be.repo,
		service.WithMaxUploadBytes(cfg.UploadMaxBytes),
		service.WithAnyUserDeletes(cfg.IsDevelopment()),
	)
	authSvc := service.NewAuthService(be.repo, tokens, cfg.Auth.BcryptCost)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "notehub",
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             int(cfg.UploadMaxBytes) + 1<<20,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover(log))
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		Notes:   noteSvc,
		Auth:    authSvc,
		Tokens:  tokens,
		Backend: cfg.StoreBackend,
		DB:      be.db,
		Metrics: reg,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Info("server_starting",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.String("store_backend", cfg.StoreBackend),
		)
		return app.Listen(addr)
	})

	eg.Go(func() error {
		<-egCtx.Done()
		log.Info("server_stopping")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server: %w", err)
	}
	log.Info("server_stopped")
	return nil
}

func migrate(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) error {
	if cfg.StoreBackend != config.BackendPostgres {
		log.Info("migration_skipped", zap.String("backend", cfg.StoreBackend))
		return nil
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	return migration.Apply(ctx, db, log, cfg.Database.Host)
}
