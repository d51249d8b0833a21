package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"franceguessr/internal/cache"
	"franceguessr/internal/config"
	"franceguessr/internal/database"
	"franceguessr/internal/importer"
	"franceguessr/internal/logging"
	"franceguessr/internal/middleware"
	"franceguessr/internal/router"
	"franceguessr/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	_ "franceguessr/docs" // generated swagger spec

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	resetDatabase   = database.ResetDatabase
	runMigrationsFn = database.RunMigrations
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	importData      = importer.Import
	notifyContext   = signal.NotifyContext
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }

	logOutput io.Writer = os.Stdout
)

// run bootstraps the database, imports the data files and serves HTTP until
// SIGINT or SIGTERM.
func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logging.New(logOutput, cfg.LogLevel)

	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Warn().Str("database", cfg.DBName).Msg("dropping and recreating database")
	if err := resetDatabase(ctx, cfg.AdminDatabaseURL(), cfg.DBName); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}
	if err := runMigrationsFn(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	cch, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer cch.Close()
	if _, ok := cch.(cache.Disabled); ok {
		log.Info().Msg("redis not configured, lookup cache disabled")
	}

	start := time.Now()
	rows, err := importData(ctx, db, cfg.DataDir, cfg.ImportWorkers, log)
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}
	log.Info().Int64("rows", rows).Dur("elapsed", time.Since(start)).Msg("bootstrap done")

	e := newServer(cfg, log, db, cch)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		errCh <- startServer(e, cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownServer(sctx, e); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newServer(cfg *config.Config, log zerolog.Logger, db database.DB, cch cache.Cache) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	lookup := service.NewPostalCodeLookup(db, cch, cfg.CacheTTL)
	tokens := service.TokenCodec{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL}
	router.Setup(e, db, cch, lookup, tokens)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}
