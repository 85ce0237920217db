package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-idea-prototyper/internal/config"
	httpapi "github.com/tbourn/go-idea-prototyper/internal/http"
	"github.com/tbourn/go-idea-prototyper/internal/observability"
	"github.com/tbourn/go-idea-prototyper/internal/repo"
	"github.com/tbourn/go-idea-prototyper/internal/sysutil"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadEnvFiles()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			closeLog := sysutil.SetupLogger(sysutil.LoggerOptions{
				Level:   cfg.LogLevel,
				Pretty:  cfg.LogPretty,
				File:    cfg.LogFile,
				Service: cfg.OTEL.ServiceName,
			})
			defer func() {
				if err := closeLog(); err != nil {
					os.Stderr.WriteString("close log file: " + err.Error() + "\n")
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}
}

// runServer boots telemetry and storage, then serves until ctx is cancelled.
func runServer(ctx context.Context, cfg config.Config) error {
	shutdownTelemetry, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db := openStore(cfg.DBPath)
	if db != nil {
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}()
	}

	srv := newHTTPServer(cfg, db)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("prototyper HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server exited cleanly")
	return nil
}

// openStore opens and migrates the SQLite store. Failures are logged and
// yield a nil handle so the API still starts with storage endpoints
// answering storage_unavailable.
func openStore(path string) *gorm.DB {
	db, err := repo.OpenSQLite(path)
	if err != nil {
		log.Error().Err(err).Str("db_path", path).Msg("open database; continuing without storage")
		return nil
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Error().Err(err).Str("db_path", path).Msg("migrate database; continuing without storage")
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		return nil
	}
	log.Info().Str("db_path", path).Msg("database ready")
	return db
}

func newHTTPServer(cfg config.Config, db *gorm.DB) *http.Server {
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, cfg)

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}
