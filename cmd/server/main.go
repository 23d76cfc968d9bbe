package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/auth"
	"github.com/diewo77/go-hebergement/internal/config"
	"github.com/diewo77/go-hebergement/internal/db"
	"github.com/diewo77/go-hebergement/internal/logging"
	"github.com/diewo77/go-hebergement/internal/models"
	"github.com/diewo77/go-hebergement/internal/policy"
	"github.com/diewo77/go-hebergement/internal/services"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.New(cfg.App.LogLevel, cfg.App.Dev)

	conn, err := db.Open(cfg.Database, logging.Component(logger, "db"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if *migrateOnlyFlag {
		if err := migrate(cfg.Database, conn); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
		logger.Info().Msg("migrations completed")
		return
	}
	if *seedOnlyFlag {
		if err := seed(cfg.App, conn); err != nil {
			logger.Fatal().Err(err).Msg("seeding failed")
		}
		logger.Info().Msg("seeding completed")
		return
	}

	if cfg.App.Migrations || cfg.Database.Driver == config.DriverSQLite {
		if err := migrate(cfg.Database, conn); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}
	if err := seed(cfg.App, conn); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}

	auth.SetSecret(cfg.App.SessionSecret)
	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		var count int64
		conn.WithContext(ctx).Model(&models.User{}).Where("id = ?", uid).Count(&count)
		return count > 0
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stack, err := services.Wire(ctx, cfg.Documents, conn, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("document services")
	}
	sweeper := logging.Component(logger, "previews")
	go stack.Documents.Previews().Run(ctx, time.Minute, func(n int) {
		sweeper.Debug().Int("expired", n).Msg("previews swept")
	})

	ag := policy.NewAuthGate(conn, cfg.App.PermissionCacheTTL)
	app := NewApp(conn, ag, stack.Templates, stack.Documents, logging.Component(logger, "http"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Server.Port).
			Bool("dev", cfg.App.Dev).
			Str("enrichment", cfg.Documents.EnrichmentSource).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
	logger.Info().Msg("server stopped gracefully")
}

// migrate applies the SQL migrations on postgres and AutoMigrate on sqlite.
func migrate(cfg config.DatabaseConfig, conn *gorm.DB) error {
	if cfg.Driver == config.DriverPostgres {
		return db.RunSQLMigrations(cfg.URL())
	}
	return db.Migrate(conn)
}

func seed(cfg config.AppConfig, conn *gorm.DB) error {
	if err := db.Seed(conn); err != nil {
		return err
	}
	if !cfg.Seed {
		return nil
	}
	return db.SeedDemo(conn)
}
