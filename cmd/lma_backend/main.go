package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/core/services"
	"github.com/microcred/loan_management_app/internal/handlers"
	"github.com/microcred/loan_management_app/internal/middleware"
	"github.com/microcred/loan_management_app/internal/platform/config"
	"github.com/microcred/loan_management_app/internal/repositories/database/pgsql"
	"github.com/microcred/loan_management_app/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	// Nightly sweep flips disbursed loans past their due date to OVERDUE and
	// loans long past maturity to DEFAULTED.
	sweeper := startOverdueSweep(cfg, serviceContainer.Loan, logger)
	defer sweeper.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = false
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection via the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// startOverdueSweep schedules the status sweep on the configured cron spec
// and runs it once at startup so a restart never misses a day.
func startOverdueSweep(cfg *config.Config, loanService portssvc.LoanSvcFacade, logger *slog.Logger) *cron.Cron {
	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		count, err := loanService.MarkOverdueLoans(ctx)
		if err != nil {
			logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("Overdue sweep completed", slog.Int("transitioned", count))
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.OverdueSweepSchedule, sweep); err != nil {
		logger.Error("Invalid overdue sweep schedule, sweep disabled",
			slog.String("schedule", cfg.OverdueSweepSchedule),
			slog.String("error", err.Error()))
		return c
	}
	c.Start()

	go sweep()
	return c
}
