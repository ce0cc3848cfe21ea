package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/finoffice/finoffice_backend/internal/core/services"
	"github.com/finoffice/finoffice_backend/internal/middleware"
	"github.com/finoffice/finoffice_backend/internal/platform/config"
	"github.com/finoffice/finoffice_backend/internal/repositories/database/pgsql"
	"github.com/finoffice/finoffice_backend/pkg/database"
)

// Annual rollover job. Run once at the start of each year, typically from
// cron, to extend last year's honored recurring groups into the new year.
func main() {
	yearFlag := flag.Int("year", 0, "target year to plant (defaults to the current year)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := middleware.WithLogger(context.Background(), logger)

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	now := time.Now()
	year := now.Year()
	if *yearFlag != 0 {
		year = *yearFlag
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	rolloverSvc := services.NewRolloverService(repos.TransactionRepo)

	report, err := rolloverSvc.Run(ctx, year, now)
	if err != nil {
		logger.Error("Rollover failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Rollover report",
		slog.Int("year", report.Year),
		slog.Int("groupsSeen", report.GroupsSeen),
		slog.Int("groupsPlanted", report.GroupsPlanted),
		slog.Int("groupsSkipped", report.GroupsSkipped),
		slog.Int("rowsCreated", report.RowsCreated),
	)
	if report.GroupsSkipped > 0 {
		os.Exit(2)
	}
}
