package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"saldo/internal/config"
	"saldo/internal/core"
	"saldo/internal/export"
	applog "saldo/internal/log"
	"saldo/internal/services"
	"saldo/internal/storage"
)

// One-shot export of the projected balance series to Google Sheets.
// Intended to run from cron.
func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentExport,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for export")
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("failed to initialize sqlite store",
			applog.FieldError, err.Error(), "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	exporter, err := export.NewSheetsExporter(ctx,
		cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, cfg.GoogleCredentialsFile, logger)
	if err != nil {
		logger.Error("failed to initialize sheets exporter", applog.FieldError, err.Error())
		os.Exit(1)
	}

	accountCfg, err := store.GetConfig(ctx)
	if err != nil {
		logger.Error("failed to read account config", applog.FieldError, err.Error())
		os.Exit(1)
	}
	today, err := core.TodayIn(accountCfg.Timezone)
	if err != nil {
		logger.Error("failed to resolve today", applog.FieldError, err.Error())
		os.Exit(1)
	}
	end := today.AddDays(cfg.ExportWindowDays)

	projections := services.NewProjectionService(store)
	series, err := projections.BalanceSeries(ctx, today, end)
	if err != nil {
		logger.Error("failed to project balance series",
			applog.FieldWindowStart, today.String(),
			applog.FieldWindowEnd, end.String(),
			applog.FieldError, err.Error())
		os.Exit(1)
	}

	if err := exporter.ExportBalanceSeries(ctx, series); err != nil {
		logger.Error("export failed", applog.FieldError, err.Error())
		os.Exit(1)
	}

	logger.Info("export completed",
		applog.FieldWindowStart, today.String(),
		applog.FieldWindowEnd, end.String(),
		"days", len(series))
}
