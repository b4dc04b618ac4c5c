package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"saldo/internal/amqp"
	"saldo/internal/config"
	applog "saldo/internal/log"
)

// Drains the low-balance alert queue and surfaces each alert as a
// structured notification record. Runs alongside the alert-worker that
// publishes them.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentAlert,
	})
	applog.SetDefault(logger)

	logger.Info("starting alert-notifier")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert notifier")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", applog.FieldError, err.Error())
		os.Exit(1)
	}
	defer amqpClient.Close()
	logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = amqpClient.ConsumeLowBalanceAlerts(ctx, func(alert *amqp.LowBalanceAlert) error {
		logger.Warn("low balance notification",
			"alert_date", alert.Date,
			applog.FieldBalanceCents, alert.BalanceCents,
			"threshold_cents", alert.ThresholdCents,
			"raised_at", alert.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("alert consumption error", applog.FieldError, err.Error())
		os.Exit(1)
	}

	logger.Info("alert-notifier stopped gracefully")
}
