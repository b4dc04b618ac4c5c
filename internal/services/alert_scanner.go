package services

import (
	"context"
	"fmt"
	"time"

	"saldo/internal/amqp"
	"saldo/internal/core"
	"saldo/internal/log"
)

// AlertPublisher publishes low-balance alerts to the message broker.
type AlertPublisher interface {
	PublishLowBalanceAlert(ctx context.Context, alert amqp.LowBalanceAlert) error
}

// AlertScanner watches the projected balance and raises an alert when it
// is about to drop below the configured threshold.
type AlertScanner struct {
	projections    *ProjectionService
	publisher      AlertPublisher
	thresholdCents int64
	horizonDays    int
	logger         *log.Logger
}

func NewAlertScanner(projections *ProjectionService, publisher AlertPublisher, thresholdCents int64, horizonDays int, logger *log.Logger) *AlertScanner {
	return &AlertScanner{
		projections:    projections,
		publisher:      publisher,
		thresholdCents: thresholdCents,
		horizonDays:    horizonDays,
		logger:         logger.WithComponent(log.ComponentAlert),
	}
}

// Scan projects the balance over the horizon and publishes an alert for
// the first day the balance falls below the threshold. Returns the alert
// when one was raised.
func (s *AlertScanner) Scan(ctx context.Context) (*amqp.LowBalanceAlert, error) {
	cfg, err := s.projections.store.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}

	today, err := core.TodayIn(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("resolve today: %w", err)
	}
	end := today.AddDays(s.horizonDays)

	series, err := s.projections.BalanceSeries(ctx, today, end)
	if err != nil {
		return nil, fmt.Errorf("project balance: %w", err)
	}

	for _, point := range series {
		if point.Balance.Cents >= s.thresholdCents {
			continue
		}

		alert := amqp.NewLowBalanceAlert(point.Date.String(), point.Balance.Cents, s.thresholdCents)
		s.logger.Warn("projected balance below threshold",
			log.FieldOperation, log.OpScan,
			log.FieldWindowStart, today.String(),
			log.FieldWindowEnd, end.String(),
			"alert_date", alert.Date,
			log.FieldBalanceCents, alert.BalanceCents)

		if s.publisher == nil {
			s.logger.Warn("AMQP publisher not available, skipping alert message")
			return &alert, nil
		}
		if err := s.publisher.PublishLowBalanceAlert(ctx, alert); err != nil {
			return nil, fmt.Errorf("publish alert: %w", err)
		}
		return &alert, nil
	}

	s.logger.Debug("projected balance stays above threshold",
		log.FieldWindowStart, today.String(),
		log.FieldWindowEnd, end.String())
	return nil, nil
}

// Run scans on a fixed interval until the context is cancelled.
func (s *AlertScanner) Run(ctx context.Context, interval time.Duration) error {
	s.logger.Info("alert scanner started",
		"interval", interval.String(),
		"horizon_days", s.horizonDays,
		"threshold_cents", s.thresholdCents)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := s.Scan(ctx); err != nil {
		s.logger.Error("scan failed", log.FieldError, err.Error())
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("alert scanner stopping", "reason", ctx.Err().Error())
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Scan(ctx); err != nil {
				s.logger.Error("scan failed", log.FieldError, err.Error())
			}
		}
	}
}
