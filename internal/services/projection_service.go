package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"saldo/internal/core"
	"saldo/internal/ledger"
)

// Windows wider than this are refused outright.
const maxWindowDays = 36500

// ProjectionService answers projection queries against the ledger
type ProjectionService struct {
	store ledger.Store
}

func NewProjectionService(store ledger.Store) *ProjectionService {
	return &ProjectionService{store: store}
}

// snapshot is the ledger state a projection is computed from.
type snapshot struct {
	txs []core.Transaction
	cfg core.AccountConfig
}

func (s *ProjectionService) loadSnapshot(ctx context.Context) (snapshot, error) {
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := s.store.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		snap.txs = txs
		return nil
	})
	g.Go(func() error {
		cfg, err := s.store.GetConfig(gctx)
		if err != nil {
			return fmt.Errorf("get config: %w", err)
		}
		snap.cfg = cfg
		return nil
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func checkWindow(start, end core.Date) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("window bounds required: %w", core.ErrInvalidWindow)
	}
	if end.Before(start) {
		return nil
	}

	startDay := time.Date(start.Year(), time.Month(start.Month()), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), time.Month(end.Month()), end.Day(), 0, 0, 0, 0, time.UTC)
	if int(endDay.Sub(startDay).Hours()/24)+1 > maxWindowDays {
		return fmt.Errorf("window exceeds %d days: %w", maxWindowDays, core.ErrInvalidWindow)
	}
	return nil
}

// ProjectedTransactions expands every transaction into its dated
// occurrences within the window.
func (s *ProjectionService) ProjectedTransactions(ctx context.Context, start, end core.Date) ([]core.Occurrence, error) {
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return core.ExpandAll(snap.txs, start, end)
}

// BalanceSeries computes the daily running balance over the window.
func (s *ProjectionService) BalanceSeries(ctx context.Context, start, end core.Date) ([]core.DailyBalancePoint, error) {
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return core.BalanceSeries(snap.txs, snap.cfg, start, end)
}

// MonthGrid builds the padded calendar grid for a month.
func (s *ProjectionService) MonthGrid(ctx context.Context, year, month int) ([]core.CalendarDay, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return core.MonthGrid(snap.txs, snap.cfg, year, month)
}
