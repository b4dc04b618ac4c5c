package services

import (
	"context"
	"errors"
	"testing"

	"saldo/internal/core"
	"saldo/internal/ledger/memory"
)

func serviceWithData(t *testing.T, txs ...core.Transaction) *ProjectionService {
	t.Helper()
	store := memory.New(core.AccountConfig{
		StartingBalance: core.Money{Cents: 100000},
		StartingDate:    core.NewDate(2024, 1, 1),
		Timezone:        "UTC",
	})
	for _, tx := range txs {
		if _, err := store.CreateTransaction(context.Background(), tx); err != nil {
			t.Fatalf("seed transaction %s: %v", tx.Name, err)
		}
	}
	return NewProjectionService(store)
}

func TestProjectedTransactions(t *testing.T) {
	svc := serviceWithData(t,
		core.Transaction{
			Date: core.NewDate(2024, 1, 1), Name: "Gym", Amount: core.Money{Cents: -4500},
			IsRecurring: true,
			Recurrence:  &core.RecurrencePattern{Frequency: core.Monthly, Interval: 1},
		},
		core.Transaction{Date: core.NewDate(2024, 2, 10), Name: "Shoes", Amount: core.Money{Cents: -8999}},
	)

	occs, err := svc.ProjectedTransactions(context.Background(), core.NewDate(2024, 1, 1), core.NewDate(2024, 3, 31))
	if err != nil {
		t.Fatalf("ProjectedTransactions() error = %v", err)
	}
	if len(occs) != 4 {
		t.Fatalf("got %d occurrences, want 4 (3 gym + 1 shoes)", len(occs))
	}
	for i := 1; i < len(occs); i++ {
		if occs[i].Date.Before(occs[i-1].Date) {
			t.Errorf("occurrences out of order at %d: %s before %s", i, occs[i].Date, occs[i-1].Date)
		}
	}
}

func TestBalanceSeriesUsesStoredConfig(t *testing.T) {
	svc := serviceWithData(t)

	series, err := svc.BalanceSeries(context.Background(), core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 3))
	if err != nil {
		t.Fatalf("BalanceSeries() error = %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3", len(series))
	}
	if series[0].Balance.Cents != 100000 {
		t.Errorf("balance = %d, want starting balance 100000", series[0].Balance.Cents)
	}
}

func TestMonthGrid(t *testing.T) {
	svc := serviceWithData(t)

	grid, err := svc.MonthGrid(context.Background(), 2024, 2)
	if err != nil {
		t.Fatalf("MonthGrid() error = %v", err)
	}
	if len(grid) != 35 {
		t.Errorf("grid size = %d, want 35", len(grid))
	}

	if _, err := svc.MonthGrid(context.Background(), 2024, 13); !errors.Is(err, core.ErrInvalidWindow) {
		t.Errorf("MonthGrid(month 13) error = %v, want ErrInvalidWindow", err)
	}
}

func TestWindowCap(t *testing.T) {
	svc := serviceWithData(t)
	ctx := context.Background()

	start := core.NewDate(2024, 1, 1)

	if _, err := svc.BalanceSeries(ctx, start, core.NewDate(2200, 1, 1)); !errors.Is(err, core.ErrInvalidWindow) {
		t.Errorf("BalanceSeries(175y window) error = %v, want ErrInvalidWindow", err)
	}
	if _, err := svc.ProjectedTransactions(ctx, start, core.NewDate(2200, 1, 1)); !errors.Is(err, core.ErrInvalidWindow) {
		t.Errorf("ProjectedTransactions(175y window) error = %v, want ErrInvalidWindow", err)
	}
	if _, err := svc.BalanceSeries(ctx, core.Date{}, start); !errors.Is(err, core.ErrInvalidWindow) {
		t.Errorf("BalanceSeries(zero start) error = %v, want ErrInvalidWindow", err)
	}

	// Inverted windows are empty results, not errors.
	series, err := svc.BalanceSeries(ctx, core.NewDate(2024, 2, 1), start)
	if err != nil {
		t.Fatalf("BalanceSeries(inverted) error = %v", err)
	}
	if len(series) != 0 {
		t.Errorf("inverted window produced %d points, want 0", len(series))
	}
}
