package memory

import (
	"context"
	"errors"
	"testing"

	"saldo/internal/core"
	"saldo/internal/ledger"
)

func newStore() *Store {
	return New(core.AccountConfig{
		StartingBalance: core.Money{Cents: 500000},
		StartingDate:    core.NewDate(2024, 1, 1),
		Timezone:        "UTC",
	})
}

func sampleTx(name string) core.Transaction {
	return core.Transaction{
		Date:   core.NewDate(2024, 2, 1),
		Name:   name,
		Amount: core.Money{Cents: -1500},
	}
}

func TestCreateAssignsID(t *testing.T) {
	s := newStore()

	created, err := s.CreateTransaction(context.Background(), sampleTx("Coffee"))
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreateTransaction() did not assign an id")
	}

	got, err := s.GetTransaction(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetTransaction() error = %v", err)
	}
	if got.Name != "Coffee" {
		t.Errorf("round-trip name = %q, want Coffee", got.Name)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	s := newStore()

	tx := sampleTx("Bad")
	tx.Amount = core.Money{}
	if _, err := s.CreateTransaction(context.Background(), tx); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("CreateTransaction() error = %v, want ErrInvalidAmount", err)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	names := []string{"First", "Second", "Third"}
	for _, n := range names {
		if _, err := s.CreateTransaction(ctx, sampleTx(n)); err != nil {
			t.Fatalf("CreateTransaction(%s) error = %v", n, err)
		}
	}

	list, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("ListTransactions() returned %d, want 3", len(list))
	}
	for i, n := range names {
		if list[i].Name != n {
			t.Errorf("list[%d].Name = %q, want %q", i, list[i].Name, n)
		}
	}
}

func TestUpdateMissing(t *testing.T) {
	s := newStore()

	tx := sampleTx("Ghost")
	tx.ID = "no-such-id"
	if _, err := s.UpdateTransaction(context.Background(), tx); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("UpdateTransaction() error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	created, err := s.CreateTransaction(ctx, sampleTx("Doomed"))
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	if err := s.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if _, err := s.GetTransaction(ctx, created.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("GetTransaction() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteTransaction(ctx, created.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("second DeleteTransaction() error = %v, want ErrNotFound", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	cfg, err := s.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if cfg.StartingBalance.Cents != 500000 {
		t.Errorf("seeded balance = %d, want 500000", cfg.StartingBalance.Cents)
	}

	cfg.StartingBalance = core.Money{Cents: 250000}
	cfg.Timezone = "Europe/Rome"
	if err := s.PutConfig(ctx, cfg); err != nil {
		t.Fatalf("PutConfig() error = %v", err)
	}

	got, err := s.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if got.Timezone != "Europe/Rome" || got.StartingBalance.Cents != 250000 {
		t.Errorf("updated config = %+v", got)
	}
}

func TestPutConfigRejectsInvalid(t *testing.T) {
	s := newStore()

	bad := core.AccountConfig{StartingDate: core.NewDate(2024, 1, 1), Timezone: "Atlantis/Lost"}
	if err := s.PutConfig(context.Background(), bad); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("PutConfig() error = %v, want ErrInvalidConfig", err)
	}
}
