// Package memory provides an in-memory ledger backend for tests and
// local development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"saldo/internal/core"
	"saldo/internal/ledger"
)

type Store struct {
	mu     sync.RWMutex
	txs    map[string]core.Transaction
	order  []string
	config core.AccountConfig
}

// New creates an empty store seeded with the given account configuration.
func New(cfg core.AccountConfig) *Store {
	return &Store{
		txs:    make(map[string]core.Transaction),
		config: cfg,
	}
}

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Transaction, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.txs[id])
	}
	return out, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.txs[id]
	if !ok {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	return tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := txValidateWithID(&tx); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs[tx.ID] = tx
	s.order = append(s.order, tx.ID)
	return tx, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.txs[tx.ID]; !ok {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", tx.ID, ledger.ErrNotFound)
	}
	s.txs[tx.ID] = tx
	return tx, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.txs[id]; !ok {
		return fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	delete(s.txs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) GetConfig(ctx context.Context) (core.AccountConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, nil
}

func (s *Store) PutConfig(ctx context.Context, cfg core.AccountConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	return nil
}

func (s *Store) Close() error {
	return nil
}

func txValidateWithID(tx *core.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	return tx.Validate()
}
