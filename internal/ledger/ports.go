// Package ledger defines the persistence ports for transactions and
// account configuration. Backends implement these against SQLite or
// plain memory.
package ledger

import (
	"context"
	"errors"

	"saldo/internal/core"
)

var ErrNotFound = errors.New("not found")

// TransactionLister reads transaction templates.
type TransactionLister interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
}

// TransactionWriter mutates transaction templates.
type TransactionWriter interface {
	CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// ConfigReader reads the account configuration.
type ConfigReader interface {
	GetConfig(ctx context.Context) (core.AccountConfig, error)
}

// ConfigWriter replaces the account configuration.
type ConfigWriter interface {
	PutConfig(ctx context.Context, cfg core.AccountConfig) error
}

// Store is the full persistence surface a backend provides.
type Store interface {
	TransactionLister
	TransactionWriter
	ConfigReader
	ConfigWriter
	Close() error
}
