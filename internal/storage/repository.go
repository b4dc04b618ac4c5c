package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"saldo/internal/core"
	"saldo/internal/ledger"
)

// Default account configuration seeded on first run.
const (
	defaultStartingBalanceCents = 500000
	defaultTimezone             = "America/Los_Angeles"
)

const (
	configKeyStartingBalance = "starting_balance_cents"
	configKeyStartingDate    = "starting_date"
	configKeyTimezone        = "timezone"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.seedDefaultConfig(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed default config: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) seedDefaultConfig(ctx context.Context) error {
	today, err := core.TodayIn(defaultTimezone)
	if err != nil {
		return err
	}

	defaults := map[string]string{
		configKeyStartingBalance: strconv.FormatInt(defaultStartingBalanceCents, 10),
		configKeyStartingDate:    today.String(),
		configKeyTimezone:        defaultTimezone,
	}
	for key, value := range defaults {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO account_config (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("seed %s: %w", key, err)
		}
	}
	return nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, name, amount_cents, note, is_recurring, frequency, recur_interval, end_date
		 FROM transactions ORDER BY date, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date, name, amount_cents, note, is_recurring, frequency, recur_interval, end_date
		 FROM transactions WHERE id = ?`, id)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	frequency, interval, endDate := recurrenceColumns(tx)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, date, name, amount_cents, note, is_recurring, frequency, recur_interval, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Date.String(), tx.Name, tx.Amount.Cents, tx.Note,
		boolToInt(tx.IsRecurring), frequency, interval, endDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	frequency, interval, endDate := recurrenceColumns(tx)
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions
		 SET date = ?, name = ?, amount_cents = ?, note = ?, is_recurring = ?,
		     frequency = ?, recur_interval = ?, end_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		tx.Date.String(), tx.Name, tx.Amount.Cents, tx.Note,
		boolToInt(tx.IsRecurring), frequency, interval, endDate, tx.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", tx.ID, ledger.ErrNotFound)
	}
	return tx, nil
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) GetConfig(ctx context.Context) (core.AccountConfig, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM account_config`)
	if err != nil {
		return core.AccountConfig{}, fmt.Errorf("read config: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return core.AccountConfig{}, fmt.Errorf("scan config row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return core.AccountConfig{}, fmt.Errorf("iterate config rows: %w", err)
	}

	var cfg core.AccountConfig
	cents, err := strconv.ParseInt(values[configKeyStartingBalance], 10, 64)
	if err != nil {
		return core.AccountConfig{}, fmt.Errorf("parse starting balance %q: %w",
			values[configKeyStartingBalance], core.ErrInvalidConfig)
	}
	cfg.StartingBalance = core.Money{Cents: cents}

	cfg.StartingDate, err = core.ParseDate(values[configKeyStartingDate])
	if err != nil {
		return core.AccountConfig{}, fmt.Errorf("parse starting date: %w", core.ErrInvalidConfig)
	}
	cfg.Timezone = values[configKeyTimezone]

	return cfg, nil
}

func (s *SQLiteStore) PutConfig(ctx context.Context, cfg core.AccountConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin config update: %w", err)
	}
	defer dbTx.Rollback()

	values := map[string]string{
		configKeyStartingBalance: strconv.FormatInt(cfg.StartingBalance.Cents, 10),
		configKeyStartingDate:    cfg.StartingDate.String(),
		configKeyTimezone:        cfg.Timezone,
	}
	for key, value := range values {
		if _, err := dbTx.ExecContext(ctx,
			`INSERT INTO account_config (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			key, value); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit config update: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx          core.Transaction
		date        string
		isRecurring int64
		frequency   sql.NullString
		interval    sql.NullInt64
		endDate     sql.NullString
	)
	if err := row.Scan(&tx.ID, &date, &tx.Name, &tx.Amount.Cents, &tx.Note,
		&isRecurring, &frequency, &interval, &endDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	parsed, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	tx.Date = parsed
	tx.IsRecurring = isRecurring != 0

	if tx.IsRecurring {
		pattern := &core.RecurrencePattern{
			Frequency: core.Frequency(frequency.String),
			Interval:  int(interval.Int64),
		}
		if endDate.Valid && endDate.String != "" {
			pattern.EndDate, err = core.ParseDate(endDate.String)
			if err != nil {
				return core.Transaction{}, fmt.Errorf("parse stored end date %q: %w", endDate.String, err)
			}
		}
		tx.Recurrence = pattern
	}
	return tx, nil
}

func recurrenceColumns(tx core.Transaction) (sql.NullString, sql.NullInt64, sql.NullString) {
	if !tx.IsRecurring || tx.Recurrence == nil {
		return sql.NullString{}, sql.NullInt64{}, sql.NullString{}
	}
	frequency := sql.NullString{String: string(tx.Recurrence.Frequency), Valid: true}
	interval := sql.NullInt64{Int64: int64(tx.Recurrence.Interval), Valid: true}
	endDate := sql.NullString{}
	if !tx.Recurrence.EndDate.IsZero() {
		endDate = sql.NullString{String: tx.Recurrence.EndDate.String(), Valid: true}
	}
	return frequency, interval, endDate
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
