// Package sqlite provides a SQLite-backed implementation of storage.Store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/myasset-dev/myasset/internal/model"
	"github.com/myasset-dev/myasset/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on a single SQLite file.
type Store struct {
	db *sql.DB
}

// New opens the database at dbPath, creating parent directories, and
// brings its schema up to date.
func New(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn in a transaction, rolling back when fn fails.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Append inserts txns in one transaction.
func (s *Store) Append(ctx context.Context, txns []model.Transaction) ([]int64, error) {
	var ids []int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		ids, err = insertAll(ctx, tx, txns)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func insertAll(ctx context.Context, tx *sql.Tx, txns []model.Transaction) ([]int64, error) {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO expenses (date, store, item, price, fixed_category) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return nil, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(txns))
	for i, t := range txns {
		res, err := stmt.ExecContext(ctx, t.Date, t.Store, t.Item, t.Amount, nullString(t.FixedCategory))
		if err != nil {
			return nil, fmt.Errorf("inserting transaction %d: %w", i+1, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading inserted id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Get retrieves one transaction by id.
func (s *Store) Get(ctx context.Context, id int64) (model.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, date, store, item, price, fixed_category FROM expenses WHERE id = ?", id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("getting transaction %d: %w", id, err)
	}
	return t, nil
}

// Update sets item, amount and fixed category of row id.
func (s *Store) Update(ctx context.Context, id int64, item string, amount int64, category string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET item = ?, price = ?, fixed_category = ? WHERE id = ?",
		item, amount, nullString(category), id)
	if err != nil {
		return fmt.Errorf("updating transaction %d: %w", id, err)
	}
	return requireAffected(res, id)
}

// Delete removes row id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}
	return requireAffected(res, id)
}

// DeleteAll removes every row. Ids keep increasing afterwards.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses")
	if err != nil {
		return 0, fmt.Errorf("clearing transactions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

// LoadAll returns every row ordered by id.
func (s *Store) LoadAll(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, store, item, price, fixed_category FROM expenses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return out, nil
}

// Split deletes row id and inserts pieces in the same transaction.
func (s *Store) Split(ctx context.Context, id int64, pieces []model.Transaction) ([]int64, error) {
	var ids []int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting transaction %d: %w", id, err)
		}
		if err := requireAffected(res, id); err != nil {
			return err
		}
		ids, err = insertAll(ctx, tx, pieces)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(sc scanner) (model.Transaction, error) {
	var (
		t                  model.Transaction
		store, item, fixed sql.NullString
	)
	if err := sc.Scan(&t.ID, &t.Date, &store, &item, &t.Amount, &fixed); err != nil {
		return model.Transaction{}, err
	}
	// Databases from older versions may hold NULL store or item.
	t.Store = valueOr(store, model.UnknownStore)
	t.Item = valueOr(item, model.GenericItem)
	t.FixedCategory = fixed.String
	return t, nil
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func valueOr(s sql.NullString, fallback string) string {
	if !s.Valid || s.String == "" {
		return fallback
	}
	return s.String
}

// nullString stores "" as NULL, the unpinned marker.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
