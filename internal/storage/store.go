// Package storage provides abstractions for persistent transaction storage.
package storage

import (
	"context"
	"errors"

	"github.com/myasset-dev/myasset/internal/model"
)

// ErrNotFound is returned when no transaction has the requested id.
var ErrNotFound = errors.New("transaction not found")

// Store defines the transaction repository. Ids are assigned by the store
// and never reused.
type Store interface {
	// Append persists txns in one unit and returns their new ids in order.
	// Either every row is stored or none is.
	Append(ctx context.Context, txns []model.Transaction) ([]int64, error)

	// Get retrieves one transaction.
	Get(ctx context.Context, id int64) (model.Transaction, error)

	// Update overwrites item, amount and the pinned category of one row.
	Update(ctx context.Context, id int64, item string, amount int64, category string) error

	// Delete removes one row.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every row and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// LoadAll returns every row ordered by id.
	LoadAll(ctx context.Context) ([]model.Transaction, error)

	// Split replaces row id with pieces atomically and returns the new ids.
	Split(ctx context.Context, id int64, pieces []model.Transaction) ([]int64, error)

	// Close releases any resources held by the store.
	Close() error
}
