package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// AUTOINCREMENT keeps deleted ids from being handed out again.
const schema = `
CREATE TABLE IF NOT EXISTS expenses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    store TEXT NOT NULL,
    item TEXT NOT NULL,
    price INTEGER NOT NULL,
    fixed_category TEXT
);

CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
`

// upgrades adds columns missing from databases created by older versions.
// Each entry runs only when its column is absent.
var upgrades = []struct {
	column string
	stmt   string
}{
	{"fixed_category", "ALTER TABLE expenses ADD COLUMN fixed_category TEXT"},
}

// runMigrations creates the schema and upgrades an existing table in place.
func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	cols, err := tableColumns(ctx, db, "expenses")
	if err != nil {
		return err
	}
	for _, u := range upgrades {
		if cols[u.column] {
			continue
		}
		if _, err := db.ExecContext(ctx, u.stmt); err != nil {
			return fmt.Errorf("adding column %s: %w", u.column, err)
		}
	}
	return nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning column name: %w", err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}
	return cols, nil
}
