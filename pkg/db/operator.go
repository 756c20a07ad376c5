package db

import (
	"context"
	"database/sql"
)

// Operator defines the interface for basic database management
// operations on a SQLite file. It provides open/close lifecycle
// management and exposes the *sql.DB handle for higher-level components
// (taxid store, schema extender) to execute their specialized SQL
// internally.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - DB() enables components to use transactions and bulk inserts directly
// - Schema knowledge stays with the components that own the tables
type Operator interface {
	// Open opens (creating if necessary) the SQLite database at path.
	Open(path string) error

	// Close closes the database handle.
	Close() error

	// DB returns the underlying sql.DB for components to execute
	// specialized SQL operations. Components use this for transactions,
	// bulk inserts, and custom queries.
	DB() *sql.DB

	// Path returns the file path the operator was opened with.
	Path() string

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// TableNames returns the names of all user tables, sorted
	// alphabetically. Internal sqlite_* tables are excluded.
	TableNames(ctx context.Context) ([]string, error)

	// RowCount returns the number of rows in the named table.
	RowCount(ctx context.Context, tableName string) (int, error)
}
