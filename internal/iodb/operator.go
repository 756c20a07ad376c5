// Package iodb implements database operations over SQLite files.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"

	"github.com/proteotype/proteodb/pkg/db"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// sqliteOperator implements db.Operator using database/sql over the
// modernc SQLite driver.
type sqliteOperator struct {
	db   *sql.DB
	path string
}

// NewSQLiteOperator creates a new database operator
// (without opening a file).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Open opens the SQLite database at path, creating the file if it does
// not exist yet.
func (s *sqliteOperator) Open(path string) error {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return OpenError(path, err)
	}

	// sql.Open is lazy; force the file open now so a bad path fails
	// here instead of at first query.
	if err := handle.Ping(); err != nil {
		handle.Close()
		return OpenError(path, err)
	}

	s.db = handle
	s.path = path
	return nil
}

// Close releases the database handle.
func (s *sqliteOperator) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// DB returns the underlying sql.DB for advanced operations.
func (s *sqliteOperator) DB() *sql.DB {
	return s.db
}

// Path returns the file path the operator was opened with.
func (s *sqliteOperator) Path() string {
	return s.path
}

// TableExists checks if a table exists in the database.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.db == nil {
		return false, NotOpenError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table'
			AND name = ?
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// TableNames returns the names of all user tables, sorted
// alphabetically. Internal sqlite_* tables are excluded.
func (s *sqliteOperator) TableNames(
	ctx context.Context,
) ([]string, error) {
	if s.db == nil {
		return nil, NotOpenError()
	}

	query := `
		SELECT name FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, QueryTablesError(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, ScanTableError(err)
		}
		tables = append(tables, tableName)
	}

	if err := rows.Err(); err != nil {
		return nil, ScanTableError(err)
	}

	return tables, nil
}

// RowCount returns the number of rows in the named table.
func (s *sqliteOperator) RowCount(
	ctx context.Context,
	tableName string,
) (int, error) {
	if s.db == nil {
		return 0, NotOpenError()
	}

	// Table names cannot be bound parameters; the callers pass names
	// from TableNames or from the owned schema models.
	query := `SELECT count(*) FROM "` + tableName + `"`

	var count int
	err := s.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, RowCountError(tableName, err)
	}

	return count, nil
}
