package iodb

import (
	"fmt"
	"runtime"
)

func OpenError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("from %s: cannot open database %s: %w",
		fn.Name(), path, err)
}

func NotOpenError() error {
	return fmt.Errorf("database is not open")
}

func TableExistsCheckError(table string, err error) error {
	return fmt.Errorf("cannot check table %q: %w", table, err)
}

func QueryTablesError(err error) error {
	return fmt.Errorf("cannot query table names: %w", err)
}

func ScanTableError(err error) error {
	return fmt.Errorf("cannot scan table name: %w", err)
}

func RowCountError(table string, err error) error {
	return fmt.Errorf("cannot count rows of %q: %w", table, err)
}
