package ioproteo

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Dump writes the whole database as a gzip-compressed stream of SQL
// statements: per table the CREATE statement followed by one INSERT
// per row, then the index definitions. Feeding the output to a SQLite
// shell reproduces the database.
//
// The written file always carries a .gz suffix; one is appended unless
// outFile already ends in .gz. Returns the path actually written.
func (e *Extender) Dump(
	ctx context.Context,
	outFile string,
) (string, error) {
	outPath := outFile
	if !strings.HasSuffix(outPath, ".gz") {
		outPath += ".gz"
	}
	slog.Info("Dumping database as gzipped SQL...", "file", outPath)

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("cannot create dump file: %w", err)
	}
	gz := gzip.NewWriter(f)
	w := bufio.NewWriter(gz)

	if err := e.writeDump(ctx, w); err != nil {
		gz.Close()
		f.Close()
		return "", err
	}

	if err := w.Flush(); err != nil {
		gz.Close()
		f.Close()
		return "", fmt.Errorf("cannot flush dump file: %w", err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("cannot finish gzip stream: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cannot close dump file: %w", err)
	}

	slog.Debug("Finished database dump", "file", outPath)
	return outPath, nil
}

func (e *Extender) writeDump(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "BEGIN TRANSACTION;")

	tables, err := e.op.TableNames(ctx)
	if err != nil {
		return err
	}
	for _, table := range tables {
		if err := e.dumpTable(ctx, w, table); err != nil {
			return err
		}
	}

	if err := e.dumpIndexes(ctx, w); err != nil {
		return err
	}

	fmt.Fprintln(w, "COMMIT;")
	return nil
}

func (e *Extender) dumpTable(
	ctx context.Context,
	w io.Writer,
	table string,
) error {
	var createSQL string
	err := e.op.DB().QueryRowContext(ctx,
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?",
		table,
	).Scan(&createSQL)
	if err != nil {
		return fmt.Errorf("cannot read schema of table %s: %w", table, err)
	}
	fmt.Fprintf(w, "%s;\n", createSQL)

	count, err := e.op.RowCount(ctx, table)
	if err != nil {
		return err
	}
	bar := newProgressBar(count, fmt.Sprintf("Dumping %s: ", table))
	defer bar.Finish()

	// Table names cannot be bound as parameters; table comes from
	// sqlite_master, not from user input.
	rows, err := e.op.DB().QueryContext(ctx,
		`SELECT * FROM "`+table+`"`)
	if err != nil {
		return fmt.Errorf("cannot read rows of table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("cannot read columns of table %s: %w", table, err)
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	literals := make([]string, len(cols))

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("cannot scan row of table %s: %w", table, err)
		}
		for i, v := range values {
			literals[i] = sqlLiteral(v)
		}
		fmt.Fprintf(w, "INSERT INTO \"%s\" VALUES(%s);\n",
			table, strings.Join(literals, ","))
		bar.Increment()
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("cannot read rows of table %s: %w", table, err)
	}
	return nil
}

func (e *Extender) dumpIndexes(ctx context.Context, w io.Writer) error {
	// Automatic primary-key indexes have no SQL text and are skipped.
	rows, err := e.op.DB().QueryContext(ctx,
		`SELECT sql FROM sqlite_master
		 WHERE type = 'index' AND sql IS NOT NULL ORDER BY name`)
	if err != nil {
		return fmt.Errorf("cannot read index definitions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var indexSQL string
		if err := rows.Scan(&indexSQL); err != nil {
			return fmt.Errorf("cannot scan index definition: %w", err)
		}
		fmt.Fprintf(w, "%s;\n", indexSQL)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("cannot read index definitions: %w", err)
	}
	return nil
}

// sqlLiteral renders one scanned value as a SQL literal.
func sqlLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []byte:
		return "'" + strings.ReplaceAll(string(val), "'", "''") + "'"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", "''") + "'"
	}
}
