package iotaxid

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
)

// SQLite allows 32766 bound parameters per statement.
// With 2 parameters per row (gi, taxid), max is 16383 rows.
// Use 15000 to stay safely under the limit.
const maxRowsPerInsert = 15000

// buildStore fills an empty store database from a dump file.
//
// Durability is deliberately relaxed for this one-time build: the store
// can always be rebuilt from the dump, so losing it on a crash costs
// nothing but time. Each chunk of batchSize rows is committed in its
// own transaction; a mid-build failure loses at most one chunk.
func buildStore(db *sql.DB, dumpPath string, batchSize int) error {
	slog.Info("Creating gi to taxid mappings store...")

	pragmas := []string{
		"PRAGMA journal_mode = MEMORY",
		"PRAGMA synchronous = OFF",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set %q: %w", pragma, err)
		}
	}

	_, err := db.Exec(
		"CREATE TABLE gi_taxid (gi INTEGER PRIMARY KEY, taxid INTEGER)",
	)
	if err != nil {
		return fmt.Errorf("failed to create gi_taxid table: %w", err)
	}

	f, err := os.Open(dumpPath)
	if err != nil {
		return fmt.Errorf("cannot open dump file: %w", err)
	}
	defer f.Close()

	// The row total is unknown upfront, so progress tracks bytes read
	// from the dump file instead.
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cannot stat dump file: %w", err)
	}
	bar := pb.Full.Start64(info.Size())
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", "Loading dump: ")
	bar.Set(pb.CleanOnFinish, true)

	reader := NewDumpReader(bar.NewProxyReader(f))

	timeStart := time.Now()
	var total int
	chunk := make([]Pair, 0, batchSize)
	for {
		pair, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		chunk = append(chunk, pair)
		if len(chunk) == batchSize {
			if err := insertChunk(db, chunk); err != nil {
				return err
			}
			total += len(chunk)
			chunk = chunk[:0]
		}
	}
	if len(chunk) > 0 {
		if err := insertChunk(db, chunk); err != nil {
			return err
		}
		total += len(chunk)
	}
	bar.Finish()

	elapsed := time.Since(timeStart)
	slog.Debug("Inserted gi to taxid mappings",
		"count", humanize.Comma(int64(total)),
		"duration", elapsed.String(),
	)

	return nil
}

// insertChunk writes one chunk of pairs inside a single transaction,
// split into multi-row INSERT statements under the parameter limit.
// No ON CONFLICT clause: loading a duplicate gi must fail loudly, since
// the mapping is append-only and never updated in place.
func insertChunk(db *sql.DB, pairs []Pair) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}

	for i := 0; i < len(pairs); i += maxRowsPerInsert {
		end := i + maxRowsPerInsert
		end = slices.Min([]int{end, len(pairs)})

		batch := pairs[i:end]

		var valueStrings []string
		var valueArgs []any
		for _, p := range batch {
			valueStrings = append(valueStrings, "(?, ?)")
			valueArgs = append(valueArgs, p.GI, p.TaxID)
		}

		insertQuery := fmt.Sprintf(
			"INSERT INTO gi_taxid (gi, taxid) VALUES %s",
			strings.Join(valueStrings, ", "),
		)

		if _, err := tx.Exec(insertQuery, valueArgs...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert gi_taxid batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit gi_taxid chunk: %w", err)
	}
	return nil
}
