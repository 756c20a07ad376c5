package ioproteo

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/proteotype/proteodb/internal/iofs"
	"github.com/proteotype/proteodb/internal/iogff"
	"github.com/proteotype/proteodb/internal/iomappings"
	"github.com/proteotype/proteodb/pkg/schema"
)

// SQLite allows 32766 bound parameters per statement. The widest
// extension table has six columns, so 5000 rows per statement stays
// safely under the limit for all of them.
const maxRowsPerStatement = 5000

// insertRows writes rows into table inside the caller's transaction,
// split into multi-row INSERT statements under the parameter limit.
func insertRows(
	ctx context.Context,
	tx *sql.Tx,
	table string,
	cols []string,
	rows [][]any,
) error {
	placeholder := "(" + strings.Repeat("?, ", len(cols)-1) + "?)"

	for i := 0; i < len(rows); i += maxRowsPerStatement {
		end := i + maxRowsPerStatement
		end = slices.Min([]int{end, len(rows)})

		batch := rows[i:end]

		var valueStrings []string
		var valueArgs []any
		for _, row := range batch {
			valueStrings = append(valueStrings, placeholder)
			valueArgs = append(valueArgs, row...)
		}

		insertQuery := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES %s",
			table,
			strings.Join(cols, ", "),
			strings.Join(valueStrings, ", "),
		)

		if _, err := tx.ExecContext(ctx, insertQuery, valueArgs...); err != nil {
			return fmt.Errorf("failed to insert %s batch: %w", table, err)
		}
	}
	return nil
}

// InsertRefseqs loads header->taxid mappings into the refseqs table.
// The whole file goes in under a single transaction: a malformed line
// aborts the insert and leaves the table as it was.
func (e *Extender) InsertRefseqs(
	ctx context.Context,
	mappingsFile string,
) (int, error) {
	slog.Info("Inserting reference sequence mappings...",
		"file", mappingsFile)

	f, err := os.Open(mappingsFile)
	if err != nil {
		return 0, fmt.Errorf("cannot open mappings file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("cannot stat mappings file: %w", err)
	}
	bar := newByteProgressBar(info.Size(), "Loading mappings: ")
	reader := iomappings.NewReader(bar.NewProxyReader(f))

	cols := schema.Columns(schema.Refseq{})

	tx, err := e.op.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction: %w", err)
	}

	timeStart := time.Now()
	var total int
	rows := make([][]any, 0, maxRowsPerStatement)
	for {
		m, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			tx.Rollback()
			return 0, err
		}

		rows = append(rows, []any{m.Header, m.TaxID})
		if len(rows) == maxRowsPerStatement {
			if err := insertRows(ctx, tx, "refseqs", cols, rows); err != nil {
				tx.Rollback()
				return 0, err
			}
			total += len(rows)
			rows = rows[:0]
		}
	}
	if err := insertRows(ctx, tx, "refseqs", cols, rows); err != nil {
		tx.Rollback()
		return 0, err
	}
	total += len(rows)

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("cannot commit refseqs insert: %w", err)
	}
	bar.Finish()

	elapsed := time.Since(timeStart)
	slog.Debug("Inserted reference sequence mappings",
		"count", humanize.Comma(int64(total)),
		"duration", elapsed.String(),
	)
	return total, nil
}

// InsertGeneInfo loads NCBI gene records into the gene table. As with
// the mappings, the file is one transaction and a malformed line
// aborts it.
func (e *Extender) InsertGeneInfo(
	ctx context.Context,
	geneInfoFile string,
) (int, error) {
	slog.Info("Inserting gene info records...", "file", geneInfoFile)

	f, err := os.Open(geneInfoFile)
	if err != nil {
		return 0, fmt.Errorf("cannot open gene_info file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("cannot stat gene_info file: %w", err)
	}
	bar := newByteProgressBar(info.Size(), "Loading gene info: ")
	reader := NewGeneInfoReader(bar.NewProxyReader(f))

	cols := schema.Columns(schema.Gene{})

	tx, err := e.op.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction: %w", err)
	}

	timeStart := time.Now()
	var total int
	rows := make([][]any, 0, maxRowsPerStatement)
	for {
		g, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			tx.Rollback()
			return 0, err
		}

		rows = append(rows, []any{g.TaxID, g.GeneID, g.Symbol, g.Description})
		if len(rows) == maxRowsPerStatement {
			if err := insertRows(ctx, tx, "gene", cols, rows); err != nil {
				tx.Rollback()
				return 0, err
			}
			total += len(rows)
			rows = rows[:0]
		}
	}
	if err := insertRows(ctx, tx, "gene", cols, rows); err != nil {
		tx.Rollback()
		return 0, err
	}
	total += len(rows)

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("cannot commit gene insert: %w", err)
	}
	bar.Finish()

	elapsed := time.Since(timeStart)
	slog.Debug("Inserted gene info records",
		"count", humanize.Comma(int64(total)),
		"duration", elapsed.String(),
	)
	return total, nil
}

// InsertAnnotations walks annotDir for GFF3 files matching pattern and
// loads their features into the annotations table, resolving each
// feature's sequence identifier to a stored refseq header first.
//
// A file that fails the GFF3 version check is logged and skipped; the
// remaining files still load. A failed header resolution aborts the
// whole insert, since it means the annotations do not belong to the
// loaded reference set.
func (e *Extender) InsertAnnotations(
	ctx context.Context,
	annotDir, pattern string,
) (int, error) {
	slog.Info("Inserting annotations...",
		"dir", annotDir, "pattern", pattern)

	files, err := iofs.FindFiles(annotDir, pattern)
	if err != nil {
		return 0, fmt.Errorf("cannot scan annotation dir: %w", err)
	}

	cols := schema.Columns(schema.Annotation{})

	tx, err := e.op.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction: %w", err)
	}

	timeStart := time.Now()
	bar := newProgressBar(len(files), "Parsing annotations: ")
	var total int
	rows := make([][]any, 0, maxRowsPerStatement)
	for _, path := range files {
		n, err := e.annotateFile(ctx, tx, path, cols, &rows)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		total += n
		bar.Increment()
	}
	if err := insertRows(ctx, tx, "annotations", cols, rows); err != nil {
		tx.Rollback()
		return 0, err
	}
	total += len(rows)

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("cannot commit annotations insert: %w", err)
	}
	bar.Finish()

	elapsed := time.Since(timeStart)
	slog.Debug("Inserted annotations",
		"count", humanize.Comma(int64(total)),
		"duration", elapsed.String(),
	)
	return total, nil
}

// annotateFile streams one GFF3 file into rows, flushing full batches
// into the transaction. Returns the number of rows flushed.
func (e *Extender) annotateFile(
	ctx context.Context,
	tx *sql.Tx,
	path string,
	cols []string,
	rows *[][]any,
) (int, error) {
	gff, err := iogff.Open(path)
	if err != nil {
		// Not a GFF3 file; it contributes nothing, the rest of the
		// directory still loads.
		slog.Error("Skipping annotation file", "error", err)
		return 0, nil
	}
	defer gff.Close()

	var flushed int
	for {
		feat, err := gff.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return flushed, err
		}

		header, err := e.FindRefseqHeader(ctx, feat.SeqID)
		if err != nil {
			return flushed, err
		}

		*rows = append(*rows, []any{header, feat.Start, feat.End, feat.Attributes})
		if len(*rows) == maxRowsPerStatement {
			if err := insertRows(ctx, tx, "annotations", cols, *rows); err != nil {
				return flushed, err
			}
			flushed += len(*rows)
			*rows = (*rows)[:0]
		}
	}
	return flushed, nil
}

// InsertSpecies adds taxonomy nodes to the inherited species table.
// Meant for test fixtures and small manual additions; real taxonomy
// content comes with the database this tool extends.
func (e *Extender) InsertSpecies(
	ctx context.Context,
	species []schema.Species,
) error {
	if len(species) == 0 {
		return nil
	}

	cols := schema.Columns(schema.Species{})
	rows := make([][]any, 0, len(species))
	for _, sp := range species {
		rows = append(rows,
			[]any{sp.TaxID, sp.Parent, sp.Name, sp.Common, sp.Rank, sp.Track})
	}

	tx, err := e.op.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}
	if err := insertRows(ctx, tx, "species", cols, rows); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit species insert: %w", err)
	}

	slog.Debug("Inserted species", "count", len(species))
	return nil
}
