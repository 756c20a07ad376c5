// Package ioproteo grafts the proteotyping tables onto a taxonomy
// SQLite database and fills them from prepared input files.
//
// The extension owns six tables: version, peptides, discriminative,
// refseqs, annotations, and gene. Extend rebuilds all of them from
// scratch; the inserts then fill refseqs, gene, and annotations.
// The peptides and discriminative tables are created for a downstream
// matching stage and stay empty here.
package ioproteo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/proteotype/proteodb/pkg/db"
	"github.com/proteotype/proteodb/pkg/schema"
)

// Annotation features arrive grouped by sequence, so the memoized
// header lookups only need to cover the current and previous sequence.
const headerCacheSize = 2

// Extender implements proteodb.Extender over a SQLite operator.
type Extender struct {
	op    db.Operator
	cache *lru.Cache[string, string]
}

// New creates an Extender over an open taxonomy database.
func New(op db.Operator) (*Extender, error) {
	cache, err := lru.New[string, string](headerCacheSize)
	if err != nil {
		return nil, err
	}
	return &Extender{op: op, cache: cache}, nil
}

// EnsureBase creates the inherited base schema on a fresh database so
// the extension's foreign keys have a target. An existing species
// table is left untouched; filling it with real taxonomy content is
// the taxonomy library's job, not ours.
func EnsureBase(ctx context.Context, op db.Operator) error {
	for _, model := range schema.Base() {
		exists, err := op.TableExists(ctx, model.TableName())
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		slog.Debug("Creating base table", "table", model.TableName())
		if _, err := op.DB().ExecContext(ctx, model.TableDDL()); err != nil {
			return fmt.Errorf("failed to create %s: %w",
				model.TableName(), err)
		}
		for _, idx := range model.IndexDDL() {
			if _, err := op.DB().ExecContext(ctx, idx); err != nil {
				return fmt.Errorf("failed to index %s: %w",
					model.TableName(), err)
			}
		}
	}
	return nil
}

// Extend drops and recreates the proteotyping tables, then records a
// single version row. Destructive and idempotent: the owned tables
// hold derived data and are rebuilt wholesale on every call.
func (e *Extender) Extend(
	ctx context.Context,
	refseqVer, taxonomyVer, comment string,
) error {
	slog.Info("Extending taxonomy database with proteotyping tables...")

	models := schema.Extension()

	// Repeat runs against a populated database lose data by design;
	// say so before it happens.
	for _, m := range models {
		exists, err := e.op.TableExists(ctx, m.TableName())
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		rows, err := e.op.RowCount(ctx, m.TableName())
		if err != nil {
			return err
		}
		if rows > 0 {
			slog.Warn("Dropping non-empty table",
				"table", m.TableName(), "rows", rows)
		}
	}

	tx, err := e.op.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}

	// Drop referencing tables before their targets.
	for i := len(models) - 1; i >= 0; i-- {
		stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s",
			models[i].TableName())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to drop %s: %w",
				models[i].TableName(), err)
		}
	}

	for _, m := range models {
		if _, err := tx.ExecContext(ctx, m.TableDDL()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create %s: %w",
				m.TableName(), err)
		}
		for _, idx := range m.IndexDDL() {
			if _, err := tx.ExecContext(ctx, idx); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to index %s: %w",
					m.TableName(), err)
			}
		}
	}

	created := time.Now().Format("2006-01-02")
	_, err = tx.ExecContext(ctx,
		`INSERT INTO version (created, refseq, taxonomy, comment)
		 VALUES (?, ?, ?, ?)`,
		created, refseqVer, taxonomyVer, comment,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert version row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit schema extension: %w", err)
	}

	// Cached headers refer to dropped rows now.
	e.cache.Purge()

	slog.Debug("Created proteotyping tables",
		"tables", len(models),
		"created", created,
		"refseq", refseqVer,
		"taxonomy", taxonomyVer,
	)
	return nil
}
