package iotaxid

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/proteotype/proteodb/pkg/config"
	"github.com/proteotype/proteodb/pkg/db"
	"github.com/proteotype/proteodb/pkg/proteodb"
)

// Store implements proteodb.TaxidStore over a SQLite operator.
type Store struct {
	op db.Operator
}

// New opens the store at cfg.Taxid.Store if the file exists, otherwise
// builds a new one from cfg.Taxid.Dump. An existing store is trusted
// as-is, no freshness check against the dump is made.
func New(op db.Operator, cfg *config.Config) (proteodb.TaxidStore, error) {
	path := cfg.Taxid.Store

	if _, err := os.Stat(path); err == nil {
		slog.Debug("Found previous taxid store", "file", path)
		if err := op.Open(path); err != nil {
			return nil, err
		}
		return &Store{op: op}, nil
	}

	slog.Debug("Found no previous taxid store, creating new",
		"file", path)
	if cfg.Taxid.Dump == "" {
		return nil, ErrNoDumpFile
	}
	// Check the dump before creating the store file, so a bad dump
	// path cannot leave behind an empty store that later runs would
	// open as-is.
	if _, err := os.Stat(cfg.Taxid.Dump); err != nil {
		return nil, fmt.Errorf("cannot read dump file %s: %w",
			cfg.Taxid.Dump, err)
	}

	if err := op.Open(path); err != nil {
		return nil, err
	}
	err := buildStore(op.DB(), cfg.Taxid.Dump, cfg.Taxid.BatchSize)
	if err != nil {
		op.Close()
		return nil, err
	}
	return &Store{op: op}, nil
}

// Lookup returns the taxid mapped to gi. An absent key is not an
// error: it returns ok=false so callers can fall back to other
// resolution strategies.
func (s *Store) Lookup(gi int) (int, bool, error) {
	var taxid int
	err := s.op.DB().QueryRow(
		"SELECT taxid FROM gi_taxid WHERE gi = ?", gi,
	).Scan(&taxid)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false,
			fmt.Errorf("taxid lookup failed for gi %d: %w", gi, err)
	}
	return taxid, true, nil
}

// Count returns the number of mappings via a live count(*) scan.
func (s *Store) Count() (int, error) {
	return s.op.RowCount(context.Background(), "gi_taxid")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.op.Close()
}
