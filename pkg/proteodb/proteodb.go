package proteodb

import (
	"context"

	"github.com/proteotype/proteodb/pkg/schema"
)

// TaxidStore is the persistent gi->taxid lookup table. It is built once
// from an NCBI taxonomy dump and then used read-only.
type TaxidStore interface {
	// Lookup returns the taxid mapped to gi. ok is false when the store
	// holds no mapping for gi; a missing key is never an error.
	Lookup(gi int) (taxid int, ok bool, err error)

	// Count returns the number of stored mappings. The count is taken
	// with a live table scan, not a cached counter, so it reflects any
	// external changes to the store file.
	Count() (int, error)

	// Close releases the underlying store.
	Close() error
}

// AccessionResolver translates a sequence accession number into a taxid
// through a remote lookup service. Used as a fallback when the local
// store has no mapping for a gi number.
type AccessionResolver interface {
	// TaxidForAccession performs one blocking remote lookup.
	// Returns ErrTaxidNotFound-style failures when the service knows
	// nothing about the accession; the caller skips that record.
	TaxidForAccession(ctx context.Context, accno string) (int, error)
}

// Extender grafts the proteotyping tables onto an already-open taxonomy
// store and populates them from prepared input files.
//
// Extend is destructive and idempotent: each call drops and recreates
// the owned tables. The insert operations require Extend to have run;
// calling them against a base-schema store surfaces the engine's own
// missing-table error.
type Extender interface {
	// Extend drops and recreates the proteotyping tables, then records
	// a single version row with the given release identifiers.
	Extend(ctx context.Context, refseqVer, taxonomyVer, comment string) error

	// InsertRefseqs loads header->taxid pairs from a mappings file into
	// the refseqs table. Returns the number of inserted rows.
	InsertRefseqs(ctx context.Context, mappingsFile string) (int, error)

	// InsertGeneInfo loads records from an NCBI gene_info file into the
	// gene table. Returns the number of inserted rows.
	InsertGeneInfo(ctx context.Context, geneInfoFile string) (int, error)

	// InsertAnnotations loads features from GFF3 files found under
	// annotDir into the annotations table, joining each feature to its
	// stored refseq header. Returns the number of inserted rows.
	InsertAnnotations(ctx context.Context, annotDir, pattern string) (int, error)

	// InsertSpecies adds taxonomic nodes to the inherited species table.
	InsertSpecies(ctx context.Context, species []schema.Species) error

	// FindRefseqHeader returns the one stored refseq header containing
	// ident as a substring. Zero or multiple matches are errors.
	FindRefseqHeader(ctx context.Context, ident string) (string, error)

	// Dump writes the whole database as a gzipped stream of SQL
	// statements. A ".gz" suffix is appended to outFile unless already
	// present; the path actually written is returned.
	Dump(ctx context.Context, outFile string) (string, error)
}
