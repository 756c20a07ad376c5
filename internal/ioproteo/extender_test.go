package ioproteo_test

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/proteotype/proteodb/internal/iodb"
	"github.com/proteotype/proteodb/internal/ioproteo"
	"github.com/proteotype/proteodb/pkg/db"
	"github.com/proteotype/proteodb/pkg/proteodb"
	"github.com/proteotype/proteodb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var extensionTables = []string{
	"version", "peptides", "discriminative",
	"refseqs", "annotations", "gene",
}

// TestExtenderImplementsInterface verifies that Extender satisfies the
// proteodb.Extender contract.
func TestExtenderImplementsInterface(t *testing.T) {
	var _ proteodb.Extender = (*ioproteo.Extender)(nil)
}

// newTestDB opens a fresh database with the base schema in place.
func newTestDB(t *testing.T) db.Operator {
	t.Helper()
	op := iodb.NewSQLiteOperator()
	err := op.Open(filepath.Join(t.TempDir(), "proteodb.sql"))
	require.NoError(t, err)
	t.Cleanup(func() { op.Close() })

	err = ioproteo.EnsureBase(context.Background(), op)
	require.NoError(t, err)
	return op
}

// newTestExtender returns an Extender over a freshly extended database.
func newTestExtender(t *testing.T) (*ioproteo.Extender, db.Operator) {
	t.Helper()
	op := newTestDB(t)
	ext, err := ioproteo.New(op)
	require.NoError(t, err)

	err = ext.Extend(context.Background(), "refseq-test", "taxonomy-test", "")
	require.NoError(t, err)
	return ext, op
}

func TestEnsureBase(t *testing.T) {
	ctx := context.Background()
	op := newTestDB(t)

	exists, err := op.TableExists(ctx, "species")
	require.NoError(t, err)
	assert.True(t, exists, "base schema should include species")

	// Safe to call again on an existing database.
	err = ioproteo.EnsureBase(ctx, op)
	require.NoError(t, err)
}

func TestExtend_CreatesTables(t *testing.T) {
	ctx := context.Background()
	_, op := newTestExtender(t)

	for _, table := range extensionTables {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}
}

func TestExtend_VersionRow(t *testing.T) {
	ctx := context.Background()
	op := newTestDB(t)
	ext, err := ioproteo.New(op)
	require.NoError(t, err)

	err = ext.Extend(ctx, "refseq 225", "2025-06-01", "test build")
	require.NoError(t, err)

	var created, refseq, taxonomy, comment string
	err = op.DB().QueryRowContext(ctx,
		"SELECT created, refseq, taxonomy, comment FROM version").
		Scan(&created, &refseq, &taxonomy, &comment)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), created)
	assert.Equal(t, "refseq 225", refseq)
	assert.Equal(t, "2025-06-01", taxonomy)
	assert.Equal(t, "test build", comment)
}

func TestExtend_RebuildDropsData(t *testing.T) {
	ctx := context.Background()
	ext, op := newTestExtender(t)

	_, err := op.DB().ExecContext(ctx,
		"INSERT INTO refseqs (header, taxid) VALUES ('NC_000913.3', 511145)")
	require.NoError(t, err)

	// Re-extension wipes previous content and leaves exactly one
	// version row.
	err = ext.Extend(ctx, "refseq-2", "taxonomy-2", "rebuild")
	require.NoError(t, err)

	count, err := op.RowCount(ctx, "refseqs")
	require.NoError(t, err)
	assert.Zero(t, count, "refseqs should be empty after rebuild")

	count, err = op.RowCount(ctx, "version")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "version should hold a single row")

	var refseq string
	err = op.DB().QueryRowContext(ctx,
		"SELECT refseq FROM version").Scan(&refseq)
	require.NoError(t, err)
	assert.Equal(t, "refseq-2", refseq)
}

func TestInsertSpecies(t *testing.T) {
	ctx := context.Background()
	ext, op := newTestExtender(t)

	species := []schema.Species{
		{TaxID: 511145, Parent: 83333, Name: "Escherichia coli str. K-12 substr. MG1655",
			Rank: "no rank", Track: "1;131567;2;1224;511145"},
		{TaxID: 83333, Parent: 562, Name: "Escherichia coli K-12",
			Rank: "no rank", Track: "1;131567;2;1224;83333"},
	}
	err := ext.InsertSpecies(ctx, species)
	require.NoError(t, err)

	count, err := op.RowCount(ctx, "species")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var name string
	err = op.DB().QueryRowContext(ctx,
		"SELECT spname FROM species WHERE taxid = 511145").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Escherichia coli str. K-12 substr. MG1655", name)

	err = ext.InsertSpecies(ctx, nil)
	assert.NoError(t, err, "empty batch should be a no-op")
}
