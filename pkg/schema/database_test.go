package schema_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/proteotype/proteodb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// TestDDLExecutes verifies the generated statements are accepted by a
// real SQLite database, including the reserved-looking column names
// (end, rank) the inherited schema uses.
func TestDDLExecutes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses SQLite file in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "schema_test.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	// Base tables first so references resolve
	models := append(schema.Base(), schema.Extension()...)

	for _, m := range models {
		_, err = db.Exec(m.TableDDL())
		require.NoError(t, err, "CREATE TABLE %s", m.TableName())

		for _, idx := range m.IndexDDL() {
			_, err = db.Exec(idx)
			require.NoError(t, err, "index on %s", m.TableName())
		}
	}

	// All tables visible in sqlite_master
	rows, err := db.Query(
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	require.NoError(t, err)
	defer rows.Close()

	found := make(map[string]bool)
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	for _, m := range models {
		assert.True(t, found[m.TableName()],
			"table %s should exist", m.TableName())
	}
}

// TestRefseqHeaderUnique verifies the primary key rejects duplicate
// headers.
func TestRefseqHeaderUnique(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses SQLite file in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "refseqs_test.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(schema.Refseq{}.TableDDL())
	require.NoError(t, err)

	_, err = db.Exec(
		"INSERT INTO refseqs VALUES (?, ?)", "gi|1|ref|NC_1.1|", 9606)
	require.NoError(t, err)

	_, err = db.Exec(
		"INSERT INTO refseqs VALUES (?, ?)", "gi|1|ref|NC_1.1|", 10090)
	assert.Error(t, err, "duplicate header should violate primary key")
}
