package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touchFile(t *testing.T, path string) {
	t.Helper()
	err := os.MkdirAll(filepath.Dir(path), 0755)
	require.NoError(t, err)
	err = os.WriteFile(path, []byte("x"), 0644)
	require.NoError(t, err)
}

// TestFindFiles_MatchesPattern verifies the walk picks up matching
// files in nested directories and nothing else.
func TestFindFiles_MatchesPattern(t *testing.T) {
	tmpDir := t.TempDir()

	touchFile(t, filepath.Join(tmpDir, "a.fna"))
	touchFile(t, filepath.Join(tmpDir, "sub", "b.fna"))
	touchFile(t, filepath.Join(tmpDir, "sub", "deep", "c.fna"))
	touchFile(t, filepath.Join(tmpDir, "sub", "notes.txt"))
	touchFile(t, filepath.Join(tmpDir, "d.gff"))

	files, err := FindFiles(tmpDir, "*.fna")
	require.NoError(t, err)

	expected := []string{
		filepath.Join(tmpDir, "a.fna"),
		filepath.Join(tmpDir, "sub", "b.fna"),
		filepath.Join(tmpDir, "sub", "deep", "c.fna"),
	}
	assert.Equal(t, expected, files)
}

// TestFindFiles_Sorted verifies results come back sorted no matter
// the creation order.
func TestFindFiles_Sorted(t *testing.T) {
	tmpDir := t.TempDir()

	touchFile(t, filepath.Join(tmpDir, "z.gff"))
	touchFile(t, filepath.Join(tmpDir, "a.gff"))
	touchFile(t, filepath.Join(tmpDir, "m.gff"))

	files, err := FindFiles(tmpDir, "*.gff")
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.True(t, files[0] < files[1] && files[1] < files[2],
		"Files should be sorted")
}

// TestFindFiles_NoMatches verifies an empty result for a pattern
// that matches nothing.
func TestFindFiles_NoMatches(t *testing.T) {
	tmpDir := t.TempDir()
	touchFile(t, filepath.Join(tmpDir, "a.fna"))

	files, err := FindFiles(tmpDir, "*.gff")
	require.NoError(t, err)
	assert.Empty(t, files)
}

// TestFindFiles_MissingRoot verifies a missing directory is an error.
func TestFindFiles_MissingRoot(t *testing.T) {
	_, err := FindFiles("/no/such/directory", "*.fna")
	assert.Error(t, err)
}

// TestFindFiles_DirNamesIgnored verifies directories whose names match
// the pattern are not reported as files.
func TestFindFiles_DirNamesIgnored(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.MkdirAll(filepath.Join(tmpDir, "dir.fna"), 0755)
	require.NoError(t, err)
	touchFile(t, filepath.Join(tmpDir, "dir.fna", "inner.fna"))

	files, err := FindFiles(tmpDir, "*.fna")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{filepath.Join(tmpDir, "dir.fna", "inner.fna")},
		files)
}
