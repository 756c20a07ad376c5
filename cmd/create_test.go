package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/proteotype/proteodb/internal/iodb"
	"github.com/proteotype/proteodb/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCreateCmd_Exists verifies getCreateCmd returns
// a valid command.
func TestGetCreateCmd_Exists(t *testing.T) {
	cmd := getCreateCmd()
	require.NotNil(t, cmd, "Create command should exist")
	assert.Equal(t, "create MAPPINGS GENE_INFO ANNOT_DIR", cmd.Use)
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetCreateCmd_Flags verifies the command's flags.
func TestGetCreateCmd_Flags(t *testing.T) {
	cmd := getCreateCmd()

	for _, name := range []string{
		"dbfile", "glob-gff", "taxonomy-ver",
		"refseq-ver", "comment", "dump",
	} {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "--%s flag should exist", name)
	}
}

// TestGetCreateCmd_RequiresArgs verifies positional argument
// validation.
func TestGetCreateCmd_RequiresArgs(t *testing.T) {
	cmd := getCreateCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"mappings.tab", "gene_info"})

	err := cmd.Execute()
	assert.Error(t, err,
		"create needs MAPPINGS, GENE_INFO, and ANNOT_DIR")
}

// TestCreateCommand_EndToEnd runs the full create workflow: schema
// extension, all three inserts, and the optional SQL dump.
func TestCreateCommand_EndToEnd(t *testing.T) {
	iotesting.TempHome(t)
	workDir := t.TempDir()

	mappingsPath := filepath.Join(workDir, "mappings.tab")
	err := os.WriteFile(mappingsPath, []byte(
		"gi|1001|ref|NC_001.1|\t511145\ngi|1002|ref|NC_002.1|\t83333\n"),
		0644)
	require.NoError(t, err)

	geneInfoPath := filepath.Join(workDir, "gene_info")
	err = os.WriteFile(geneInfoPath, []byte(
		"#tax_id\tGeneID\tSymbol\tLocusTag\tSynonyms\tdbXrefs\tchromosome\tmap_location\tdescription\n"+
			"511145\t944742\tthrA\tb0002\t-\t-\t-\t-\taspartate kinase\n"),
		0644)
	require.NoError(t, err)

	annotDir := filepath.Join(workDir, "annotations")
	require.NoError(t, os.MkdirAll(annotDir, 0755))
	err = os.WriteFile(filepath.Join(annotDir, "alpha.gff"), []byte(
		"##gff-version 3\n"+
			"NC_001.1\tRefSeq\tgene\t100\t400\t.\t+\t.\tID=gene-1;Name=thrA\n"),
		0644)
	require.NoError(t, err)

	dbPath := filepath.Join(workDir, "proteodb.sql")
	dumpPath := filepath.Join(workDir, "proteodb_dump.sql")

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{
		"create", mappingsPath, geneInfoPath, annotDir,
		"--dbfile", dbPath,
		"--refseq-ver", "refseq 225",
		"--taxonomy-ver", "2025-06-01",
		"--comment", "test build",
		"--dump", dumpPath,
	})

	err = rootCmd.Execute()
	require.NoError(t, err)

	assert.FileExists(t, dbPath)
	assert.FileExists(t, dumpPath+".gz")

	ctx := context.Background()
	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Open(dbPath))
	defer op.Close()

	counts := map[string]int{
		"refseqs":     2,
		"gene":        1,
		"annotations": 1,
		"version":     1,
	}
	for table, want := range counts {
		got, err := op.RowCount(ctx, table)
		require.NoError(t, err)
		assert.Equal(t, want, got, "row count of %s", table)
	}

	var refseq, taxonomy string
	err = op.DB().QueryRowContext(ctx,
		"SELECT refseq, taxonomy FROM version").Scan(&refseq, &taxonomy)
	require.NoError(t, err)
	assert.Equal(t, "refseq 225", refseq)
	assert.Equal(t, "2025-06-01", taxonomy)
}
