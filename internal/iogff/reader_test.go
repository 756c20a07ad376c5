package iogff

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gffSample = `##gff-version 3
##sequence-region NC_000001.1 1 248956422
NC_000001.1	RefSeq	gene	100	900	.	+	.	ID=gene0;Name=thrL
NC_000001.1	RefSeq	CDS	190	255	.	+	0	ID=cds0;product=thr operon leader peptide
###
NC_000002.1	RefSeq	gene	3000	4500	.	-	.	ID=gene1;Name=thrA
`

func readAll(t *testing.T, r *Reader) []Feature {
	t.Helper()
	var res []Feature
	for {
		feat, err := r.Next()
		if err == io.EOF {
			return res
		}
		require.NoError(t, err)
		res = append(res, *feat)
	}
}

// TestNext_ParsesFeatures verifies field extraction and that comment
// lines and the section sentinel are passed over.
func TestNext_ParsesFeatures(t *testing.T) {
	r, err := NewReader(strings.NewReader(gffSample), "test.gff")
	require.NoError(t, err)

	feats := readAll(t, r)
	require.Len(t, feats, 3)

	assert.Equal(t, "NC_000001.1", feats[0].SeqID)
	assert.Equal(t, 100, feats[0].Start)
	assert.Equal(t, 900, feats[0].End)
	assert.Equal(t, "ID=gene0;Name=thrL", feats[0].Attributes)

	// Feature after the "###" sentinel is still parsed
	assert.Equal(t, "NC_000002.1", feats[2].SeqID)
	assert.Equal(t, 3000, feats[2].Start)
}

// TestNewReader_VersionGate verifies a file without the version
// directive is rejected outright.
func TestNewReader_VersionGate(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no directive", "NC_1\tRefSeq\tgene\t1\t2\t.\t+\t.\tID=g\n"},
		{"wrong version", "##gff-version 2\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input), "bad.gff")
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "gff")
		})
	}
}

// TestNext_MalformedLinesSkipped verifies lines with the wrong column
// count or non-numeric coordinates contribute no features.
func TestNext_MalformedLinesSkipped(t *testing.T) {
	input := "##gff-version 3\n" +
		"too\tfew\tcolumns\n" +
		"NC_1\tRefSeq\tgene\tnotanint\t900\t.\t+\t.\tID=g0\n" +
		"NC_1\tRefSeq\tgene\t100\t900\t.\t+\t.\tID=g1\n"

	r, err := NewReader(strings.NewReader(input), "test.gff")
	require.NoError(t, err)

	feats := readAll(t, r)
	require.Len(t, feats, 1)
	assert.Equal(t, "ID=g1", feats[0].Attributes)
}

// TestNext_HeaderOnly verifies a file with only the directive yields
// zero features.
func TestNext_HeaderOnly(t *testing.T) {
	r, err := NewReader(strings.NewReader("##gff-version 3\n"), "empty.gff")
	require.NoError(t, err)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

// TestOpen_File verifies reading from disk with Close.
func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ann.gff")
	err := os.WriteFile(path, []byte(gffSample), 0644)
	require.NoError(t, err)

	r, err := Open(path)
	require.NoError(t, err)

	feats := readAll(t, r)
	assert.Len(t, feats, 3)
	assert.NoError(t, r.Close())
}

// TestOpen_RejectsNonGFF verifies Open fails for a file without the
// version directive.
func TestOpen_RejectsNonGFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notgff.txt")
	err := os.WriteFile(path, []byte("just text\n"), 0644)
	require.NoError(t, err)

	_, err = Open(path)
	assert.Error(t, err)
}
