package ioproteo

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/proteotype/proteodb/pkg/schema"
)

// GeneInfoReader streams gene records from an NCBI gene_info file,
// a tab-separated table with one header line. Only four of its
// columns matter here: tax_id, GeneID, Symbol, and description.
type GeneInfoReader struct {
	scanner *bufio.Scanner
	line    int
	started bool
	closer  io.Closer
}

// NewGeneInfoReader wraps an already-open gene_info stream.
func NewGeneInfoReader(r io.Reader) *GeneInfoReader {
	sc := bufio.NewScanner(r)
	// Description fields can make lines long; the default token
	// size is too tight for comfort.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &GeneInfoReader{scanner: sc}
}

// OpenGeneInfo opens a gene_info file for streaming.
func OpenGeneInfo(path string) (*GeneInfoReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewGeneInfoReader(f)
	r.closer = f
	return r, nil
}

// Next returns the next gene record, or io.EOF after the last one.
// A malformed line makes the whole file suspect and stops the read.
func (g *GeneInfoReader) Next() (schema.Gene, error) {
	var gene schema.Gene

	if !g.started {
		g.started = true
		// The first line is a column header.
		if g.scanner.Scan() {
			g.line++
		}
	}

	if !g.scanner.Scan() {
		if err := g.scanner.Err(); err != nil {
			return gene, err
		}
		return gene, io.EOF
	}
	g.line++
	text := g.scanner.Text()

	fields := strings.Split(text, "\t")
	if len(fields) < 9 {
		return gene, ParseGeneInfoError(g.line, text)
	}

	taxid, err := strconv.Atoi(fields[0])
	if err != nil {
		return gene, ParseGeneInfoError(g.line, text)
	}
	geneID, err := strconv.Atoi(fields[1])
	if err != nil {
		return gene, ParseGeneInfoError(g.line, text)
	}

	gene.TaxID = taxid
	gene.GeneID = geneID
	gene.Symbol = fields[2]
	gene.Description = fields[8]
	return gene, nil
}

// Close releases the underlying file, if the reader owns one.
func (g *GeneInfoReader) Close() error {
	if g.closer == nil {
		return nil
	}
	return g.closer.Close()
}
