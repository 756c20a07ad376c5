// Package iotaxid builds and queries the persistent gi->taxid lookup
// store. The store is a single-table SQLite file seeded once from an
// NCBI Taxonomy dump and then reused across runs.
package iotaxid

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Pair is one gi->taxid mapping from a taxonomy dump file.
type Pair struct {
	GI    int
	TaxID int
}

// DumpReader lazily yields pairs from a gi_taxid dump stream, one line
// at a time. It is one-pass and not restartable.
type DumpReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewDumpReader returns a DumpReader over r.
func NewDumpReader(r io.Reader) *DumpReader {
	return &DumpReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next pair, or io.EOF after the last line.
// A line that does not hold exactly two integer fields is a parse
// error naming the line number; the dump format is assumed fixed, so
// reading stops there.
func (d *DumpReader) Next() (Pair, error) {
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			return Pair{}, err
		}
		return Pair{}, io.EOF
	}
	d.line++

	fields := strings.Fields(d.scanner.Text())
	if len(fields) != 2 {
		return Pair{}, ParseDumpError(d.line, d.scanner.Text())
	}

	gi, err := strconv.Atoi(fields[0])
	if err != nil {
		return Pair{}, ParseDumpError(d.line, d.scanner.Text())
	}
	taxid, err := strconv.Atoi(fields[1])
	if err != nil {
		return Pair{}, ParseDumpError(d.line, d.scanner.Text())
	}

	return Pair{GI: gi, TaxID: taxid}, nil
}
