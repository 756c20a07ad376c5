// Package iomappings resolves reference sequence headers to taxids
// and reads and writes the two-column mappings file that carries the
// result between the two preparation stages.
package iomappings

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// Mapping is one resolved header->taxid pair.
type Mapping struct {
	Header string
	TaxID  int
}

// Reader streams mappings back from a header_taxid file, one line at
// a time.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	closer  io.Closer
}

// NewReader returns a Reader over an open mappings stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Open opens a mappings file for streaming.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	res := NewReader(f)
	res.closer = f
	return res, nil
}

// Next returns the next mapping, or io.EOF after the last line.
// The file format is fixed, so a malformed line is a parse error
// naming the line number and reading stops there.
func (r *Reader) Next() (Mapping, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return Mapping{}, err
		}
		return Mapping{}, io.EOF
	}
	r.line++

	fields := strings.Fields(r.scanner.Text())
	if len(fields) != 2 {
		return Mapping{}, ParseMappingError(r.line, r.scanner.Text())
	}

	taxid, err := strconv.Atoi(fields[1])
	if err != nil {
		return Mapping{}, ParseMappingError(r.line, r.scanner.Text())
	}

	return Mapping{Header: fields[0], TaxID: taxid}, nil
}

// Close closes the underlying file for readers created with Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
