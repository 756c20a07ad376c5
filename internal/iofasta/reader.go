// Package iofasta streams records from FASTA reference sequence files.
package iofasta

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry.
type Record struct {
	// Header is the header line without the leading '>'.
	Header string
	// Seq is the concatenated sequence with line breaks removed.
	Seq string
}

// Reader streams FASTA records one at a time, so memory use is bounded
// by the largest single record, not the file size.
type Reader struct {
	br      *bufio.Reader
	header  string
	started bool
	done    bool
	closers []io.Closer
}

// NewReader returns a Reader for an already open stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Open opens a FASTA file for streaming. Gzipped files are detected by
// their magic bytes and decompressed transparently.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(f)
	if magic, _ := br.Peek(2); len(magic) == 2 &&
		magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, err
		}
		res := NewReader(gz)
		res.closers = []io.Closer{gz, f}
		return res, nil
	}

	res := &Reader{br: br, closers: []io.Closer{f}}
	return res, nil
}

// Next returns the next record, or io.EOF after the last one.
// Lines before the first '>' are ignored.
func (r *Reader) Next() (*Record, error) {
	if r.done {
		return nil, io.EOF
	}

	if !r.started {
		for {
			line, err := r.readLine()
			if err == io.EOF {
				r.done = true
				return nil, io.EOF
			}
			if err != nil {
				return nil, err
			}
			if strings.HasPrefix(line, ">") {
				r.header = strings.TrimPrefix(line, ">")
				r.started = true
				break
			}
		}
	}

	rec := &Record{Header: r.header}
	var seq strings.Builder
	for {
		line, err := r.readLine()
		if err == io.EOF {
			r.done = true
			rec.Seq = seq.String()
			return rec, nil
		}
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(line, ">") {
			r.header = strings.TrimPrefix(line, ">")
			rec.Seq = seq.String()
			return rec, nil
		}
		seq.WriteString(line)
	}
}

// Close closes the underlying file for readers created with Open.
// It is a no-op for readers over plain streams.
func (r *Reader) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// readLine returns the next non-blank line without its line break.
// A bufio.Reader is used instead of a Scanner so unusually long
// sequence lines cannot overflow a token limit.
func (r *Reader) readLine() (string, error) {
	for {
		line, err := r.br.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if err != nil {
			if err == io.EOF && line != "" {
				return line, nil
			}
			return "", err
		}
		if line == "" {
			continue
		}
		return line, nil
	}
}
