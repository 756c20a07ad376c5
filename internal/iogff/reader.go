// Package iogff streams features from GFF3 annotation files.
//
// Only the columns used downstream are kept: sequence identifier,
// start, end, and the attributes text.
package iogff

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Feature is the subset of one GFF3 record used for annotations.
type Feature struct {
	SeqID      string
	Start      int
	End        int
	Attributes string
}

// Reader streams features from one GFF3 file. Lines beginning with '#'
// after the version directive are skipped; malformed lines are logged
// and skipped so one bad record cannot abort the file.
type Reader struct {
	br     *bufio.Reader
	name   string
	done   bool
	closer io.Closer
}

// NewReader verifies the GFF3 version directive on the first line and
// returns a Reader. name identifies the source in log messages.
func NewReader(rd io.Reader, name string) (*Reader, error) {
	br := bufio.NewReader(rd)
	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	first = strings.TrimRight(first, "\r\n")
	if !strings.HasPrefix(first, "##gff-version 3") {
		return nil, fmt.Errorf("%s: wrong gff version or not a gff file", name)
	}
	return &Reader{br: br, name: name}, nil
}

// Open opens a GFF3 file and verifies its version directive.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Next returns the next feature, or io.EOF after the last one.
func (r *Reader) Next() (*Feature, error) {
	if r.done {
		return nil, io.EOF
	}

	for {
		line, err := r.readLine()
		if err == io.EOF {
			r.done = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}

		// "###" marks the end of a record section, expected.
		if line == "###" {
			slog.Debug("Reached end of annotation records", "file", r.name)
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 9 {
			slog.Error("Cannot parse annotation line",
				"file", r.name, "line", line)
			continue
		}

		start, err1 := strconv.Atoi(fields[3])
		end, err2 := strconv.Atoi(fields[4])
		if err1 != nil || err2 != nil {
			slog.Error("Cannot parse annotation coordinates",
				"file", r.name, "line", line)
			continue
		}

		return &Feature{
			SeqID:      fields[0],
			Start:      start,
			End:        end,
			Attributes: fields[8],
		}, nil
	}
}

// Close closes the underlying file for readers created with Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func (r *Reader) readLine() (string, error) {
	line, err := r.br.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}
