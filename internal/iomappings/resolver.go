package iomappings

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/proteotype/proteodb/internal/iofasta"
	"github.com/proteotype/proteodb/internal/iofs"
	"github.com/proteotype/proteodb/pkg/proteodb"
)

// Resolver maps FASTA headers to taxids: the local gi->taxid store
// first, then a per-record network fallback for headers whose gi is
// not in the store.
type Resolver struct {
	store   proteodb.TaxidStore
	entrez  proteodb.AccessionResolver
	pattern string
}

// NewResolver wires a resolver from its collaborators. pattern is the
// shell glob for reference files under the reference directory.
func NewResolver(
	store proteodb.TaxidStore,
	entrez proteodb.AccessionResolver,
	pattern string,
) *Resolver {
	return &Resolver{store: store, entrez: entrez, pattern: pattern}
}

// Resolve walks refDir for files matching the glob pattern and calls
// fn once per resolvable record, in file order. Records that cannot
// be resolved are logged and skipped; an error from fn aborts the
// walk.
func (r *Resolver) Resolve(
	ctx context.Context,
	refDir string,
	fn func(Mapping) error,
) error {
	files, err := iofs.FindFiles(refDir, r.pattern)
	if err != nil {
		return fmt.Errorf("cannot scan reference directory: %w", err)
	}
	slog.Debug("Parsing FASTA files",
		"dir", refDir, "files", len(files))

	bar := pb.Full.Start(len(files))
	bar.Set("prefix", "Resolving headers: ")
	bar.Set(pb.CleanOnFinish, true)

	for _, path := range files {
		if err := r.resolveFile(ctx, path, fn); err != nil {
			return err
		}
		bar.Increment()
	}
	bar.Finish()

	return nil
}

func (r *Resolver) resolveFile(
	ctx context.Context,
	path string,
	fn func(Mapping) error,
) error {
	fr, err := iofasta.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer fr.Close()

	for {
		rec, err := fr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}

		header := firstToken(rec.Header)
		m, ok, err := r.resolveHeader(ctx, header)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := fn(m); err != nil {
			return err
		}
	}
}

// resolveHeader tries the store, then the network fallback. ok=false
// means the record is skipped; only store failures are returned as
// errors, since they signal a broken store rather than a gap in it.
func (r *Resolver) resolveHeader(
	ctx context.Context,
	header string,
) (Mapping, bool, error) {
	gi, ok := extractGI(header)
	if !ok {
		slog.Debug("Found no gi segment in header", "header", header)
		return Mapping{}, false, nil
	}

	taxid, found, err := r.store.Lookup(gi)
	if err != nil {
		return Mapping{}, false, err
	}
	if found {
		return Mapping{Header: header, TaxID: taxid}, true, nil
	}

	slog.Debug("Found no taxid mapping in the taxid store",
		"header", header, "gi", gi)

	accno, ok := extractAccession(header)
	if !ok {
		slog.Debug("Found no accession segment in header",
			"header", header)
		return Mapping{}, false, nil
	}

	taxid, err = r.entrez.TaxidForAccession(ctx, accno)
	if err != nil {
		slog.Debug("Found no taxid for accession",
			"accno", accno, "error", err)
		return Mapping{}, false, nil
	}
	return Mapping{Header: header, TaxID: taxid}, true, nil
}

// WriteFile resolves all records under refDir and writes one
// tab-separated "header<TAB>taxid" line per mapping to outPath.
// Returns the number of mappings written.
func (r *Resolver) WriteFile(
	ctx context.Context,
	refDir, outPath string,
) (int, error) {
	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("cannot create mappings file: %w", err)
	}

	w := bufio.NewWriter(f)
	var count int
	err = r.Resolve(ctx, refDir, func(m Mapping) error {
		if _, err := fmt.Fprintf(w, "%s\t%d\n",
			m.Header, m.TaxID); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		f.Close()
		return count, err
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return count, err
	}
	return count, f.Close()
}

// firstToken returns the first whitespace-separated token of s.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// extractGI pulls the integer from a "gi|<number>|" header segment.
func extractGI(header string) (int, bool) {
	_, rest, found := strings.Cut(header, "gi|")
	if !found {
		return 0, false
	}
	value, _, _ := strings.Cut(rest, "|")
	gi, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return gi, true
}

// extractAccession pulls the accession from a "ref|<accno>|" header
// segment.
func extractAccession(header string) (string, bool) {
	_, rest, found := strings.Cut(header, "ref|")
	if !found {
		return "", false
	}
	accno, _, _ := strings.Cut(rest, "|")
	if accno == "" {
		return "", false
	}
	return accno, true
}
