package ioproteo

import (
	"context"
	"fmt"
)

// FindRefseqHeader returns the stored reference-sequence header that
// contains ident as a substring. Annotation files carry bare sequence
// identifiers while refseqs stores full FASTA headers, so the match is
// a substring scan. Exactly one header must match: zero means the
// reference set and the annotations disagree, more than one means the
// identifier is ambiguous, and either way the caller cannot proceed.
//
// Results are memoized in a small LRU cache keyed by ident, sized for
// annotation files that group features by sequence.
func (e *Extender) FindRefseqHeader(
	ctx context.Context,
	ident string,
) (string, error) {
	if header, ok := e.cache.Get(ident); ok {
		return header, nil
	}

	rows, err := e.op.DB().QueryContext(ctx,
		"SELECT header FROM refseqs WHERE header LIKE '%' || ? || '%' LIMIT 2",
		ident,
	)
	if err != nil {
		return "", fmt.Errorf("header lookup failed for %q: %w",
			ident, err)
	}
	defer rows.Close()

	var headers []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return "", fmt.Errorf("header lookup failed for %q: %w",
				ident, err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("header lookup failed for %q: %w",
			ident, err)
	}

	switch len(headers) {
	case 0:
		return "", HeaderNotFoundError(ident)
	case 1:
		e.cache.Add(ident, headers[0])
		return headers[0], nil
	default:
		return "", AmbiguousHeaderError(ident)
	}
}
