// Package ioentrez queries NCBI Entrez E-utils for taxids of records
// that have no local gi mapping.
package ioentrez

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/proteotype/proteodb/pkg/config"
)

// Client fetches taxids for nucleotide accessions via efetch.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client from the Entrez configuration. The configured
// timeout bounds one whole efetch round trip.
func New(cfg config.EntrezConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

// TaxidForAccession fetches the nuccore record for accno and extracts
// its taxid. Any failure along the way, including a timed-out request,
// means "no mapping found" and is reported as ErrTaxidNotFound; the
// caller decides whether that ends the record or the run.
func (c *Client) TaxidForAccession(
	ctx context.Context,
	accno string,
) (int, error) {
	slog.Debug("Requesting taxid via Entrez E-utils", "accno", accno)

	reqURL := fmt.Sprintf(
		"%s/efetch.fcgi?db=nuccore&id=%s&rettype=fasta&retmode=xml",
		c.baseURL, url.QueryEscape(accno),
	)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("cannot build efetch request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("Entrez request failed",
			"accno", accno, "error", err)
		return 0, ErrTaxidNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("Entrez request rejected",
			"accno", accno, "status", resp.StatusCode)
		return 0, ErrTaxidNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Debug("Cannot read Entrez response",
			"accno", accno, "error", err)
		return 0, ErrTaxidNotFound
	}

	taxid, ok := extractTaxid(string(body))
	if !ok {
		return 0, ErrTaxidNotFound
	}
	return taxid, nil
}

// extractTaxid pulls the integer between the first "taxid>" marker and
// the next '<'. The response is not parsed as XML: the marker is the
// only part of the efetch payload this tool relies on.
func extractTaxid(body string) (int, bool) {
	_, rest, found := strings.Cut(body, "taxid>")
	if !found {
		return 0, false
	}
	value, _, found := strings.Cut(rest, "<")
	if !found {
		return 0, false
	}
	taxid, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || taxid == 0 {
		return 0, false
	}
	return taxid, true
}
