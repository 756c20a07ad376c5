package ioentrez_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/proteotype/proteodb/internal/ioentrez"
	"github.com/proteotype/proteodb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// efetchPayload mimics the part of the efetch XML response that
// carries the taxid.
const efetchPayload = `<?xml version="1.0"?>
<TSeqSet>
<TSeq>
  <TSeq_seqtype value="nucleotide"/>
  <TSeq_accver>NC_000913.3</TSeq_accver>
  <TSeq_taxid>511145</TSeq_taxid>
  <TSeq_orgname>Escherichia coli str. K-12</TSeq_orgname>
</TSeq>
</TSeqSet>
`

func testClient(baseURL string) *ioentrez.Client {
	cfg := config.New().Entrez
	cfg.BaseURL = baseURL
	return ioentrez.New(cfg)
}

// TestTaxidForAccession_Found verifies the request shape and taxid
// extraction from a realistic payload.
func TestTaxidForAccession_Found(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = map[string]string{
				"db":      r.URL.Query().Get("db"),
				"id":      r.URL.Query().Get("id"),
				"rettype": r.URL.Query().Get("rettype"),
				"retmode": r.URL.Query().Get("retmode"),
			}
			w.Write([]byte(efetchPayload))
		}))
	defer ts.Close()

	client := testClient(ts.URL)
	taxid, err := client.TaxidForAccession(
		context.Background(), "NC_000913.3")
	require.NoError(t, err)
	assert.Equal(t, 511145, taxid)

	assert.Equal(t, "/efetch.fcgi", gotPath)
	assert.Equal(t, map[string]string{
		"db":      "nuccore",
		"id":      "NC_000913.3",
		"rettype": "fasta",
		"retmode": "xml",
	}, gotQuery)
}

// TestTaxidForAccession_NotFound verifies payloads without a usable
// taxid map to ErrTaxidNotFound.
func TestTaxidForAccession_NotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no marker", "<TSeqSet></TSeqSet>"},
		{"unterminated value", "<TSeq_taxid>12345"},
		{"non-integer", "<TSeq_taxid>abc</TSeq_taxid>"},
		{"zero taxid", "<TSeq_taxid>0</TSeq_taxid>"},
		{"empty body", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte(tt.body))
				}))
			defer ts.Close()

			client := testClient(ts.URL)
			_, err := client.TaxidForAccession(
				context.Background(), "X12345")
			assert.ErrorIs(t, err, ioentrez.ErrTaxidNotFound)
		})
	}
}

// TestTaxidForAccession_ServerError verifies non-200 responses map to
// ErrTaxidNotFound.
func TestTaxidForAccession_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests",
				http.StatusTooManyRequests)
		}))
	defer ts.Close()

	client := testClient(ts.URL)
	_, err := client.TaxidForAccession(context.Background(), "X12345")
	assert.ErrorIs(t, err, ioentrez.ErrTaxidNotFound)
}

// TestTaxidForAccession_Unreachable verifies transport failures are
// treated like a record without a mapping.
func TestTaxidForAccession_Unreachable(t *testing.T) {
	// Closed server: connections are refused
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := testClient(ts.URL)
	_, err := client.TaxidForAccession(context.Background(), "X12345")
	assert.ErrorIs(t, err, ioentrez.ErrTaxidNotFound)
}

// TestTaxidForAccession_CanceledContext verifies an expired context
// follows the same not-found path as a timeout.
func TestTaxidForAccession_CanceledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(efetchPayload))
		}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := testClient(ts.URL)
	_, err := client.TaxidForAccession(ctx, "NC_000913.3")
	assert.ErrorIs(t, err, ioentrez.ErrTaxidNotFound)
}

// TestTaxidForAccession_AccessionEscaped verifies unusual accession
// strings survive URL encoding.
func TestTaxidForAccession_AccessionEscaped(t *testing.T) {
	var gotID string
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotID = r.URL.Query().Get("id")
			w.Write([]byte(efetchPayload))
		}))
	defer ts.Close()

	client := testClient(ts.URL)
	_, err := client.TaxidForAccession(
		context.Background(), "NZ_ABC 123&x")
	require.NoError(t, err)
	assert.Equal(t, "NZ_ABC 123&x", gotID)
}
