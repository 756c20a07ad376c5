/*
Copyright © 2025 Fredrik Boulund <fredrik.boulund@chalmers.se>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/proteotype/proteodb/internal/iodb"
	"github.com/proteotype/proteodb/internal/ioentrez"
	"github.com/proteotype/proteodb/internal/iomappings"
	"github.com/proteotype/proteodb/internal/iotaxid"
	"github.com/proteotype/proteodb/pkg/config"
	"github.com/spf13/cobra"
)

// getMappingsCmd returns the mappings command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMappingsCmd() *cobra.Command {
	var (
		taxidDB   string
		glob      string
		outfile   string
		batchSize int
	)

	mappingsCmd := &cobra.Command{
		Use:   "mappings REFDIR GI_TAXID_DMP",
		Short: "Map reference sequence headers to taxids",
		Long: `Resolve reference sequence headers to NCBI taxids.

This command:
  1. Opens the gi->taxid lookup store, building it from the
     GI_TAXID_DMP dump file on first use
  2. Walks REFDIR recursively for FASTA reference files
  3. Resolves each sequence header through the store, falling back
     to an Entrez E-utils lookup for headers without a known gi
  4. Writes the resolved header->taxid pairs to a two-column
     mappings file for 'proteodb create'

Headers that resolve nowhere are logged and skipped; the run still
completes for the rest.

Examples:
  proteodb mappings ref_genomes/ gi_taxid_nucl.dmp
  proteodb mappings ref_genomes/ gi_taxid_nucl.dmp -o mappings.tab
  proteodb mappings ref_genomes/ gi_taxid_nucl.dmp --glob '*.fasta'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMappings(cmd, args, taxidDB, glob, outfile, batchSize)
		},
	}

	mappingsCmd.Flags().StringVarP(
		&taxidDB, "taxid-db", "t", "",
		"path of the gi->taxid store (built if missing)",
	)
	mappingsCmd.Flags().StringVarP(
		&glob, "glob", "g", "",
		"glob pattern for reference files (default \"*.fna\")",
	)
	mappingsCmd.Flags().StringVarP(
		&outfile, "outfile", "o", "",
		"output mappings file (default \"header_taxid_mappings.tab\")",
	)
	mappingsCmd.Flags().IntVarP(
		&batchSize, "batch-size", "b", 0,
		"rows per transaction while building the store (default 200000)",
	)

	return mappingsCmd
}

func runMappings(
	cmd *cobra.Command,
	args []string,
	taxidDB, glob, outfile string,
	batchSize int,
) error {
	ctx := context.Background()
	refDir, dumpFile := args[0], args[1]

	// Build options from explicitly set flags
	mapOpts := []config.Option{config.OptTaxidDump(dumpFile)}
	if cmd.Flags().Changed("taxid-db") {
		mapOpts = append(mapOpts, config.OptTaxidStore(taxidDB))
	}
	if cmd.Flags().Changed("glob") {
		mapOpts = append(mapOpts, config.OptMappingsPattern(glob))
	}
	if cmd.Flags().Changed("outfile") {
		mapOpts = append(mapOpts, config.OptMappingsOutfile(outfile))
	}
	if cmd.Flags().Changed("batch-size") {
		mapOpts = append(mapOpts, config.OptTaxidBatchSize(batchSize))
	}
	cfg.Update(mapOpts)

	timeStart := time.Now()

	store, err := iotaxid.New(iodb.NewSQLiteOperator(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.Count()
	if err != nil {
		return err
	}
	slog.Info("Taxid store ready",
		"file", cfg.Taxid.Store,
		"entries", humanize.Comma(int64(count)),
	)

	resolver := iomappings.NewResolver(
		store,
		ioentrez.New(cfg.Entrez),
		cfg.Mappings.Pattern,
	)

	written, err := resolver.WriteFile(ctx, refDir, cfg.Mappings.Outfile)
	if err != nil {
		return err
	}

	elapsed := time.Since(timeStart)
	slog.Info("Wrote header to taxid mappings",
		"file", cfg.Mappings.Outfile,
		"count", humanize.Comma(int64(written)),
		"duration", elapsed.String(),
	)
	return nil
}
