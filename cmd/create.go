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

	"github.com/proteotype/proteodb/internal/iodb"
	"github.com/proteotype/proteodb/internal/ioproteo"
	"github.com/proteotype/proteodb/pkg/config"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var (
		dbFile      string
		globGFF     string
		taxonomyVer string
		refseqVer   string
		comment     string
		dumpFile    string
	)

	createCmd := &cobra.Command{
		Use:   "create MAPPINGS GENE_INFO ANNOT_DIR",
		Short: "Create a proteotyping database",
		Long: `Extend a taxonomy SQLite database with proteotyping tables.

This command:
  1. Opens the taxonomy database, bootstrapping the base schema on a
     fresh file
  2. Drops and recreates the proteotyping tables and records a
     version row
  3. Inserts header->taxid pairs from the MAPPINGS file produced by
     'proteodb mappings'
  4. Inserts gene records from the NCBI GENE_INFO file
  5. Inserts features from GFF3 annotation files found under
     ANNOT_DIR, joined to their reference sequence headers
  6. Optionally writes the finished database as a gzipped SQL dump

Re-running against an existing database rebuilds the proteotyping
tables from scratch.

Examples:
  proteodb create mappings.tab gene_info annotations/
  proteodb create mappings.tab gene_info annotations/ --dbfile taxdb.sql
  proteodb create mappings.tab gene_info annotations/ --dump proteodb_dump.sql`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args,
				dbFile, globGFF, taxonomyVer, refseqVer, comment, dumpFile)
		},
	}

	createCmd.Flags().StringVarP(
		&dbFile, "dbfile", "d", "",
		"taxonomy database to extend (default \"proteodb.sql\")",
	)
	createCmd.Flags().StringVarP(
		&globGFF, "glob-gff", "g", "",
		"glob pattern for annotation files (default \"*.gff\")",
	)
	createCmd.Flags().StringVar(
		&taxonomyVer, "taxonomy-ver", "",
		"NCBI Taxonomy release recorded in the version table",
	)
	createCmd.Flags().StringVar(
		&refseqVer, "refseq-ver", "",
		"RefSeq release recorded in the version table",
	)
	createCmd.Flags().StringVar(
		&comment, "comment", "",
		"free-text note recorded in the version table",
	)
	createCmd.Flags().StringVar(
		&dumpFile, "dump", "",
		"also write a gzipped SQL dump to this path",
	)

	return createCmd
}

func runCreate(
	cmd *cobra.Command,
	args []string,
	dbFile, globGFF, taxonomyVer, refseqVer, comment, dumpFile string,
) error {
	ctx := context.Background()
	mappingsFile, geneInfoFile, annotDir := args[0], args[1], args[2]

	// Build options from explicitly set flags
	var createOpts []config.Option
	if cmd.Flags().Changed("dbfile") {
		createOpts = append(createOpts, config.OptProteoDBFile(dbFile))
	}
	if cmd.Flags().Changed("glob-gff") {
		createOpts = append(createOpts, config.OptProteoPattern(globGFF))
	}
	if cmd.Flags().Changed("taxonomy-ver") {
		createOpts = append(createOpts, config.OptProteoTaxonomyVer(taxonomyVer))
	}
	if cmd.Flags().Changed("refseq-ver") {
		createOpts = append(createOpts, config.OptProteoRefseqVer(refseqVer))
	}
	if cmd.Flags().Changed("comment") {
		createOpts = append(createOpts, config.OptProteoComment(comment))
	}
	if cmd.Flags().Changed("dump") {
		createOpts = append(createOpts, config.OptProteoDumpFile(dumpFile))
	}
	cfg.Update(createOpts)

	timeStart := time.Now()

	op := iodb.NewSQLiteOperator()
	if err := op.Open(cfg.Proteo.DBFile); err != nil {
		return err
	}
	defer op.Close()

	if err := ioproteo.EnsureBase(ctx, op); err != nil {
		return err
	}

	ext, err := ioproteo.New(op)
	if err != nil {
		return err
	}

	err = ext.Extend(ctx,
		cfg.Proteo.RefseqVer, cfg.Proteo.TaxonomyVer, cfg.Proteo.Comment)
	if err != nil {
		return err
	}

	if _, err := ext.InsertRefseqs(ctx, mappingsFile); err != nil {
		return err
	}
	if _, err := ext.InsertGeneInfo(ctx, geneInfoFile); err != nil {
		return err
	}
	if _, err := ext.InsertAnnotations(ctx, annotDir, cfg.Proteo.Pattern); err != nil {
		return err
	}

	if cfg.Proteo.DumpFile != "" {
		written, err := ext.Dump(ctx, cfg.Proteo.DumpFile)
		if err != nil {
			return err
		}
		slog.Info("Wrote database dump", "file", written)
	}

	elapsed := time.Since(timeStart)
	slog.Info("Proteotyping database ready",
		"file", cfg.Proteo.DBFile,
		"duration", elapsed.String(),
	)
	return nil
}
