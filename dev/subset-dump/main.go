// subset-dump extracts a representative subset from a full NCBI
// gi_taxid dump file.
//
// Full dumps carry hundreds of millions of rows, far too many for test
// fixtures and local development. This tool keeps:
//   - The head of the file verbatim (dense low gi numbers)
//   - An even sample across the remainder of the file
//
// The output is a valid dump file that 'proteodb mappings' accepts.
//
// Usage:
//
//	go run . <dump> <output>
//
// Examples:
//
//	go run . /data/gi_taxid_nucl.dmp ../../testdata/gi_taxid-subset.dmp
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/proteotype/proteodb/internal/iotaxid"
)

// Configuration constants
const (
	// Target number of pairs to keep in the subset
	targetPairs = 5000

	// Pairs kept verbatim from the head of the dump
	headPairs = 500
)

func main() {
	// Parse positional arguments
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dump> <output>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  dump    full gi_taxid dump file\n")
		fmt.Fprintf(os.Stderr, "  output  path for the subset dump file\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s /data/gi_taxid_nucl.dmp testdata/gi_taxid-subset.dmp\n",
			os.Args[0])
		os.Exit(1)
	}

	dumpPath := os.Args[1]
	outputPath := os.Args[2]

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("starting dump subset extraction",
		"dump", dumpPath,
		"target_size", targetPairs,
		"output", outputPath,
	)

	if err := createSubset(logger, dumpPath, outputPath); err != nil {
		logger.Error("subset extraction failed", "error", err)
		os.Exit(1)
	}

	logger.Info("subset extraction complete", "output", outputPath)
}

func createSubset(logger *slog.Logger, dumpPath, outputPath string) error {
	total, err := countPairs(dumpPath)
	if err != nil {
		return err
	}
	logger.Info("counted dump pairs", "total", total)

	if total <= targetPairs {
		logger.Warn("dump already fits the target size, copying verbatim",
			"total", total)
	}

	// Beyond the head, keep every stride-th pair so the sample spans
	// the whole gi range.
	stride := 1
	if total > targetPairs {
		stride = (total - headPairs) / (targetPairs - headPairs)
		if stride < 1 {
			stride = 1
		}
	}
	logger.Info("sampling dump", "head", headPairs, "stride", stride)

	f, err := os.Open(dumpPath)
	if err != nil {
		return fmt.Errorf("cannot open dump file: %w", err)
	}
	defer f.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	w := bufio.NewWriter(out)

	reader := iotaxid.NewDumpReader(f)
	var seen, kept int
	for {
		pair, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Close()
			return err
		}
		seen++

		if seen > headPairs && (seen-headPairs)%stride != 0 {
			continue
		}
		fmt.Fprintf(w, "%d\t%d\n", pair.GI, pair.TaxID)
		kept++
	}

	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("cannot flush output file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("cannot close output file: %w", err)
	}

	logger.Info("wrote subset pairs", "kept", kept, "seen", seen)
	return nil
}

// countPairs validates the whole dump and returns its pair count.
func countPairs(dumpPath string) (int, error) {
	f, err := os.Open(dumpPath)
	if err != nil {
		return 0, fmt.Errorf("cannot open dump file: %w", err)
	}
	defer f.Close()

	reader := iotaxid.NewDumpReader(f)
	var total int
	for {
		_, err := reader.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return 0, err
		}
		total++
	}
}
