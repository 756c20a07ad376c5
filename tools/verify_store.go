// verify_store compares a built gi_taxid lookup store against the dump
// file it was loaded from. This is a temporary tool for validating
// store builds.
//
// Usage:
//
//	go run tools/verify_store.go --store gi_taxid.db --dump gi_taxid_nucl.dmp
//	go run tools/verify_store.go --store gi_taxid.db --dump gi_taxid_nucl.dmp --sample-every 1000
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/proteotype/proteodb/internal/iotaxid"

	_ "modernc.org/sqlite"
)

type VerificationResult struct {
	DumpPairs     int
	StorePairs    int
	CheckedPairs  int
	MissingGIs    int
	WrongTaxids   int
	CountsMatch   bool
	ContentsMatch bool
}

func main() {
	storePath := flag.String("store", "", "path of the gi_taxid store")
	dumpPath := flag.String("dump", "", "path of the source dump file")
	sampleEvery := flag.Int("sample-every", 1,
		"look up every Nth dump pair (1 = all)")
	flag.Parse()

	if *storePath == "" || *dumpPath == "" {
		fmt.Println("Error: --store and --dump are required")
		flag.Usage()
		os.Exit(1)
	}

	fmt.Printf("Verifying store %s against dump %s\n", *storePath, *dumpPath)
	fmt.Println("============================================================")

	result, err := verify(*storePath, *dumpPath, *sampleEvery)
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}

	fmt.Println("\n1. Pair Counts")
	fmt.Println("--------------")
	fmt.Printf("  dump:  %d\n", result.DumpPairs)
	fmt.Printf("  store: %d\n", result.StorePairs)
	if result.CountsMatch {
		fmt.Printf("  ✓ Match\n")
	} else {
		fmt.Printf("  ✗ Mismatch (diff: %d)\n",
			result.DumpPairs-result.StorePairs)
	}

	fmt.Println("\n2. Pair Contents")
	fmt.Println("----------------")
	fmt.Printf("  checked: %d\n", result.CheckedPairs)
	fmt.Printf("  missing: %d\n", result.MissingGIs)
	fmt.Printf("  wrong:   %d\n", result.WrongTaxids)
	if result.ContentsMatch {
		fmt.Printf("  ✓ Match\n")
	} else {
		fmt.Printf("  ✗ Mismatch\n")
	}

	fmt.Println("\n3. Summary")
	fmt.Println("----------")
	if result.CountsMatch && result.ContentsMatch {
		fmt.Println("  ✓ Store matches the dump")
		return
	}
	fmt.Println("  ✗ Store does not match the dump")
	os.Exit(1)
}

func verify(
	storePath, dumpPath string,
	sampleEvery int,
) (*VerificationResult, error) {
	db, err := sql.Open("sqlite", storePath)
	if err != nil {
		return nil, fmt.Errorf("cannot open store: %w", err)
	}
	defer db.Close()

	result := &VerificationResult{}

	err = db.QueryRow("SELECT count(*) FROM gi_taxid").
		Scan(&result.StorePairs)
	if err != nil {
		return nil, fmt.Errorf("cannot count store pairs: %w", err)
	}

	f, err := os.Open(dumpPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open dump: %w", err)
	}
	defer f.Close()

	lookup, err := db.Prepare("SELECT taxid FROM gi_taxid WHERE gi = ?")
	if err != nil {
		return nil, fmt.Errorf("cannot prepare lookup: %w", err)
	}
	defer lookup.Close()

	reader := iotaxid.NewDumpReader(f)
	for {
		pair, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		result.DumpPairs++

		if sampleEvery > 1 && result.DumpPairs%sampleEvery != 0 {
			continue
		}
		result.CheckedPairs++

		var taxid int
		err = lookup.QueryRow(pair.GI).Scan(&taxid)
		if err == sql.ErrNoRows {
			result.MissingGIs++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lookup of gi %d failed: %w", pair.GI, err)
		}
		if taxid != pair.TaxID {
			result.WrongTaxids++
		}
	}

	result.CountsMatch = result.DumpPairs == result.StorePairs
	result.ContentsMatch = result.MissingGIs == 0 && result.WrongTaxids == 0
	return result, nil
}
