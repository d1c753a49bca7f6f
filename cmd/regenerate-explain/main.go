// Command regenerate-explain rewrites explain.txt for the test cases under
// parser/testdata from the current parser output.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/parser"
)

type testMetadata struct {
	ParseError  bool `json:"parse_error,omitempty"`
	MergeRowNum bool `json:"merge_rownum,omitempty"`
}

func main() {
	testName := flag.String("test", "", "Single test directory name to process (if empty, process all)")
	dryRun := flag.Bool("dry-run", false, "Print explain output without writing files")
	flag.Parse()

	testdataDir := "parser/testdata"

	if *testName != "" {
		// Process single test
		if err := processTest(filepath.Join(testdataDir, *testName), *dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", *testName, err)
			os.Exit(1)
		}
		return
	}

	// Process all tests
	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading testdata: %v\n", err)
		os.Exit(1)
	}

	var errors []string
	var processed, skipped int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		testDir := filepath.Join(testdataDir, entry.Name())
		wrote, err := processTestReport(testDir, *dryRun)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}
		if wrote {
			processed++
		} else {
			skipped++
		}
	}

	fmt.Printf("\nProcessed: %d, Skipped: %d, Errors: %d\n", processed, skipped, len(errors))
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "\nErrors:\n")
		for _, e := range errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(1)
	}
}

func processTest(testDir string, dryRun bool) error {
	_, err := processTestReport(testDir, dryRun)
	return err
}

// processTestReport regenerates explain.txt in testDir. It reports false
// for cases that are expected to fail parsing.
func processTestReport(testDir string, dryRun bool) (bool, error) {
	var metadata testMetadata
	if metadataBytes, err := os.ReadFile(filepath.Join(testDir, "metadata.json")); err == nil {
		if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
			return false, fmt.Errorf("parsing metadata.json: %w", err)
		}
	}
	if metadata.ParseError {
		return false, nil
	}

	queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
	if err != nil {
		return false, fmt.Errorf("reading query.sql: %w", err)
	}

	stmts, err := parser.Parse(context.Background(), strings.NewReader(string(queryBytes)))
	if err != nil {
		return false, fmt.Errorf("parsing query.sql: %w", err)
	}
	if len(stmts) == 0 {
		return false, fmt.Errorf("no statements found")
	}

	stmt := stmts[0]
	if metadata.MergeRowNum {
		stmt = ast.MergeRowNumRanges(stmt)
	}
	explain := ast.Explain(stmt)

	if dryRun {
		fmt.Printf("== %s\n%s", filepath.Base(testDir), explain)
		return true, nil
	}

	outputPath := filepath.Join(testDir, "explain.txt")
	if err := os.WriteFile(outputPath, []byte(explain), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Printf("%s -> %s\n", filepath.Base(testDir), filepath.Base(outputPath))
	return true, nil
}
