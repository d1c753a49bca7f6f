// Command compare runs every statement of a source through both spacesql's
// parser and the AfterShip ClickHouse parser and reports where they agree.
// By default it reads the queries under parser/testdata.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"

	"github.com/sqlc-dev/spacesql/internal/logging"
	"github.com/sqlc-dev/spacesql/internal/source"
	"github.com/sqlc-dev/spacesql/parser"
)

type testMetadata struct {
	Compat     bool `json:"compat,omitempty"`
	ParseError bool `json:"parse_error,omitempty"`
}

func tryParseWithAfterShip(query string) (parsed bool, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			parsed = false
		}
	}()
	p := aftership.NewParser(query)
	stmts, err := p.ParseStmts()
	return err == nil && len(stmts) > 0, false
}

type outcome struct {
	name     string
	ours     bool
	theirs   bool
	panicked bool
	compat   bool
}

func main() {
	sourceURI := flag.String("source", "", "Statement source (default: the queries under -testdata)")
	testdataDir := flag.String("testdata", "parser/testdata", "Test case directory")
	dedup := flag.Bool("dedup", false, "Skip statements that normalize to an earlier one")
	flag.Parse()

	logger, err := logging.New(logging.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var outcomes []outcome
	if *sourceURI != "" {
		outcomes, err = fromSource(*sourceURI, *dedup)
	} else {
		outcomes, err = fromTestdata(*testdataDir)
	}
	if err != nil {
		logger.Error("compare failed", "err", err)
		os.Exit(1)
	}

	var both, onlyOurs, onlyTheirs, neither, panics int
	var mismatches []string
	for _, o := range outcomes {
		if o.panicked {
			panics++
		}
		switch {
		case o.ours && o.theirs:
			both++
		case o.ours:
			onlyOurs++
			if o.compat {
				mismatches = append(mismatches, o.name)
			}
		case o.theirs:
			onlyTheirs++
		default:
			neither++
		}
	}

	fmt.Println("╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║          Comparison: spacesql vs AfterShip parser          ║")
	fmt.Println("╠════════════════════════════════════════════════════════════╣")
	fmt.Printf("║  Statements:              %4d                             ║\n", len(outcomes))
	fmt.Printf("║  Both parse:              %4d                             ║\n", both)
	fmt.Printf("║  Only spacesql parses:    %4d                             ║\n", onlyOurs)
	fmt.Printf("║  Only AfterShip parses:   %4d                             ║\n", onlyTheirs)
	fmt.Printf("║  Neither parses:          %4d                             ║\n", neither)
	fmt.Printf("║  AfterShip CRASHED:       %4d                             ║\n", panics)
	fmt.Println("╚════════════════════════════════════════════════════════════╝")

	if len(mismatches) > 0 {
		fmt.Printf("\nCases marked compat that AfterShip rejects (%d):\n", len(mismatches))
		for _, name := range mismatches {
			fmt.Printf("  - %s\n", name)
		}
		os.Exit(1)
	}
}

func compare(name, query string, compat bool) outcome {
	_, err := parser.ParseString(query)
	parsed, panicked := tryParseWithAfterShip(query)
	return outcome{name: name, ours: err == nil, theirs: parsed, panicked: panicked, compat: compat}
}

func fromTestdata(dir string) ([]outcome, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var outcomes []outcome
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		testDir := filepath.Join(dir, entry.Name())

		var metadata testMetadata
		if metadataBytes, err := os.ReadFile(filepath.Join(testDir, "metadata.json")); err == nil {
			if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
				return nil, fmt.Errorf("%s: %w", entry.Name(), err)
			}
		}

		queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
		if err != nil {
			continue
		}
		query := strings.TrimSpace(string(queryBytes))
		outcomes = append(outcomes, compare(entry.Name(), query, metadata.Compat && !metadata.ParseError))
	}
	return outcomes, nil
}

func fromSource(uri string, dedup bool) ([]outcome, error) {
	src, err := source.Open(uri)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if dedup {
		src = source.Dedup(src)
	}

	stmts, err := source.Collect(context.Background(), src)
	if err != nil {
		return nil, err
	}

	var outcomes []outcome
	for _, stmt := range stmts {
		name := fmt.Sprintf("%s #%d", stmt.Origin, stmt.Index)
		outcomes = append(outcomes, compare(name, stmt.SQL, false))
	}
	return outcomes, nil
}
