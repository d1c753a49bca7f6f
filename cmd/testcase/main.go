// Command testcase adds a test case directory under parser/testdata for a
// query, recording the current explain output or, when the query does not
// parse, marking the case as an expected parse error.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/parser"
)

type testMetadata struct {
	Compat      bool `json:"compat,omitempty"`
	ParseError  bool `json:"parse_error,omitempty"`
	MergeRowNum bool `json:"merge_rownum,omitempty"`
}

func main() {
	name := flag.String("name", "", "Test case directory name")
	query := flag.String("q", "", "Query for the test case")
	compat := flag.Bool("compat", false, "Mark the query as plain ClickHouse SQL")
	merge := flag.Bool("merge-rownum", false, "Record explain output after rownum merging")
	force := flag.Bool("force", false, "Overwrite an existing test case")
	flag.Parse()

	if *name == "" || *query == "" {
		fmt.Fprintln(os.Stderr, "usage: testcase -name <dir> -q <query> [-compat] [-merge-rownum]")
		os.Exit(2)
	}

	testDir := filepath.Join("parser/testdata", *name)
	if _, err := os.Stat(testDir); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists (use -force to overwrite)\n", testDir)
		os.Exit(1)
	}
	if err := os.MkdirAll(testDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	metadata := testMetadata{Compat: *compat, MergeRowNum: *merge}
	files := map[string]string{"query.sql": *query + "\n"}

	sel, err := parser.ParseString(*query)
	if err != nil {
		fmt.Println("Error:", err)
		metadata = testMetadata{ParseError: true}
	} else {
		if *merge {
			sel = ast.MergeRowNumRanges(sel)
		}
		files["explain.txt"] = ast.Explain(sel)
		fmt.Print(files["explain.txt"])
	}

	if metadata != (testMetadata{}) {
		b, err := json.MarshalIndent(metadata, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		files["metadata.json"] = string(b) + "\n"
	}

	for file, content := range files {
		if err := os.WriteFile(filepath.Join(testDir, file), []byte(content), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("wrote %s\n", testDir)
}
