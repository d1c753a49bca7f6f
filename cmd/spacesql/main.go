// Command spacesql parses grid SELECT statements and prints their formatted
// SQL, tree dump or JSON. With no query or source it starts an interactive
// shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sqlc-dev/spacesql/internal/highlight"
	"github.com/sqlc-dev/spacesql/internal/logging"
	"github.com/sqlc-dev/spacesql/internal/source"
	"github.com/sqlc-dev/spacesql/parser"
)

var (
	query       = flag.String("q", "", "SQL statements to parse.")
	sourceURI   = flag.String("source", "", "Read statements from a source: stdin, a file path, file://path or sqlite://db?table=t&column=c.")
	outputFlag  = flag.String("format", "sql", "Output format: sql, explain or json.")
	mergeRowNum = flag.Bool("merge-rownum", false, "Fold ROWNUM bounds in a top-level AND into a single range.")
	dedup       = flag.Bool("dedup", false, "Skip source statements that normalize to an earlier one.")
	noColor     = flag.Bool("no-color", false, "Disable syntax highlighting.")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	logFormat   = flag.String("log-format", "text", "Log format: text or json.")
)

func main() {
	flag.Parse()

	logger, err := logging.New(logging.Config{
		Level:  logging.LogLevel(*logLevel),
		Format: *logFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	r, err := newRenderer(*outputFlag, *mergeRowNum)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if !*noColor {
		r.highlighter = highlight.New(lipgloss.NewRenderer(os.Stdout))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *query != "":
		err = runQuery(ctx, r, *query)
	case *sourceURI != "":
		err = runSource(ctx, logger, r, *sourceURI, *dedup)
	default:
		err = runREPL(r)
	}
	if err != nil {
		logger.Error("spacesql failed", "err", err)
		os.Exit(1)
	}
}

func runQuery(ctx context.Context, r *renderer, sql string) error {
	stmts, err := parser.Parse(ctx, strings.NewReader(sql))
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if err := r.render(os.Stdout, stmt); err != nil {
			return err
		}
	}
	return nil
}

func runSource(ctx context.Context, logger *slog.Logger, r *renderer, uri string, dedup bool) error {
	src, err := source.Open(uri)
	if err != nil {
		return err
	}
	defer src.Close()
	if dedup {
		src = source.Dedup(src)
	}

	logger.Debug("reading statements", "source", src.Name())

	stmts, errs := src.Statements(ctx)
	var total, failed int
	for stmt := range stmts {
		total++
		sel, err := parser.ParseString(stmt.SQL)
		if err != nil {
			failed++
			logger.Warn("parse failed", "origin", stmt.Origin, "index", stmt.Index, "err", err)
			continue
		}
		if r.format != "json" {
			fmt.Printf("-- %s #%d\n", stmt.Origin, stmt.Index)
		}
		if err := r.render(os.Stdout, sel); err != nil {
			return err
		}
	}
	if err := <-errs; err != nil {
		return err
	}

	logger.Info("done", "source", src.Name(), "statements", total, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed to parse", failed, total)
	}
	return nil
}
