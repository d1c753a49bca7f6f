package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sqlc-dev/spacesql/parser"
)

const replHelp = `Enter SELECT statements terminated by ';'.
  \p [sql]  formatted SQL output (or format sql once)
  \e [sql]  tree dump output (or explain sql once)
  \j [sql]  JSON output (or print sql as JSON once)
  \m        toggle ROWNUM range merging
  \q        quit`

func runREPL(r *renderer) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "spacesql> ",
		HistoryFile:     filepath.Join(os.TempDir(), "spacesql.history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer l.Close()

	fmt.Println("Welcome to spacesql. Type \\? for help.")

	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			l.SetPrompt("spacesql> ")
		} else {
			l.SetPrompt("      ... ")
		}

		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 && buf.Len() == 0 {
				return nil
			}
			buf.Reset()
			continue
		} else if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 && strings.HasPrefix(trimmed, "\\") {
			if quit := r.command(os.Stdout, trimmed); quit {
				return nil
			}
			continue
		}

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(line)
		if !strings.HasSuffix(trimmed, ";") {
			continue
		}

		r.evaluate(os.Stdout, buf.String())
		buf.Reset()
	}
}

// command runs a backslash command and reports whether the shell should
// exit.
func (r *renderer) command(w io.Writer, cmd string) bool {
	name, rest, _ := strings.Cut(cmd, " ")
	rest = strings.TrimSpace(rest)

	var mode string
	switch name {
	case `\q`, `\quit`:
		return true
	case `\?`, `\h`:
		fmt.Fprintln(w, replHelp)
		return false
	case `\m`:
		r.merge = !r.merge
		fmt.Fprintf(w, "rownum merging is %s\n", onOff(r.merge))
		return false
	case `\p`:
		mode = "sql"
	case `\e`:
		mode = "explain"
	case `\j`:
		mode = "json"
	default:
		fmt.Fprintf(w, "unknown command %s, try \\?\n", name)
		return false
	}

	if rest == "" {
		r.format = mode
		fmt.Fprintf(w, "output format is %s\n", mode)
		return false
	}

	saved := r.format
	r.format = mode
	r.evaluate(w, rest)
	r.format = saved
	return false
}

// evaluate parses sql and renders every statement, printing errors instead
// of returning them.
func (r *renderer) evaluate(w io.Writer, sql string) {
	stmts, err := parser.Parse(context.Background(), strings.NewReader(sql))
	if err != nil {
		fmt.Fprintln(w, "Error while parsing:", err)
		return
	}
	for _, stmt := range stmts {
		if err := r.render(w, stmt); err != nil {
			fmt.Fprintln(w, "Error while rendering:", err)
			return
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
