package parser_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/lexer"
	"github.com/sqlc-dev/spacesql/parser"
)

// testMetadata holds optional metadata for a test case
type testMetadata struct {
	Compat      bool `json:"compat,omitempty"`
	ParseError  bool `json:"parse_error,omitempty"`
	MergeRowNum bool `json:"merge_rownum,omitempty"`
}

func readMetadata(t *testing.T, testDir string) testMetadata {
	t.Helper()
	var metadata testMetadata
	metadataPath := filepath.Join(testDir, "metadata.json")
	if metadataBytes, err := os.ReadFile(metadataPath); err == nil {
		if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
			t.Fatalf("Failed to parse metadata.json: %v", err)
		}
	}
	return metadata
}

// TestParser tests the parser using test cases from the testdata directory.
// Each subdirectory in testdata represents a test case with:
// - query.sql: The SQL query to parse
// - explain.txt: Expected tree dump, checked by the ast package
// - metadata.json (optional): Metadata including:
//   - parse_error: true if the query must be rejected
//   - compat: true if the query is also plain ClickHouse SQL
//   - merge_rownum: true if explain.txt is taken after rownum merging
func TestParser(t *testing.T) {
	testdataDir := "testdata"

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("Failed to read testdata directory: %v", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		testName := entry.Name()
		testDir := filepath.Join(testdataDir, testName)

		t.Run(testName, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()

			queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
			if err != nil {
				t.Fatalf("Failed to read query.sql: %v", err)
			}
			query := string(queryBytes)
			metadata := readMetadata(t, testDir)

			stmts, err := parser.Parse(ctx, strings.NewReader(query))
			if metadata.ParseError {
				if err == nil {
					t.Fatalf("Expected parse error\nQuery: %s", query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse error: %v\nQuery: %s", err, query)
			}
			if len(stmts) != 1 {
				t.Fatalf("Expected 1 statement, got %d\nQuery: %s", len(stmts), query)
			}

			if _, err := json.Marshal(stmts[0]); err != nil {
				t.Fatalf("JSON marshal error: %v\nQuery: %s", err, query)
			}

			// Formatting and parsing again must give the same tree
			formatted := parser.Format(stmts)
			again, err := parser.Parse(ctx, strings.NewReader(formatted))
			if err != nil {
				t.Fatalf("Parse error on formatted query: %v\nFormatted: %s", err, formatted)
			}
			if diff := cmp.Diff(stmts, again); diff != "" {
				t.Errorf("Round trip mismatch (-original +formatted):\n%s\nFormatted: %s", diff, formatted)
			}
		})
	}
}

func TestSelects(t *testing.T) {
	from := func(names ...string) []*ast.TableName {
		var tables []*ast.TableName
		for _, n := range names {
			tables = append(tables, &ast.TableName{Name: n})
		}
		return tables
	}
	cols := func(c ...ast.SelectColumn) *ast.SomeColumns {
		return &ast.SomeColumns{Columns: c}
	}
	star := func(where ast.Expression) *ast.Select {
		return &ast.Select{Columns: &ast.AllColumns{}, From: from("a"), Where: where}
	}
	between := &ast.CondBetween{
		Expr:  &ast.TableRef{Name: "foo"},
		Lower: &ast.IntLit{Value: 5},
		Upper: &ast.TableRef{Name: "b"},
	}

	tests := []struct {
		sql  string
		want *ast.Select
	}{
		{
			sql: "select 1 as foo from a b",
			want: &ast.Select{
				Columns: cols(&ast.LiteralColumn{Literal: &ast.IntLit{Value: 1}, Alias: "foo"}),
				From:    []*ast.TableName{{Name: "a", Alias: "b"}},
			},
		},
		{
			sql: "select null as foo from a b",
			want: &ast.Select{
				Columns: cols(&ast.LiteralColumn{Literal: &ast.NullLit{}, Alias: "foo"}),
				From:    []*ast.TableName{{Name: "a", Alias: "b"}},
			},
		},
		{
			sql:  "select * from a",
			want: star(nil),
		},
		{
			sql: "select all * from a b",
			want: &ast.Select{
				Quantifier: ast.QuantifierAll,
				Columns:    &ast.AllColumns{},
				From:       []*ast.TableName{{Name: "a", Alias: "b"}},
			},
		},
		{
			sql: "select distinct * from a, b",
			want: &ast.Select{
				Quantifier: ast.QuantifierDistinct,
				Columns:    &ast.AllColumns{},
				From:       from("a", "b"),
			},
		},
		{
			sql:  "select foo from t",
			want: &ast.Select{Columns: cols(&ast.Column{Name: "foo"}), From: from("t")},
		},
		{
			sql: "select foo, bar from t",
			want: &ast.Select{
				Columns: cols(&ast.Column{Name: "foo"}, &ast.Column{Name: "bar"}),
				From:    from("t"),
			},
		},
		{
			sql:  "select `foo` from t",
			want: &ast.Select{Columns: cols(&ast.Column{Name: "foo"}), From: from("t")},
		},
		{
			sql:  "select foo `bar` from t",
			want: &ast.Select{Columns: cols(&ast.Column{Name: "foo", Alias: "bar"}), From: from("t")},
		},
		{
			sql:  "select `foo` as bar from t",
			want: &ast.Select{Columns: cols(&ast.Column{Name: "foo", Alias: "bar"}), From: from("t")},
		},
		{
			sql: "select max (foo) as bar from t",
			want: &ast.Select{
				Columns: cols(&ast.FunctionColumn{Name: "max", Column: &ast.Column{Name: "foo"}, Alias: "bar"}),
				From:    from("t"),
			},
		},
		{
			sql: "select *UID*, name from Person",
			want: &ast.Select{
				Columns: cols(&ast.UIDColumn{}, &ast.Column{Name: "name"}),
				From:    from("Person"),
			},
		},
		{
			sql:  "select * from a where 1 = 1",
			want: star(&ast.CondOp{Left: &ast.IntLit{Value: 1}, Op: "=", Right: &ast.IntLit{Value: 1}}),
		},
		{
			sql: "select * from a where 1 = 1 and 2 > 3",
			want: star(&ast.And{Operands: []ast.Expression{
				&ast.CondOp{Left: &ast.IntLit{Value: 1}, Op: "=", Right: &ast.IntLit{Value: 1}},
				&ast.CondOp{Left: &ast.IntLit{Value: 2}, Op: ">", Right: &ast.IntLit{Value: 3}},
			}}),
		},
		{
			sql: "select * from a where 1 = 1 or 2 > 3",
			want: star(&ast.Or{Operands: []ast.Expression{
				&ast.CondOp{Left: &ast.IntLit{Value: 1}, Op: "=", Right: &ast.IntLit{Value: 1}},
				&ast.CondOp{Left: &ast.IntLit{Value: 2}, Op: ">", Right: &ast.IntLit{Value: 3}},
			}}),
		},
		{
			sql:  "select * from a where 1 = true",
			want: star(&ast.CondOp{Left: &ast.IntLit{Value: 1}, Op: "=", Right: &ast.BooleanLit{Value: true}}),
		},
		{
			sql:  "select * from a where ? = ?",
			want: star(&ast.CondOp{Left: &ast.PreparedLit{Index: 1}, Op: "=", Right: &ast.PreparedLit{Index: 2}}),
		},
		{
			sql:  "select * from a where a = b",
			want: star(&ast.CondOp{Left: &ast.TableRef{Name: "a"}, Op: "=", Right: &ast.TableRef{Name: "b"}}),
		},
		{
			sql:  "select * from a where 1L = -1.0",
			want: star(&ast.CondOp{Left: &ast.LongLit{Value: 1}, Op: "=", Right: &ast.FloatLit{Value: -1}}),
		},
		{
			sql:  "select * from a where '20/09/1999' = -1.0",
			want: star(&ast.CondOp{Left: &ast.DateLit{Text: "20/09/1999"}, Op: "=", Right: &ast.FloatLit{Value: -1}}),
		},
		{
			sql:  "select * from a where rownum = 1",
			want: star(&ast.CondRowNum{Op: "=", Value: 1}),
		},
		{
			sql: "select * from a where foo(a.b) = foo(0)",
			want: star(&ast.CondOp{
				Left:  &ast.FunctionCall{Name: "foo", Args: []ast.Expression{&ast.TableRef{Name: "a.b"}}},
				Op:    "=",
				Right: &ast.FunctionCall{Name: "foo", Args: []ast.Expression{&ast.IntLit{Value: 0}}},
			}),
		},
		{
			sql: "select * from a where 2 = (select * from a where 1 = 1)",
			want: star(&ast.CondOp{
				Left:  &ast.IntLit{Value: 2},
				Op:    "=",
				Right: star(&ast.CondOp{Left: &ast.IntLit{Value: 1}, Op: "=", Right: &ast.IntLit{Value: 1}}),
			}),
		},
		{
			sql: "select * from a where foo in (1, 2)",
			want: star(&ast.CondInList{
				Expr: &ast.TableRef{Name: "foo"},
				List: []ast.Expression{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}},
			}),
		},
		{
			sql: "select * from a where foo not in (select * from b)",
			want: star(&ast.CondInSelect{
				Expr:   &ast.TableRef{Name: "foo"},
				Not:    true,
				Select: &ast.Select{Columns: &ast.AllColumns{}, From: from("b")},
			}),
		},
		{
			sql:  "select * from a where foo is not null",
			want: star(&ast.CondIsNull{Expr: &ast.TableRef{Name: "foo"}, Not: true}),
		},
		{
			sql:  "select * from a where foo is null",
			want: star(&ast.CondIsNull{Expr: &ast.TableRef{Name: "foo"}}),
		},
		{
			sql:  "select * from a where foo between 5 and b",
			want: star(between),
		},
		{
			sql: "select * from a where b text:search ?",
			want: star(&ast.CondRelation{
				Left:  &ast.TableRef{Name: "b"},
				Op:    "text:search",
				Right: &ast.PreparedLit{Index: 1},
			}),
		},
		{
			sql: "select * from a where [*].foo[*].bar in (1, 2)",
			want: star(&ast.CondInList{
				Expr: &ast.CollectionPath{Elements: []ast.PathElement{
					&ast.Contains{},
					&ast.PathSegment{Name: "foo"},
					&ast.Contains{},
					&ast.PathSegment{Name: "bar"},
				}},
				List: []ast.Expression{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}},
			}),
		},
		{
			sql: "select * from a where rownum = 1 group by foo",
			want: &ast.Select{
				Columns: &ast.AllColumns{},
				From:    from("a"),
				Where:   &ast.CondRowNum{Op: "=", Value: 1},
				GroupBy: []ast.SelectColumn{&ast.Column{Name: "foo"}},
			},
		},
		{
			sql: "select * from a where rownum = 1 order by foo asc",
			want: &ast.Select{
				Columns: &ast.AllColumns{},
				From:    from("a"),
				Where:   &ast.CondRowNum{Op: "=", Value: 1},
				OrderBy: []*ast.OrderByColumn{{Column: &ast.Column{Name: "foo"}}},
			},
		},
		{
			sql: "select * from a order by foo, bar desc nulls first",
			want: &ast.Select{
				Columns: &ast.AllColumns{},
				From:    from("a"),
				OrderBy: []*ast.OrderByColumn{
					{Column: &ast.Column{Name: "foo"}},
					{Column: &ast.Column{Name: "bar"}, Direction: ast.DirectionDesc, Nulls: ast.NullsFirst},
				},
			},
		},
		{
			sql: "select * from a where foo between 5 and b for update",
			want: &ast.Select{
				Columns:   &ast.AllColumns{},
				From:      from("a"),
				Where:     between,
				ForUpdate: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			got, err := parser.ParseString(tt.sql)
			if err != nil {
				t.Fatalf("ParseString(%q) error: %v", tt.sql, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseString(%q) mismatch (-want +got):\n%s", tt.sql, diff)
			}
		})
	}
}

func TestPlainPathKeepsSourceText(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"select * from t where a.b = 1", "a.b"},
		{"select * from t where a . b = 1", "a . b"},
		{"select * from t where `order`.b = 1", "`order`.b"},
		{"select * from t where a.`my col` = 1", "a.`my col`"},
		{"select * from t where a\n  .b = 1", "a\n  .b"},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			sel, err := parser.ParseString(tt.sql)
			if err != nil {
				t.Fatalf("ParseString error: %v", err)
			}
			ref, ok := sel.Where.(*ast.CondOp).Left.(*ast.TableRef)
			if !ok {
				t.Fatalf("left operand is %T, want *ast.TableRef", sel.Where.(*ast.CondOp).Left)
			}
			if ref.Name != tt.want {
				t.Errorf("TableRef.Name = %q, want %q", ref.Name, tt.want)
			}

			// The text is written back as is
			again, err := parser.ParseString(parser.Format([]*ast.Select{sel}))
			if err != nil {
				t.Fatalf("ParseString(Format()) error: %v", err)
			}
			if diff := cmp.Diff(sel, again); diff != "" {
				t.Errorf("round trip mismatch (-first +again):\n%s", diff)
			}
		})
	}
}

func TestNumberGluedToName(t *testing.T) {
	_, err := parser.ParseString("select 1abc from t")
	var lexErr *lexer.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("ParseString error %v, want *lexer.LexError", err)
	}
	if lexErr.Char != 'a' {
		t.Errorf("Char = %q, want 'a'", lexErr.Char)
	}
}

func TestOrderByDefaultsToAscending(t *testing.T) {
	bare, err := parser.ParseString("select * from a order by foo")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	asc, err := parser.ParseString("select * from a order by foo asc")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	if diff := cmp.Diff(bare, asc); diff != "" {
		t.Errorf("order by foo differs from order by foo asc (-bare +asc):\n%s", diff)
	}
	if got := bare.OrderBy[0].Direction; got != ast.DirectionAsc {
		t.Errorf("Direction = %v, want %v", got, ast.DirectionAsc)
	}
}

func TestPlaceholderOrdinals(t *testing.T) {
	sel, err := parser.ParseString("select ?, foo from a where b = ? and c in (select * from d where e = ?) and f text:match ?")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	var got []int
	var walk func(n any)
	walk = func(n any) {
		switch v := n.(type) {
		case *ast.Select:
			walk(v.Columns)
			walk(v.Where)
		case *ast.SomeColumns:
			for _, c := range v.Columns {
				walk(c)
			}
		case *ast.LiteralColumn:
			walk(v.Literal)
		case *ast.And:
			for _, op := range v.Operands {
				walk(op)
			}
		case *ast.CondOp:
			walk(v.Left)
			walk(v.Right)
		case *ast.CondInSelect:
			walk(v.Expr)
			walk(v.Select)
		case *ast.CondRelation:
			walk(v.Left)
			walk(v.Right)
		case *ast.PreparedLit:
			got = append(got, v.Index)
		}
	}
	walk(sel)

	if diff := cmp.Diff([]int{1, 2, 3, 4}, got); diff != "" {
		t.Errorf("placeholder ordinals mismatch (-want +got):\n%s", diff)
	}
}

func TestConnectivesAreFlat(t *testing.T) {
	eq := func(name string, v int32) ast.Expression {
		return &ast.CondOp{Left: &ast.TableRef{Name: name}, Op: "=", Right: &ast.IntLit{Value: v}}
	}

	tests := []struct {
		sql  string
		want ast.Expression
	}{
		{
			sql:  "select * from t where a = 1 and b = 2 and c = 3",
			want: &ast.And{Operands: []ast.Expression{eq("a", 1), eq("b", 2), eq("c", 3)}},
		},
		{
			sql:  "select * from t where a = 1 and (b = 2 and c = 3)",
			want: &ast.And{Operands: []ast.Expression{eq("a", 1), eq("b", 2), eq("c", 3)}},
		},
		{
			sql:  "select * from t where (a = 1 or b = 2) or c = 3",
			want: &ast.Or{Operands: []ast.Expression{eq("a", 1), eq("b", 2), eq("c", 3)}},
		},
		{
			sql: "select * from t where a = 1 or b = 2 and c = 3",
			want: &ast.Or{Operands: []ast.Expression{
				eq("a", 1),
				&ast.And{Operands: []ast.Expression{eq("b", 2), eq("c", 3)}},
			}},
		},
		{
			sql: "select * from t where (a = 1 or b = 2) and c = 3",
			want: &ast.And{Operands: []ast.Expression{
				&ast.Or{Operands: []ast.Expression{eq("a", 1), eq("b", 2)}},
				eq("c", 3),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			sel, err := parser.ParseString(tt.sql)
			if err != nil {
				t.Fatalf("ParseString error: %v", err)
			}
			if diff := cmp.Diff(tt.want, sel.Where); diff != "" {
				t.Errorf("WHERE mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		sql  string
		want ast.Literal
	}{
		{"select 42 from t", &ast.IntLit{Value: 42}},
		{"select -7 from t", &ast.IntLit{Value: -7}},
		{"select 2147483647 from t", &ast.IntLit{Value: 2147483647}},
		{"select 9000000000L from t", &ast.LongLit{Value: 9000000000}},
		{"select 1.5 from t", &ast.FloatLit{Value: 1.5}},
		{"select 2f from t", &ast.FloatLit{Value: 2}},
		{"select 1e3 from t", &ast.FloatLit{Value: 1000}},
		{"select 'it''s' from t", &ast.StringLit{Value: "it's"}},
		{"select '01/02/2003' from t", &ast.DateLit{Text: "01/02/2003"}},
		{"select '1/2/2003' from t", &ast.StringLit{Value: "1/2/2003"}},
		{"select false from t", &ast.BooleanLit{Value: false}},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			sel, err := parser.ParseString(tt.sql)
			if err != nil {
				t.Fatalf("ParseString error: %v", err)
			}
			cols := sel.Columns.(*ast.SomeColumns)
			got := cols.Columns[0].(*ast.LiteralColumn).Literal
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("literal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		sql      string
		expected string
		found    string
	}{
		{"from a", "SELECT", "FROM"},
		{"select foo", "FROM", "end of input"},
		{"select foo from", "table name", "end of input"},
		{"select * from a where b text:search 1", "placeholder after text:search", "number 1"},
		{"select * from a where rownum < 5L", "integer", "number 5L"},
		{"select * from a where rownum < foo", "integer", `identifier "foo"`},
		{"select * from a where foo not like 1", "BETWEEN or IN", `identifier "like"`},
		{"select * from a order by foo nulls 1", "FIRST or LAST", "number 1"},
		{"select * from a where 3000000000 = 1", "32-bit integer", "number 3000000000"},
		{"select * from a where foo[1] = 1", "*", "number 1"},
		{"select * from a b c", "end of input", `identifier "c"`},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			_, err := parser.ParseString(tt.sql)
			if err == nil {
				t.Fatalf("ParseString(%q) succeeded, want error", tt.sql)
			}
			var syntaxErr *parser.SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("ParseString(%q) error %T (%v), want *parser.SyntaxError", tt.sql, err, err)
			}
			if syntaxErr.Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", syntaxErr.Expected, tt.expected)
			}
			if syntaxErr.Found != tt.found {
				t.Errorf("Found = %q, want %q", syntaxErr.Found, tt.found)
			}
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := parser.ParseString("select foo\nfrom t\nwhere a = = 1")
	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error %v, want *parser.SyntaxError", err)
	}
	if syntaxErr.Pos.Line != 3 || syntaxErr.Pos.Column != 11 {
		t.Errorf("position = %d:%d, want 3:11", syntaxErr.Pos.Line, syntaxErr.Pos.Column)
	}
	want := "expected expression, found '=' at line 3, column 11"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestLexErrorsSurface(t *testing.T) {
	tests := []string{
		"select * from a where name = 'abc",
		"select * from a where name = `abc",
		"select * from a where a = #",
		"select * from a /* open",
	}

	for _, sql := range tests {
		t.Run(sql, func(t *testing.T) {
			_, err := parser.ParseString(sql)
			var lexErr *lexer.LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("ParseString(%q) error %v, want *lexer.LexError", sql, err)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	sql := "select a, max(b) m from t x where a in (1, 2) and b between ? and ? or c is null order by a desc"
	first, err := parser.ParseString(sql)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := parser.ParseString(sql)
		if err != nil {
			t.Fatalf("ParseString error: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("parse %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := parser.Parse(ctx, strings.NewReader("select * from a"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Parse with canceled context: got %v, want context.Canceled", err)
	}
}

// BenchmarkParser benchmarks the parser performance using a complex query
func BenchmarkParser(b *testing.B) {
	query := `
		SELECT DISTINCT
			*UID*,
			p.name,
			max(p.salary) AS top
		FROM Person p, Department d
		WHERE p.age BETWEEN ? AND ?
			AND (p.city = 'London' OR p.city IN ('Paris', 'Rome'))
			AND [*].tags[*].name NOT IN (SELECT name FROM Tag WHERE hidden = TRUE)
			AND p.bio text:match ?
			AND ROWNUM <= 100
		GROUP BY p.name
		ORDER BY top DESC NULLS LAST
	`

	ctx := context.Background()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := parser.Parse(ctx, strings.NewReader(query))
		if err != nil {
			b.Fatal(err)
		}
	}
}
