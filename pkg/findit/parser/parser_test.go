package parser

import (
	"testing"

	"github.com/findit-cli/findit/pkg/findit/ast"
)

func parseOK(t *testing.T, src string) ast.Expression {
	t.Helper()
	expr, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %s", src, err)
	}
	return expr
}

func TestBinaryPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 | 2 ^ 3 & 4", "(1 | (2 ^ (3 & 4)))"},
		{"a == 1 AND b == 2", "((a == 1) AND (b == 2))"},
		{"a OR b AND c", "(a OR (b AND c))"},
	}
	for _, c := range cases {
		got := parseOK(t, c.src).String()
		if got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestNotBindsOverComparison(t *testing.T) {
	got := parseOK(t, "NOT a == b").String()
	want := "(NOT (a == b))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBetween(t *testing.T) {
	got := parseOK(t, "size BETWEEN 1 AND 10").String()
	want := "size BETWEEN 1 AND 10"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBetweenExcludesOuterAnd(t *testing.T) {
	expr := parseOK(t, "size BETWEEN 1 AND 10 AND name == \"x\"")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryExpr (outer AND)", expr)
	}
	if _, ok := bin.Left.(*ast.BetweenExpr); !ok {
		t.Fatalf("left operand got %T, want *ast.BetweenExpr", bin.Left)
	}
}

func TestIsPredicates(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x IS SOME", "x IS SOME"},
		{"x IS NOT NONE", "x IS NOT NONE"},
		{"me IS DIR", "me IS DIR"},
		{"me IS NOT FILE", "me IS NOT FILE"},
		{"me IS NOT LINK", "me IS NOT LINK"},
	}
	for _, c := range cases {
		got := parseOK(t, c.src).String()
		if got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestCast(t *testing.T) {
	got := parseOK(t, `"yes" AS BOOLEAN`).String()
	want := `"yes" AS BOOL-TYPE`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIfExpression(t *testing.T) {
	got := parseOK(t, `IF 1 > 2 THEN "a" END`).String()
	want := `IF (1 > 2) THEN "a" END`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCaseExpression(t *testing.T) {
	got := parseOK(t, `CASE WHEN a THEN 1 WHEN b THEN 2 ELSE 3 END`).String()
	want := `CASE WHEN a THEN 1 WHEN b THEN 2 ELSE 3 END`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWithExpression(t *testing.T) {
	got := parseOK(t, `WITH $x AS 1, $y AS $x + $x DO $x + $y END`).String()
	want := `WITH $x AS 1, $y AS ($x + $x) DO ($x + $y) END`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWithBindingAsOptional(t *testing.T) {
	expr := parseOK(t, `WITH $x 1 DO $x END`)
	with, ok := expr.(*ast.WithExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.WithExpr", expr)
	}
	if len(with.Bindings) != 1 || with.Bindings[0].Name != "x" {
		t.Fatalf("unexpected bindings: %+v", with.Bindings)
	}
}

func TestMethodCallDotAndZeroArgParens(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"me.lines.length", "me.lines.length"},
		{"me.lines().length()", "me.lines.length"},
		{`content.contains("TODO")`, `content.contains("TODO")`},
	}
	for _, c := range cases {
		got := parseOK(t, c.src).String()
		if got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestOfDual(t *testing.T) {
	got := parseOK(t, "length OF name").String()
	want := "name.length"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClassLiteralAndAccess(t *testing.T) {
	got := parseOK(t, `{:a 1, :b 2}::b`).String()
	want := `{:a 1, :b 2}::b`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestListLiteral(t *testing.T) {
	got := parseOK(t, `[10, 11, 10]`).String()
	want := `[10, 11, 10]`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLambdaArgument(t *testing.T) {
	expr := parseOK(t, `items.filter($x $x > 5)`)
	mc, ok := expr.(*ast.MethodCall)
	if !ok {
		t.Fatalf("got %T, want *ast.MethodCall", expr)
	}
	if len(mc.Args) != 1 {
		t.Fatalf("got %d args, want 1", len(mc.Args))
	}
	lambda, ok := mc.Args[0].Value.(*ast.LambdaExpr)
	if !ok {
		t.Fatalf("arg got %T, want *ast.LambdaExpr", mc.Args[0].Value)
	}
	if lambda.Param != "x" {
		t.Errorf("param: got %q, want %q", lambda.Param, "x")
	}
}

func TestFormatBuiltinASAsKeywordNotCast(t *testing.T) {
	expr := parseOK(t, `format(me AS "%Y-%m-%d")`)
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpr", expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
	if call.Args[1].Keyword.String() != "AS" {
		t.Errorf("second arg keyword: got %s, want AS", call.Args[1].Keyword)
	}
	if _, ok := call.Args[1].Value.(*ast.StringLiteral); !ok {
		t.Errorf("second arg value: got %T, want *ast.StringLiteral", call.Args[1].Value)
	}
}

func TestReplaceBuiltinFromTo(t *testing.T) {
	expr := parseOK(t, `replace(src FROM a TO b)`)
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpr", expr)
	}
	if len(call.Args) != 3 {
		t.Fatalf("got %d args, want 3", len(call.Args))
	}
	if call.Args[1].Keyword.String() != "FROM" || call.Args[2].Keyword.String() != "TO" {
		t.Errorf("got keywords %s, %s, want FROM, TO", call.Args[1].Keyword, call.Args[2].Keyword)
	}
}

func TestExecuteBuiltinPositionalAndInto(t *testing.T) {
	expr := parseOK(t, `execute(path, arg1, arg2 INTO out)`)
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpr", expr)
	}
	if len(call.Args) != 4 {
		t.Fatalf("got %d args, want 4", len(call.Args))
	}
	if call.Args[3].Keyword.String() != "INTO" {
		t.Errorf("last arg keyword: got %s, want INTO", call.Args[3].Keyword)
	}
}

func TestUnaryPrefixSlashDesugarsToMeChild(t *testing.T) {
	expr := parseOK(t, `/ "child"`)
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryExpr", expr)
	}
	ident, ok := bin.Left.(*ast.Identifier)
	if !ok || ident.Name != "me" {
		t.Fatalf("left: got %#v, want Identifier{Name: \"me\"}", bin.Left)
	}
}

func TestThisAndSelfAliasMe(t *testing.T) {
	for _, src := range []string{"this", "self", "me"} {
		ident, ok := parseOK(t, src).(*ast.Identifier)
		if !ok || ident.Name != "me" {
			t.Errorf("%q: got %#v, want Identifier{Name: \"me\"}", src, ident)
		}
	}
}

func TestParseErrorNoRecovery(t *testing.T) {
	_, err := Parse(`IF 1 > 2 THEN "a"`) // missing END
	if err == nil {
		t.Fatal("expected a ParseError for missing END")
	}
}
