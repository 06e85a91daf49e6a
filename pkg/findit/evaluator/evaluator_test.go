package evaluator

import (
	"testing"
	"time"

	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/parser"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// fakeFileContext is an in-memory FileContext stand-in, letting the
// evaluator package be tested without touching pkg/findit/walk or the
// real filesystem.
type fakeFileContext struct {
	path     string
	name     string
	content  string
	hasBody  bool
	size     uint64
	isDir    bool
	isFile   bool
	created  time.Time
	modified time.Time
	accessed time.Time
	files    map[string]*fakeFileContext
	sink     DebugSink
}

func newFakeFile(path, content string) *fakeFileContext {
	return &fakeFileContext{
		path:    path,
		name:    path,
		content: content,
		hasBody: true,
		size:    uint64(len(content)),
		isFile:  true,
		files:   map[string]*fakeFileContext{},
	}
}

func (f *fakeFileContext) Path() string { return f.path }
func (f *fakeFileContext) Parent() (value.Value, bool) {
	return value.Path{P: "/parent"}, true
}
func (f *fakeFileContext) Name() (value.Value, bool)      { return value.String{S: f.name}, true }
func (f *fakeFileContext) Stem() (value.Value, bool)       { return value.String{S: f.name}, true }
func (f *fakeFileContext) Extension() (value.Value, bool)  { return value.String{S: "txt"}, true }
func (f *fakeFileContext) Absolute() (value.Value, bool)   { return value.Path{P: f.path}, true }
func (f *fakeFileContext) Content() (value.Value, bool) {
	if !f.hasBody {
		return value.EmptyValue, false
	}
	return value.String{S: f.content}, true
}
func (f *fakeFileContext) Depth() (value.Value, bool)    { return value.Number{N: 1}, true }
func (f *fakeFileContext) Size() (value.Value, bool)     { return value.Number{N: f.size}, true }
func (f *fakeFileContext) Count() (value.Value, bool)    { return value.Number{N: uint64(len(f.files))}, true }
func (f *fakeFileContext) Created() (value.Value, bool)  { return value.Date{T: f.created}, true }
func (f *fakeFileContext) Modified() (value.Value, bool) { return value.Date{T: f.modified}, true }
func (f *fakeFileContext) Accessed() (value.Value, bool) { return value.Date{T: f.accessed}, true }
func (f *fakeFileContext) Exists() (value.Value, bool)   { return value.Boolean{B: true}, true }
func (f *fakeFileContext) Owner() (value.Value, bool)    { return value.String{S: "root"}, true }
func (f *fakeFileContext) Group() (value.Value, bool)    { return value.String{S: "root"}, true }
func (f *fakeFileContext) Permission() (value.Value, bool) {
	return value.Number{N: 0o644}, true
}
func (f *fakeFileContext) IsDir() (value.Value, bool)  { return value.Boolean{B: f.isDir}, true }
func (f *fakeFileContext) IsFile() (value.Value, bool) { return value.Boolean{B: f.isFile}, true }
func (f *fakeFileContext) IsLink() (value.Value, bool) { return value.Boolean{B: false}, true }
func (f *fakeFileContext) Files() (value.Value, bool) {
	items := make([]value.Value, 0, len(f.files))
	for _, c := range f.files {
		items = append(items, value.Path{P: c.path})
	}
	return value.List{Items: items}, true
}
func (f *fakeFileContext) Walk() []FileContext {
	var out []FileContext
	for _, c := range f.files {
		out = append(out, c)
	}
	return out
}
func (f *fakeFileContext) Child(name string) FileContext {
	if c, ok := f.files[name]; ok {
		return c
	}
	return newFakeFile(f.path+"/"+name, "")
}
func (f *fakeFileContext) AtPath(path string) FileContext {
	return newFakeFile(path, "")
}
func (f *fakeFileContext) DebugSink() DebugSink { return f.sink }

type fakeSink struct{ lines []string }

func (s *fakeSink) LogLine(values ...any) {
	for _, v := range values {
		if str, ok := v.(string); ok {
			s.lines = append(s.lines, str)
		}
	}
}

func evalSrc(t *testing.T, src string, env *Environment) (value.Value, *errors.FindItError) {
	t.Helper()
	expr, perr := parser.Parse(src)
	if perr != nil {
		t.Fatalf("Parse(%q) failed: %s", src, perr)
	}
	return Eval(expr, env)
}

func evalOK(t *testing.T, src string, env *Environment) value.Value {
	t.Helper()
	v, err := evalSrc(t, src, env)
	if err != nil {
		t.Fatalf("Eval(%q) returned error: %s", src, err)
	}
	return v
}

func newTestEnv(content string) *Environment {
	return NewEnvironment(newFakeFile("/a/b/c.txt", content))
}

func TestLiterals(t *testing.T) {
	env := newTestEnv("")
	cases := []struct {
		src  string
		want value.Value
	}{
		{"1", value.Number{N: 1}},
		{`"hi"`, value.String{S: "hi"}},
		{"TRUE", value.Boolean{B: true}},
		{"FALSE", value.Boolean{B: false}},
	}
	for _, c := range cases {
		got := evalOK(t, c.src, env)
		if got.String() != c.want.String() {
			t.Errorf("%q: got %v, want %v", c.src, got, c.want)
		}
	}
}

func TestBareIdentifierIsPropertyShortcut(t *testing.T) {
	env := newTestEnv("hello world")
	got := evalOK(t, "size", env)
	n, ok := got.(value.Number)
	if !ok || n.N != 11 {
		t.Fatalf("size: got %#v, want Number{11}", got)
	}
}

func TestMeThisSelf(t *testing.T) {
	env := newTestEnv("x")
	for _, src := range []string{"me", "this", "self"} {
		got := evalOK(t, src, env)
		p, ok := got.(value.Path)
		if !ok || p.P != "/a/b/c.txt" {
			t.Errorf("%q: got %#v, want Path{/a/b/c.txt}", src, got)
		}
	}
}

func TestExplicitMethodCallAndShortcutAgree(t *testing.T) {
	env := newTestEnv("")
	a := evalOK(t, "me.size", env)
	b := evalOK(t, "size", env)
	if a.String() != b.String() {
		t.Errorf("me.size = %v, size = %v, want equal", a, b)
	}
}

func TestAndThreeValued(t *testing.T) {
	env := newTestEnv("")
	cases := []struct {
		src  string
		want string
	}{
		{"TRUE AND TRUE", "true"},
		{"FALSE AND (1 / 0 AS BOOLEAN)", "false"}, // short-circuits, never touches the bogus right side
		{`(1 / 0) AND TRUE`, "<empty>"},            // left is Empty (division by zero), not a definitive Boolean
	}
	for _, c := range cases {
		got := evalOK(t, c.src, env)
		if got.String() != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got.String(), c.want)
		}
	}
}

func TestOrShortCircuitsOnTrue(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `TRUE OR (1/0 AS BOOLEAN)`, env)
	if b, ok := got.(value.Boolean); !ok || !b.B {
		t.Fatalf("got %#v, want Boolean{true}", got)
	}
}

func TestBetweenRuntimeErrorOnNonOrderable(t *testing.T) {
	env := newTestEnv("")
	_, err := evalSrc(t, `TRUE BETWEEN [1] AND [2]`, env)
	if err == nil || err.Class != errors.ClassRuntime {
		t.Fatalf("got err=%v, want a ClassRuntime error", err)
	}
}

func TestBetweenEmptyBoundsYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `5 BETWEEN (1 / 0) AND 10`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}

func TestStringPlusConcatenation(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `"a" + "b"`, env)
	if s, ok := got.(value.String); !ok || s.S != "ab" {
		t.Fatalf("got %#v, want String{ab}", got)
	}
}

func TestStringTimesNumberRepeats(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `"ab" * 3`, env)
	if s, ok := got.(value.String); !ok || s.S != "ababab" {
		t.Fatalf("got %#v, want String{ababab}", got)
	}
}

func TestSubtractionUnderflowYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, "1 - 2", env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}

func TestDivisionByZeroYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, "5 / 0", env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}

func TestPathChildOperator(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `me / "child.txt"`, env)
	p, ok := got.(value.Path)
	if !ok || p.P != "/a/b/c.txt/child.txt" {
		t.Fatalf("got %#v", got)
	}
}

func TestMatchesOperator(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `"hello123" MATCHES "[0-9]+"`, env)
	if b, ok := got.(value.Boolean); !ok || !b.B {
		t.Fatalf("got %#v, want Boolean{true}", got)
	}
}

func TestMatchesBadPatternYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `"x" MATCHES "("`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}

func TestIfExpression(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `IF 1 > 2 THEN "a" END`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
	got2 := evalOK(t, `IF 2 > 1 THEN "a" ELSE "b" END`, env)
	if s, ok := got2.(value.String); !ok || s.S != "a" {
		t.Fatalf("got %#v, want String{a}", got2)
	}
}

func TestCaseExpression(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `CASE WHEN FALSE THEN 1 WHEN TRUE THEN 2 ELSE 3 END`, env)
	if n, ok := got.(value.Number); !ok || n.N != 2 {
		t.Fatalf("got %#v, want Number{2}", got)
	}
}

func TestWithBindingMemoizesAndSeesEarlierBindings(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `WITH $x AS 2, $y AS $x + $x DO $x + $y END`, env)
	if n, ok := got.(value.Number); !ok || n.N != 6 {
		t.Fatalf("got %#v, want Number{6}", got)
	}
}

func TestWithBindingErrorPropagates(t *testing.T) {
	env := newTestEnv("")
	_, err := evalSrc(t, `WITH $x AS (TRUE BETWEEN [1] AND [2]) DO $x END`, env)
	if err == nil || err.Class != errors.ClassRuntime {
		t.Fatalf("got err=%v, want a ClassRuntime error", err)
	}
}

func TestDebugAlwaysReturnsReceiverEvenWhenEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `(1 / 0).debug($x $x)`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty (debug must still return the receiver)", got)
	}
}

func TestDebugLogsWhenSinkConfigured(t *testing.T) {
	sink := &fakeSink{}
	file := newFakeFile("/a/b/c.txt", "")
	file.sink = sink
	env := NewEnvironment(file)
	got := evalOK(t, `5.debug($x $x * 2)`, env)
	if n, ok := got.(value.Number); !ok || n.N != 5 {
		t.Fatalf("debug must return receiver unchanged, got %#v", got)
	}
	if len(sink.lines) != 1 || sink.lines[0] != "10" {
		t.Fatalf("got sink lines %v, want [\"10\"]", sink.lines)
	}
}

func TestCastToNumberUndefinedYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `"abc" AS NUMBER`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}

func TestNotPrefix(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, "NOT TRUE", env)
	if b, ok := got.(value.Boolean); !ok || b.B {
		t.Fatalf("got %#v, want Boolean{false}", got)
	}
}
