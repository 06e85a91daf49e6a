package evaluator

import (
	"testing"

	"github.com/findit-cli/findit/pkg/findit/value"
)

func TestNormalizeBool(t *testing.T) {
	if got := normalizeBool(value.Boolean{B: true}); got.String() != "true" {
		t.Errorf("got %v", got)
	}
	if got := normalizeBool(value.String{S: "x"}); !value.IsEmpty(got) {
		t.Errorf("got %v, want Empty (non-Boolean coerces to Empty)", got)
	}
	if got := normalizeBool(value.EmptyValue); !value.IsEmpty(got) {
		t.Errorf("got %v, want Empty", got)
	}
}

func TestOrFalseEmptyIsEmptyWhenIndeterminate(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `FALSE OR (1/0)`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}

func TestAndEmptyFalseIsFalse(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `(1/0) AND FALSE`, env)
	if b, ok := got.(value.Boolean); !ok || b.B {
		t.Fatalf("got %#v, want Boolean{false}", got)
	}
}

func TestWithBindingEvaluatedAtMostOnce(t *testing.T) {
	sink := &fakeSink{}
	file := newFakeFile("/a/b/c.txt", "")
	file.sink = sink
	env := NewEnvironment(file)
	// $x's debug side effect must fire exactly once even though $x is
	// referenced twice in the body.
	got := evalOK(t, `WITH $x AS 5.debug($d $d) DO $x + $x END`, env)
	if n, ok := got.(value.Number); !ok || n.N != 10 {
		t.Fatalf("got %#v, want Number{10}", got)
	}
	if len(sink.lines) != 1 {
		t.Fatalf("got %d debug log lines, want 1 (thunk must memoize)", len(sink.lines))
	}
}
