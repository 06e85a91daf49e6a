package evaluator

import (
	"testing"

	"github.com/findit-cli/findit/pkg/findit/value"
)

func TestListBasics(t *testing.T) {
	env := newTestEnv("")
	cases := []struct {
		src  string
		want string
	}{
		{"[1,2,3].length", "3"},
		{"[1,2,3].reverse", "[3, 2, 1]"},
		{"[1,2,3].sum", "6"},
		{"[1,2,3].avg", "2"},
		{"[3,1,2].max", "3"},
		{"[3,1,2].min", "1"},
		{"[3,1,2].sort", "[1, 2, 3]"},
		{"[1,1,2,2,3].distinct", "[1, 2, 3]"},
		{"[1,2,3].take(2)", "[1, 2]"},
		{"[1,2,3].skip(2)", "[3]"},
		{`[1,2,3].join("-")`, "1-2-3"},
		{"[1,2,3].first", "1"},
		{"[1,2,3].last", "3"},
		{"[1,2,3].contains(2)", "true"},
		{"[1,2,3].contains(9)", "false"},
		{"[10,20,30].indexof(20)", "1"},
	}
	for _, c := range cases {
		got := evalOK(t, c.src, env)
		if got.String() != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got.String(), c.want)
		}
	}
}

func TestMaxMinHeterogeneousYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `[1, "a"].max`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}

func TestSortHeterogeneousYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `[1, "a"].sort`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}

func TestListHigherOrderMethods(t *testing.T) {
	env := newTestEnv("")
	cases := []struct {
		src  string
		want string
	}{
		{"[1,2,3].map($x $x * 2)", "[2, 4, 6]"},
		{"[1,2,3,4].filter($x $x > 2)", "[3, 4]"},
		{"[1,2].flatmap($x [$x, $x])", "[1, 1, 2, 2]"},
		{"[2,4,6].all($x $x > 0)", "true"},
		{"[2,4,5].all($x $x > 0)", "true"},
		{"[2,4,5].all($x $x % 2 == 0)", "false"},
		{"[1,3,5].any($x $x % 2 == 0)", "false"},
		{"[1,3,4].any($x $x % 2 == 0)", "true"},
		{"[3,1,2].sortby($x $x)", "[1, 2, 3]"},
		{"[1,2,3,4].distinctby($x $x % 2)", "[1, 2]"},
	}
	for _, c := range cases {
		got := evalOK(t, c.src, env)
		if got.String() != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got.String(), c.want)
		}
	}
}

func TestEnumerateProducesIndexItemClasses(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `[10,20].enumerate`, env)
	l, ok := got.(value.List)
	if !ok || len(l.Items) != 2 {
		t.Fatalf("got %#v", got)
	}
	first, ok := l.Items[0].(value.Class)
	if !ok {
		t.Fatalf("item 0: got %T, want value.Class", l.Items[0])
	}
	idx, _ := first.Get("index")
	item, _ := first.Get("item")
	if idx.String() != "0" || item.String() != "10" {
		t.Fatalf("got index=%v item=%v", idx, item)
	}
}

func TestGroupByFirstSeenKeyOrder(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `[1,2,3,4,5].groupby($x $x % 2)`, env)
	l, ok := got.(value.List)
	if !ok || len(l.Items) != 2 {
		t.Fatalf("got %#v", got)
	}
	firstGroup, ok := l.Items[0].(value.Class)
	if !ok {
		t.Fatalf("item 0: got %T", l.Items[0])
	}
	key, _ := firstGroup.Get("key")
	if key.String() != "1" {
		t.Fatalf("first-seen key should be 1 (from element 1), got %v", key)
	}
	values, _ := firstGroup.Get("values")
	if values.String() != "[1, 3, 5]" {
		t.Fatalf("got %v", values)
	}
}

func TestUnknownListMethodYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, "[1,2].nosuchmethod", env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}
