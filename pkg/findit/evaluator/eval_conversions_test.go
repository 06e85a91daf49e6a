package evaluator

import (
	"testing"

	"github.com/findit-cli/findit/pkg/findit/value"
)

func TestCastTotalConversions(t *testing.T) {
	env := newTestEnv("")
	cases := []struct {
		src  string
		want string
	}{
		{`5 AS STRING`, "5"},
		{`"42" AS NUMBER`, "42"},
		{`"yes" AS BOOLEAN`, "true"},
		{`"no" AS BOOLEAN`, "false"},
		{`1 AS BOOLEAN`, "true"},
		{`0 AS BOOLEAN`, "false"},
		{`"a/b" AS PATH`, "a/b"},
	}
	for _, c := range cases {
		got := evalOK(t, c.src, env)
		if got.String() != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got.String(), c.want)
		}
	}
}

func TestCastUndefinedStringToBooleanYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `"maybe" AS BOOLEAN`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}

func TestCastEmptyAlwaysStaysEmptyExceptString(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `(1/0) AS NUMBER`, env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
	// AS STRING is total: Empty renders as "".
	gotStr := evalOK(t, `(1/0) AS STRING`, env)
	if gotStr.String() != "" {
		t.Fatalf("got %q, want empty string", gotStr.String())
	}
}

func TestCastNumberToDateIsUnixSeconds(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `0 AS DATE`, env)
	d, ok := got.(value.Date)
	if !ok {
		t.Fatalf("got %#v, want value.Date", got)
	}
	if d.T.Unix() != 0 {
		t.Fatalf("got unix %d, want 0", d.T.Unix())
	}
}

func TestCastPathToDateUsesAccessed(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `me AS DATE`, env)
	if _, ok := got.(value.Date); !ok {
		t.Fatalf("got %#v, want value.Date (from FileContext.Accessed)", got)
	}
}
