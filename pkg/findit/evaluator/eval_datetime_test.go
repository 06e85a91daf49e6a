package evaluator

import (
	"testing"
	"time"
)

func TestStrftimeToGoLayout(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"%Y-%m-%d", "2006-01-02"},
		{"%H:%M:%S", "15:04:05"},
		{"%Y-%m-%dT%H:%M:%S%z", "2006-01-02T15:04:05-0700"},
		{"100%%", "100%"},
	}
	for _, c := range cases {
		if got := strftimeToGoLayout(c.pattern); got != c.want {
			t.Errorf("strftimeToGoLayout(%q) = %q, want %q", c.pattern, got, c.want)
		}
	}
}

func TestFormatDateWithPattern(t *testing.T) {
	tm := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	got := formatDateWithPattern(tm, "%Y-%m-%d")
	if got != "2024-03-15" {
		t.Errorf("got %q, want %q", got, "2024-03-15")
	}
}

func TestParseDateWithPatternFixedLayout(t *testing.T) {
	tm, ok := parseDateWithPattern("2024-03-15", "%Y-%m-%d")
	if !ok {
		t.Fatal("expected a successful parse")
	}
	if tm.Year() != 2024 || tm.Month() != time.March || tm.Day() != 15 {
		t.Fatalf("got %v", tm)
	}
}

func TestParseDateWithPatternFallsBackToFlexibleParse(t *testing.T) {
	// The declared pattern doesn't match this input, so parseDateWithPattern
	// falls back to parseFlexibleDate (the stated reason for carrying
	// araddon/dateparse at all).
	tm, ok := parseDateWithPattern("March 15, 2024", "%Y-%m-%d")
	if !ok {
		t.Fatal("expected the flexible-parse fallback to succeed")
	}
	if tm.Year() != 2024 {
		t.Fatalf("got %v", tm)
	}
}

func TestEvalDateLiteral(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `@(2024-03-15)`, env)
	if got.String() == "<empty>" {
		t.Fatalf("expected a valid date literal to parse, got Empty")
	}
}

func TestEvalDateLiteralUnparseableYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, `@(not-a-date)`, env)
	if got.String() != "<empty>" {
		t.Fatalf("got %q, want <empty>", got.String())
	}
}
