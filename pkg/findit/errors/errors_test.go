package errors

import "testing"

func TestFindItError_String(t *testing.T) {
	tests := []struct {
		name     string
		err      *FindItError
		expected string
	}{
		{
			name:     "message only",
			err:      &FindItError{Message: "something went wrong"},
			expected: "something went wrong",
		},
		{
			name:     "with line and column",
			err:      &FindItError{Message: "unexpected token IDENT", Line: 1, Column: 7},
			expected: "line 1, column 7: unexpected token IDENT",
		},
		{
			name:     "with hints",
			err:      &FindItError{Message: "unknown keyword near 'WEHN'", Line: 2, Column: 1, Hints: []string{"Did you mean WHEN?"}},
			expected: "line 2, column 1: unknown keyword near 'WEHN'\n  Did you mean WHEN?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFindItError_PrettyString(t *testing.T) {
	parse := ParseError(3, 5, "expected THEN, found END")
	if got, want := parse.PrettyString(), "Parser error: line 3, column 5\n  expected THEN, found END"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	runtime := RuntimeError(0, 0, "--where expression returned a non-Boolean value")
	if got, want := runtime.PrettyString(), "Runtime error:\n  --where expression returned a non-Boolean value"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseErrorWithHints(t *testing.T) {
	err := ParseErrorWithHints(1, 1, []string{"try AND", "try OR"}, "unexpected operator %q", "&&")
	if err.Class != ClassParse {
		t.Fatalf("got class %v, want %v", err.Class, ClassParse)
	}
	want := `unexpected operator "&&"`
	if err.Message != want {
		t.Errorf("message: got %q, want %q", err.Message, want)
	}
	if len(err.Hints) != 2 {
		t.Fatalf("got %d hints, want 2", len(err.Hints))
	}
}

func TestRuntimeErrorClass(t *testing.T) {
	err := RuntimeError(4, 2, "lambda expects 1 argument, got %d", 2)
	if err.Class != ClassRuntime {
		t.Errorf("got class %v, want %v", err.Class, ClassRuntime)
	}
}
