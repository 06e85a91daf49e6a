package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/findit-cli/findit/pkg/findit/findit"
	"github.com/findit-cli/findit/pkg/findit/walk"
)

func TestFilterCompletionsMatchesPrefixCaseInsensitively(t *testing.T) {
	vocabulary := []string{"hassuffix", "hasprefix", "length", "AND", "OR"}
	matches := filterCompletions("has", vocabulary)

	if len(matches) != 2 {
		t.Fatalf("matches = %v, want 2 (hassuffix, hasprefix)", matches)
	}
	for _, m := range matches {
		if !strings.HasPrefix(m, "has") {
			t.Errorf("match %q does not start with the typed prefix", m)
		}
	}
}

func TestFilterCompletionsPreservesLeadingWords(t *testing.T) {
	vocabulary := []string{"AND", "OR"}
	matches := filterCompletions("name.length() AN", vocabulary)

	if len(matches) != 1 || matches[0] != "name.length() AND" {
		t.Fatalf("matches = %v, want [\"name.length() AND\"]", matches)
	}
}

func TestFilterCompletionsReturnsNilAfterTrailingSpace(t *testing.T) {
	if matches := filterCompletions("name ", completionWords); matches != nil {
		t.Fatalf("matches = %v, want nil once the word is already finished", matches)
	}
}

func TestFilterCompletionsReturnsNilOnEmptyInput(t *testing.T) {
	if matches := filterCompletions("", completionWords); matches != nil {
		t.Fatalf("matches = %v, want nil for empty input", matches)
	}
}

func TestCompletionWordsIncludesLanguageVocabulary(t *testing.T) {
	for _, want := range []string{"hassuffix", "AND", "IS"} {
		found := false
		for _, w := range completionWords {
			if strings.EqualFold(w, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("completionWords missing %q", want)
		}
	}
}

func TestEvalAndPrintWritesResultToStdout(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "report.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	file := walk.NewRootContext(filepath.Join(root, "report.txt"), findit.NullLogger())

	var stdout, stderr bytes.Buffer
	evalAndPrint(`name`, file, &stdout, &stderr)

	if !strings.Contains(stdout.String(), "report.txt") {
		t.Fatalf("stdout = %q, want it to contain the file name", stdout.String())
	}
	if stderr.String() != "" {
		t.Fatalf("stderr = %q, want empty", stderr.String())
	}
}

func TestEvalAndPrintRoutesCompileErrorsToStderr(t *testing.T) {
	root := t.TempDir()
	file := walk.NewRootContext(root, findit.NullLogger())

	var stdout, stderr bytes.Buffer
	evalAndPrint(`name.hassuffix(`, file, &stdout, &stderr)

	if stdout.String() != "" {
		t.Fatalf("stdout = %q, want empty on a compile error", stdout.String())
	}
	if !strings.Contains(stderr.String(), "error") && !strings.Contains(stderr.String(), "Error") {
		t.Fatalf("stderr = %q, want it to mention the parse error", stderr.String())
	}
}

func TestEvalAndPrintRoutesRuntimeErrorsToStderr(t *testing.T) {
	root := t.TempDir()
	file := walk.NewRootContext(root, findit.NullLogger())

	var stdout, stderr bytes.Buffer
	evalAndPrint(`TRUE BETWEEN 1 AND 10`, file, &stdout, &stderr)

	if stdout.String() != "" {
		t.Fatalf("stdout = %q, want empty on a runtime error", stdout.String())
	}
	if stderr.String() == "" {
		t.Fatal("stderr is empty, want a runtime error message")
	}
}
