package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/evaluator"
	"github.com/findit-cli/findit/pkg/findit/findit"
	"github.com/findit-cli/findit/pkg/findit/walk"
)

const tryPrompt = ">> "

// completionWords feeds liner's tab completion, grounded on
// pkg/parsley/repl/repl.go's completionWords table but populated with
// findit's own vocabulary instead of Parsley's.
var completionWords = buildCompletionWords()

func buildCompletionWords() []string {
	words := []string{
		"AND", "OR", "XOR", "NOT", "IS", "TRUE", "FALSE", "SOME", "NONE", "AS",
		"FILE", "DIR", "LINK", "IF", "THEN", "ELSE", "END", "CASE", "WHEN",
		"WITH", "DO", "MATCHES", "BETWEEN", "OF", "ASC", "DESC", "INTO",
		"FROM", "TO", "PATTERN",
	}
	words = append(words, evaluator.GetRegistryForType("STRING").Names()...)
	words = append(words, evaluator.ListMethodNames()...)
	words = append(words, evaluator.PathPropertyNames()...)
	words = append(words, evaluator.PathMethodNames()...)
	words = append(words, evaluator.FreeFunctionNames()...)
	return words
}

// tryCommand starts an interactive prompt where each line is compiled and
// evaluated against a chosen file, grounded on cmd/pars/main.go's REPL
// branch and pkg/parsley/repl.Start's liner setup (SPEC_FULL.md §3.4).
func tryCommand(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := flag.NewFlagSet("try", flag.ContinueOnError)
	flags.SetOutput(stderr)
	against := flags.String("against", ".", "File or directory to evaluate expressions against")
	if err := flags.Parse(args); err != nil {
		return err
	}

	root, err := filepath.Abs(*against)
	if err != nil {
		return fmt.Errorf("resolving --against: %w", err)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return filterCompletions(partial, completionWords)
	})

	historyFile := filepath.Join(os.TempDir(), ".findit_try_history")
	if f, ferr := os.Open(historyFile); ferr == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, ferr := os.Create(historyFile); ferr == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	file := walk.NewRootContext(root, findit.NullLogger())

	fmt.Fprintf(stdout, "findit try — evaluating against %s\n", root)
	fmt.Fprintln(stdout, "Type an expression, :against <path> to switch files, or exit/Ctrl+D to quit")
	fmt.Fprintln(stdout)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		input, perr := line.Prompt(tryPrompt)
		if perr != nil {
			if perr == liner.ErrPromptAborted {
				fmt.Fprintln(stdout, "^C")
				continue
			}
			if perr == io.EOF {
				fmt.Fprintln(stdout, "\nGoodbye!")
				return nil
			}
			return perr
		}

		trimmed := strings.TrimSpace(input)
		switch {
		case trimmed == "":
			continue
		case trimmed == "exit" || trimmed == "quit":
			fmt.Fprintln(stdout, "Goodbye!")
			return nil
		case strings.HasPrefix(trimmed, ":against "):
			newRoot, aerr := filepath.Abs(strings.TrimSpace(trimmed[len(":against "):]))
			if aerr != nil {
				fmt.Fprintf(stderr, "Error: %v\n", aerr)
				continue
			}
			root = newRoot
			file = walk.NewRootContext(root, findit.NullLogger())
			fmt.Fprintf(stdout, "now evaluating against %s\n", root)
			continue
		}

		line.AppendHistory(trimmed)
		evalAndPrint(trimmed, file, stdout, stderr)
	}
}

func evalAndPrint(source string, file findit.FileContext, stdout, stderr io.Writer) {
	expr, perr := findit.Compile(source)
	if perr != nil {
		printTryError(stderr, perr)
		return
	}
	env := findit.NewEnvironment(file)
	result, eerr := findit.Evaluate(expr, env)
	if eerr != nil {
		printTryError(stderr, eerr)
		return
	}
	fmt.Fprintln(stdout, result.String())
}

func printTryError(w io.Writer, err *errors.FindItError) {
	fmt.Fprintln(w, err.PrettyString())
}

func filterCompletions(partial string, vocabulary []string) []string {
	trimmed := strings.TrimRight(partial, " \t")
	if trimmed == "" || trimmed != partial {
		return nil
	}
	words := strings.Fields(partial)
	if len(words) == 0 {
		return nil
	}
	last := words[len(words)-1]
	prefix := partial[:len(partial)-len(last)]

	var matches []string
	for _, w := range vocabulary {
		if strings.HasPrefix(strings.ToLower(w), strings.ToLower(last)) {
			matches = append(matches, prefix+w)
		}
	}
	return matches
}
