package findit

import (
	"strings"

	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/evaluator"
	"github.com/findit-cli/findit/pkg/findit/parser"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// FileContext is the seam the walker implements; re-exported so callers of
// this package never need to import pkg/findit/evaluator directly.
type FileContext = evaluator.FileContext

// Environment binds $-names and the current FileContext for evaluation.
type Environment = evaluator.Environment

// NewEnvironment wraps a FileContext as the root of an evaluation.
func NewEnvironment(file FileContext) *Environment {
	return evaluator.NewEnvironment(file)
}

// Compile parses source into an expression tree. Failure is a ParseError:
// unrecoverable, reported with a source span, aborting before any file is
// visited (spec.md §6–§7).
func Compile(source string) (ast.Expression, *errors.FindItError) {
	return parser.Parse(source)
}

// Evaluate runs a compiled expression against context, producing a Value
// or a RuntimeError (spec.md §6). RuntimeError is raised only for the three
// cases spec.md §7 names; every other failure mode yields Empty.
func Evaluate(expr ast.Node, env *Environment) (value.Value, *errors.FindItError) {
	return evaluator.Eval(expr, env)
}

// RequireBoolean evaluates expr and interprets the result as a --where
// predicate: Empty is false, a Boolean is itself, anything else is a
// RuntimeError (spec.md §6–§7 case b).
func RequireBoolean(expr ast.Node, env *Environment) (bool, *errors.FindItError) {
	v, err := Evaluate(expr, env)
	if err != nil {
		return false, err
	}
	if value.IsEmpty(v) {
		return false, nil
	}
	b, ok := v.(value.Boolean)
	if !ok {
		return false, errors.RuntimeError(0, 0, "--where must evaluate to a boolean, got %s", v.String())
	}
	return b.B, nil
}

// FormatDisplay renders template against env: template is literal text
// with embedded findit expressions between start/end delimiters (default
// backtick for both, per the CLI's --interpolation-start/-end flags); each
// embedded expression is compiled, evaluated, and rendered via AS STRING.
func FormatDisplay(template string, env *Environment, start, end string) (string, *errors.FindItError) {
	if start == "" {
		start = "`"
	}
	if end == "" {
		end = "`"
	}
	var out strings.Builder
	rest := template
	for {
		i := strings.Index(rest, start)
		if i < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:i])
		rest = rest[i+len(start):]
		j := strings.Index(rest, end)
		if j < 0 {
			// Unterminated delimiter: treat the rest as literal text,
			// matching the teacher's lenient template rendering.
			out.WriteString(start)
			out.WriteString(rest)
			break
		}
		exprSrc := rest[:j]
		rest = rest[j+len(end):]

		// Rendering goes through an explicit "AS STRING" cast rather than
		// reaching into the evaluator's internal conversion helpers, so
		// this package only ever calls through compile/evaluate.
		expr, perr := Compile(exprSrc + " AS STRING")
		if perr != nil {
			return "", perr
		}
		v, eerr := Evaluate(expr, env)
		if eerr != nil {
			return "", eerr
		}
		out.WriteString(v.String())
	}
	return out.String(), nil
}
