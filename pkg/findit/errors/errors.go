// Package errors provides the two structured error kinds findit's core
// raises: compile-time ParseError and the narrow set of runtime errors
// described for the evaluator. Every other evaluation failure is a value
// (Empty), not an error — see pkg/findit/evaluator.
package errors

import (
	"fmt"
	"strings"
)

// Class categorizes a FindItError as a compile-time or run-time failure.
type Class string

const (
	ClassParse   Class = "parse"
	ClassRuntime Class = "runtime"
)

// FindItError is the error type returned by compile/evaluate/requireBoolean.
type FindItError struct {
	Class   Class
	Message string
	Line    int // 1-based; 0 when unknown
	Column  int // 1-based; 0 when unknown
	Hints   []string
}

// Error implements the error interface.
func (e *FindItError) Error() string { return e.String() }

// String renders a single-line form: "line L, column C: message".
func (e *FindItError) String() string {
	var sb strings.Builder
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d, column %d: ", e.Line, e.Column))
	}
	sb.WriteString(e.Message)
	for _, h := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(h)
	}
	return sb.String()
}

// PrettyString renders the multi-line "Parser error: ... / Runtime error:
// ..." form used by the CLI when reporting a compile or evaluation failure.
func (e *FindItError) PrettyString() string {
	var sb strings.Builder
	switch e.Class {
	case ClassParse:
		sb.WriteString("Parser error")
	default:
		sb.WriteString("Runtime error")
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(": line %d, column %d\n  ", e.Line, e.Column))
	} else {
		sb.WriteString(":\n  ")
	}
	sb.WriteString(e.Message)
	for _, h := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(h)
	}
	return sb.String()
}

// ParseError builds a ClassParse FindItError at the given source position.
func ParseError(line, column int, format string, args ...any) *FindItError {
	return &FindItError{
		Class:   ClassParse,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}

// ParseErrorWithHints is ParseError plus expected-token hints, used when the
// parser knows what would have been accepted at the failure point.
func ParseErrorWithHints(line, column int, hints []string, format string, args ...any) *FindItError {
	e := ParseError(line, column, format, args...)
	e.Hints = hints
	return e
}

// RuntimeError builds a ClassRuntime FindItError. Per the evaluator's
// design, this is raised only for lambda arity mismatches, a non-Boolean
// non-Empty --where result, and BETWEEN over non-orderable non-Empty
// bounds — every other failure mode yields the Empty value instead.
func RuntimeError(line, column int, format string, args ...any) *FindItError {
	return &FindItError{
		Class:   ClassRuntime,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}
