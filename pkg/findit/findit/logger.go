// Package findit is the project's public-facing API: Compile/Evaluate/
// RequireBoolean/FormatDisplay (spec.md §6) plus the Logger types that back
// debug($x body) and the CLI's --debug-log flag.
package findit

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/findit-cli/findit/pkg/findit/evaluator"
)

// Logger is the interface debug($x body) and --debug-log write through;
// it satisfies evaluator.DebugSink via LogLine.
type Logger interface {
	Log(values ...any)
	LogLine(values ...any)
}

type stdoutLogger struct{}

func (stdoutLogger) Log(values ...any)     { fmt.Print(formatLogValues(values...)) }
func (stdoutLogger) LogLine(values ...any) { fmt.Println(formatLogValues(values...)) }

// StdoutLogger returns a Logger that writes to stdout.
func StdoutLogger() Logger { return stdoutLogger{} }

type writerLogger struct{ w io.Writer }

func (l *writerLogger) Log(values ...any)     { fmt.Fprint(l.w, formatLogValues(values...)) }
func (l *writerLogger) LogLine(values ...any) { fmt.Fprintln(l.w, formatLogValues(values...)) }

// WriterLogger returns a Logger that writes to an arbitrary io.Writer.
func WriterLogger(w io.Writer) Logger { return &writerLogger{w: w} }

// BufferedLogger captures log output in memory, for tests.
type BufferedLogger struct {
	mu    sync.Mutex
	lines []string
	buf   strings.Builder
}

func NewBufferedLogger() *BufferedLogger { return &BufferedLogger{} }

func (l *BufferedLogger) Log(values ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.WriteString(formatLogValues(values...))
}

func (l *BufferedLogger) LogLine(values ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	line := l.buf.String() + formatLogValues(values...)
	l.lines = append(l.lines, line)
	l.buf.Reset()
}

func (l *BufferedLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

type nullLogger struct{}

func (nullLogger) Log(values ...any)     {}
func (nullLogger) LogLine(values ...any) {}

// NullLogger returns a Logger that discards everything (the default when
// --debug-log isn't set).
func NullLogger() Logger { return nullLogger{} }

func formatLogValues(values ...any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// debugSinkAdapter satisfies evaluator.DebugSink by delegating to a Logger,
// the seam FileContext implementations plug a configured --debug-log into.
type debugSinkAdapter struct{ l Logger }

func (a debugSinkAdapter) LogLine(values ...any) { a.l.LogLine(values...) }

// AsDebugSink adapts a Logger to evaluator.DebugSink; nil stays nil so
// FileContext.DebugSink() can return it directly without a wrapper check.
func AsDebugSink(l Logger) evaluator.DebugSink {
	if l == nil {
		return nil
	}
	return debugSinkAdapter{l: l}
}
