package evaluator

import (
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// FileContext is the interface the core consumes for everything
// filesystem-sensitive (spec.md §6). The evaluator never touches os/io/fs
// directly outside of an implementation of this interface — findit's own
// implementation lives in pkg/findit/walk (osFileContext), keeping the
// core usable against a fake context in tests.
type FileContext interface {
	Path() string

	Parent() (value.Value, bool)
	Name() (value.Value, bool)
	Stem() (value.Value, bool)
	Extension() (value.Value, bool)
	Absolute() (value.Value, bool)
	Content() (value.Value, bool)
	Depth() (value.Value, bool)
	Size() (value.Value, bool)
	Count() (value.Value, bool)
	Created() (value.Value, bool)
	Modified() (value.Value, bool)
	Accessed() (value.Value, bool)
	Exists() (value.Value, bool)
	Owner() (value.Value, bool)
	Group() (value.Value, bool)
	Permission() (value.Value, bool)
	IsDir() (value.Value, bool)
	IsFile() (value.Value, bool)
	IsLink() (value.Value, bool)
	Files() (value.Value, bool)

	// Walk returns every regular file below this context as a fully built
	// slice; directories are descended into but not included, and the
	// whole subtree is read before Walk returns.
	Walk() []FileContext

	// Child resolves path `/` string against this context, implementing
	// the Path-child operator and the `/ "c"` current-file shorthand.
	Child(name string) FileContext

	// AtPath builds a FileContext for an arbitrary path string, used to
	// answer a property/method access against a bare Path value (every
	// property is defined for "the current file or any Path-valued
	// receiver", per the GLOSSARY).
	AtPath(path string) FileContext

	// DebugSink is the optional append target for debug($x body); nil
	// when no --debug-log was configured.
	DebugSink() DebugSink
}

// DebugSink is the minimal append interface debug() writes through;
// pkg/findit/findit's Logger satisfies it.
type DebugSink interface {
	LogLine(values ...any)
}

// binding is one entry on the Environment's $-name stack: either an
// already-forced Value or a thunk pending its first force (WITH bindings
// are memoized on first reference, per spec.md §4.4).
type binding struct {
	name   string
	value  value.Value
	err    *errors.FindItError
	thunk  func() (value.Value, *errors.FindItError)
	forced bool
}

// Environment carries the current file plus a stack of $name bindings
// (WITH variables and lambda parameters). It is created once per
// evaluate() call and is not shared across files.
type Environment struct {
	file     FileContext
	bindings []*binding
}

// NewEnvironment starts an Environment rooted at file with no bindings.
func NewEnvironment(file FileContext) *Environment {
	return &Environment{file: file}
}

// CurrentFile returns the implicit current file (me/this/self).
func (e *Environment) CurrentFile() FileContext { return e.file }

// WithFile returns a derived Environment sharing the same binding stack
// but pointed at a different file, used when a method call or property
// access changes the receiver (e.g. a Path value's own property lookups).
func (e *Environment) WithFile(file FileContext) *Environment {
	return &Environment{file: file, bindings: e.bindings}
}

// PushValue binds name to an already-known value — used for lambda
// parameter application, where the argument is eagerly available.
func (e *Environment) PushValue(name string, v value.Value) *Environment {
	b := &binding{name: name, value: v, forced: true}
	return &Environment{file: e.file, bindings: append(e.bindings, b)}
}

// PushThunk binds name to a suspended computation — used for WITH, so the
// bound expression evaluates at most once and only if referenced.
func (e *Environment) PushThunk(name string, thunk func() (value.Value, *errors.FindItError)) *Environment {
	b := &binding{name: name, thunk: thunk}
	return &Environment{file: e.file, bindings: append(e.bindings, b)}
}

// Lookup resolves $name against the innermost matching binding (lambda
// parameters and later WITH bindings shadow earlier ones), forcing a
// thunk on its first reference. The returned error is whatever the thunk
// raised while forcing (e.g. a BETWEEN over non-orderable bounds inside a
// WITH binding's expression); ok is false only when no binding named name
// exists.
func (e *Environment) Lookup(name string) (value.Value, *errors.FindItError, bool) {
	for i := len(e.bindings) - 1; i >= 0; i-- {
		b := e.bindings[i]
		if b.name != name {
			continue
		}
		if !b.forced {
			b.value, b.err = b.thunk()
			b.forced = true
			b.thunk = nil
		}
		return b.value, b.err, true
	}
	return value.EmptyValue, nil, false
}
