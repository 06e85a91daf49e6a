package evaluator

import (
	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// pathContext resolves a Path's string into a usable FileContext, reusing
// the Environment's current file directly when the path matches it (the
// common case — a bare property access or `me.size`) so the per-file
// content-read-at-most-once invariant (spec.md §5) holds without the
// FileContext implementation needing to special-case "am I the current
// file". Any other path (`parent.size`, a list element's Path, ...) goes
// through AtPath, which pkg/findit/walk is expected to cache by path for
// the lifetime of one evaluation.
func pathContext(env *Environment, path string) FileContext {
	cur := env.CurrentFile()
	if cur.Path() == path {
		return cur
	}
	return cur.AtPath(path)
}

// pathPropertyNames lists every Path/file property dispatchPathMethod
// handles (excluding the three self-aliases and the four content/walk
// methods proper), for `findit help`.
var pathPropertyNames = []string{
	"parent", "name", "stem", "extension", "absolute", "content", "depth",
	"size", "count", "created", "modified", "accessed", "exists", "owner",
	"group", "permission", "files",
}

// PathPropertyNames exposes pathPropertyNames to pkg/findit/help.
func PathPropertyNames() []string { return pathPropertyNames }

// pathMethodNames lists the four Path methods proper (as opposed to the
// file properties above), for `findit help`.
var pathMethodNames = []string{"length", "lines", "words", "walk"}

// PathMethodNames exposes pathMethodNames to pkg/findit/help.
func PathMethodNames() []string { return pathMethodNames }

// dispatchPathMethod implements both the Path/file properties of spec.md
// §4.5 (reached via the property-shortcut and explicit `.name` forms,
// which desugar identically — see evalIdentifier) and the four Path
// methods proper (length/lines/words/walk).
func dispatchPathMethod(p value.Path, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	ctx := pathContext(env, p.P)
	switch m.Name {
	case "path", "absolute_path":
		return value.Path{P: ctx.Path()}, nil
	case "me", "this", "self":
		return value.Path{P: ctx.Path()}, nil
	case "parent":
		return fromAccessor(ctx.Parent())
	case "name":
		return fromAccessor(ctx.Name())
	case "stem":
		return fromAccessor(ctx.Stem())
	case "extension":
		return fromAccessor(ctx.Extension())
	case "absolute":
		return fromAccessor(ctx.Absolute())
	case "content":
		return fromAccessor(ctx.Content())
	case "depth":
		return fromAccessor(ctx.Depth())
	case "size":
		return fromAccessor(ctx.Size())
	case "count":
		return fromAccessor(ctx.Count())
	case "created":
		return fromAccessor(ctx.Created())
	case "modified":
		return fromAccessor(ctx.Modified())
	case "accessed":
		return fromAccessor(ctx.Accessed())
	case "exists":
		return fromAccessor(ctx.Exists())
	case "owner":
		return fromAccessor(ctx.Owner())
	case "group":
		return fromAccessor(ctx.Group())
	case "permission", "permissions":
		return fromAccessor(ctx.Permission())
	case "files":
		return fromAccessor(ctx.Files())
	case "length":
		return value.Number{N: uint64(len(p.P))}, nil
	case "lines":
		return pathContentSplit(ctx, splitLines), nil
	case "words":
		return pathContentWords(ctx), nil
	case "walk":
		return pathWalk(ctx), nil
	default:
		return value.EmptyValue, nil
	}
}

func fromAccessor(v value.Value, ok bool) (value.Value, *errors.FindItError) {
	if !ok {
		return value.EmptyValue, nil
	}
	return v, nil
}

func pathContentSplit(ctx FileContext, split func(string) []string) value.Value {
	content, ok := ctx.Content()
	s, sok := content.(value.String)
	if !ok || !sok {
		return value.EmptyValue
	}
	return stringList(split(s.S))
}

func pathContentWords(ctx FileContext) value.Value {
	content, ok := ctx.Content()
	s, sok := content.(value.String)
	if !ok || !sok {
		return value.EmptyValue
	}
	return strWords(s, nil, nil)
}

// pathWalk forces FileContext.Walk() into a List of Paths; spec.md §9
// calls out that only a forcing method like this should materialize the
// otherwise-lazy walk sequence.
func pathWalk(ctx FileContext) value.Value {
	nodes := ctx.Walk()
	items := make([]value.Value, len(nodes))
	for i, n := range nodes {
		items[i] = value.Path{P: n.Path()}
	}
	return value.List{Items: items}
}
