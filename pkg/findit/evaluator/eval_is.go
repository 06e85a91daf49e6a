package evaluator

import (
	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// evalIs implements `value IS [NOT] TRUE|FALSE|SOME|NONE|DIR|FILE|LINK`
// (spec.md §4.2, §8 testable property 2). IS DIR/FILE/LINK apply only to
// a Path-valued operand; any other receiver Kind makes them Empty rather
// than false, since the predicate isn't answerable at all, not answerably
// false.
func evalIs(n *ast.IsExpr, env *Environment) (value.Value, *errors.FindItError) {
	v, err := Eval(n.Value, env)
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case ast.IsSome:
		return negated(!value.IsEmpty(v), n.Negate), nil
	case ast.IsNone:
		return negated(value.IsEmpty(v), n.Negate), nil
	case ast.IsTrue:
		b, ok := v.(value.Boolean)
		return negated(ok && b.B, n.Negate), nil
	case ast.IsFalse:
		b, ok := v.(value.Boolean)
		return negated(ok && !b.B, n.Negate), nil
	case ast.IsDir, ast.IsFile, ast.IsLink:
		return evalIsPathPredicate(n, v, env), nil
	default:
		return value.EmptyValue, nil
	}
}

func negated(result, negate bool) value.Value {
	if negate {
		result = !result
	}
	return value.Boolean{B: result}
}

func evalIsPathPredicate(n *ast.IsExpr, v value.Value, env *Environment) value.Value {
	p, ok := v.(value.Path)
	if !ok {
		return value.EmptyValue
	}
	ctx := pathContext(env, p.P)
	var cv value.Value
	var got bool
	switch n.Kind {
	case ast.IsDir:
		cv, got = ctx.IsDir()
	case ast.IsFile:
		cv, got = ctx.IsFile()
	case ast.IsLink:
		cv, got = ctx.IsLink()
	}
	if !got {
		return value.EmptyValue
	}
	b, ok := cv.(value.Boolean)
	if !ok {
		return value.EmptyValue
	}
	return negated(b.B, n.Negate)
}
