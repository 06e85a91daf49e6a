package evaluator

import (
	"time"

	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/lexer"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// evalCast implements `value AS <type>` (spec.md §4.3): every cast is
// total, yielding Empty when undefined for the operand's variant.
func evalCast(n *ast.CastExpr, env *Environment) (value.Value, *errors.FindItError) {
	v, err := Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	return castTo(v, n.Target, env), nil
}

func castTo(v value.Value, target lexer.TokenType, env *Environment) value.Value {
	switch target {
	case lexer.TYPE_STRING:
		return value.String{S: value.AsString(v, dateFormatForDisplay)}
	case lexer.TYPE_NUMBER:
		if value.IsEmpty(v) {
			return value.EmptyValue
		}
		n, ok := value.AsNumber(v)
		if !ok {
			return value.EmptyValue
		}
		return value.Number{N: n}
	case lexer.TYPE_BOOL:
		if value.IsEmpty(v) {
			return value.EmptyValue
		}
		b, ok := value.AsBoolean(v)
		if !ok {
			return value.EmptyValue
		}
		return value.Boolean{B: b}
	case lexer.TYPE_PATH:
		if value.IsEmpty(v) {
			return value.EmptyValue
		}
		p, ok := value.AsPath(v)
		if !ok {
			return value.EmptyValue
		}
		return value.Path{P: p}
	case lexer.TYPE_DATE:
		return castToDate(v, env)
	default:
		return value.EmptyValue
	}
}

// castToDate implements `AS DATE`, including the resolution of the open
// question on Path receivers: "AS DATE on a Path ... timestamp in which
// the file was last accessed" (spec.md §9 open question 1) routes through
// FileContext.Accessed().
func castToDate(v value.Value, env *Environment) value.Value {
	switch x := v.(type) {
	case value.Date:
		return x
	case value.Path:
		accessed, ok := pathContext(env, x.P).Accessed()
		if !ok {
			return value.EmptyValue
		}
		return accessed
	case value.Number:
		return value.Date{T: time.Unix(int64(x.N), 0).UTC()}
	case value.String:
		t, ok := parseFlexibleDate(x.S)
		if !ok {
			return value.EmptyValue
		}
		return value.Date{T: t}
	default:
		return value.EmptyValue
	}
}
