// Package evaluator tree-walks a compiled expression against an
// Environment, producing a value.Value or a narrow RuntimeError (spec.md
// §4.4, §7). Every other failure mode is absorbed into value.EmptyValue.
package evaluator

import (
	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/lexer"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// Eval walks node against env. Errors are returned only for the three
// RuntimeError cases the language defines; everything else surfaces as
// value.EmptyValue.
func Eval(node ast.Node, env *Environment) (value.Value, *errors.FindItError) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return value.Number{N: n.Value}, nil
	case *ast.StringLiteral:
		return value.String{S: n.Value}, nil
	case *ast.BooleanLiteral:
		return value.Boolean{B: n.Value}, nil
	case *ast.PathLiteral:
		return value.Path{P: n.Value}, nil
	case *ast.DateLiteral:
		return evalDateLiteral(n), nil
	case *ast.Identifier:
		return evalIdentifier(n, env)
	case *ast.VarRef:
		v, err, ok := env.Lookup(n.Name)
		if !ok {
			return value.EmptyValue, nil
		}
		return v, err
	case *ast.ListLiteral:
		return evalListLiteral(n, env)
	case *ast.ClassLiteral:
		return evalClassLiteral(n, env)
	case *ast.ClassAccess:
		return evalClassAccess(n, env)
	case *ast.BinaryExpr:
		return evalBinary(n, env)
	case *ast.PrefixExpr:
		return evalPrefix(n, env)
	case *ast.CastExpr:
		return evalCast(n, env)
	case *ast.IsExpr:
		return evalIs(n, env)
	case *ast.BetweenExpr:
		return evalBetween(n, env)
	case *ast.IfExpr:
		return evalIf(n, env)
	case *ast.CaseExpr:
		return evalCase(n, env)
	case *ast.WithExpr:
		return evalWith(n, env)
	case *ast.CallExpr:
		return evalCallExpr(n, env)
	case *ast.MethodCall:
		return evalMethodCall(n, env)
	case *ast.LambdaExpr:
		// Lambdas are only ever applied from a higher-order method's
		// argument position (applyLambda); reaching one here means it was
		// used as a bare value, which has no defined meaning.
		return value.EmptyValue, nil
	default:
		return value.EmptyValue, nil
	}
}

func evalListLiteral(n *ast.ListLiteral, env *Environment) (value.Value, *errors.FindItError) {
	items := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := Eval(el, env)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return value.List{Items: items}, nil
}

func evalClassLiteral(n *ast.ClassLiteral, env *Environment) (value.Value, *errors.FindItError) {
	vals := make([]value.Value, len(n.Values))
	for i, ve := range n.Values {
		v, err := Eval(ve, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return value.NewClass(n.Keys, vals), nil
}

func evalClassAccess(n *ast.ClassAccess, env *Environment) (value.Value, *errors.FindItError) {
	recv, err := Eval(n.Receiver, env)
	if err != nil {
		return nil, err
	}
	c, ok := recv.(value.Class)
	if !ok {
		return value.EmptyValue, nil
	}
	v, found := c.Get(n.Field)
	if !found {
		return value.EmptyValue, nil
	}
	return v, nil
}

// evalIdentifier implements the "bare identifier resolves first as a
// property shortcut" rule (spec.md §4.2): `me`/`this`/`self` (already
// canonicalized to "me" by the parser) yields the current file as a Path
// value; every other bare name is treated identically to an explicit
// `me.<name>` method call, so there is only one dispatch path to maintain.
func evalIdentifier(n *ast.Identifier, env *Environment) (value.Value, *errors.FindItError) {
	if n.Name == "me" {
		return value.Path{P: env.CurrentFile().Path()}, nil
	}
	return evalMethodCall(&ast.MethodCall{
		Token:    n.Token,
		Receiver: ast.CurrentFile(n.Token),
		Name:     n.Name,
	}, env)
}

// evalCallExpr implements CallExpr's free-function-first, then
// property-shortcut fallback (ast.CallExpr's doc comment).
func evalCallExpr(n *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	if fn, ok := freeFunctions[n.Name]; ok {
		return fn(n, env)
	}
	return evalMethodCall(&ast.MethodCall{
		Token:    n.Token,
		Receiver: ast.CurrentFile(n.Token),
		Name:     n.Name,
		Args:     n.Args,
		Paren:    true,
	}, env)
}

// evalMethodCall dispatches a.b(args) by the runtime Kind of the evaluated
// receiver. debug is special-cased ahead of the Empty short-circuit: it is
// the one method that still runs, and still returns a value, when its
// target is Empty (spec.md §4.4).
func evalMethodCall(n *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	if n.Name == "debug" {
		return evalDebug(n, env)
	}
	recv, err := Eval(n.Receiver, env)
	if err != nil {
		return nil, err
	}
	if value.IsEmpty(recv) {
		return value.EmptyValue, nil
	}
	switch recv.Kind() {
	case value.KindString:
		args, err := evalArgs(n.Args, env)
		if err != nil {
			return nil, err
		}
		v, handled := dispatchFromRegistry(stringMethods, recv, n.Name, args, env)
		if !handled {
			return value.EmptyValue, nil
		}
		return v, nil
	case value.KindPath:
		return dispatchPathMethod(recv.(value.Path), n, env)
	case value.KindList:
		return dispatchListMethod(recv.(value.List), n, env)
	default:
		return value.EmptyValue, nil
	}
}

func evalArgs(args []ast.CallArg, env *Environment) ([]value.Value, *errors.FindItError) {
	out := make([]value.Value, len(args))
	for i, a := range args {
		v, err := Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// evalDebug implements `debug($x body)`: evaluate body with $x bound to
// the method target and append its AS STRING form to the debug sink (if
// one is configured), then always return the target unchanged.
func evalDebug(n *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	recv, err := Eval(n.Receiver, env)
	if err != nil {
		return nil, err
	}
	if len(n.Args) == 1 {
		if lambda, ok := n.Args[0].Value.(*ast.LambdaExpr); ok {
			if sink := env.CurrentFile().DebugSink(); sink != nil {
				bodyEnv := env.PushValue(lambda.Param, recv)
				if result, berr := Eval(lambda.Body, bodyEnv); berr == nil {
					sink.LogLine(value.AsString(result, dateFormatForDisplay))
				}
			}
		}
	}
	return recv, nil
}

func evalBinary(n *ast.BinaryExpr, env *Environment) (value.Value, *errors.FindItError) {
	switch n.Op {
	case lexer.AND:
		return evalAnd(n, env)
	case lexer.OR:
		return evalOr(n, env)
	}

	leftVal, err := Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	rightVal, err := Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case lexer.XOR:
		return value.Xor(normalizeBool(leftVal), normalizeBool(rightVal)), nil
	case lexer.EQ, lexer.ASSIGN:
		return evalEquality(leftVal, rightVal, false), nil
	case lexer.NOTEQ:
		return evalEquality(leftVal, rightVal, true), nil
	case lexer.LT, lexer.GT, lexer.LE, lexer.GE:
		return evalOrderingCompare(n.Op, leftVal, rightVal), nil
	case lexer.MATCHES:
		return evalMatches(leftVal, rightVal), nil
	case lexer.PLUS:
		return evalPlus(leftVal, rightVal), nil
	case lexer.MINUS:
		return numericBinary(leftVal, rightVal, value.SubNumbers), nil
	case lexer.STAR:
		return evalStar(leftVal, rightVal), nil
	case lexer.SLASH:
		return evalSlash(leftVal, rightVal, env), nil
	case lexer.PERCENT:
		return numericBinary(leftVal, rightVal, value.ModNumbers), nil
	case lexer.PIPE:
		return numericBinary(leftVal, rightVal, func(a, b uint64) (uint64, bool) { return a | b, true }), nil
	case lexer.CARET:
		return numericBinary(leftVal, rightVal, func(a, b uint64) (uint64, bool) { return a ^ b, true }), nil
	case lexer.AMP:
		return numericBinary(leftVal, rightVal, func(a, b uint64) (uint64, bool) { return a & b, true }), nil
	default:
		return value.EmptyValue, nil
	}
}

func evalEquality(left, right value.Value, negate bool) value.Value {
	eq, ok := value.Equal(left, right)
	if !ok {
		return value.EmptyValue
	}
	if negate {
		eq = !eq
	}
	return value.Boolean{B: eq}
}

func evalOrderingCompare(op lexer.TokenType, left, right value.Value) value.Value {
	cmp, ok := value.Compare(left, right)
	if !ok {
		return value.EmptyValue
	}
	var result bool
	switch op {
	case lexer.LT:
		result = cmp < 0
	case lexer.GT:
		result = cmp > 0
	case lexer.LE:
		result = cmp <= 0
	case lexer.GE:
		result = cmp >= 0
	}
	return value.Boolean{B: result}
}

// evalPlus implements number+number and the documented string+string
// concatenation (spec.md §4.3); any other pairing yields Empty.
func evalPlus(left, right value.Value) value.Value {
	if value.IsEmpty(left) || value.IsEmpty(right) {
		return value.EmptyValue
	}
	if ls, ok := left.(value.String); ok {
		if rs, ok := right.(value.String); ok {
			return value.String{S: ls.S + rs.S}
		}
		return value.EmptyValue
	}
	return numericBinary(left, right, func(a, b uint64) (uint64, bool) { return value.AddNumbers(a, b), true })
}

// evalStar implements number*number and the documented string*number
// repeat (spec.md §4.3).
func evalStar(left, right value.Value) value.Value {
	if value.IsEmpty(left) || value.IsEmpty(right) {
		return value.EmptyValue
	}
	if ls, ok := left.(value.String); ok {
		if rn, ok := right.(value.Number); ok {
			return value.String{S: repeatString(ls.S, rn.N)}
		}
		return value.EmptyValue
	}
	return numericBinary(left, right, func(a, b uint64) (uint64, bool) { return a * b, true })
}

func repeatString(s string, n uint64) string {
	const maxRepeat = 1 << 20 // guard against pathological expansion
	if n > maxRepeat {
		n = maxRepeat
	}
	out := make([]byte, 0, len(s)*int(n))
	for i := uint64(0); i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func numericBinary(left, right value.Value, apply func(a, b uint64) (uint64, bool)) value.Value {
	if value.IsEmpty(left) || value.IsEmpty(right) {
		return value.EmptyValue
	}
	ln, ok := left.(value.Number)
	if !ok {
		return value.EmptyValue
	}
	rn, ok := right.(value.Number)
	if !ok {
		return value.EmptyValue
	}
	result, ok := apply(ln.N, rn.N)
	if !ok {
		return value.EmptyValue
	}
	return value.Number{N: result}
}

// evalSlash implements number/number division and the Path-child operator
// (spec.md §4.3: "Path / string produces a sub-path"); the parser
// desugars the unary-prefix `/ "c"` shorthand into `me / "c"`, so a Path
// left operand is the common case here, not a special one.
func evalSlash(left, right value.Value, env *Environment) value.Value {
	if value.IsEmpty(left) || value.IsEmpty(right) {
		return value.EmptyValue
	}
	switch lv := left.(type) {
	case value.Path:
		child := value.AsString(right, dateFormatForDisplay)
		return value.Path{P: pathContext(env, lv.P).Child(child).Path()}
	case value.Number:
		rn, ok := right.(value.Number)
		if !ok {
			return value.EmptyValue
		}
		n, ok := value.DivNumbers(lv.N, rn.N)
		if !ok {
			return value.EmptyValue
		}
		return value.Number{N: n}
	default:
		return value.EmptyValue
	}
}

func evalMatches(left, right value.Value) value.Value {
	if value.IsEmpty(left) || value.IsEmpty(right) {
		return value.EmptyValue
	}
	ls, ok := left.(value.String)
	if !ok {
		return value.EmptyValue
	}
	rs, ok := right.(value.String)
	if !ok {
		return value.EmptyValue
	}
	re := getCachedRegex(rs.S)
	if re == nil {
		return value.EmptyValue
	}
	return value.Boolean{B: re.MatchString(ls.S)}
}

func evalPrefix(n *ast.PrefixExpr, env *Environment) (value.Value, *errors.FindItError) {
	operand, err := Eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	return value.Not(normalizeBool(operand)), nil
}

// evalBetween implements `value BETWEEN low AND high`; non-orderable
// non-Empty bounds raise the one BETWEEN-specific RuntimeError spec.md §7
// names (case (c)).
func evalBetween(n *ast.BetweenExpr, env *Environment) (value.Value, *errors.FindItError) {
	v, err := Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	low, err := Eval(n.Low, env)
	if err != nil {
		return nil, err
	}
	high, err := Eval(n.High, env)
	if err != nil {
		return nil, err
	}
	if value.IsEmpty(v) || value.IsEmpty(low) || value.IsEmpty(high) {
		return value.EmptyValue, nil
	}
	cmpLow, okLow := value.Compare(v, low)
	cmpHigh, okHigh := value.Compare(v, high)
	if !okLow || !okHigh {
		pos := n.Token.Pos
		return nil, errors.RuntimeError(pos.Line, pos.Column, "BETWEEN requires orderable operands")
	}
	return value.Boolean{B: cmpLow >= 0 && cmpHigh <= 0}, nil
}
