// Package ast defines the expression tree produced by pkg/findit/parser and
// consumed by pkg/findit/evaluator. findit compiles a single expression, not
// a list of statements, so the tree always has one root Expression.
package ast

import (
	"strings"

	"github.com/findit-cli/findit/pkg/findit/lexer"
)

// Node is implemented by every tree element.
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression is a Node that yields a Value when evaluated. Every findit
// node is an Expression; there are no statements.
type Expression interface {
	Node
	expressionNode()
}

// NumberLiteral is a u64 literal (decimal, hex, octal, or binary source form).
type NumberLiteral struct {
	Token lexer.Token
	Value uint64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a double-quoted string literal, already escape-decoded.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) String() string       { return `"` + s.Value + `"` }

// BooleanLiteral is the TRUE/FALSE keyword used as a value.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// PathLiteral is an @bareword or @"quoted" literal.
type PathLiteral struct {
	Token lexer.Token
	Value string
}

func (p *PathLiteral) expressionNode()      {}
func (p *PathLiteral) TokenLiteral() string { return p.Token.Literal }
func (p *PathLiteral) String() string       { return "@" + p.Value }

// DateLiteral is an @(...) literal; Value holds the raw inner text, parsed
// into a time.Time by the evaluator (keeping ast free of time-parsing
// policy, which lives with the rest of date handling).
type DateLiteral struct {
	Token lexer.Token
	Value string
}

func (d *DateLiteral) expressionNode()      {}
func (d *DateLiteral) TokenLiteral() string { return d.Token.Literal }
func (d *DateLiteral) String() string       { return "@(" + d.Value + ")" }

// Identifier is a bare name: a property shortcut on the current file, a
// free function name about to be called, or me/this/self.
type Identifier struct {
	Token lexer.Token
	Name  string // canonicalized
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Name }

// VarRef is a $name reference to a WITH binding or lambda parameter.
type VarRef struct {
	Token lexer.Token
	Name  string
}

func (v *VarRef) expressionNode()      {}
func (v *VarRef) TokenLiteral() string { return v.Token.Literal }
func (v *VarRef) String() string       { return "$" + v.Name }

// ListLiteral is [e1, e2, ...].
type ListLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (l *ListLiteral) expressionNode()      {}
func (l *ListLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ClassLiteral is {:k1 v1, :k2 v2, ...}; Keys and Values are parallel and
// order-preserving, per the Class variant's "ordered mapping" contract.
type ClassLiteral struct {
	Token  lexer.Token
	Keys   []string
	Values []Expression
}

func (c *ClassLiteral) expressionNode()      {}
func (c *ClassLiteral) TokenLiteral() string { return c.Token.Literal }
func (c *ClassLiteral) String() string {
	parts := make([]string, len(c.Keys))
	for i, k := range c.Keys {
		parts[i] = ":" + k + " " + c.Values[i].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ClassAccess is receiver::field.
type ClassAccess struct {
	Token    lexer.Token // the :: token
	Receiver Expression
	Field    string
}

func (c *ClassAccess) expressionNode()      {}
func (c *ClassAccess) TokenLiteral() string { return c.Token.Literal }
func (c *ClassAccess) String() string       { return c.Receiver.String() + "::" + c.Field }

// BinaryExpr is a left-right operator application. Op is the lexer token
// type of the operator (AND, OR, XOR, comparison, bitwise, +-*/%, or SLASH
// doing double duty as numeric division / path-child depending on the
// runtime type of Left).
type BinaryExpr struct {
	Token lexer.Token
	Op    lexer.TokenType
	Left  Expression
	Right Expression
}

func (b *BinaryExpr) expressionNode()      {}
func (b *BinaryExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + strings.ToUpper(b.Token.Literal) + " " + b.Right.String() + ")"
}

// PrefixExpr is `NOT operand`. The unary-prefix `/ "child"` shorthand is
// desugared by the parser directly into a BinaryExpr (`me / "child"`)
// rather than represented here.
type PrefixExpr struct {
	Token   lexer.Token
	Op      lexer.TokenType
	Operand Expression
}

func (p *PrefixExpr) expressionNode()      {}
func (p *PrefixExpr) TokenLiteral() string { return p.Token.Literal }
func (p *PrefixExpr) String() string {
	return "(" + strings.ToUpper(p.Token.Literal) + " " + p.Operand.String() + ")"
}

// CastExpr is `value AS <type>`.
type CastExpr struct {
	Token  lexer.Token // AS
	Value  Expression
	Target lexer.TokenType // one of the TYPE_* tokens
}

func (c *CastExpr) expressionNode()      {}
func (c *CastExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CastExpr) String() string       { return c.Value.String() + " AS " + c.Target.String() }

// IsKind enumerates the predicate forms recognized after IS/IS NOT.
type IsKind int

const (
	IsTrue IsKind = iota
	IsFalse
	IsSome
	IsNone
	IsDir
	IsFile
	IsLink
)

func (k IsKind) String() string {
	switch k {
	case IsTrue:
		return "TRUE"
	case IsFalse:
		return "FALSE"
	case IsSome:
		return "SOME"
	case IsNone:
		return "NONE"
	case IsDir:
		return "DIR"
	case IsFile:
		return "FILE"
	case IsLink:
		return "LINK"
	default:
		return "?"
	}
}

// IsExpr is `value IS [NOT] TRUE|FALSE|SOME|NONE|DIR|FILE|LINK`.
type IsExpr struct {
	Token  lexer.Token // IS
	Value  Expression
	Negate bool
	Kind   IsKind
}

func (e *IsExpr) expressionNode()      {}
func (e *IsExpr) TokenLiteral() string { return e.Token.Literal }
func (e *IsExpr) String() string {
	not := ""
	if e.Negate {
		not = "NOT "
	}
	return e.Value.String() + " IS " + not + e.Kind.String()
}

// BetweenExpr is `value BETWEEN low AND high`.
type BetweenExpr struct {
	Token lexer.Token // BETWEEN
	Value Expression
	Low   Expression
	High  Expression
}

func (b *BetweenExpr) expressionNode()      {}
func (b *BetweenExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BetweenExpr) String() string {
	return b.Value.String() + " BETWEEN " + b.Low.String() + " AND " + b.High.String()
}

// IfExpr is `IF cond THEN then [ELSE else] END`. Else is nil when absent,
// in which case an unmet condition evaluates to Empty.
type IfExpr struct {
	Token lexer.Token // IF
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (i *IfExpr) expressionNode()      {}
func (i *IfExpr) TokenLiteral() string { return i.Token.Literal }
func (i *IfExpr) String() string {
	var sb strings.Builder
	sb.WriteString("IF ")
	sb.WriteString(i.Cond.String())
	sb.WriteString(" THEN ")
	sb.WriteString(i.Then.String())
	if i.Else != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(i.Else.String())
	}
	sb.WriteString(" END")
	return sb.String()
}

// CaseClause is one WHEN cond THEN result arm of a CaseExpr.
type CaseClause struct {
	Cond   Expression
	Result Expression
}

// CaseExpr is `CASE WHEN c1 THEN v1 [WHEN c2 THEN v2 ...] [ELSE vd] END`.
type CaseExpr struct {
	Token   lexer.Token // CASE
	Clauses []CaseClause
	Else    Expression // nil when absent
}

func (c *CaseExpr) expressionNode()      {}
func (c *CaseExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CaseExpr) String() string {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, cl := range c.Clauses {
		sb.WriteString(" WHEN ")
		sb.WriteString(cl.Cond.String())
		sb.WriteString(" THEN ")
		sb.WriteString(cl.Result.String())
	}
	if c.Else != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(c.Else.String())
	}
	sb.WriteString(" END")
	return sb.String()
}

// WithBinding is one `$name [AS] value` clause of a WithExpr. Later
// bindings and the body see earlier bindings; the AS keyword is optional
// sugar dropped at parse time.
type WithBinding struct {
	Name  string
	Value Expression
}

// WithExpr is `WITH $v1 [AS] e1, $v2 [AS] e2, ... DO body END`. Each
// binding is memoized on first reference (see evaluator.Environment).
type WithExpr struct {
	Token    lexer.Token // WITH
	Bindings []WithBinding
	Body     Expression
}

func (w *WithExpr) expressionNode()      {}
func (w *WithExpr) TokenLiteral() string { return w.Token.Literal }
func (w *WithExpr) String() string {
	var sb strings.Builder
	sb.WriteString("WITH ")
	for i, b := range w.Bindings {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("$" + b.Name + " AS " + b.Value.String())
	}
	sb.WriteString(" DO ")
	sb.WriteString(w.Body.String())
	sb.WriteString(" END")
	return sb.String()
}

// LambdaExpr is a `$name body` argument passed to a higher-order method
// (map, filter, sortBy, ...). Arity is always one, per the language's
// design: lambdas exist only as arguments to built-in higher-order methods.
type LambdaExpr struct {
	Token lexer.Token // the $name VARREF token
	Param string
	Body  Expression
}

func (l *LambdaExpr) expressionNode()      {}
func (l *LambdaExpr) TokenLiteral() string { return l.Token.Literal }
func (l *LambdaExpr) String() string       { return "$" + l.Param + " " + l.Body.String() }

// CallArg is one argument in a call's argument list. Keyword is zero
// (lexer.ILLEGAL) for an ordinary positional argument, or one of
// FROM/TO/PATTERN/AS/INTO for the keyword-introduced clauses used by the
// replace/parse/format/execute/spawn builtins (e.g. `replace(src FROM a TO
// b)`, `execute(path, arg INTO file)`).
type CallArg struct {
	Keyword lexer.TokenType
	Value   Expression
}

func (a CallArg) String() string {
	if a.Keyword == lexer.ILLEGAL {
		return a.Value.String()
	}
	return a.Keyword.String() + " " + a.Value.String()
}

// CallExpr is a parenthesized call written without an explicit receiver:
// `name(args...)`. The evaluator resolves Name against the free-function
// table first (now, rand, env, coalesce, replace, format, parse, execOut,
// execute, spawn); any other name, debug included, falls back to the
// bare-identifier property-or-zero-arg-method rule against the current file.
type CallExpr struct {
	Token lexer.Token // the function-name IDENT token
	Name  string
	Args  []CallArg
}

func (c *CallExpr) expressionNode()      {}
func (c *CallExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// MethodCall is `receiver.name(args...)` or, via the OF dual, `name OF
// receiver` (rewritten by the parser into this same shape). Paren records
// whether the call site wrote parentheses; it carries no semantic weight
// since `me.lines.length` and `me.lines().length()` are equivalent, but is
// kept for source-faithful reporting (errors, `findit try` echo).
type MethodCall struct {
	Token    lexer.Token // the . or OF token
	Receiver Expression
	Name     string
	Args     []CallArg
	Paren    bool
}

func (m *MethodCall) expressionNode()      {}
func (m *MethodCall) TokenLiteral() string { return m.Token.Literal }
func (m *MethodCall) String() string {
	if len(m.Args) == 0 {
		return m.Receiver.String() + "." + m.Name
	}
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = a.String()
	}
	return m.Receiver.String() + "." + m.Name + "(" + strings.Join(parts, ", ") + ")"
}

// CurrentFile builds the implicit current-file reference used both for a
// bare `me`/`this`/`self` identifier and for desugaring the unary-prefix
// `/ "child"` shorthand into `me / "child"`.
func CurrentFile(tok lexer.Token) *Identifier {
	return &Identifier{Token: tok, Name: "me"}
}
