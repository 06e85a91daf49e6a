// Package parser implements findit's Pratt parser: token stream (from
// pkg/findit/lexer) to expression tree (pkg/findit/ast). There is no error
// recovery — the first syntax error aborts compilation, per the language's
// ParseError contract.
package parser

import (
	"strconv"

	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/lexer"
)

// Precedence levels, low to high, matching the language's documented
// operator table.
const (
	LOWEST = iota
	ORPREC
	XORPREC
	ANDPREC
	COMPAREPREC // = == != <> < > <= >= MATCHES BETWEEN
	BITORPREC
	BITXORPREC
	BITANDPREC
	ADDPREC  // + -
	MULPREC  // * / %
	UNARYPREC // IS, AS <type>
	POSTFIXPREC // . OF ::
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:      ORPREC,
	lexer.XOR:     XORPREC,
	lexer.AND:     ANDPREC,
	lexer.ASSIGN:  COMPAREPREC,
	lexer.EQ:      COMPAREPREC,
	lexer.NOTEQ:   COMPAREPREC,
	lexer.LT:      COMPAREPREC,
	lexer.GT:      COMPAREPREC,
	lexer.LE:      COMPAREPREC,
	lexer.GE:      COMPAREPREC,
	lexer.MATCHES: COMPAREPREC,
	lexer.BETWEEN: COMPAREPREC,
	lexer.PIPE:    BITORPREC,
	lexer.CARET:   BITXORPREC,
	lexer.AMP:     BITANDPREC,
	lexer.PLUS:    ADDPREC,
	lexer.MINUS:   ADDPREC,
	lexer.STAR:    MULPREC,
	lexer.SLASH:   MULPREC,
	lexer.PERCENT: MULPREC,
	lexer.IS:      UNARYPREC,
	lexer.AS:      UNARYPREC,
	lexer.DOT:     POSTFIXPREC,
	lexer.OF:      POSTFIXPREC,
	lexer.DCOLON:  POSTFIXPREC,
}

// argKeyword marks the tokens that introduce a keyword-tagged call
// argument (replace/parse/format/execute/spawn) rather than separating
// positional arguments with a comma.
func isArgKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.FROM, lexer.TO, lexer.PATTERN, lexer.AS, lexer.INTO:
		return true
	default:
		return false
	}
}

func isTypeToken(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TYPE_NUMBER, lexer.TYPE_STRING, lexer.TYPE_BOOL, lexer.TYPE_DATE, lexer.TYPE_PATH:
		return true
	default:
		return false
	}
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser turns a token stream into an ast.Expression. It carries one extra
// token of lookahead beyond the usual cur/peek pair (peek2) so that AS can
// be disambiguated between a type cast (`x AS NUMBER`) and a call-argument
// keyword (`format(date AS fmt)`) without backtracking.
type Parser struct {
	l *lexer.Lexer

	cur   lexer.Token
	peek  lexer.Token
	peek2 lexer.Token

	err *errors.FindItError

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New constructs a Parser over source and primes its lookahead.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source)}
	p.cur = p.l.NextToken()
	p.peek = p.l.NextToken()
	p.peek2 = p.l.NextToken()

	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:   p.parseIdentifierOrCall,
		lexer.NUMBER:  p.parseNumberLiteral,
		lexer.STRING:  p.parseStringLiteral,
		lexer.TRUE:    p.parseBooleanLiteral,
		lexer.FALSE:   p.parseBooleanLiteral,
		lexer.PATHLIT: p.parsePathLiteral,
		lexer.DATELIT: p.parseDateLiteral,
		lexer.VARREF:  p.parseVarRef,
		lexer.LPAREN:  p.parseGroupedExpression,
		lexer.LBRACKET: p.parseListLiteral,
		lexer.LBRACE:  p.parseClassLiteral,
		lexer.NOT:     p.parsePrefixNot,
		lexer.SLASH:   p.parsePrefixSlash,
		lexer.IF:      p.parseIfExpression,
		lexer.CASE:    p.parseCaseExpression,
		lexer.WITH:    p.parseWithExpression,
		// `path` is both the PATH type keyword and a file property.
		lexer.TYPE_PATH: p.parseIdentifierOrCall,
		// A leading IS tests the current file: `IS DIR` is `me IS DIR`.
		lexer.IS: func() ast.Expression { return p.parseIs(ast.CurrentFile(p.cur)) },
	}

	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.AND:      p.parseBinary,
		lexer.OR:       p.parseBinary,
		lexer.XOR:      p.parseBinary,
		lexer.ASSIGN:   p.parseBinary,
		lexer.EQ:       p.parseBinary,
		lexer.NOTEQ:    p.parseBinary,
		lexer.LT:       p.parseBinary,
		lexer.GT:       p.parseBinary,
		lexer.LE:       p.parseBinary,
		lexer.GE:       p.parseBinary,
		lexer.MATCHES:  p.parseBinary,
		lexer.PIPE:     p.parseBinary,
		lexer.CARET:    p.parseBinary,
		lexer.AMP:      p.parseBinary,
		lexer.PLUS:     p.parseBinary,
		lexer.MINUS:    p.parseBinary,
		lexer.STAR:     p.parseBinary,
		lexer.SLASH:    p.parseBinary,
		lexer.PERCENT:  p.parseBinary,
		lexer.BETWEEN:  p.parseBetween,
		lexer.IS:       p.parseIs,
		lexer.AS:       p.parseCast,
		lexer.DOT:      p.parseMethodCall,
		lexer.OF:       p.parseOf,
		lexer.DCOLON:   p.parseClassAccess,
	}

	return p
}

// Parse compiles source into a single expression tree, or a *ParseError.
func Parse(source string) (ast.Expression, *errors.FindItError) {
	p := New(source)
	expr := p.parseExpression(LOWEST)
	if p.err == nil && p.cur.Type != lexer.EOF {
		// parseExpression leaves cur on the last consumed token; if the
		// next one isn't EOF there is unconsumed trailing input.
		if p.peek.Type != lexer.EOF {
			p.errorf(p.peek, "unexpected trailing input near %q", p.peek.Literal)
		} else {
			p.nextToken()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return expr, nil
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.peek2
	p.peek2 = p.l.NextToken()
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) {
	if p.err != nil {
		return // first error wins, no recovery
	}
	p.err = errors.ParseError(tok.Pos.Line, tok.Pos.Column, format, args...)
}

func (p *Parser) peekPrecedence() int {
	if p.peek.Type == lexer.AS && !isTypeToken(p.peek2.Type) {
		// Not a real cast (no type keyword follows) — most likely a
		// call-argument keyword such as `format(date AS fmt)`. Decline
		// to treat AS as an operator here so the caller (the generic
		// call-argument-list parser) can consume it as a separator.
		return LOWEST
	}
	prec, ok := precedences[p.peek.Type]
	if !ok {
		return LOWEST
	}
	return prec
}

func (p *Parser) curPrecedence() int {
	prec, ok := precedences[p.cur.Type]
	if !ok {
		return LOWEST
	}
	return prec
}

func (p *Parser) expectPeek(tt lexer.TokenType) bool {
	if p.peek.Type != tt {
		p.errorf(p.peek, "expected %s, found %s %q", tt, p.peek.Type, p.peek.Literal)
		return false
	}
	p.nextToken()
	return true
}

// parseExpression is the Pratt parser's core loop.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	if p.err != nil {
		return nil
	}
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.errorf(p.cur, "unexpected token %s %q", p.cur.Type, p.cur.Literal)
		return nil
	}
	left := prefix()

	for p.err == nil && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

// --- literals -------------------------------------------------------------

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.cur
	val, err := strconv.ParseUint(tok.Literal, 0, 64)
	if err != nil {
		p.errorf(tok, "invalid number literal %q", tok.Literal)
		return nil
	}
	return &ast.NumberLiteral{Token: tok, Value: val}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.cur, Value: p.cur.Type == lexer.TRUE}
}

func (p *Parser) parsePathLiteral() ast.Expression {
	return &ast.PathLiteral{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseDateLiteral() ast.Expression {
	return &ast.DateLiteral{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseVarRef() ast.Expression {
	return &ast.VarRef{Token: p.cur, Name: p.cur.Literal}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseListLiteral() ast.Expression {
	tok := p.cur
	var elements []ast.Expression
	if p.peek.Type == lexer.RBRACKET {
		p.nextToken()
		return &ast.ListLiteral{Token: tok, Elements: elements}
	}
	p.nextToken()
	elements = append(elements, p.parseExpression(LOWEST))
	for p.peek.Type == lexer.COMMA {
		p.nextToken()
		p.nextToken()
		elements = append(elements, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return &ast.ListLiteral{Token: tok, Elements: elements}
}

func (p *Parser) parseClassLiteral() ast.Expression {
	tok := p.cur
	var keys []string
	var vals []ast.Expression
	if p.peek.Type != lexer.RBRACE {
		for {
			if !p.expectPeek(lexer.FIELDKEY) {
				return nil
			}
			keys = append(keys, p.cur.Literal)
			p.nextToken()
			vals = append(vals, p.parseExpression(LOWEST))
			if p.peek.Type == lexer.COMMA {
				p.nextToken()
				continue
			}
			break
		}
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return &ast.ClassLiteral{Token: tok, Keys: keys, Values: vals}
}

// --- identifiers / calls ---------------------------------------------------

func (p *Parser) parseIdentifierOrCall() ast.Expression {
	tok := p.cur
	name := tok.Literal
	if name == "this" || name == "self" {
		name = "me"
	}
	if p.peek.Type == lexer.LPAREN {
		p.nextToken()
		args := p.parseArgList()
		return &ast.CallExpr{Token: tok, Name: name, Args: args}
	}
	return &ast.Identifier{Token: tok, Name: name}
}

// parseArgList parses a parenthesized argument list. It must be called
// with cur positioned on the opening LPAREN; it leaves cur on the closing
// RPAREN. Arguments may be separated by commas (ordinary positional calls)
// or introduced by a bare keyword (FROM/TO/PATTERN/AS/INTO, used by the
// replace/parse/format/execute/spawn builtins), and the two styles compose
// freely, e.g. `execute(path, arg1 INTO file)`.
func (p *Parser) parseArgList() []ast.CallArg {
	var args []ast.CallArg
	if p.peek.Type == lexer.RPAREN {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseCallArg())
	for p.err == nil {
		if p.peek.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			args = append(args, p.parseCallArg())
			continue
		}
		if isArgKeyword(p.peek.Type) {
			p.nextToken()
			args = append(args, p.parseCallArg())
			continue
		}
		break
	}
	if !p.expectPeek(lexer.RPAREN) {
		return args
	}
	return args
}

// parseCallArg parses one argument with cur positioned on its first token:
// either a lambda (`$name body`), a keyword-tagged clause, or a plain
// positional expression.
func (p *Parser) parseCallArg() ast.CallArg {
	if p.cur.Type == lexer.VARREF {
		tok := p.cur
		param := tok.Literal
		p.nextToken()
		body := p.parseExpression(LOWEST)
		return ast.CallArg{Keyword: lexer.ILLEGAL, Value: &ast.LambdaExpr{Token: tok, Param: param, Body: body}}
	}
	if isArgKeyword(p.cur.Type) {
		kw := p.cur.Type
		p.nextToken()
		val := p.parseExpression(LOWEST)
		return ast.CallArg{Keyword: kw, Value: val}
	}
	val := p.parseExpression(LOWEST)
	return ast.CallArg{Keyword: lexer.ILLEGAL, Value: val}
}

// parseOptionalArgs parses an optional call-argument list for a method
// name already consumed by the caller (after `.` or `OF`). Parentheses are
// optional when there are zero arguments.
func (p *Parser) parseOptionalArgs() ([]ast.CallArg, bool) {
	if p.peek.Type != lexer.LPAREN {
		return nil, false
	}
	p.nextToken()
	return p.parseArgList(), true
}

// --- prefix operators -------------------------------------------------------

func (p *Parser) parsePrefixNot() ast.Expression {
	tok := p.cur
	p.nextToken()
	operand := p.parseExpression(ANDPREC)
	return &ast.PrefixExpr{Token: tok, Op: lexer.NOT, Operand: operand}
}

// parsePrefixSlash desugars the unary `/ "child"` shorthand directly into
// `me / "child"`, reusing BinaryExpr's SLASH handling (numeric division vs.
// path-child is resolved by the evaluator from the left operand's type).
func (p *Parser) parsePrefixSlash() ast.Expression {
	tok := p.cur
	p.nextToken()
	child := p.parseExpression(UNARYPREC)
	return &ast.BinaryExpr{Token: tok, Op: lexer.SLASH, Left: ast.CurrentFile(tok), Right: child}
}

// --- binary operators -------------------------------------------------------

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.cur
	op := tok.Type
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Token: tok, Op: op, Left: left, Right: right}
}

func (p *Parser) parseBetween(left ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken()
	low := p.parseExpression(COMPAREPREC)
	if !p.expectPeek(lexer.AND) {
		return nil
	}
	p.nextToken()
	high := p.parseExpression(COMPAREPREC)
	return &ast.BetweenExpr{Token: tok, Value: left, Low: low, High: high}
}

func (p *Parser) parseIs(left ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken()
	negate := false
	if p.cur.Type == lexer.NOT {
		negate = true
		p.nextToken()
	}
	var kind ast.IsKind
	switch p.cur.Type {
	case lexer.TRUE:
		kind = ast.IsTrue
	case lexer.FALSE:
		kind = ast.IsFalse
	case lexer.SOME:
		kind = ast.IsSome
	case lexer.NONE:
		kind = ast.IsNone
	case lexer.KW_DIR:
		kind = ast.IsDir
	case lexer.KW_FILE:
		kind = ast.IsFile
	case lexer.KW_LINK:
		kind = ast.IsLink
	default:
		p.errorf(p.cur, "expected TRUE, FALSE, SOME, NONE, DIR, FILE, or LINK after IS, found %s %q", p.cur.Type, p.cur.Literal)
		return nil
	}
	return &ast.IsExpr{Token: tok, Value: left, Negate: negate, Kind: kind}
}

func (p *Parser) parseCast(left ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken()
	if !isTypeToken(p.cur.Type) {
		p.errorf(p.cur, "expected a type name after AS, found %s %q", p.cur.Type, p.cur.Literal)
		return nil
	}
	return &ast.CastExpr{Token: tok, Value: left, Target: p.cur.Type}
}

// --- postfix: method calls, OF, :: -----------------------------------------

func (p *Parser) parseMethodCall(left ast.Expression) ast.Expression {
	tok := p.cur
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.cur.Literal
	args, paren := p.parseOptionalArgs()
	return &ast.MethodCall{Token: tok, Receiver: left, Name: name, Args: args, Paren: paren}
}

// parseOf handles the `name OF receiver` dual of `receiver.name`. left must
// already have parsed as a bare method name: either an Identifier (no
// args) or a CallExpr (parenthesized args already collected).
func (p *Parser) parseOf(left ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken()
	receiver := p.parseExpression(UNARYPREC)
	switch v := left.(type) {
	case *ast.Identifier:
		return &ast.MethodCall{Token: tok, Receiver: receiver, Name: v.Name, Paren: false}
	case *ast.CallExpr:
		return &ast.MethodCall{Token: tok, Receiver: receiver, Name: v.Name, Args: v.Args, Paren: true}
	default:
		p.errorf(tok, "OF requires a method name on its left, found %s", left.String())
		return nil
	}
}

func (p *Parser) parseClassAccess(left ast.Expression) ast.Expression {
	tok := p.cur
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	return &ast.ClassAccess{Token: tok, Receiver: left, Field: p.cur.Literal}
}

// --- control-flow expressions ----------------------------------------------

func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.cur
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.THEN) {
		return nil
	}
	p.nextToken()
	then := p.parseExpression(LOWEST)
	var elseExpr ast.Expression
	if p.peek.Type == lexer.ELSE {
		p.nextToken()
		p.nextToken()
		elseExpr = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(lexer.END) {
		return nil
	}
	return &ast.IfExpr{Token: tok, Cond: cond, Then: then, Else: elseExpr}
}

func (p *Parser) parseCaseExpression() ast.Expression {
	tok := p.cur
	var clauses []ast.CaseClause
	for p.peek.Type == lexer.WHEN {
		p.nextToken()
		p.nextToken()
		cond := p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.THEN) {
			return nil
		}
		p.nextToken()
		result := p.parseExpression(LOWEST)
		clauses = append(clauses, ast.CaseClause{Cond: cond, Result: result})
	}
	if len(clauses) == 0 {
		p.errorf(p.peek, "CASE requires at least one WHEN clause")
		return nil
	}
	var elseExpr ast.Expression
	if p.peek.Type == lexer.ELSE {
		p.nextToken()
		p.nextToken()
		elseExpr = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(lexer.END) {
		return nil
	}
	return &ast.CaseExpr{Token: tok, Clauses: clauses, Else: elseExpr}
}

func (p *Parser) parseWithExpression() ast.Expression {
	tok := p.cur
	var bindings []ast.WithBinding
	for {
		if !p.expectPeek(lexer.VARREF) {
			return nil
		}
		name := p.cur.Literal
		if p.peek.Type == lexer.AS {
			p.nextToken()
		}
		p.nextToken()
		val := p.parseExpression(LOWEST)
		bindings = append(bindings, ast.WithBinding{Name: name, Value: val})
		if p.peek.Type == lexer.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(lexer.DO) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.END) {
		return nil
	}
	return &ast.WithExpr{Token: tok, Bindings: bindings, Body: body}
}
