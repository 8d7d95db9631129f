// Package parser implements the Keikaku parser using Pratt parsing for
// expressions, with statement bodies driven by the lexer's INDENT/DEDENT
// tokens instead of a begin/end keyword pair.
package parser

import (
	"fmt"

	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/lexer"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// Precedence levels, lowest to highest, per the binary-operator subset of
// the grammar (ternary, unary not/-, and ** are handled outside this table).
const (
	_ int = iota
	LOWEST
	OR
	AND
	COMPARISON
	ADDITIVE
	MULTIPLICATIVE
	POWER
)

var precedences = map[token.Kind]int{
	token.OR:      OR,
	token.AND:     AND,
	token.EQ:      COMPARISON,
	token.NEQ:     COMPARISON,
	token.LT:      COMPARISON,
	token.LE:      COMPARISON,
	token.GT:      COMPARISON,
	token.GE:      COMPARISON,
	token.PLUS:    ADDITIVE,
	token.MINUS:   ADDITIVE,
	token.STAR:    MULTIPLICATIVE,
	token.SLASH:   MULTIPLICATIVE,
	token.DSLASH:  MULTIPLICATIVE,
	token.PERCENT: MULTIPLICATIVE,
	token.DSTAR:   POWER,
}

// ParseError records a syntax failure with its source position.
type ParseError struct {
	Msg string
	Pos token.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	l    *lexer.Lexer
	cur  token.Token
	peek token.Token

	errors []ParseError
}

// New creates a Parser over the given Lexer, primed with two tokens of
// lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	p.advance()
	return p
}

// Errors returns accumulated parse errors.
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.errors = append(p.errors, ParseError{Msg: fmt.Sprintf(format, args...), Pos: pos})
}

// expect advances past the current token if it matches k, recording an
// error and leaving the cursor in place otherwise.
func (p *Parser) expect(k token.Kind) bool {
	if p.curIs(k) {
		p.advance()
		return true
	}
	p.errorf(p.cur.Pos, "expected %s, got %s (%q)", k, p.cur.Kind, p.cur.Literal)
	return false
}

// skipNewlines consumes zero or more NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.advance()
	}
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}
	return prog
}

// parseBlock expects the current token to be COLON and returns the body
// that follows it. Three shapes are accepted: a purely indented block, a
// single logical line of semicolon-separated statements, and a same-line
// leading statement followed by a further-indented continuation (entity
// bodies do this: the first member is declared inline after the colon,
// later members follow on their own indented lines).
func (p *Parser) parseBlock() *ast.Block {
	tok := p.cur
	p.expect(token.COLON)

	block := &ast.Block{Tok: tok}

	if p.curIs(token.NEWLINE) {
		p.advance()
		p.skipNewlines()
		if !p.expect(token.INDENT) {
			return block
		}
		for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
			if stmt := p.parseStatement(); stmt != nil {
				block.Stmts = append(block.Stmts, stmt)
			}
			p.skipNewlines()
		}
		p.expect(token.DEDENT)
		return block
	}

	for {
		if stmt := p.parseStatement(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.curIs(token.SEMICOLON) {
			p.advance()
			continue
		}
		break
	}
	if p.curIs(token.NEWLINE) {
		p.advance()
		p.skipNewlines()
		if p.curIs(token.INDENT) {
			p.advance()
			for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
				if stmt := p.parseStatement(); stmt != nil {
					block.Stmts = append(block.Stmts, stmt)
				}
				p.skipNewlines()
			}
			p.expect(token.DEDENT)
		}
	}
	return block
}

// parseIdentOrPattern parses either a bare identifier or a `[a, b]`
// destructuring pattern, used for designate targets and loop variables.
func (p *Parser) parseIdentOrPattern() ast.Expression {
	if p.curIs(token.LBRACKET) {
		tok := p.cur
		p.advance()
		pat := &ast.ListPattern{Tok: tok}
		for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
			pat.Elements = append(pat.Elements, p.parseIdentOrPattern())
			if p.curIs(token.COMMA) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(token.RBRACKET)
		return pat
	}
	tok := p.cur
	name := p.cur.Literal
	p.expect(token.IDENT)
	return &ast.Identifier{Tok: tok, Value: name}
}

// parseArgs parses a parenthesized, comma-separated argument list; LPAREN
// must be the current token on entry.
func (p *Parser) parseArgs() []ast.Expression {
	var args []ast.Expression
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpression())
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return args
}

// parseParams parses a function/lambda parameter list; LPAREN must be the
// current token on entry.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		var param ast.Param
		if p.curIs(token.ELLIPSIS) {
			param.IsRest = true
			p.advance()
		}
		param.Pattern = p.parseIdentOrPattern()
		if p.curIs(token.ASSIGN) {
			p.advance()
			param.Default = p.parseExpression()
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

// ---- Expressions ----

// parseExpression parses a full expression, including the ternary form.
func (p *Parser) parseExpression() ast.Expression {
	expr := p.parseBinary(OR)
	if expr != nil && p.curIs(token.FORESEE) {
		tok := p.cur
		p.advance()
		cond := p.parseBinary(OR)
		p.expect(token.OTHERWISE)
		falseExpr := p.parseExpression()
		return &ast.TernaryExpression{Tok: tok, Condition: cond, TrueExpr: expr, FalseExpr: falseExpr}
	}
	return expr
}

func (p *Parser) parseBinary(minPrec int) ast.Expression {
	left := p.parseUnary()
	for left != nil {
		prec, ok := precedences[p.cur.Kind]
		if !ok || prec < minPrec {
			break
		}
		opTok := p.cur
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpression{Tok: opTok, Op: opTok.Literal, Left: left, Right: right}
	}
	return left
}

// parseUnary handles the prefix operators `not` and `-`, which sit between
// `and`/comparisons and power respectively in the precedence table.
func (p *Parser) parseUnary() ast.Expression {
	if p.curIs(token.NOT) {
		tok := p.cur
		p.advance()
		operand := p.parseBinary(COMPARISON)
		return &ast.UnaryExpression{Tok: tok, Op: "not", Operand: operand}
	}
	return p.parseExpoUnary()
}

// parseExpoUnary handles unary minus (which binds tighter than * / but
// looser than **) and feeds into the right-associative power parser.
func (p *Parser) parseExpoUnary() ast.Expression {
	if p.curIs(token.MINUS) {
		tok := p.cur
		p.advance()
		return &ast.UnaryExpression{Tok: tok, Op: "-", Operand: p.parseExpoUnary()}
	}
	return p.parsePower()
}

func (p *Parser) parsePower() ast.Expression {
	base := p.parsePostfix()
	if base != nil && p.curIs(token.DSTAR) {
		tok := p.cur
		p.advance()
		exp := p.parseExpoUnary()
		return &ast.BinaryExpression{Tok: tok, Op: "**", Left: base, Right: exp}
	}
	return base
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for expr != nil {
		switch p.cur.Kind {
		case token.DOT:
			p.advance()
			nameTok := p.cur
			name := p.cur.Literal
			p.expect(token.IDENT)
			if p.curIs(token.LPAREN) {
				args := p.parseArgs()
				expr = &ast.MethodCallExpression{Tok: nameTok, Receiver: expr, Method: name, Args: args}
			} else {
				expr = &ast.MemberExpression{Tok: nameTok, Object: expr, Name: name}
			}
		case token.LPAREN:
			ident, ok := expr.(*ast.Identifier)
			if !ok {
				p.errorf(p.cur.Pos, "call target must be a name")
				return expr
			}
			tok := p.cur
			args := p.parseArgs()
			expr = &ast.CallExpression{Tok: tok, Callee: ident, Args: args}
		case token.LBRACKET:
			expr = p.parseIndexOrSlice(expr)
		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parseIndexOrSlice(obj ast.Expression) ast.Expression {
	tok := p.cur
	p.advance() // consume [

	var start, end, step ast.Expression
	isSlice := false

	if !p.curIs(token.COLON) && !p.curIs(token.RBRACKET) {
		start = p.parseExpression()
	}
	if p.curIs(token.COLON) {
		isSlice = true
		p.advance()
		if !p.curIs(token.COLON) && !p.curIs(token.RBRACKET) {
			end = p.parseExpression()
		}
		if p.curIs(token.COLON) {
			p.advance()
			if !p.curIs(token.RBRACKET) {
				step = p.parseExpression()
			}
		}
	}
	p.expect(token.RBRACKET)

	if isSlice {
		return &ast.SliceExpression{Tok: tok, Object: obj, Start: start, End: end, Step: step}
	}
	return &ast.IndexExpression{Tok: tok, Object: obj, Index: start}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur
	switch tok.Kind {
	case token.INT:
		p.advance()
		return &ast.IntegerLiteral{Tok: tok, Value: parseIntLiteral(tok.Literal)}
	case token.FLOAT:
		p.advance()
		return &ast.FloatLiteral{Tok: tok, Value: parseFloatLiteral(tok.Literal)}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Tok: tok, Value: tok.Literal}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Tok: tok, Value: tok.Kind == token.TRUE}
	case token.SELF:
		p.advance()
		return &ast.SelfExpression{Tok: tok}
	case token.IDENT:
		if p.peekIs(token.ARROW) {
			param := ast.Param{Pattern: &ast.Identifier{Tok: tok, Value: tok.Literal}}
			p.advance() // ident
			p.advance() // =>
			body := p.parseLambdaBody()
			return &ast.LambdaExpression{Tok: tok, Params: []ast.Param{param}, Body: body}
		}
		p.advance()
		return &ast.Identifier{Tok: tok, Value: tok.Literal}
	case token.ELLIPSIS:
		p.advance()
		return &ast.SpreadExpression{Tok: tok, Expr: p.parseExpression()}
	case token.AWAIT:
		p.advance()
		return &ast.AwaitExpression{Tok: tok, Expr: p.parseUnary()}
	case token.MANIFEST:
		p.advance()
		name := p.cur.Literal
		p.expect(token.IDENT)
		args := p.parseArgs()
		return &ast.ManifestExpression{Tok: tok, ClassName: name, Args: args}
	case token.ASCEND:
		p.advance()
		name := p.cur.Literal
		p.expect(token.IDENT)
		args := p.parseArgs()
		return &ast.AscendExpression{Tok: tok, Name: name, Args: args}
	case token.LPAREN:
		return p.parseParenOrLambda()
	case token.LBRACKET:
		return p.parseListLiteralOrComprehension()
	case token.LBRACE:
		return p.parseDictLiteral()
	default:
		p.errorf(tok.Pos, "unexpected token %s in expression", tok.Kind)
		p.advance()
		return nil
	}
}

// parseLambdaBody parses what follows `=>`: either a single expression or an
// indented block, mirroring parseBlock's inline-vs-indented split without
// requiring a leading colon.
func (p *Parser) parseLambdaBody() ast.Node {
	if p.curIs(token.NEWLINE) {
		tok := p.cur
		p.advance()
		p.skipNewlines()
		block := &ast.Block{Tok: tok}
		if !p.expect(token.INDENT) {
			return block
		}
		for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
			if stmt := p.parseStatement(); stmt != nil {
				block.Stmts = append(block.Stmts, stmt)
			}
			p.skipNewlines()
		}
		p.expect(token.DEDENT)
		return block
	}
	return p.parseExpression()
}

func (p *Parser) parseParenOrLambda() ast.Expression {
	tok := p.cur
	p.advance() // consume (
	var exprs []ast.Expression
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		exprs = append(exprs, p.parseExpression())
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)

	if p.curIs(token.ARROW) {
		p.advance()
		params := make([]ast.Param, len(exprs))
		for i, e := range exprs {
			ident, ok := e.(*ast.Identifier)
			if !ok {
				p.errorf(tok.Pos, "lambda parameter must be a name")
				continue
			}
			params[i] = ast.Param{Pattern: ident}
		}
		body := p.parseLambdaBody()
		return &ast.LambdaExpression{Tok: tok, Params: params, Body: body}
	}

	if len(exprs) != 1 {
		p.errorf(tok.Pos, "expected a single expression inside parentheses")
		if len(exprs) == 0 {
			return nil
		}
	}
	return exprs[0]
}

func (p *Parser) parseListLiteralOrComprehension() ast.Expression {
	tok := p.cur
	p.advance() // consume [

	if p.curIs(token.RBRACKET) {
		p.advance()
		return &ast.ListLiteral{Tok: tok}
	}

	first := p.parseExpression()

	switch p.cur.Kind {
	case token.CYCLE:
		p.advance()
		p.expect(token.THROUGH)
		iterable := p.parseExpression()
		p.expect(token.AS)
		v := p.parseIdentOrPattern()
		var filter ast.Expression
		if p.curIs(token.FORESEE) {
			p.advance()
			filter = p.parseExpression()
		}
		p.expect(token.RBRACKET)
		return &ast.ListComprehension{Tok: tok, Result: first, Var: v, Iterable: iterable, Filter: filter}
	case token.FOR:
		p.advance()
		iterable := p.parseExpression()
		p.expect(token.AS)
		v := p.parseIdentOrPattern()
		var filter ast.Expression
		if p.curIs(token.WHERE) {
			p.advance()
			filter = p.parseExpression()
		}
		p.expect(token.RBRACKET)
		return &ast.ListComprehension{Tok: tok, Result: first, Var: v, Iterable: iterable, Filter: filter, IsGenerator: true}
	}

	elements := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RBRACKET) {
			break
		}
		elements = append(elements, p.parseExpression())
	}
	p.expect(token.RBRACKET)
	return &ast.ListLiteral{Tok: tok, Elements: elements}
}

func (p *Parser) parseDictLiteral() ast.Expression {
	tok := p.cur
	p.advance() // consume {
	lit := &ast.DictLiteral{Tok: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		key := p.parseExpression()
		p.expect(token.COLON)
		value := p.parseExpression()
		lit.Pairs = append(lit.Pairs, ast.DictPair{Key: key, Value: value})
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return lit
}
