package parser

import (
	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.DESIGNATE:
		return p.parseDesignate()
	case token.OVERRIDE:
		return p.parseOverride()
	case token.FORESEE:
		return p.parseForesee()
	case token.CYCLE:
		return p.parseCycle()
	case token.BREAK:
		tok := p.cur
		p.advance()
		return &ast.BreakStatement{Tok: tok}
	case token.CONTINUE:
		tok := p.cur
		p.advance()
		return &ast.ContinueStatement{Tok: tok}
	case token.PROTOCOL, token.SEQUENCE:
		return p.parseProtocolOrSequence()
	case token.ASYNC:
		p.advance()
		stmt := p.parseProtocolOrSequence()
		if ps, ok := stmt.(*ast.ProtocolStatement); ok {
			ps.Async = true
		}
		return stmt
	case token.YIELD:
		return p.parseYield()
	case token.DELEGATE:
		tok := p.cur
		p.advance()
		return &ast.DelegateStatement{Tok: tok, Iterable: p.parseExpression()}
	case token.SCHEME, token.EXECUTE:
		tok := p.cur
		p.advance()
		return &ast.SchemeStatement{Tok: tok, Body: p.parseBlock()}
	case token.PREVIEW:
		tok := p.cur
		p.advance()
		return &ast.PreviewStatement{Tok: tok, Expr: p.parseExpression()}
	case token.ABSOLUTE:
		return p.parseAbsolute()
	case token.ANOMALY:
		tok := p.cur
		p.advance()
		return &ast.AnomalyStatement{Tok: tok, Body: p.parseBlock()}
	case token.ENTITY:
		return p.parseEntity()
	case token.INCORPORATE:
		return p.parseIncorporate()
	case token.ATTEMPT:
		return p.parseAttempt()
	case token.SITUATION:
		return p.parseSituation()
	case token.NEWLINE, token.SEMICOLON:
		p.advance()
		return nil
	default:
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseDesignate() ast.Statement {
	tok := p.cur
	p.advance()
	target := p.parseIdentOrPattern()
	p.expect(token.ASSIGN)
	value := p.parseExpression()
	return &ast.DesignateStatement{Tok: tok, Target: target, Value: value}
}

func (p *Parser) parseOverride() ast.Statement {
	tok := p.cur
	p.advance()
	name := p.cur.Literal
	p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	value := p.parseExpression()
	return &ast.OverrideStatement{Tok: tok, Name: name, Value: value}
}

// parseExprOrAssignStatement parses an expression; when followed by `=`, the
// just-parsed expression becomes an assignment target instead.
func (p *Parser) parseExprOrAssignStatement() ast.Statement {
	tok := p.cur
	expr := p.parseExpression()
	if expr == nil {
		p.advance()
		return nil
	}
	if p.curIs(token.ASSIGN) {
		p.advance()
		value := p.parseExpression()
		return &ast.AssignStatement{Tok: tok, Target: expr, Value: value}
	}
	return &ast.ExpressionStatement{Tok: tok, Expr: expr}
}

func (p *Parser) parseForesee() ast.Statement {
	tok := p.cur
	p.advance()
	cond := p.parseExpression()
	body := p.parseBlock()
	fs := &ast.ForeseeStatement{Tok: tok, Condition: cond, Body: body}

	for p.curIs(token.ALTERNATE) {
		p.advance()
		altCond := p.parseExpression()
		altBody := p.parseBlock()
		fs.Alternates = append(fs.Alternates, ast.Alternate{Condition: altCond, Body: altBody})
	}
	if p.curIs(token.OTHERWISE) {
		p.advance()
		fs.Otherwise = p.parseBlock()
	}
	return fs
}

func (p *Parser) parseCycle() ast.Statement {
	tok := p.cur
	p.advance()
	switch p.cur.Kind {
	case token.WHILE:
		p.advance()
		cond := p.parseExpression()
		body := p.parseBlock()
		return &ast.CycleWhileStatement{Tok: tok, Condition: cond, Body: body}
	case token.THROUGH:
		p.advance()
		iterable := p.parseExpression()
		p.expect(token.AS)
		v := p.parseIdentOrPattern()
		body := p.parseBlock()
		return &ast.CycleThroughStatement{Tok: tok, Var: v, Iterable: iterable, Body: body}
	case token.FROM:
		p.advance()
		start := p.parseExpression()
		p.expect(token.TO)
		end := p.parseExpression()
		p.expect(token.AS)
		v := p.parseIdentOrPattern()
		body := p.parseBlock()
		return &ast.CycleFromToStatement{Tok: tok, Var: v, Start: start, End: end, Body: body}
	default:
		p.errorf(p.cur.Pos, "expected while/through/from after cycle, got %s", p.cur.Kind)
		return nil
	}
}

func (p *Parser) parseProtocolOrSequence() ast.Statement {
	tok := p.cur
	isSeq := p.cur.Kind == token.SEQUENCE
	p.advance()
	name := p.cur.Literal
	p.expect(token.IDENT)
	params := p.parseParams()
	body := p.parseBlock()
	return &ast.ProtocolStatement{Tok: tok, Name: name, Params: params, Body: body, Sequence: isSeq}
}

func (p *Parser) parseYield() ast.Statement {
	tok := p.cur
	p.advance()
	var value ast.Expression
	switch p.cur.Kind {
	case token.NEWLINE, token.SEMICOLON, token.DEDENT, token.EOF:
	default:
		value = p.parseExpression()
	}
	return &ast.YieldStatement{Tok: tok, Value: value}
}

func (p *Parser) parseAbsolute() ast.Statement {
	tok := p.cur
	p.advance()
	cond := p.parseExpression()
	text := ""
	if cond != nil {
		text = cond.String()
	}
	return &ast.AbsoluteStatement{Tok: tok, Condition: cond, ExprText: text}
}

func (p *Parser) parseEntity() ast.Statement {
	tok := p.cur
	p.advance()
	name := p.cur.Literal
	p.expect(token.IDENT)
	parent := ""
	if p.curIs(token.INHERITS) {
		p.advance()
		parent = p.cur.Literal
		p.expect(token.IDENT)
	}
	body := p.parseBlock()
	return &ast.EntityStatement{Tok: tok, Name: name, Parent: parent, Members: body.Stmts}
}

func (p *Parser) parseIncorporate() ast.Statement {
	tok := p.cur
	p.advance()
	path := p.cur.Literal
	p.expect(token.STRING)
	return &ast.IncorporateStatement{Tok: tok, Path: path}
}

func (p *Parser) parseAttempt() ast.Statement {
	tok := p.cur
	p.advance()
	body := p.parseBlock()

	var errVar string
	var recoverBlock *ast.Block
	if p.curIs(token.RECOVER) {
		p.advance()
		if p.curIs(token.AS) {
			p.advance()
			errVar = p.cur.Literal
			p.expect(token.IDENT)
		}
		recoverBlock = p.parseBlock()
	}
	return &ast.AttemptStatement{Tok: tok, Body: body, ErrorVar: errVar, Recover: recoverBlock}
}

func (p *Parser) parseSituation() ast.Statement {
	tok := p.cur
	p.advance()
	value := p.parseExpression()
	p.expect(token.COLON)

	stmt := &ast.SituationStatement{Tok: tok, Value: value}

	parseOne := func() {
		switch p.cur.Kind {
		case token.ALIGNMENT:
			p.advance()
			values := []ast.Expression{p.parseExpression()}
			for p.curIs(token.COMMA) {
				p.advance()
				values = append(values, p.parseExpression())
			}
			body := p.parseBlock()
			stmt.Alignments = append(stmt.Alignments, ast.Alignment{Values: values, Body: body})
		case token.OTHERWISE:
			p.advance()
			body := p.parseBlock()
			stmt.Alignments = append(stmt.Alignments, ast.Alignment{Body: body, IsOtherwise: true})
		default:
			p.errorf(p.cur.Pos, "expected alignment or otherwise, got %s", p.cur.Kind)
			p.advance()
		}
	}

	// Same-line alignments: every alignment on the situation's own line,
	// separated by `;`.
	if !p.curIs(token.NEWLINE) {
		for {
			parseOne()
			if p.curIs(token.SEMICOLON) {
				p.advance()
				continue
			}
			break
		}
	}

	if p.curIs(token.NEWLINE) {
		p.advance()
		p.skipNewlines()
		if p.curIs(token.INDENT) {
			p.advance()
			for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
				if p.curIs(token.NEWLINE) {
					p.advance()
					continue
				}
				parseOne()
				p.skipNewlines()
			}
			p.expect(token.DEDENT)
		}
	}
	return stmt
}
