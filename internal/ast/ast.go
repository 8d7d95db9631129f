// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and consumed by the evaluator: every node exposes TokenLiteral(),
// String(), and Pos().
package ast

import (
	"bytes"

	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// Node is the root interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Statement is an AST node executed for effect.
type Statement interface {
	Node
	statementNode()
}

// Expression is an AST node evaluated to a Value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of a parsed source file.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Param is a single function/lambda parameter: a bindable pattern, an
// optional default expression, and a rest flag for `...name` tail capture.
type Param struct {
	Pattern Expression // Identifier or ListPattern
	Default Expression // nil if none
	IsRest  bool
}

// Block is a sequence of statements forming a lexical body, kept as its own
// node type rather than a bare []Statement.
type Block struct {
	Tok   token.Token
	Stmts []Statement
}

func (b *Block) TokenLiteral() string { return b.Tok.Literal }
func (b *Block) Pos() token.Position  { return b.Tok.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	for _, s := range b.Stmts {
		out.WriteString("  ")
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}
