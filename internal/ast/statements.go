package ast

import (
	"strings"

	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// ExpressionStatement wraps an expression evaluated for its side effects.
type ExpressionStatement struct {
	Tok  token.Token
	Expr Expression
}

func (n *ExpressionStatement) statementNode()       {}
func (n *ExpressionStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *ExpressionStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *ExpressionStatement) String() string       { return n.Expr.String() }

// DesignateStatement is `designate target = value` — always binds locally.
type DesignateStatement struct {
	Tok    token.Token
	Target Expression // Identifier or ListPattern
	Value  Expression
}

func (n *DesignateStatement) statementNode()       {}
func (n *DesignateStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *DesignateStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *DesignateStatement) String() string {
	return "designate " + n.Target.String() + " = " + n.Value.String()
}

// AssignStatement is `target = value`, target ranging over identifier, list
// pattern, member access, or index expressions (spec §4.4).
type AssignStatement struct {
	Tok    token.Token
	Target Expression
	Value  Expression
}

func (n *AssignStatement) statementNode()       {}
func (n *AssignStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *AssignStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *AssignStatement) String() string {
	return n.Target.String() + " = " + n.Value.String()
}

// Alternate is one `alternate cond: body` branch of a Foresee chain.
type Alternate struct {
	Condition Expression
	Body      *Block
}

// ForeseeStatement is the if/elif/else chain.
type ForeseeStatement struct {
	Tok       token.Token
	Condition Expression
	Body      *Block
	Alternates []Alternate
	Otherwise *Block // nil if absent
}

func (n *ForeseeStatement) statementNode()       {}
func (n *ForeseeStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *ForeseeStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *ForeseeStatement) String() string       { return "foresee " + n.Condition.String() + ": ..." }

// CycleWhileStatement is `cycle while cond: body`.
type CycleWhileStatement struct {
	Tok       token.Token
	Condition Expression
	Body      *Block
}

func (n *CycleWhileStatement) statementNode()       {}
func (n *CycleWhileStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *CycleWhileStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *CycleWhileStatement) String() string       { return "cycle while " + n.Condition.String() + ": ..." }

// CycleThroughStatement is `cycle through iterable as var: body`, iterating
// a list or (pulling from) a generator.
type CycleThroughStatement struct {
	Tok      token.Token
	Var      Expression // Identifier or ListPattern
	Iterable Expression
	Body     *Block
}

func (n *CycleThroughStatement) statementNode()       {}
func (n *CycleThroughStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *CycleThroughStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *CycleThroughStatement) String() string {
	return "cycle through " + n.Iterable.String() + " as " + n.Var.String() + ": ..."
}

// CycleFromToStatement is `cycle from start to end as var: body`, an integer
// range `[start, end)`.
type CycleFromToStatement struct {
	Tok   token.Token
	Var   Expression
	Start Expression
	End   Expression
	Body  *Block
}

func (n *CycleFromToStatement) statementNode()       {}
func (n *CycleFromToStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *CycleFromToStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *CycleFromToStatement) String() string {
	return "cycle from " + n.Start.String() + " to " + n.End.String() + ": ..."
}

// BreakStatement unwinds the nearest enclosing loop.
type BreakStatement struct{ Tok token.Token }

func (n *BreakStatement) statementNode()       {}
func (n *BreakStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *BreakStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *BreakStatement) String() string       { return "break" }

// ContinueStatement unwinds to the top of the nearest enclosing loop.
type ContinueStatement struct{ Tok token.Token }

func (n *ContinueStatement) statementNode()       {}
func (n *ContinueStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *ContinueStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *ContinueStatement) String() string       { return "continue" }

// ProtocolStatement defines a regular function; Sequence=true makes a call
// return a generator handle instead of executing the body immediately.
type ProtocolStatement struct {
	Tok      token.Token
	Name     string
	Params   []Param
	Body     *Block
	Sequence bool
	Async    bool
}

func (n *ProtocolStatement) statementNode()       {}
func (n *ProtocolStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *ProtocolStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *ProtocolStatement) String() string {
	kw := "protocol"
	if n.Sequence {
		kw = "sequence"
	}
	return kw + " " + n.Name + "(...)"
}

// YieldStatement is `yield [value]`.
type YieldStatement struct {
	Tok   token.Token
	Value Expression // nil if bare `yield`
}

func (n *YieldStatement) statementNode()       {}
func (n *YieldStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *YieldStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *YieldStatement) String() string {
	if n.Value == nil {
		return "yield"
	}
	return "yield " + n.Value.String()
}

// DelegateStatement is `delegate iterable`, transparently yielding every
// element/produced value of a nested list or generator.
type DelegateStatement struct {
	Tok      token.Token
	Iterable Expression
}

func (n *DelegateStatement) statementNode()       {}
func (n *DelegateStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *DelegateStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *DelegateStatement) String() string       { return "delegate " + n.Iterable.String() }

// SchemeStatement is `scheme: body` / `execute: body` — a bracketed,
// once-executed block, semantically equivalent to its body.
type SchemeStatement struct {
	Tok  token.Token
	Body *Block
}

func (n *SchemeStatement) statementNode()       {}
func (n *SchemeStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *SchemeStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *SchemeStatement) String() string       { return "scheme: ..." }

// PreviewStatement evaluates an expression, displays it, and discards it.
type PreviewStatement struct {
	Tok  token.Token
	Expr Expression
}

func (n *PreviewStatement) statementNode()       {}
func (n *PreviewStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *PreviewStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *PreviewStatement) String() string       { return "preview " + n.Expr.String() }

// OverrideStatement is `override name = value`, writing into the global
// scope regardless of current scope and marking the binding as override.
type OverrideStatement struct {
	Tok   token.Token
	Name  string
	Value Expression
}

func (n *OverrideStatement) statementNode()       {}
func (n *OverrideStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *OverrideStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *OverrideStatement) String() string {
	return "override " + n.Name + " = " + n.Value.String()
}

// AbsoluteStatement is a soft assertion: warns but never halts.
type AbsoluteStatement struct {
	Tok       token.Token
	Condition Expression
	ExprText  string // original source text, for the diagnostic
}

func (n *AbsoluteStatement) statementNode()       {}
func (n *AbsoluteStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *AbsoluteStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *AbsoluteStatement) String() string       { return "absolute " + n.Condition.String() }

// AnomalyStatement executes its body with the anomaly-mode flag set.
type AnomalyStatement struct {
	Tok  token.Token
	Body *Block
}

func (n *AnomalyStatement) statementNode()       {}
func (n *AnomalyStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *AnomalyStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *AnomalyStatement) String() string       { return "anomaly: ..." }

// EntityStatement defines a class with an optional parent and a body of
// nested ProtocolStatement members.
type EntityStatement struct {
	Tok     token.Token
	Name    string
	Parent  string // "" if none
	Members []Statement
}

func (n *EntityStatement) statementNode()       {}
func (n *EntityStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *EntityStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *EntityStatement) String() string       { return "entity " + n.Name }

// IncorporateStatement imports another source file by host path.
type IncorporateStatement struct {
	Tok  token.Token
	Path string
}

func (n *IncorporateStatement) statementNode()       {}
func (n *IncorporateStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *IncorporateStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *IncorporateStatement) String() string       { return "incorporate \"" + n.Path + "\"" }

// AttemptStatement is try/recover: runs Body, and on an uncleared runtime
// error runs Recover with ErrorVar (if non-empty) bound to the message.
type AttemptStatement struct {
	Tok      token.Token
	Body     *Block
	ErrorVar string
	Recover  *Block // nil if absent
}

func (n *AttemptStatement) statementNode()       {}
func (n *AttemptStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *AttemptStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *AttemptStatement) String() string       { return "attempt: ... recover: ..." }

// Alignment is one `alignment v1, v2: body` case of a Situation match, or
// the `otherwise` default when IsOtherwise is true.
type Alignment struct {
	Values      []Expression
	Body        *Block
	IsOtherwise bool
}

// SituationStatement is the match/switch construct.
type SituationStatement struct {
	Tok        token.Token
	Value      Expression
	Alignments []Alignment
}

func (n *SituationStatement) statementNode()       {}
func (n *SituationStatement) TokenLiteral() string { return n.Tok.Literal }
func (n *SituationStatement) Pos() token.Position  { return n.Tok.Pos }
func (n *SituationStatement) String() string       { return "situation " + n.Value.String() + ": ..." }

func joinStmtStrings(stmts []Statement) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}
