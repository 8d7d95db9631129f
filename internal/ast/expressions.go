package ast

import (
	"bytes"
	"strings"

	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// Identifier is a bare name reference, also used as an assignment/designate
// target and as a binding pattern in Param/list-destructure positions.
type Identifier struct {
	Tok   token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Tok.Literal }
func (i *Identifier) Pos() token.Position  { return i.Tok.Pos }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral is a decimal 64-bit integer literal.
type IntegerLiteral struct {
	Tok   token.Token
	Value int64
}

func (n *IntegerLiteral) expressionNode()      {}
func (n *IntegerLiteral) TokenLiteral() string { return n.Tok.Literal }
func (n *IntegerLiteral) Pos() token.Position  { return n.Tok.Pos }
func (n *IntegerLiteral) String() string       { return n.Tok.Literal }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Tok   token.Token
	Value float64
}

func (n *FloatLiteral) expressionNode()      {}
func (n *FloatLiteral) TokenLiteral() string { return n.Tok.Literal }
func (n *FloatLiteral) Pos() token.Position  { return n.Tok.Pos }
func (n *FloatLiteral) String() string       { return n.Tok.Literal }

// StringLiteral is a quoted string literal with escapes already resolved.
type StringLiteral struct {
	Tok   token.Token
	Value string
}

func (n *StringLiteral) expressionNode()      {}
func (n *StringLiteral) TokenLiteral() string { return n.Tok.Literal }
func (n *StringLiteral) Pos() token.Position  { return n.Tok.Pos }
func (n *StringLiteral) String() string       { return "\"" + n.Value + "\"" }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Tok   token.Token
	Value bool
}

func (n *BooleanLiteral) expressionNode()      {}
func (n *BooleanLiteral) TokenLiteral() string { return n.Tok.Literal }
func (n *BooleanLiteral) Pos() token.Position  { return n.Tok.Pos }
func (n *BooleanLiteral) String() string       { return n.Tok.Literal }

// SpreadExpression is `...expr`, valid in call arguments and list literals.
type SpreadExpression struct {
	Tok  token.Token
	Expr Expression
}

func (n *SpreadExpression) expressionNode()      {}
func (n *SpreadExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *SpreadExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *SpreadExpression) String() string       { return "..." + n.Expr.String() }

// ListLiteral is `[e1, e2, ...]`; elements may include SpreadExpression.
type ListLiteral struct {
	Tok      token.Token
	Elements []Expression
}

func (n *ListLiteral) expressionNode()      {}
func (n *ListLiteral) TokenLiteral() string { return n.Tok.Literal }
func (n *ListLiteral) Pos() token.Position  { return n.Tok.Pos }
func (n *ListLiteral) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictPair is one key/value entry of a DictLiteral.
type DictPair struct {
	Key   Expression
	Value Expression
}

// DictLiteral is `{k1: v1, k2: v2}`.
type DictLiteral struct {
	Tok   token.Token
	Pairs []DictPair
}

func (n *DictLiteral) expressionNode()      {}
func (n *DictLiteral) TokenLiteral() string { return n.Tok.Literal }
func (n *DictLiteral) Pos() token.Position  { return n.Tok.Pos }
func (n *DictLiteral) String() string {
	parts := make([]string, len(n.Pairs))
	for i, p := range n.Pairs {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// BinaryExpression is `left op right`.
type BinaryExpression struct {
	Tok   token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (n *BinaryExpression) expressionNode()      {}
func (n *BinaryExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *BinaryExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(n.Left.String())
	out.WriteString(" " + n.Op + " ")
	out.WriteString(n.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryExpression is `-expr` or `not expr`.
type UnaryExpression struct {
	Tok      token.Token
	Op       string
	Operand  Expression
}

func (n *UnaryExpression) expressionNode()      {}
func (n *UnaryExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *UnaryExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *UnaryExpression) String() string       { return "(" + n.Op + n.Operand.String() + ")" }

// CallExpression is `name(args...)`, resolving the callee by identifier.
type CallExpression struct {
	Tok      token.Token
	Callee   *Identifier
	Args     []Expression
}

func (n *CallExpression) expressionNode()      {}
func (n *CallExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *CallExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *CallExpression) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// MethodCallExpression is `receiver.method(args...)`.
type MethodCallExpression struct {
	Tok      token.Token
	Receiver Expression
	Method   string
	Args     []Expression
}

func (n *MethodCallExpression) expressionNode()      {}
func (n *MethodCallExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *MethodCallExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *MethodCallExpression) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Receiver.String() + "." + n.Method + "(" + strings.Join(parts, ", ") + ")"
}

// MemberExpression is `object.name`, subject to the `_`-private-name rule.
type MemberExpression struct {
	Tok    token.Token
	Object Expression
	Name   string
}

func (n *MemberExpression) expressionNode()      {}
func (n *MemberExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *MemberExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *MemberExpression) String() string       { return n.Object.String() + "." + n.Name }

// IndexExpression is `object[index]`.
type IndexExpression struct {
	Tok    token.Token
	Object Expression
	Index  Expression
}

func (n *IndexExpression) expressionNode()      {}
func (n *IndexExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *IndexExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *IndexExpression) String() string {
	return n.Object.String() + "[" + n.Index.String() + "]"
}

// SliceExpression is `object[start:end:step]`, any part may be nil.
type SliceExpression struct {
	Tok    token.Token
	Object Expression
	Start  Expression
	End    Expression
	Step   Expression
}

func (n *SliceExpression) expressionNode()      {}
func (n *SliceExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *SliceExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *SliceExpression) String() string       { return n.Object.String() + "[slice]" }

// ListComprehension is `[expr cycle through iter as var foresee cond]`
// (IsGenerator=false) or the `for`/`where` generator-expression spelling
// (IsGenerator=true); both materialize eagerly into a list.
type ListComprehension struct {
	Tok         token.Token
	Result      Expression
	Var         Expression // Identifier or ListPattern
	Iterable    Expression
	Filter      Expression // nil if absent
	IsGenerator bool
}

func (n *ListComprehension) expressionNode()      {}
func (n *ListComprehension) TokenLiteral() string { return n.Tok.Literal }
func (n *ListComprehension) Pos() token.Position  { return n.Tok.Pos }
func (n *ListComprehension) String() string {
	return "[" + n.Result.String() + " cycle through " + n.Iterable.String() + "]"
}

// TernaryExpression is `trueExpr foresee cond otherwise falseExpr`.
type TernaryExpression struct {
	Tok       token.Token
	Condition Expression
	TrueExpr  Expression
	FalseExpr Expression
}

func (n *TernaryExpression) expressionNode()      {}
func (n *TernaryExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *TernaryExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *TernaryExpression) String() string {
	return n.TrueExpr.String() + " foresee " + n.Condition.String() + " otherwise " + n.FalseExpr.String()
}

// LambdaExpression constructs a closure Value; Body is either a single
// expression (implicit return) or a Block.
type LambdaExpression struct {
	Tok    token.Token
	Params []Param
	Body   Node // Expression or *Block
}

func (n *LambdaExpression) expressionNode()      {}
func (n *LambdaExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *LambdaExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *LambdaExpression) String() string       { return "lambda(...)" }

// AwaitExpression is `await expr`.
type AwaitExpression struct {
	Tok  token.Token
	Expr Expression
}

func (n *AwaitExpression) expressionNode()      {}
func (n *AwaitExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *AwaitExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *AwaitExpression) String() string       { return "await " + n.Expr.String() }

// SelfExpression is the bare `self` reference.
type SelfExpression struct {
	Tok token.Token
}

func (n *SelfExpression) expressionNode()      {}
func (n *SelfExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *SelfExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *SelfExpression) String() string       { return "self" }

// ManifestExpression is `manifest ClassName(args...)`.
type ManifestExpression struct {
	Tok       token.Token
	ClassName string
	Args      []Expression
}

func (n *ManifestExpression) expressionNode()      {}
func (n *ManifestExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *ManifestExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *ManifestExpression) String() string       { return "manifest " + n.ClassName + "(...)" }

// AscendExpression is `ascend ProtocolName(args...)`.
type AscendExpression struct {
	Tok  token.Token
	Name string
	Args []Expression
}

func (n *AscendExpression) expressionNode()      {}
func (n *AscendExpression) TokenLiteral() string { return n.Tok.Literal }
func (n *AscendExpression) Pos() token.Position  { return n.Tok.Pos }
func (n *AscendExpression) String() string       { return "ascend " + n.Name + "(...)" }

// ListPattern is a destructuring assignment/designate target, `[a, b]`.
type ListPattern struct {
	Tok      token.Token
	Elements []Expression
}

func (n *ListPattern) expressionNode()      {}
func (n *ListPattern) TokenLiteral() string { return n.Tok.Literal }
func (n *ListPattern) Pos() token.Position  { return n.Tok.Pos }
func (n *ListPattern) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
