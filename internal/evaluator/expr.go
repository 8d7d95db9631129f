package evaluator

import (
	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
)

// evalExpr dispatches one AST expression node to a Value, split by concern
// across files rather than one giant switch; failure is a
// *runtime.ErrorValue sentinel (see runtime.IsError) rather than a second Go
// return, per internal/runtime's value model.
func (it *Interp) evalExpr(env *runtime.Environment, node ast.Expression) runtime.Value {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return &runtime.IntegerValue{Value: n.Value}
	case *ast.FloatLiteral:
		return &runtime.FloatValue{Value: n.Value}
	case *ast.StringLiteral:
		return &runtime.StringValue{Value: n.Value}
	case *ast.BooleanLiteral:
		return &runtime.BooleanValue{Value: n.Value}
	case *ast.Identifier:
		v, err := env.GetErr(n.Value)
		if err != nil {
			return errValue(kerr.Newf(kerr.UndefinedName, n.Pos(), "undefined name: %s", n.Value))
		}
		return v
	case *ast.SelfExpression:
		self, ok := it.currentSelf()
		if !ok {
			return errValue(kerr.New(kerr.SelfOutsideMethod, n.Pos(), kerr.MsgSelfOutsideMethod))
		}
		return self
	case *ast.ListLiteral:
		return it.evalListLiteral(env, n)
	case *ast.DictLiteral:
		return it.evalDictLiteral(env, n)
	case *ast.BinaryExpression:
		return it.evalBinary(env, n)
	case *ast.UnaryExpression:
		return it.evalUnary(env, n)
	case *ast.TernaryExpression:
		cond := it.evalExpr(env, n.Condition)
		if runtime.IsError(cond) {
			return cond
		}
		if runtime.Truthy(cond) {
			return it.evalExpr(env, n.TrueExpr)
		}
		return it.evalExpr(env, n.FalseExpr)
	case *ast.LambdaExpression:
		return &runtime.FunctionValue{Params: n.Params, Body: n.Body, Env: env, IsLambda: true}
	case *ast.AwaitExpression:
		return it.evalAwait(env, n)
	case *ast.CallExpression:
		return it.evalCall(env, n)
	case *ast.MethodCallExpression:
		return it.evalMethodCall(env, n)
	case *ast.MemberExpression:
		return it.evalMember(env, n)
	case *ast.IndexExpression:
		return it.evalIndex(env, n)
	case *ast.SliceExpression:
		return it.evalSlice(env, n)
	case *ast.ListComprehension:
		return it.evalComprehension(env, n)
	case *ast.ManifestExpression:
		return it.evalManifest(env, n)
	case *ast.AscendExpression:
		return it.evalAscend(env, n)
	case *ast.SpreadExpression:
		// Reached only if a spread appears outside a list literal/call
		// argument list, which the grammar otherwise prevents.
		return it.evalExpr(env, n.Expr)
	case *ast.ListPattern:
		return errValue(kerr.New(kerr.SyntaxError, n.Pos(), "a list pattern cannot be evaluated as a value"))
	}
	return errValue(kerr.Newf(kerr.SyntaxError, node.Pos(), "cannot evaluate %T", node))
}

func (it *Interp) evalListLiteral(env *runtime.Environment, n *ast.ListLiteral) runtime.Value {
	elems := make([]runtime.Value, 0, len(n.Elements))
	for _, e := range n.Elements {
		if sp, ok := e.(*ast.SpreadExpression); ok {
			v := it.evalExpr(env, sp.Expr)
			if runtime.IsError(v) {
				return v
			}
			list, ok := v.(*runtime.ListValue)
			if !ok {
				return errValue(kerr.Newf(kerr.TypeMismatch, sp.Pos(), "spread requires a list, got %s", v.Type()))
			}
			elems = append(elems, list.Elements...)
			continue
		}
		v := it.evalExpr(env, e)
		if runtime.IsError(v) {
			return v
		}
		elems = append(elems, v)
	}
	return &runtime.ListValue{Elements: elems}
}

func (it *Interp) evalDictLiteral(env *runtime.Environment, n *ast.DictLiteral) runtime.Value {
	d := runtime.NewDict()
	for _, p := range n.Pairs {
		k := it.evalExpr(env, p.Key)
		if runtime.IsError(k) {
			return k
		}
		v := it.evalExpr(env, p.Value)
		if runtime.IsError(v) {
			return v
		}
		d.Set(unquoted(k), v)
	}
	return d
}

func (it *Interp) evalBinary(env *runtime.Environment, n *ast.BinaryExpression) runtime.Value {
	if n.Op == "and" || n.Op == "or" {
		l := it.evalExpr(env, n.Left)
		if runtime.IsError(l) {
			return l
		}
		lt := runtime.Truthy(l)
		if n.Op == "and" && !lt {
			return &runtime.BooleanValue{Value: false}
		}
		if n.Op == "or" && lt {
			return &runtime.BooleanValue{Value: true}
		}
		r := it.evalExpr(env, n.Right)
		if runtime.IsError(r) {
			return r
		}
		return &runtime.BooleanValue{Value: runtime.Truthy(r)}
	}
	l := it.evalExpr(env, n.Left)
	if runtime.IsError(l) {
		return l
	}
	r := it.evalExpr(env, n.Right)
	if runtime.IsError(r) {
		return r
	}
	return evalArith(n.Op, l, r, n.Pos())
}

func (it *Interp) evalUnary(env *runtime.Environment, n *ast.UnaryExpression) runtime.Value {
	v := it.evalExpr(env, n.Operand)
	if runtime.IsError(v) {
		return v
	}
	switch n.Op {
	case "not":
		return &runtime.BooleanValue{Value: !runtime.Truthy(v)}
	case "-":
		switch t := v.(type) {
		case *runtime.IntegerValue:
			return &runtime.IntegerValue{Value: -t.Value}
		case *runtime.FloatValue:
			return &runtime.FloatValue{Value: -t.Value}
		}
		return errValue(kerr.Newf(kerr.TypeMismatch, n.Pos(), "unary - is not defined for %s", v.Type()))
	}
	return errValue(kerr.Newf(kerr.SyntaxError, n.Pos(), "unknown unary operator %q", n.Op))
}

func (it *Interp) evalAwait(env *runtime.Environment, n *ast.AwaitExpression) runtime.Value {
	v := it.evalExpr(env, n.Expr)
	if runtime.IsError(v) {
		return v
	}
	switch t := v.(type) {
	case *runtime.PromiseValue:
		switch t.State {
		case "resolved":
			return t.Result
		case "rejected":
			return errValue(kerr.New(kerr.PromiseRejected, n.Pos(), kerr.MsgPromiseRejected))
		default: // pending: no event loop, passes through unchanged
			return t
		}
	case *runtime.GeneratorValue:
		return it.advanceGenerator(t)
	default:
		return v
	}
}
