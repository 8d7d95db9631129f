package evaluator

import (
	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// evalArgs evaluates a call's argument list left-to-right, flattening
// spread arguments inline.
func (it *Interp) evalArgs(env *runtime.Environment, args []ast.Expression) ([]runtime.Value, runtime.Value) {
	out := make([]runtime.Value, 0, len(args))
	for _, a := range args {
		if sp, ok := a.(*ast.SpreadExpression); ok {
			v := it.evalExpr(env, sp.Expr)
			if runtime.IsError(v) {
				return nil, v
			}
			list, ok := v.(*runtime.ListValue)
			if !ok {
				return nil, errValue(kerr.Newf(kerr.TypeMismatch, sp.Pos(), "spread requires a list, got %s", v.Type()))
			}
			out = append(out, list.Elements...)
			continue
		}
		v := it.evalExpr(env, a)
		if runtime.IsError(v) {
			return nil, v
		}
		out = append(out, v)
	}
	return out, nil
}

func (it *Interp) evalCall(env *runtime.Environment, n *ast.CallExpression) runtime.Value {
	callee := it.evalExpr(env, n.Callee)
	if runtime.IsError(callee) {
		return callee
	}
	args, errv := it.evalArgs(env, n.Args)
	if errv != nil {
		return errv
	}
	return it.invoke(callee, args, n.Pos())
}

func (it *Interp) evalMethodCall(env *runtime.Environment, n *ast.MethodCallExpression) runtime.Value {
	recv := it.evalExpr(env, n.Receiver)
	if runtime.IsError(recv) {
		return recv
	}
	inst, ok := recv.(*runtime.InstanceValue)
	if !ok {
		return errValue(kerr.Newf(kerr.NoSuchMethod, n.Pos(), "no such method: %s", n.Method))
	}
	fn, _ := inst.Class.ResolveMethod(n.Method)
	if fn == nil {
		return errValue(kerr.Newf(kerr.NoSuchMethod, n.Pos(), "no such method: %s", n.Method))
	}
	args, errv := it.evalArgs(env, n.Args)
	if errv != nil {
		return errv
	}
	return it.callBoundMethod(inst, fn, args, n.Pos())
}

// invoke dispatches a resolved callee Value: builtin, protocol/lambda, or
// sequence (which returns a generator handle rather than running its body).
func (it *Interp) invoke(callee runtime.Value, args []runtime.Value, pos token.Position) runtime.Value {
	switch fn := callee.(type) {
	case *runtime.BuiltinValue:
		v, err := fn.Fn(args)
		if err != nil {
			return errValue(err)
		}
		return v
	case *runtime.FunctionValue:
		if fn.IsSequence {
			return it.newGeneratorValue(fn, args)
		}
		return it.callFunction(fn, args)
	default:
		return errValue(kerr.New(kerr.NotCallable, pos, "value is not callable"))
	}
}

func bindPattern(env *runtime.Environment, pattern ast.Expression, v runtime.Value) {
	switch p := pattern.(type) {
	case *ast.Identifier:
		env.Define(p.Value, v)
	case *ast.ListPattern:
		list, ok := v.(*runtime.ListValue)
		if !ok {
			for _, el := range p.Elements {
				bindPattern(env, el, runtime.Void)
			}
			return
		}
		for i, el := range p.Elements {
			if i < len(list.Elements) {
				bindPattern(env, el, list.Elements[i])
			} else {
				bindPattern(env, el, runtime.Void)
			}
		}
	}
}

// callFunction runs a protocol/lambda body to completion (not as a
// generator): yield acts as an early return.
func (it *Interp) callFunction(fn *runtime.FunctionValue, args []runtime.Value) runtime.Value {
	callEnv := runtime.NewEnclosed(fn.Env)
	if errv := it.bindParamsWithDefaults(callEnv, fn.Params, args); errv != nil {
		return errv
	}
	return it.runFunctionBody(fn, callEnv)
}

// callBoundMethod is callFunction plus self binding for the call's duration.
func (it *Interp) callBoundMethod(self *runtime.InstanceValue, fn *runtime.FunctionValue, args []runtime.Value, pos token.Position) runtime.Value {
	callEnv := runtime.NewEnclosed(fn.Env)
	if errv := it.bindParamsWithDefaults(callEnv, fn.Params, args); errv != nil {
		return errv
	}
	it.pushSelf(self)
	defer it.popSelf()
	return it.runFunctionBody(fn, callEnv)
}

func (it *Interp) runFunctionBody(fn *runtime.FunctionValue, callEnv *runtime.Environment) runtime.Value {
	switch body := fn.Body.(type) {
	case ast.Expression:
		// Lambda with an implicit-return expression body.
		return it.evalExpr(callEnv, body)
	case *ast.Block:
		// Mask any generator being advanced so a yield here returns from
		// this call rather than suspending that generator.
		it.pushGen(nil)
		defer it.popGen()
		sig := it.execBlock(callEnv, body)
		if sig.Kind == sigError {
			return errValue(sig.Err)
		}
		if sig.Kind == sigReturn {
			return sig.Value
		}
		return runtime.Void
	}
	return runtime.Void
}

// bindParamsWithDefaults binds args to params positionally in one pass: a
// rest param collects the remaining args into a list, and a missing arg
// takes its param's default expression, evaluated in callEnv so the
// callee's closure and any earlier-bound parameters are visible.
func (it *Interp) bindParamsWithDefaults(callEnv *runtime.Environment, params []ast.Param, args []runtime.Value) runtime.Value {
	ai := 0
	for _, p := range params {
		if p.IsRest {
			rest := make([]runtime.Value, 0)
			for ai < len(args) {
				rest = append(rest, args[ai])
				ai++
			}
			bindPattern(callEnv, p.Pattern, &runtime.ListValue{Elements: rest})
			continue
		}
		if ai < len(args) {
			bindPattern(callEnv, p.Pattern, args[ai])
			ai++
			continue
		}
		if p.Default != nil {
			v := it.evalExpr(callEnv, p.Default)
			if runtime.IsError(v) {
				return v
			}
			bindPattern(callEnv, p.Pattern, v)
			continue
		}
		bindPattern(callEnv, p.Pattern, runtime.Void)
	}
	return nil
}
