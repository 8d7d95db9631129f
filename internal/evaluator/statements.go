package evaluator

import (
	"fmt"

	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
)

// execBlock runs a block's statements in sequence, stopping at the first
// non-none Signal: break, continue, return, or a propagating error.
func (it *Interp) execBlock(env *runtime.Environment, b *ast.Block) Signal {
	for _, stmt := range b.Stmts {
		sig := it.execStatement(env, stmt)
		if sig.Kind != sigNone {
			return sig
		}
	}
	return noSignal
}

func (it *Interp) execStatement(env *runtime.Environment, stmt ast.Statement) Signal {
	switch n := stmt.(type) {
	case *ast.ExpressionStatement:
		v := it.evalExpr(env, n.Expr)
		if sig, ok := asErrSignal(v); ok {
			return sig
		}
		return noSignal

	case *ast.DesignateStatement:
		v := it.evalExpr(env, n.Value)
		if sig, ok := asErrSignal(v); ok {
			return sig
		}
		bindPattern(env, n.Target, v)
		return noSignal

	case *ast.AssignStatement:
		return it.execAssign(env, n)

	case *ast.ForeseeStatement:
		return it.execForesee(env, n)

	case *ast.CycleWhileStatement:
		return it.execCycleWhile(env, n)

	case *ast.CycleThroughStatement:
		return it.execCycleThrough(env, n)

	case *ast.CycleFromToStatement:
		return it.execCycleFromTo(env, n)

	case *ast.BreakStatement:
		return Signal{Kind: sigBreak}

	case *ast.ContinueStatement:
		return Signal{Kind: sigContinue}

	case *ast.ProtocolStatement:
		fn := &runtime.FunctionValue{
			Name:       n.Name,
			Params:     n.Params,
			Body:       n.Body,
			Env:        env,
			IsSequence: n.Sequence,
			IsAsync:    n.Async,
		}
		env.Define(n.Name, fn)
		return noSignal

	case *ast.YieldStatement:
		var v runtime.Value = runtime.Void
		if n.Value != nil {
			v = it.evalExpr(env, n.Value)
			if sig, ok := asErrSignal(v); ok {
				return sig
			}
		}
		if gen := it.currentGen(); gen != nil {
			if errv := gen.yield(v); errv != nil {
				return errSignal(errv)
			}
			return noSignal
		}
		return returnSignal(v)

	case *ast.DelegateStatement:
		return it.execDelegate(env, n)

	case *ast.SchemeStatement:
		fmt.Fprintln(it.Out, "-- scheme --")
		sig := it.execBlock(env, n.Body)
		fmt.Fprintln(it.Out, "-- end scheme --")
		return sig

	case *ast.PreviewStatement:
		v := it.evalExpr(env, n.Expr)
		if sig, ok := asErrSignal(v); ok {
			return sig
		}
		fmt.Fprintln(it.Out, "preview: "+runtime.Repr(v))
		return noSignal

	case *ast.OverrideStatement:
		v := it.evalExpr(env, n.Value)
		if sig, ok := asErrSignal(v); ok {
			return sig
		}
		it.Global.ForceGlobal(n.Name, v)
		return noSignal

	case *ast.AbsoluteStatement:
		v := it.evalExpr(env, n.Condition)
		if sig, ok := asErrSignal(v); ok {
			return sig
		}
		if !runtime.Truthy(v) {
			fmt.Fprintln(it.Out, "absolute failed: "+n.ExprText)
		}
		return noSignal

	case *ast.AnomalyStatement:
		it.anomaly++
		fmt.Fprintln(it.Out, "-- anomaly --")
		sig := it.execBlock(env, n.Body)
		fmt.Fprintln(it.Out, "-- end anomaly --")
		it.anomaly--
		return sig

	case *ast.EntityStatement:
		return it.execEntity(env, n)

	case *ast.IncorporateStatement:
		return it.execIncorporate(env, n)

	case *ast.AttemptStatement:
		return it.execAttempt(env, n)

	case *ast.SituationStatement:
		return it.execSituation(env, n)
	}
	return errf(kerr.SyntaxError, stmt.Pos(), "cannot execute %T", stmt)
}

func (it *Interp) execAssign(env *runtime.Environment, n *ast.AssignStatement) Signal {
	switch target := n.Target.(type) {
	case *ast.Identifier:
		v := it.evalExpr(env, n.Value)
		if sig, ok := asErrSignal(v); ok {
			return sig
		}
		env.Assign(target.Value, v)
		return noSignal
	case *ast.ListPattern:
		v := it.evalExpr(env, n.Value)
		if sig, ok := asErrSignal(v); ok {
			return sig
		}
		list, ok := v.(*runtime.ListValue)
		if !ok {
			return errf(kerr.TypeMismatch, n.Pos(), kerr.MsgNonListDestructure)
		}
		for i, el := range target.Elements {
			id, ok := el.(*ast.Identifier)
			if !ok {
				continue
			}
			if i < len(list.Elements) {
				env.Assign(id.Value, list.Elements[i])
			} else {
				env.Assign(id.Value, runtime.Void)
			}
		}
		return noSignal
	case *ast.MemberExpression:
		v := it.evalExpr(env, n.Value)
		if sig, ok := asErrSignal(v); ok {
			return sig
		}
		if sig, ok := asErrSignal(it.assignMember(env, target, v)); ok {
			return sig
		}
		return noSignal
	case *ast.IndexExpression:
		v := it.evalExpr(env, n.Value)
		if sig, ok := asErrSignal(v); ok {
			return sig
		}
		if sig, ok := asErrSignal(it.assignIndex(env, target, v)); ok {
			return sig
		}
		return noSignal
	}
	return errf(kerr.SyntaxError, n.Pos(), kerr.MsgInvalidAssignTarget)
}

func (it *Interp) execForesee(env *runtime.Environment, n *ast.ForeseeStatement) Signal {
	cond := it.evalExpr(env, n.Condition)
	if sig, ok := asErrSignal(cond); ok {
		return sig
	}
	if runtime.Truthy(cond) {
		return it.execBlock(runtime.NewEnclosed(env), n.Body)
	}
	for _, alt := range n.Alternates {
		c := it.evalExpr(env, alt.Condition)
		if sig, ok := asErrSignal(c); ok {
			return sig
		}
		if runtime.Truthy(c) {
			return it.execBlock(runtime.NewEnclosed(env), alt.Body)
		}
	}
	if n.Otherwise != nil {
		return it.execBlock(runtime.NewEnclosed(env), n.Otherwise)
	}
	return noSignal
}

func (it *Interp) execCycleWhile(env *runtime.Environment, n *ast.CycleWhileStatement) Signal {
	for {
		cond := it.evalExpr(env, n.Condition)
		if sig, ok := asErrSignal(cond); ok {
			return sig
		}
		if !runtime.Truthy(cond) {
			return noSignal
		}
		sig := it.execBlock(runtime.NewEnclosed(env), n.Body)
		switch sig.Kind {
		case sigBreak:
			return noSignal
		case sigContinue:
			continue
		case sigNone:
			continue
		default:
			return sig
		}
	}
}

func (it *Interp) execCycleThrough(env *runtime.Environment, n *ast.CycleThroughStatement) Signal {
	src := it.evalExpr(env, n.Iterable)
	if sig, ok := asErrSignal(src); ok {
		return sig
	}
	var loopSig Signal
	errv := it.iterate(src, n.Pos(), func(el runtime.Value) (bool, runtime.Value) {
		childEnv := runtime.NewEnclosed(env)
		bindPattern(childEnv, n.Var, el)
		sig := it.execBlock(childEnv, n.Body)
		switch sig.Kind {
		case sigBreak:
			return true, nil
		case sigContinue, sigNone:
			return false, nil
		default:
			loopSig = sig
			return true, nil
		}
	})
	if loopSig.Kind != sigNone {
		return loopSig
	}
	if sig, ok := asErrSignal(errv); ok {
		return sig
	}
	return noSignal
}

func (it *Interp) execCycleFromTo(env *runtime.Environment, n *ast.CycleFromToStatement) Signal {
	startV := it.evalExpr(env, n.Start)
	if sig, ok := asErrSignal(startV); ok {
		return sig
	}
	endV := it.evalExpr(env, n.End)
	if sig, ok := asErrSignal(endV); ok {
		return sig
	}
	si, ok1 := startV.(*runtime.IntegerValue)
	ei, ok2 := endV.(*runtime.IntegerValue)
	if !ok1 || !ok2 {
		return errf(kerr.TypeMismatch, n.Pos(), "cycle from/to requires integer bounds")
	}
	for i := si.Value; i < ei.Value; i++ {
		childEnv := runtime.NewEnclosed(env)
		bindPattern(childEnv, n.Var, &runtime.IntegerValue{Value: i})
		sig := it.execBlock(childEnv, n.Body)
		switch sig.Kind {
		case sigBreak:
			return noSignal
		case sigContinue, sigNone:
			continue
		default:
			return sig
		}
	}
	return noSignal
}

func (it *Interp) execDelegate(env *runtime.Environment, n *ast.DelegateStatement) Signal {
	src := it.evalExpr(env, n.Iterable)
	if sig, ok := asErrSignal(src); ok {
		return sig
	}
	gen := it.currentGen()
	var stopSig Signal
	errv := it.iterate(src, n.Pos(), func(el runtime.Value) (bool, runtime.Value) {
		if gen != nil {
			if errv := gen.yield(el); errv != nil {
				stopSig = errSignal(errv)
				return true, nil
			}
			return false, nil
		}
		stopSig = returnSignal(el)
		return true, nil
	})
	if stopSig.Kind != sigNone {
		return stopSig
	}
	if errv != nil {
		if sig, ok := asErrSignal(errv); ok {
			return sig
		}
	}
	return noSignal
}

func (it *Interp) execIncorporate(env *runtime.Environment, n *ast.IncorporateStatement) Signal {
	prog, err := it.loadIncorporated(n.Path)
	if err != nil {
		return errSignal(err)
	}
	if err := it.RunIncorporated(env, prog, n.Path); err != nil {
		return errSignal(err)
	}
	return noSignal
}

func (it *Interp) execAttempt(env *runtime.Environment, n *ast.AttemptStatement) Signal {
	sig := it.execBlock(runtime.NewEnclosed(env), n.Body)
	if sig.Kind != sigError {
		return sig
	}
	if n.Recover == nil {
		return sig
	}
	recoverEnv := runtime.NewEnclosed(env)
	if n.ErrorVar != "" {
		recoverEnv.Define(n.ErrorVar, &runtime.StringValue{Value: sig.Err.Error()})
	}
	return it.execBlock(recoverEnv, n.Recover)
}

func (it *Interp) execSituation(env *runtime.Environment, n *ast.SituationStatement) Signal {
	scrutinee := it.evalExpr(env, n.Value)
	if sig, ok := asErrSignal(scrutinee); ok {
		return sig
	}
	for _, align := range n.Alignments {
		if align.IsOtherwise {
			continue
		}
		for _, ve := range align.Values {
			v := it.evalExpr(env, ve)
			if sig, ok := asErrSignal(v); ok {
				return sig
			}
			if runtime.Equals(scrutinee, v) {
				return it.execBlock(runtime.NewEnclosed(env), align.Body)
			}
		}
	}
	for _, align := range n.Alignments {
		if align.IsOtherwise {
			return it.execBlock(runtime.NewEnclosed(env), align.Body)
		}
	}
	return noSignal
}
