package evaluator

import (
	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
)

// execEntity builds a ClassValue from an EntityStatement: the parent is
// resolved by name lookup in globals, and every nested
// protocol becomes a method entry closing over the class's own method
// scope so sibling methods can call each other directly.
func (it *Interp) execEntity(env *runtime.Environment, n *ast.EntityStatement) Signal {
	class := &runtime.ClassValue{
		Name:    n.Name,
		Methods: make(map[string]*runtime.FunctionValue),
	}
	if n.Parent != "" {
		pv, err := it.Global.GetErr(n.Parent)
		if err != nil {
			return errf(kerr.UndefinedParent, n.Pos(), "undefined parent entity: %s", n.Parent)
		}
		parent, ok := pv.(*runtime.ClassValue)
		if !ok {
			return errf(kerr.UndefinedParent, n.Pos(), "%s is not an entity", n.Parent)
		}
		class.Parent = parent
	}
	class.MethodScope = runtime.NewEnclosed(env)
	for _, m := range n.Members {
		ps, ok := m.(*ast.ProtocolStatement)
		if !ok {
			continue
		}
		fn := &runtime.FunctionValue{
			Name:       ps.Name,
			Params:     ps.Params,
			Body:       ps.Body,
			Env:        class.MethodScope,
			IsSequence: ps.Sequence,
			IsAsync:    ps.Async,
		}
		class.Methods[ps.Name] = fn
		class.MethodOrder = append(class.MethodOrder, ps.Name)
	}
	it.Global.Define(n.Name, class)
	return noSignal
}

// evalManifest allocates an instance and, if the class chain defines
// `construct`, runs it bound to self.
func (it *Interp) evalManifest(env *runtime.Environment, n *ast.ManifestExpression) runtime.Value {
	cv, err := it.Global.GetErr(n.ClassName)
	if err != nil {
		return errValue(kerr.Newf(kerr.UndefinedName, n.Pos(), "undefined entity: %s", n.ClassName))
	}
	class, ok := cv.(*runtime.ClassValue)
	if !ok {
		return errValue(kerr.Newf(kerr.TypeMismatch, n.Pos(), "%s is not an entity", n.ClassName))
	}
	inst := &runtime.InstanceValue{Class: class, Fields: runtime.NewIsolated()}
	args, errv := it.evalArgs(env, n.Args)
	if errv != nil {
		return errv
	}
	if ctor, _ := class.ResolveMethod("construct"); ctor != nil {
		if v := it.callBoundMethod(inst, ctor, args, n.Pos()); runtime.IsError(v) {
			return v
		}
	}
	return inst
}

// evalAscend implements `ascend ProtocolName(args)`: the parent consulted is
// always self's own (most-derived) class's parent, not the parent of
// whichever class defined the currently executing method.
func (it *Interp) evalAscend(env *runtime.Environment, n *ast.AscendExpression) runtime.Value {
	self, ok := it.currentSelf()
	if !ok {
		return errValue(kerr.New(kerr.SelfOutsideMethod, n.Pos(), kerr.MsgSelfOutsideMethod))
	}
	if self.Class.Parent == nil {
		return errValue(kerr.New(kerr.NoParent, n.Pos(), kerr.MsgNoParent))
	}
	fn, _ := self.Class.Parent.ResolveMethod(n.Name)
	if fn == nil {
		return errValue(kerr.Newf(kerr.NoSuchMethod, n.Pos(), "no such method: %s", n.Name))
	}
	args, errv := it.evalArgs(env, n.Args)
	if errv != nil {
		return errv
	}
	return it.callBoundMethod(self, fn, args, n.Pos())
}
