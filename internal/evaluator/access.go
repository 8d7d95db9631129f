package evaluator

import (
	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
)

// isPrivateName reports whether name is private: identifiers starting
// with `_` are only reachable from within their own instance.
func isPrivateName(name string) bool { return len(name) > 0 && name[0] == '_' }

// checkPrivateAccess enforces that a `_`-prefixed member is only reachable when
// the currently bound self is the same instance as the receiver.
func (it *Interp) checkPrivateAccess(recv *runtime.InstanceValue, name string, pos ast.Node, msg string) *kerr.RuntimeError {
	if !isPrivateName(name) {
		return nil
	}
	self, ok := it.currentSelf()
	if !ok || self != recv {
		return kerr.New(kerr.PrivateAccess, pos.Pos(), msg)
	}
	return nil
}

func (it *Interp) evalMember(env *runtime.Environment, n *ast.MemberExpression) runtime.Value {
	obj := it.evalExpr(env, n.Object)
	if runtime.IsError(obj) {
		return obj
	}
	inst, ok := obj.(*runtime.InstanceValue)
	if !ok {
		return errValue(kerr.New(kerr.NoSuchMember, n.Pos(), kerr.MsgOnlyInstanceMembers))
	}
	if err := it.checkPrivateAccess(inst, n.Name, n, kerr.MsgPrivateAccess); err != nil {
		return errValue(err)
	}
	if v, ok := inst.Fields.Get(n.Name); ok {
		return v
	}
	if fn, _ := inst.Class.ResolveMethod(n.Name); fn != nil {
		return fn
	}
	return errValue(kerr.Newf(kerr.NoSuchMember, n.Pos(), "no such member: %s", n.Name))
}

// assignMember handles the member-access branch of assignment: defines or
// updates a field on the instance's isolated scope.
func (it *Interp) assignMember(env *runtime.Environment, n *ast.MemberExpression, val runtime.Value) runtime.Value {
	obj := it.evalExpr(env, n.Object)
	if runtime.IsError(obj) {
		return obj
	}
	inst, ok := obj.(*runtime.InstanceValue)
	if !ok {
		return errValue(kerr.New(kerr.NoSuchMember, n.Pos(), kerr.MsgOnlyInstanceMembers))
	}
	if err := it.checkPrivateAccess(inst, n.Name, n, kerr.MsgPrivateAssign); err != nil {
		return errValue(err)
	}
	inst.Fields.Define(n.Name, val)
	return runtime.Void
}

func (it *Interp) evalIndex(env *runtime.Environment, n *ast.IndexExpression) runtime.Value {
	obj := it.evalExpr(env, n.Object)
	if runtime.IsError(obj) {
		return obj
	}
	idx := it.evalExpr(env, n.Index)
	if runtime.IsError(idx) {
		return idx
	}
	switch o := obj.(type) {
	case *runtime.ListValue:
		i, ok := idx.(*runtime.IntegerValue)
		if !ok {
			return errValue(kerr.New(kerr.InvalidSlice, n.Pos(), kerr.MsgInvalidIndexTarget))
		}
		if i.Value < 0 || int(i.Value) >= len(o.Elements) {
			return runtime.Void
		}
		return o.Elements[i.Value]
	case *runtime.DictValue:
		key := unquoted(idx)
		if v, ok := o.Values[key]; ok {
			return v
		}
		return runtime.Void
	case *runtime.StringValue:
		i, ok := idx.(*runtime.IntegerValue)
		if !ok {
			return errValue(kerr.New(kerr.InvalidSlice, n.Pos(), kerr.MsgInvalidIndexTarget))
		}
		runes := []rune(o.Value)
		if i.Value < 0 || int(i.Value) >= len(runes) {
			return runtime.Void
		}
		return &runtime.StringValue{Value: string(runes[i.Value])}
	}
	return errValue(kerr.New(kerr.InvalidSlice, n.Pos(), kerr.MsgInvalidIndexTarget))
}

// assignIndex handles the index branch of assignment: list-element update,
// raising IndexOutOfBounds when the index doesn't exist.
func (it *Interp) assignIndex(env *runtime.Environment, n *ast.IndexExpression, val runtime.Value) runtime.Value {
	obj := it.evalExpr(env, n.Object)
	if runtime.IsError(obj) {
		return obj
	}
	idx := it.evalExpr(env, n.Index)
	if runtime.IsError(idx) {
		return idx
	}
	switch o := obj.(type) {
	case *runtime.ListValue:
		i, ok := idx.(*runtime.IntegerValue)
		if !ok || i.Value < 0 || int(i.Value) >= len(o.Elements) {
			return errValue(kerr.New(kerr.IndexOutOfBounds, n.Pos(), kerr.MsgIndexOutOfBounds))
		}
		o.Elements[i.Value] = val
		return runtime.Void
	case *runtime.DictValue:
		o.Set(unquoted(idx), val)
		return runtime.Void
	}
	return errValue(kerr.New(kerr.InvalidSlice, n.Pos(), kerr.MsgInvalidIndexTarget))
}

func (it *Interp) evalSlice(env *runtime.Environment, n *ast.SliceExpression) runtime.Value {
	obj := it.evalExpr(env, n.Object)
	if runtime.IsError(obj) {
		return obj
	}

	var length int
	var str string
	var list []runtime.Value
	isStr := false
	switch o := obj.(type) {
	case *runtime.ListValue:
		list = o.Elements
		length = len(list)
	case *runtime.StringValue:
		str = o.Value
		length = len([]rune(str))
		isStr = true
	default:
		return errValue(kerr.New(kerr.InvalidSlice, n.Pos(), kerr.MsgInvalidSliceTarget))
	}

	step := int64(1)
	if n.Step != nil {
		sv := it.evalExpr(env, n.Step)
		if runtime.IsError(sv) {
			return sv
		}
		si, ok := sv.(*runtime.IntegerValue)
		if !ok {
			return errValue(kerr.New(kerr.InvalidSlice, n.Pos(), kerr.MsgInvalidSliceStep))
		}
		step = si.Value
		if step == 0 {
			return errValue(kerr.New(kerr.InvalidSlice, n.Pos(), kerr.MsgInvalidSliceStep))
		}
	}

	var resolveErr runtime.Value
	resolve := func(e ast.Expression, def int) int {
		if e == nil {
			return def
		}
		v := it.evalExpr(env, e)
		if runtime.IsError(v) {
			resolveErr = v
			return 0
		}
		iv, ok := v.(*runtime.IntegerValue)
		if !ok {
			resolveErr = errValue(kerr.New(kerr.InvalidSlice, n.Pos(), kerr.MsgInvalidSliceTarget))
			return 0
		}
		i := int(iv.Value)
		if i < 0 {
			i += length
		}
		if i < 0 {
			i = 0
		}
		if i > length {
			i = length
		}
		return i
	}

	var start, end int
	if step > 0 {
		start = resolve(n.Start, 0)
		end = resolve(n.End, length)
	} else {
		start = resolve(n.Start, length-1)
		end = resolve(n.End, -1)
	}
	if resolveErr != nil {
		return resolveErr
	}

	var outList []runtime.Value
	var outStr []rune
	runes := []rune(str)
	if step > 0 {
		for i := start; i < end && i < length; i += int(step) {
			if isStr {
				outStr = append(outStr, runes[i])
			} else {
				outList = append(outList, list[i])
			}
		}
	} else {
		for i := start; i > end && i >= 0 && i < length; i += int(step) {
			if isStr {
				outStr = append(outStr, runes[i])
			} else {
				outList = append(outList, list[i])
			}
		}
	}
	if isStr {
		return &runtime.StringValue{Value: string(outStr)}
	}
	if outList == nil {
		outList = []runtime.Value{}
	}
	return &runtime.ListValue{Elements: outList}
}
