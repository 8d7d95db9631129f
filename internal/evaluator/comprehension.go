package evaluator

import (
	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// iterate walks a list or generator handle (advancing it to exhaustion),
// invoking fn per element. Shared by list comprehensions and the
// cycle-through statement; anything else (including a bare string) raises
// NotIterable. fn returns (stop, err); a non-nil err or stop=true ends
// iteration early.
func (it *Interp) iterate(v runtime.Value, pos token.Position, fn func(runtime.Value) (bool, runtime.Value)) runtime.Value {
	switch iter := v.(type) {
	case *runtime.ListValue:
		for _, el := range iter.Elements {
			stop, errv := fn(el)
			if errv != nil {
				return errv
			}
			if stop {
				return nil
			}
		}
		return nil
	case *runtime.GeneratorValue:
		for {
			val := it.advanceGenerator(iter)
			if runtime.IsError(val) {
				return val
			}
			gen := iter.Impl.(*Generator)
			if gen.status == genDone {
				return nil
			}
			stop, errv := fn(val)
			if errv != nil {
				return errv
			}
			if stop {
				return nil
			}
		}
	}
	return errValue(kerr.New(kerr.NotIterable, pos, kerr.MsgNotIterable))
}

// evalComprehension evaluates a list comprehension and the `for`/`where`
// generator-expression spelling; both materialize eagerly.
func (it *Interp) evalComprehension(env *runtime.Environment, n *ast.ListComprehension) runtime.Value {
	src := it.evalExpr(env, n.Iterable)
	if runtime.IsError(src) {
		return src
	}
	var out []runtime.Value
	errv := it.iterate(src, n.Pos(), func(el runtime.Value) (bool, runtime.Value) {
		childEnv := runtime.NewEnclosed(env)
		bindPattern(childEnv, n.Var, el)
		if n.Filter != nil {
			keep := it.evalExpr(childEnv, n.Filter)
			if runtime.IsError(keep) {
				return true, keep
			}
			if !runtime.Truthy(keep) {
				return false, nil
			}
		}
		val := it.evalExpr(childEnv, n.Result)
		if runtime.IsError(val) {
			return true, val
		}
		out = append(out, val)
		return false, nil
	})
	if errv != nil {
		return errv
	}
	if out == nil {
		out = []runtime.Value{}
	}
	return &runtime.ListValue{Elements: out}
}
