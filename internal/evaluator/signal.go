// Package evaluator walks the AST produced by internal/parser against the
// Value/Environment model in internal/runtime, following a visitor-style
// evaluator design but replacing an EvalResult wrapper with two narrower
// mechanisms: expressions surface failure as a runtime.ErrorValue (see
// runtime.IsError), and statements surface control flow as a Signal.
package evaluator

import (
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

type sigKind int

const (
	sigNone sigKind = iota
	sigBreak
	sigContinue
	sigReturn // a yield acting as a protocol's return value
	sigError
)

// Signal is what statement execution propagates upward: break, continue,
// return, and error, modeled as a tagged value instead of four mutable
// booleans on an interpreter struct.
type Signal struct {
	Kind  sigKind
	Value runtime.Value        // set when Kind == sigReturn
	Err   *kerr.RuntimeError   // set when Kind == sigError
}

var noSignal = Signal{Kind: sigNone}

func returnSignal(v runtime.Value) Signal { return Signal{Kind: sigReturn, Value: v} }

func errSignal(err *kerr.RuntimeError) Signal { return Signal{Kind: sigError, Err: err} }

func errf(kind kerr.Kind, pos token.Position, format string, args ...interface{}) Signal {
	return errSignal(kerr.Newf(kind, pos, format, args...))
}

// asErrSignal converts an expression-level error Value into a statement
// Signal, the seam between the two error-propagation idioms described above.
func asErrSignal(v runtime.Value) (Signal, bool) {
	if ev, ok := v.(*runtime.ErrorValue); ok {
		return errSignal(ev.Err), true
	}
	return noSignal, false
}
