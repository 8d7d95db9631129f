package evaluator

import (
	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// genStatus tracks a generator's three-state lifecycle.
type genStatus int

const (
	genSuspended genStatus = iota
	genRunning
	genDone
)

// yieldMsg is what a generator's goroutine sends back to whoever is
// advancing it: a yielded value, a terminal error, or plain exhaustion.
type yieldMsg struct {
	value    runtime.Value
	err      *kerr.RuntimeError
	finished bool
}

// Generator is the engine behind a sequence-declared function's handle.
// Rather than hand-rolling a frame-stack state machine to simulate
// suspension, this keeps the function body running on its own goroutine
// and lets a `yield` block on a channel rendezvous: a goroutine parked on
// channel I/O is a paused task, which is exactly what advancing a
// generator needs. The two goroutines (generator and advancer) alternate
// strictly through yieldCh/resumeCh, so there is never more than one of
// them actually running at a time — no additional locking is needed for
// the shared Interp the generator's goroutine closes over.
type Generator struct {
	fn      *runtime.FunctionValue
	args    []runtime.Value
	status  genStatus
	started bool

	yieldCh  chan yieldMsg
	resumeCh chan struct{}

	injected    runtime.Value
	hasInjected bool
	disrupt     *kerr.RuntimeError
}

func (it *Interp) newGeneratorValue(fn *runtime.FunctionValue, args []runtime.Value) *runtime.GeneratorValue {
	gen := &Generator{
		fn:       fn,
		args:     args,
		yieldCh:  make(chan yieldMsg),
		resumeCh: make(chan struct{}),
	}
	return &runtime.GeneratorValue{Name: fn.Name, Impl: gen}
}

// advanceGenerator starts the generator's goroutine on first call, or wakes
// it past its last yield on subsequent calls, and waits for the next
// yield/finish/error.
func (it *Interp) advanceGenerator(gv *runtime.GeneratorValue) runtime.Value {
	gen := gv.Impl.(*Generator)
	if gen.status == genDone {
		return runtime.Void
	}
	it.pushGen(gen)
	defer it.popGen()

	gen.status = genRunning
	if !gen.started {
		gen.started = true
		go gen.run(it)
	} else {
		gen.resumeCh <- struct{}{}
	}

	msg := <-gen.yieldCh
	switch {
	case msg.err != nil:
		gen.status = genDone
		return errValue(msg.err)
	case msg.finished:
		gen.status = genDone
		return runtime.Void
	default:
		gen.status = genSuspended
		return msg.value
	}
}

// run executes the generator's body to completion on its own goroutine,
// reporting its outcome over yieldCh. Each `yield`/`delegate` encountered
// while it.currentGen() == gen blocks on gen.yield below instead of
// returning, which is what makes the body resumable.
func (g *Generator) run(it *Interp) {
	callEnv := runtime.NewEnclosed(g.fn.Env)
	if errv := it.bindParamsWithDefaults(callEnv, g.fn.Params, g.args); runtime.IsError(errv) {
		g.yieldCh <- yieldMsg{err: errv.(*runtime.ErrorValue).Err}
		return
	}
	body, ok := g.fn.Body.(*ast.Block)
	if !ok {
		g.yieldCh <- yieldMsg{finished: true}
		return
	}
	sig := it.execBlock(callEnv, body)
	if sig.Kind == sigError {
		g.yieldCh <- yieldMsg{err: sig.Err}
		return
	}
	g.yieldCh <- yieldMsg{finished: true}
}

// yield is called from inside the generator's own goroutine by a Yield or
// Delegate statement: it hands the value to whoever is advancing, then
// blocks until resumed, surfacing any error injected meanwhile by disrupt.
func (g *Generator) yield(v runtime.Value) *kerr.RuntimeError {
	g.yieldCh <- yieldMsg{value: v}
	<-g.resumeCh
	if g.disrupt != nil {
		err := g.disrupt
		g.disrupt = nil
		return err
	}
	return nil
}

// transmit implements `transmit(gen, v)`: stores v as the injected value
// and advances the generator once.
func transmitGenerator(it *Interp, gv *runtime.GeneratorValue, v runtime.Value) runtime.Value {
	gen := gv.Impl.(*Generator)
	gen.injected = v
	gen.hasInjected = true
	return it.advanceGenerator(gv)
}

// receiveInjected implements the `receive()` builtin, valid only inside a
// running generator: returns the value stashed by transmit and clears it.
func receiveInjected(it *Interp) runtime.Value {
	gen := it.currentGen()
	if gen == nil || !gen.hasInjected {
		return runtime.Void
	}
	v := gen.injected
	gen.hasInjected = false
	gen.injected = nil
	return v
}

// disruptGenerator implements `disrupt(gen, message)`: marks an error to
// surface at the generator's next yield resumption and advances it once,
// same as proceed.
func disruptGenerator(it *Interp, gv *runtime.GeneratorValue, message string) runtime.Value {
	gen := gv.Impl.(*Generator)
	gen.disrupt = kerr.Newf(kerr.TypeMismatch, token.Position{}, "disrupted: %s", message)
	return it.advanceGenerator(gv)
}
