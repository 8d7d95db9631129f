package evaluator

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
)

// Interp is the root of execution: one Global environment, a stack of
// active method receivers, and a stack of active generators (non-empty
// while a yield/delegate inside a sequence body is executing). No
// operator-overload registry and no exception-class hierarchy, since those
// concerns don't exist here.
type Interp struct {
	Global *runtime.Environment
	Out    io.Writer
	In     *bufio.Reader
	Rand   *rand.Rand

	selfStack []*runtime.InstanceValue
	genStack  []*Generator

	lastDiag string
	repeat   int

	imported map[string]bool
	anomaly  int
	started  time.Time
}

// New builds an Interp with its builtin table installed.
func New(out io.Writer, in io.Reader) *Interp {
	it := &Interp{
		Global:   runtime.NewGlobal(),
		Out:      out,
		In:       bufio.NewReader(in),
		Rand:     rand.New(rand.NewSource(1)),
		imported: make(map[string]bool),
		started:  time.Now(),
	}
	RegisterBuiltins(it)
	return it
}

// currentSelf returns the receiver bound for the innermost active method
// call. ascend always dispatches off this instance's own (most-derived)
// class, not off whichever ancestor method happens to be executing.
func (it *Interp) currentSelf() (*runtime.InstanceValue, bool) {
	if len(it.selfStack) == 0 {
		return nil, false
	}
	return it.selfStack[len(it.selfStack)-1], true
}

func (it *Interp) pushSelf(self *runtime.InstanceValue) {
	it.selfStack = append(it.selfStack, self)
}

func (it *Interp) popSelf() {
	it.selfStack = it.selfStack[:len(it.selfStack)-1]
}

func (it *Interp) currentGen() *Generator {
	if len(it.genStack) == 0 {
		return nil
	}
	return it.genStack[len(it.genStack)-1]
}

func (it *Interp) pushGen(g *Generator) { it.genStack = append(it.genStack, g) }
func (it *Interp) popGen()              { it.genStack = it.genStack[:len(it.genStack)-1] }

// inAnomaly reports whether execution is currently inside an AnomalyStatement
// body: observable to builtins/diagnostics but otherwise semantically inert.
func (it *Interp) inAnomaly() bool { return it.anomaly > 0 }

// Run executes a program's top-level statements. An uncaught runtime error
// aborts the program: subsequent top-level statements do not execute, and
// the process exit status becomes 1.
func (it *Interp) Run(prog *ast.Program) int {
	for _, stmt := range prog.Statements {
		sig := it.execStatement(it.Global, stmt)
		if sig.Kind == sigError {
			it.reportError(sig.Err)
			return 1
		}
	}
	return 0
}

// reportError prints an uncaught error and implements a repeat-counter
// escalation: identical consecutive messages get a visible repeat count
// rather than being printed again verbatim.
func (it *Interp) reportError(e *kerr.RuntimeError) {
	msg := e.Error()
	prefix := "error: "
	if msg == it.lastDiag {
		it.repeat++
		if it.repeat > 0 {
			prefix = fmt.Sprintf("error (repeated x%d): ", it.repeat+1)
		}
	} else {
		it.repeat = 0
		it.lastDiag = msg
	}
	fmt.Fprintln(it.Out, prefix+msg)
}

// RunIncorporated executes an imported program's statements directly into
// env, the current environment. A runtime error here surfaces as
// ImportFailed.
func (it *Interp) RunIncorporated(env *runtime.Environment, prog *ast.Program, path string) *kerr.RuntimeError {
	for _, stmt := range prog.Statements {
		sig := it.execStatement(env, stmt)
		if sig.Kind == sigError {
			return kerr.Newf(kerr.ImportFailed, stmt.Pos(), "failed to incorporate %q: %s", path, sig.Err.Error())
		}
	}
	return nil
}
