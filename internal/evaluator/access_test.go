package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/lexer"
	"github.com/noobforanonymous/keikaku-programming-language/internal/parser"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// runProgram lexes, parses and runs src against a fresh Interp, returning
// everything written to declare()'s sink.
func runProgram(t *testing.T, src string) string {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	var buf bytes.Buffer
	it := New(&buf, strings.NewReader(""))
	it.Run(prog)
	return buf.String()
}

// fakeNode satisfies ast.Node for tests that need a position but don't care
// which one.
type fakeNode struct{}

func (fakeNode) TokenLiteral() string { return "" }
func (fakeNode) String() string       { return "" }
func (fakeNode) Pos() token.Position  { return token.Position{} }

var _ ast.Node = fakeNode{}

func TestCheckPrivateAccessOutsideAnyMethod(t *testing.T) {
	it := New(nil, strings.NewReader(""))
	class := &runtime.ClassValue{Name: "C"}
	inst := &runtime.InstanceValue{Class: class, Fields: runtime.NewIsolated()}

	err := it.checkPrivateAccess(inst, "_x", fakeNode{}, "denied")
	if err == nil {
		t.Fatal("expected PrivateAccess error when no self is bound")
	}
}

func TestCheckPrivateAccessFromBoundSelf(t *testing.T) {
	it := New(nil, strings.NewReader(""))
	class := &runtime.ClassValue{Name: "C"}
	inst := &runtime.InstanceValue{Class: class, Fields: runtime.NewIsolated()}

	it.pushSelf(inst)
	defer it.popSelf()

	if err := it.checkPrivateAccess(inst, "_x", fakeNode{}, "denied"); err != nil {
		t.Fatalf("expected no error when self is the receiver, got %v", err)
	}
}

func TestCheckPrivateAccessFromDifferentSelf(t *testing.T) {
	it := New(nil, strings.NewReader(""))
	class := &runtime.ClassValue{Name: "C"}
	inst := &runtime.InstanceValue{Class: class, Fields: runtime.NewIsolated()}
	other := &runtime.InstanceValue{Class: class, Fields: runtime.NewIsolated()}

	it.pushSelf(other)
	defer it.popSelf()

	if err := it.checkPrivateAccess(inst, "_x", fakeNode{}, "denied"); err == nil {
		t.Fatal("expected PrivateAccess when bound self is a different instance")
	}
}

func TestCheckPrivateAccessPublicNameAlwaysAllowed(t *testing.T) {
	it := New(nil, strings.NewReader(""))
	class := &runtime.ClassValue{Name: "C"}
	inst := &runtime.InstanceValue{Class: class, Fields: runtime.NewIsolated()}

	if err := it.checkPrivateAccess(inst, "name", fakeNode{}, "denied"); err != nil {
		t.Fatalf("public names should never trigger PrivateAccess, got %v", err)
	}
}

func TestIsPrivateName(t *testing.T) {
	if !isPrivateName("_x") {
		t.Error("_x should be private")
	}
	if isPrivateName("x") {
		t.Error("x should not be private")
	}
	if isPrivateName("") {
		t.Error("empty string should not be private")
	}
}

func TestEvalIndexNegativeReturnsVoid(t *testing.T) {
	out := runProgram(t, `
designate xs = [1,2,3]
declare(xs[-1])
`)
	if !strings.Contains(out, "void") {
		t.Fatalf("expected a negative plain index to read as void, got %q", out)
	}
}

func TestEvalIndexDictLookup(t *testing.T) {
	out := runProgram(t, `
designate d = {"a": 1}
declare(d["a"])
`)
	if !strings.Contains(out, "1") {
		t.Fatalf("expected dict lookup to return 1, got %q", out)
	}
}

func TestAssignIndexOutOfBounds(t *testing.T) {
	out := runProgram(t, `
designate xs = [1,2,3]
attempt:
  xs[10] = 9
recover as e:
  declare(e)
`)
	if !strings.Contains(out, "out of bounds") {
		t.Fatalf("expected an out-of-bounds assignment to be recoverable, got %q", out)
	}
}

func TestAssignIndexInBoundsUpdates(t *testing.T) {
	out := runProgram(t, `
designate xs = [1,2,3]
xs[1] = 9
declare(xs)
`)
	if !strings.Contains(out, "9") {
		t.Fatalf("expected xs[1]=9 to take effect, got %q", out)
	}
}

func TestEvalSliceNegativeBoundsAndStep(t *testing.T) {
	out := runProgram(t, `
designate xs = [0,1,2,3,4]
declare(xs[1:-1])
declare(xs[::-1])
`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines of output, got %q", out)
	}
	if !strings.Contains(lines[0], "1") || !strings.Contains(lines[0], "2") || !strings.Contains(lines[0], "3") {
		t.Errorf("xs[1:-1] should be [1,2,3], got %q", lines[0])
	}
	if !strings.Contains(lines[1], "4") || strings.Index(lines[1], "4") > strings.Index(lines[1], "0") {
		t.Errorf("xs[::-1] should be reversed, got %q", lines[1])
	}
}

func TestEvalSliceZeroStepIsAnError(t *testing.T) {
	out := runProgram(t, `
attempt:
  designate xs = [1,2,3]
  declare(xs[::0])
recover as e:
  declare(e)
`)
	if !strings.Contains(out, "step cannot be zero") {
		t.Fatalf("expected a step of 0 to be recoverable, got %q", out)
	}
}
