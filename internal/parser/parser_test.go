package parser

import (
	"testing"

	"github.com/noobforanonymous/keikaku-programming-language/internal/ast"
	"github.com/noobforanonymous/keikaku-programming-language/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestParseDesignateStatement(t *testing.T) {
	prog := parseProgram(t, "designate x = 5\n")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.DesignateStatement)
	if !ok {
		t.Fatalf("expected *ast.DesignateStatement, got %T", prog.Statements[0])
	}
	ident, ok := stmt.Target.(*ast.Identifier)
	if !ok || ident.Value != "x" {
		t.Fatalf("expected target identifier x, got %#v", stmt.Target)
	}
	lit, ok := stmt.Value.(*ast.IntegerLiteral)
	if !ok || lit.Value != 5 {
		t.Fatalf("expected integer literal 5, got %#v", stmt.Value)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseProgram(t, "designate x = 1 + 2 * 3\n")
	stmt := prog.Statements[0].(*ast.DesignateStatement)
	bin, ok := stmt.Value.(*ast.BinaryExpression)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level +, got %#v", stmt.Value)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected * to bind tighter than +, got %#v", bin.Right)
	}
}

func TestParseCycleWhileBlock(t *testing.T) {
	src := "cycle while true:\n  designate x = 1\n  break\n"
	prog := parseProgram(t, src)
	loop, ok := prog.Statements[0].(*ast.CycleWhileStatement)
	if !ok {
		t.Fatalf("expected *ast.CycleWhileStatement, got %T", prog.Statements[0])
	}
	if len(loop.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements in loop body, got %d", len(loop.Body.Stmts))
	}
	if _, ok := loop.Body.Stmts[1].(*ast.BreakStatement); !ok {
		t.Fatalf("expected break as second statement, got %T", loop.Body.Stmts[1])
	}
}

func TestParseEntityWithParent(t *testing.T) {
	src := "entity B inherits A:\n  protocol greet(): yield \"A\"\n"
	prog := parseProgram(t, src)
	ent, ok := prog.Statements[0].(*ast.EntityStatement)
	if !ok {
		t.Fatalf("expected *ast.EntityStatement, got %T", prog.Statements[0])
	}
	if ent.Name != "B" || ent.Parent != "A" {
		t.Fatalf("expected B inherits A, got name=%q parent=%q", ent.Name, ent.Parent)
	}
}

func TestParseCallWithSpreadArgument(t *testing.T) {
	prog := parseProgram(t, "designate x = f(1, ...xs)\n")
	stmt := prog.Statements[0].(*ast.DesignateStatement)
	call, ok := stmt.Value.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected *ast.CallExpression, got %T", stmt.Value)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	if _, ok := call.Args[1].(*ast.SpreadExpression); !ok {
		t.Fatalf("expected second arg to be a spread, got %#v", call.Args[1])
	}
}

func TestParseSituationStatement(t *testing.T) {
	src := "situation x:\n  alignment 1: declare(\"one\")\n  alignment 2,3: declare(\"two or three\")\n  otherwise: declare(\"other\")\n"
	prog := parseProgram(t, src)
	sit, ok := prog.Statements[0].(*ast.SituationStatement)
	if !ok {
		t.Fatalf("expected *ast.SituationStatement, got %T", prog.Statements[0])
	}
	if len(sit.Alignments) != 3 {
		t.Fatalf("expected 3 alignments (2 cases + otherwise), got %d", len(sit.Alignments))
	}
	if len(sit.Alignments[1].Values) != 2 {
		t.Fatalf("expected second alignment to have 2 values, got %d", len(sit.Alignments[1].Values))
	}
	if !sit.Alignments[2].IsOtherwise {
		t.Fatal("expected the last alignment to be the otherwise clause")
	}
}

func TestParseErrorRecorded(t *testing.T) {
	p := New(lexer.New("designate = 5\n"))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for a missing target")
	}
}
