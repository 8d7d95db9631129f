package lexer

import (
	"testing"

	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

func TestNextToken(t *testing.T) {
	input := "designate x = 5\nx = x + 10\n"

	tests := []struct {
		expectedKind    token.Kind
		expectedLiteral string
	}{
		{token.DESIGNATE, "designate"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.INT, "10"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedKind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "cycle while through from to as protocol sequence delegate yield " +
		"and or not break continue true false entity manifest self inherits " +
		"situation alignment ascend for where async await"

	tests := []token.Kind{
		token.CYCLE, token.WHILE, token.THROUGH, token.FROM, token.TO, token.AS,
		token.PROTOCOL, token.SEQUENCE, token.DELEGATE, token.YIELD,
		token.AND, token.OR, token.NOT, token.BREAK, token.CONTINUE, token.TRUE, token.FALSE,
		token.ENTITY, token.MANIFEST, token.SELF, token.INHERITS,
		token.SITUATION, token.ALIGNMENT, token.ASCEND, token.FOR, token.WHERE, token.ASYNC, token.AWAIT,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - expected=%s, got=%s (literal=%q)", i, want, tok.Kind, tok.Literal)
		}
	}
}

func TestIndentation(t *testing.T) {
	input := "cycle while true:\n  declare 1\n  declare 2\ndeclare 3\n"

	var kinds []token.Kind
	l := New(input)
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}

	// Expect an INDENT after the first line and a DEDENT before the last declare.
	hasIndent, hasDedent := false, false
	for _, k := range kinds {
		if k == token.INDENT {
			hasIndent = true
		}
		if k == token.DEDENT {
			hasDedent = true
		}
	}
	if !hasIndent {
		t.Fatalf("expected an INDENT token, got kinds=%v", kinds)
	}
	if !hasDedent {
		t.Fatalf("expected a DEDENT token, got kinds=%v", kinds)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\t\"c\""`)
	tok := l.NextToken()
	if tok.Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Kind)
	}
	want := "a\nb\t\"c\""
	if tok.Literal != want {
		t.Fatalf("expected literal %q, got %q", want, tok.Literal)
	}
}

func TestOperators(t *testing.T) {
	input := "// ** := == != <= >= => ... "
	tests := []token.Kind{
		token.DSLASH, token.DSTAR, token.DEFINE, token.EQ, token.NEQ,
		token.LE, token.GE, token.ARROW, token.ELLIPSIS,
	}
	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - expected=%s, got=%s (literal=%q)", i, want, tok.Kind, tok.Literal)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Kind)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lex error, got %d", len(l.Errors()))
	}
}
