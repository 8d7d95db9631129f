package evaluator

import (
	"testing"

	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

func i(v int64) *runtime.IntegerValue { return &runtime.IntegerValue{Value: v} }
func f(v float64) *runtime.FloatValue { return &runtime.FloatValue{Value: v} }
func s(v string) *runtime.StringValue { return &runtime.StringValue{Value: v} }

func TestEvalArithIntegerPromotion(t *testing.T) {
	v := evalArith("+", i(2), f(1.5), token.Position{})
	fv, ok := v.(*runtime.FloatValue)
	if !ok || fv.Value != 3.5 {
		t.Fatalf("expected float 3.5, got %#v", v)
	}

	v = evalArith("+", i(2), i(3), token.Position{})
	iv, ok := v.(*runtime.IntegerValue)
	if !ok || iv.Value != 5 {
		t.Fatalf("expected int 5, got %#v", v)
	}
}

func TestEvalArithStringConcatCoercesRHS(t *testing.T) {
	v := evalArith("+", s("n="), i(5), token.Position{})
	sv, ok := v.(*runtime.StringValue)
	if !ok || sv.Value != "n=5" {
		t.Fatalf("expected string \"n=5\", got %#v", v)
	}
}

func TestEvalArithStringRepeat(t *testing.T) {
	v := evalArith("*", s("ab"), i(3), token.Position{})
	sv, ok := v.(*runtime.StringValue)
	if !ok || sv.Value != "ababab" {
		t.Fatalf("expected \"ababab\", got %#v", v)
	}
}

func TestEvalArithDivisionAlwaysFloat(t *testing.T) {
	v := evalArith("/", i(4), i(2), token.Position{})
	fv, ok := v.(*runtime.FloatValue)
	if !ok || fv.Value != 2 {
		t.Fatalf("expected float 2, got %#v", v)
	}
}

func TestEvalArithDivisionByZero(t *testing.T) {
	v := evalArith("/", i(1), i(0), token.Position{})
	if !runtime.IsError(v) {
		t.Fatalf("expected a DivisionByZero error, got %#v", v)
	}
}

func TestEvalArithIntDivModLaw(t *testing.T) {
	// a // b * b + a % b = a, and sign(a % b) = sign(a) (or zero).
	cases := []struct{ a, b int64 }{
		{7, 2}, {-7, 2}, {7, -2}, {-7, -2}, {0, 5},
	}
	for _, c := range cases {
		q := evalArith("//", i(c.a), i(c.b), token.Position{}).(*runtime.IntegerValue).Value
		m := evalArith("%", i(c.a), i(c.b), token.Position{}).(*runtime.IntegerValue).Value
		if q*c.b+m != c.a {
			t.Errorf("a=%d b=%d: %d*%d+%d = %d, want %d", c.a, c.b, q, c.b, m, q*c.b+m, c.a)
		}
		if m != 0 && (m < 0) != (c.a < 0) {
			t.Errorf("a=%d b=%d: sign(a %% b)=%d should match sign(a)", c.a, c.b, m)
		}
	}
}

func TestEvalArithIntDivModByZero(t *testing.T) {
	if !runtime.IsError(evalArith("//", i(1), i(0), token.Position{})) {
		t.Fatal("expected DivisionByZero for //")
	}
	if !runtime.IsError(evalArith("%", i(1), i(0), token.Position{})) {
		t.Fatal("expected DivisionByZero for %")
	}
}

func TestEvalArithPowerAlwaysFloat(t *testing.T) {
	v := evalArith("**", i(2), i(3), token.Position{})
	fv, ok := v.(*runtime.FloatValue)
	if !ok || fv.Value != 8 {
		t.Fatalf("expected float 8, got %#v", v)
	}
}

func TestEvalArithTypeMismatch(t *testing.T) {
	v := evalArith("-", s("x"), i(1), token.Position{})
	if !runtime.IsError(v) {
		t.Fatal("expected a TypeMismatch error subtracting from a string")
	}
}

func TestEvalArithComparisons(t *testing.T) {
	if !evalArith("<", i(1), i(2), token.Position{}).(*runtime.BooleanValue).Value {
		t.Error("1 < 2 should be true")
	}
	if evalArith(">=", i(1), i(2), token.Position{}).(*runtime.BooleanValue).Value {
		t.Error("1 >= 2 should be false")
	}
	if evalArith("==", i(2), f(2.0), token.Position{}).(*runtime.BooleanValue).Value {
		t.Error("2 == 2.0 should be false (equality requires identical concrete types)")
	}
	if !evalArith("==", i(2), i(2), token.Position{}).(*runtime.BooleanValue).Value {
		t.Error("2 == 2 should be true")
	}
}
