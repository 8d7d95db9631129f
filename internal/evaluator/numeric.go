package evaluator

import (
	"math"

	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// asFloat extracts a numeric Value as float64, along with whether either
// operand of the pair this came from should promote the result to float:
// if either operand is a float, the result is a float.
func asFloat(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case *runtime.IntegerValue:
		return float64(n.Value), false
	case *runtime.FloatValue:
		return n.Value, true
	}
	return 0, false
}

func isNumeric(v runtime.Value) bool {
	switch v.(type) {
	case *runtime.IntegerValue, *runtime.FloatValue:
		return true
	}
	return false
}

// unquoted renders v the way string concatenation coercion wants it: plain
// to_string, never the quoted repr form used at list/dict boundaries.
func unquoted(v runtime.Value) string { return v.String() }

// evalArith implements the arithmetic/comparison table for `+ - * / // % **`
// and the six comparison operators, given already-evaluated operands.
func evalArith(op string, l, r runtime.Value, pos token.Position) runtime.Value {
	// String coercion: `+` with any string operand concatenates; `*` of
	// string×int repeats.
	if op == "+" {
		if ls, ok := l.(*runtime.StringValue); ok {
			return &runtime.StringValue{Value: ls.Value + unquoted(r)}
		}
		if rs, ok := r.(*runtime.StringValue); ok {
			return &runtime.StringValue{Value: unquoted(l) + rs.Value}
		}
	}
	if op == "*" {
		if ls, ok := l.(*runtime.StringValue); ok {
			if n, ok := r.(*runtime.IntegerValue); ok {
				return repeatString(ls.Value, n.Value)
			}
		}
		if rs, ok := r.(*runtime.StringValue); ok {
			if n, ok := l.(*runtime.IntegerValue); ok {
				return repeatString(rs.Value, n.Value)
			}
		}
	}

	switch op {
	case "==":
		return &runtime.BooleanValue{Value: runtime.Equals(l, r)}
	case "!=":
		return &runtime.BooleanValue{Value: !runtime.Equals(l, r)}
	}

	if !isNumeric(l) || !isNumeric(r) {
		return errValue(kerr.Newf(kerr.TypeMismatch, pos, "operator %q is not defined for %s and %s", op, l.Type(), r.Type()))
	}

	lf, lIsFloat := asFloat(l)
	rf, rIsFloat := asFloat(r)
	resultIsFloat := lIsFloat || rIsFloat

	switch op {
	case "<", "<=", ">", ">=":
		var b bool
		switch op {
		case "<":
			b = lf < rf
		case "<=":
			b = lf <= rf
		case ">":
			b = lf > rf
		case ">=":
			b = lf >= rf
		}
		return &runtime.BooleanValue{Value: b}
	case "/":
		if rf == 0 {
			return errValue(kerr.New(kerr.DivisionByZero, pos, kerr.MsgDivisionByZero))
		}
		return &runtime.FloatValue{Value: lf / rf}
	case "**":
		return &runtime.FloatValue{Value: math.Pow(lf, rf)}
	case "+", "-", "*":
		if resultIsFloat {
			var out float64
			switch op {
			case "+":
				out = lf + rf
			case "-":
				out = lf - rf
			case "*":
				out = lf * rf
			}
			return &runtime.FloatValue{Value: out}
		}
		li := l.(*runtime.IntegerValue).Value
		ri := r.(*runtime.IntegerValue).Value
		var out int64
		switch op {
		case "+":
			out = li + ri
		case "-":
			out = li - ri
		case "*":
			out = li * ri
		}
		return &runtime.IntegerValue{Value: out}
	case "//", "%":
		if resultIsFloat {
			li, ri := int64(lf), int64(rf)
			if ri == 0 {
				return errValue(kerr.New(kerr.DivisionByZero, pos, kerr.MsgDivisionByZero))
			}
			q, m := truncDiv(li, ri)
			if op == "//" {
				return &runtime.FloatValue{Value: float64(q)}
			}
			return &runtime.FloatValue{Value: float64(m)}
		}
		li := l.(*runtime.IntegerValue).Value
		ri := r.(*runtime.IntegerValue).Value
		if ri == 0 {
			return errValue(kerr.New(kerr.DivisionByZero, pos, kerr.MsgDivisionByZero))
		}
		q, m := truncDiv(li, ri)
		if op == "//" {
			return &runtime.IntegerValue{Value: q}
		}
		return &runtime.IntegerValue{Value: m}
	}
	return errValue(kerr.Newf(kerr.TypeMismatch, pos, "unknown operator %q", op))
}

// truncDiv implements truncated-toward-zero integer division and a modulo
// that follows the dividend's sign, so that `a // b * b + a % b == a` always.
func truncDiv(a, b int64) (q, m int64) {
	q = a / b
	m = a % b
	return
}

func repeatString(s string, n int64) runtime.Value {
	if n <= 0 {
		return &runtime.StringValue{Value: ""}
	}
	out := make([]byte, 0, len(s)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return &runtime.StringValue{Value: string(out)}
}

func errValue(e *kerr.RuntimeError) runtime.Value { return &runtime.ErrorValue{Err: e} }
