package evaluator

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/noobforanonymous/keikaku-programming-language/internal/kerr"
	"github.com/noobforanonymous/keikaku-programming-language/internal/runtime"
	"github.com/noobforanonymous/keikaku-programming-language/internal/token"
)

// RegisterBuiltins installs the fixed builtin table into the global
// environment as ordinary BuiltinValue bindings: plain callables rather
// than a separate dispatch path, since Environment already doubles as the
// lookup table calls go through.
func RegisterBuiltins(it *Interp) {
	def := func(name string, fn runtime.BuiltinFunc) {
		it.Global.Define(name, &runtime.BuiltinValue{Name: name, Fn: fn})
	}

	// I/O
	def("declare", it.builtinDeclare)
	def("announce", it.builtinAnnounce)
	def("inquire", it.builtinInquire)

	// Introspection
	def("measure", builtinMeasure)
	def("classify", builtinClassify)

	// Conversions
	def("text", builtinText)
	def("number", builtinNumber)
	def("decimal", builtinDecimal)
	def("boolean", builtinBoolean)

	// Ranges
	def("span", builtinSpan)

	// File I/O
	def("inscribe", builtinInscribe)
	def("decipher", builtinDecipher)
	def("chronicle", builtinChronicle)
	def("exists", builtinExists)

	// Numerics
	def("abs", builtinAbs)
	def("sqrt", builtinSqrt)
	def("min", builtinMin)
	def("max", builtinMax)
	def("random", it.builtinRandom)

	// Strings
	def("uppercase", builtinUppercase)
	def("lowercase", builtinLowercase)
	def("split", builtinSplit)
	def("join", builtinJoin)
	def("contains", builtinContains)

	// Lists
	def("push", builtinPush)
	def("reverse", builtinReverse)

	// Time
	def("clock", it.builtinClock)
	def("timestamp", builtinTimestamp)

	// Process
	def("terminate", builtinTerminate)

	// Higher-order
	def("transform", it.builtinTransform)
	def("select", it.builtinSelect)
	def("fold", it.builtinFold)

	// JSON
	def("encode_json", builtinEncodeJSON)
	def("decode_json", builtinDecodeJSON)

	// Generators
	def("proceed", it.builtinProceed)
	def("transmit", it.builtinTransmit)
	def("receive", it.builtinReceive)
	def("disrupt", it.builtinDisrupt)

	// Async
	def("sleep", builtinSleep)
	def("resolve", builtinResolve)
	def("defer", it.builtinDefer)
}

func argErr(name string, want int, got int) *kerr.RuntimeError {
	return kerr.Newf(kerr.TypeMismatch, token.Position{}, "%s expects %d argument(s), got %d", name, want, got)
}

// --- I/O ---

func (it *Interp) builtinDeclare(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Fprintln(it.Out, strings.Join(parts, " "))
	return runtime.Void, nil
}

func (it *Interp) builtinAnnounce(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Fprint(it.Out, strings.Join(parts, " "))
	return runtime.Void, nil
}

func (it *Interp) builtinInquire(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) > 0 {
		fmt.Fprint(it.Out, args[0].String())
	}
	line, err := it.In.ReadString('\n')
	if err != nil && line == "" {
		return &runtime.StringValue{Value: ""}, nil
	}
	return &runtime.StringValue{Value: strings.TrimRight(line, "\r\n")}, nil
}

// --- Introspection ---

func builtinMeasure(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("measure", 1, len(args))
	}
	switch v := args[0].(type) {
	case *runtime.StringValue:
		return &runtime.IntegerValue{Value: int64(len([]rune(v.Value)))}, nil
	case *runtime.ListValue:
		return &runtime.IntegerValue{Value: int64(len(v.Elements))}, nil
	case *runtime.DictValue:
		return &runtime.IntegerValue{Value: int64(len(v.Keys))}, nil
	}
	return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "measure requires string, list, or dict, got %s", args[0].Type())
}

func builtinClassify(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("classify", 1, len(args))
	}
	return &runtime.StringValue{Value: args[0].Type()}, nil
}

// --- Conversions ---

func builtinText(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("text", 1, len(args))
	}
	return &runtime.StringValue{Value: unquoted(args[0])}, nil
}

func builtinNumber(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("number", 1, len(args))
	}
	switch v := args[0].(type) {
	case *runtime.IntegerValue:
		return v, nil
	case *runtime.FloatValue:
		return &runtime.IntegerValue{Value: int64(v.Value)}, nil
	case *runtime.BooleanValue:
		if v.Value {
			return &runtime.IntegerValue{Value: 1}, nil
		}
		return &runtime.IntegerValue{Value: 0}, nil
	case *runtime.StringValue:
		if i, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64); err == nil {
			return &runtime.IntegerValue{Value: i}, nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64); err == nil {
			return &runtime.IntegerValue{Value: int64(f)}, nil
		}
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "cannot convert %q to a number", v.Value)
	}
	return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "cannot convert %s to a number", args[0].Type())
}

func builtinDecimal(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("decimal", 1, len(args))
	}
	switch v := args[0].(type) {
	case *runtime.FloatValue:
		return v, nil
	case *runtime.IntegerValue:
		return &runtime.FloatValue{Value: float64(v.Value)}, nil
	case *runtime.BooleanValue:
		if v.Value {
			return &runtime.FloatValue{Value: 1}, nil
		}
		return &runtime.FloatValue{Value: 0}, nil
	case *runtime.StringValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "cannot convert %q to a decimal", v.Value)
		}
		return &runtime.FloatValue{Value: f}, nil
	}
	return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "cannot convert %s to a decimal", args[0].Type())
}

func builtinBoolean(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("boolean", 1, len(args))
	}
	return &runtime.BooleanValue{Value: runtime.Truthy(args[0])}, nil
}

// --- Ranges ---

func asInt(v runtime.Value) (int64, bool) {
	iv, ok := v.(*runtime.IntegerValue)
	if !ok {
		return 0, false
	}
	return iv.Value, true
}

func builtinSpan(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	var start, end, step int64 = 0, 0, 1
	switch len(args) {
	case 1:
		e, ok := asInt(args[0])
		if !ok {
			return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "span requires integer arguments")
		}
		end = e
	case 2:
		s, ok1 := asInt(args[0])
		e, ok2 := asInt(args[1])
		if !ok1 || !ok2 {
			return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "span requires integer arguments")
		}
		start, end = s, e
	case 3:
		s, ok1 := asInt(args[0])
		e, ok2 := asInt(args[1])
		st, ok3 := asInt(args[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "span requires integer arguments")
		}
		start, end, step = s, e, st
	default:
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "span expects 1 to 3 arguments, got %d", len(args))
	}
	if step == 0 {
		return nil, kerr.New(kerr.InvalidSlice, token.Position{}, kerr.MsgInvalidSliceStep)
	}
	out := []runtime.Value{}
	if step > 0 {
		for i := start; i < end; i += step {
			out = append(out, &runtime.IntegerValue{Value: i})
		}
	} else {
		for i := start; i > end; i += step {
			out = append(out, &runtime.IntegerValue{Value: i})
		}
	}
	return &runtime.ListValue{Elements: out}, nil
}

// --- File I/O ---

func asPath(v runtime.Value, who string) (string, *kerr.RuntimeError) {
	s, ok := v.(*runtime.StringValue)
	if !ok {
		return "", kerr.Newf(kerr.TypeMismatch, token.Position{}, "%s requires a string path", who)
	}
	return s.Value, nil
}

func builtinInscribe(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 2 {
		return nil, argErr("inscribe", 2, len(args))
	}
	path, err := asPath(args[0], "inscribe")
	if err != nil {
		return nil, err
	}
	if werr := os.WriteFile(path, []byte(unquoted(args[1])), 0o644); werr != nil {
		return nil, kerr.Newf(kerr.ImportFailed, token.Position{}, "inscribe %q failed: %s", path, werr.Error())
	}
	return runtime.Void, nil
}

func builtinDecipher(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("decipher", 1, len(args))
	}
	path, err := asPath(args[0], "decipher")
	if err != nil {
		return nil, err
	}
	data, rerr := os.ReadFile(path)
	if rerr != nil {
		return nil, kerr.Newf(kerr.ImportFailed, token.Position{}, "decipher %q failed: %s", path, rerr.Error())
	}
	return &runtime.StringValue{Value: string(data)}, nil
}

func builtinChronicle(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 2 {
		return nil, argErr("chronicle", 2, len(args))
	}
	path, err := asPath(args[0], "chronicle")
	if err != nil {
		return nil, err
	}
	f, oerr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if oerr != nil {
		return nil, kerr.Newf(kerr.ImportFailed, token.Position{}, "chronicle %q failed: %s", path, oerr.Error())
	}
	defer f.Close()
	if _, werr := f.WriteString(unquoted(args[1])); werr != nil {
		return nil, kerr.Newf(kerr.ImportFailed, token.Position{}, "chronicle %q failed: %s", path, werr.Error())
	}
	return runtime.Void, nil
}

func builtinExists(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("exists", 1, len(args))
	}
	path, err := asPath(args[0], "exists")
	if err != nil {
		return nil, err
	}
	_, serr := os.Stat(path)
	return &runtime.BooleanValue{Value: serr == nil}, nil
}

// --- Numerics ---

func builtinAbs(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("abs", 1, len(args))
	}
	switch v := args[0].(type) {
	case *runtime.IntegerValue:
		if v.Value < 0 {
			return &runtime.IntegerValue{Value: -v.Value}, nil
		}
		return v, nil
	case *runtime.FloatValue:
		return &runtime.FloatValue{Value: math.Abs(v.Value)}, nil
	}
	return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "abs requires a number, got %s", args[0].Type())
}

func builtinSqrt(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("sqrt", 1, len(args))
	}
	if !isNumeric(args[0]) {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "sqrt requires a number, got %s", args[0].Type())
	}
	f, _ := asFloat(args[0])
	return &runtime.FloatValue{Value: math.Sqrt(f)}, nil
}

// numericOperands returns args directly, or a single list argument's
// elements, so min/max can be called either variadically or with one list.
func numericOperands(args []runtime.Value) []runtime.Value {
	if len(args) == 1 {
		if l, ok := args[0].(*runtime.ListValue); ok {
			return l.Elements
		}
	}
	return args
}

func builtinMin(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	ops := numericOperands(args)
	if len(ops) == 0 {
		return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "min requires at least one argument")
	}
	best := ops[0]
	for _, v := range ops[1:] {
		cmp := evalArith("<", v, best, token.Position{})
		if runtime.IsError(cmp) {
			return nil, cmp.(*runtime.ErrorValue).Err
		}
		if runtime.Truthy(cmp) {
			best = v
		}
	}
	return best, nil
}

func builtinMax(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	ops := numericOperands(args)
	if len(ops) == 0 {
		return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "max requires at least one argument")
	}
	best := ops[0]
	for _, v := range ops[1:] {
		cmp := evalArith(">", v, best, token.Position{})
		if runtime.IsError(cmp) {
			return nil, cmp.(*runtime.ErrorValue).Err
		}
		if runtime.Truthy(cmp) {
			best = v
		}
	}
	return best, nil
}

func (it *Interp) builtinRandom(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	switch len(args) {
	case 0:
		return &runtime.FloatValue{Value: it.Rand.Float64()}, nil
	case 1:
		n, ok := asInt(args[0])
		if !ok || n <= 0 {
			return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "random(n) requires a positive integer")
		}
		return &runtime.IntegerValue{Value: it.Rand.Int63n(n)}, nil
	}
	return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "random expects 0 or 1 arguments, got %d", len(args))
}

// --- Strings ---

// caseFold routes case conversion through golang.org/x/text, the way the
// teacher sources its own string casing (internal/interp/string_helpers.go):
// width.Fold first collapses fullwidth/halfwidth variants to their canonical
// form so the subsequent cases transform behaves the same regardless of the
// input's width class.
func caseFold(s string, c cases.Caser) string {
	return c.String(width.Fold.String(s))
}

func builtinUppercase(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("uppercase", 1, len(args))
	}
	s, ok := args[0].(*runtime.StringValue)
	if !ok {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "uppercase requires a string, got %s", args[0].Type())
	}
	return &runtime.StringValue{Value: caseFold(s.Value, cases.Upper(language.Und))}, nil
}

func builtinLowercase(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("lowercase", 1, len(args))
	}
	s, ok := args[0].(*runtime.StringValue)
	if !ok {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "lowercase requires a string, got %s", args[0].Type())
	}
	return &runtime.StringValue{Value: caseFold(s.Value, cases.Lower(language.Und))}, nil
}

func builtinSplit(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 2 {
		return nil, argErr("split", 2, len(args))
	}
	s, ok1 := args[0].(*runtime.StringValue)
	sep, ok2 := args[1].(*runtime.StringValue)
	if !ok1 || !ok2 {
		return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "split requires two strings")
	}
	parts := strings.Split(s.Value, sep.Value)
	out := make([]runtime.Value, len(parts))
	for i, p := range parts {
		out[i] = &runtime.StringValue{Value: p}
	}
	return &runtime.ListValue{Elements: out}, nil
}

func builtinJoin(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 2 {
		return nil, argErr("join", 2, len(args))
	}
	list, ok1 := args[0].(*runtime.ListValue)
	sep, ok2 := args[1].(*runtime.StringValue)
	if !ok1 || !ok2 {
		return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "join requires a list and a string")
	}
	parts := make([]string, len(list.Elements))
	for i, e := range list.Elements {
		parts[i] = unquoted(e)
	}
	return &runtime.StringValue{Value: strings.Join(parts, sep.Value)}, nil
}

func builtinContains(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 2 {
		return nil, argErr("contains", 2, len(args))
	}
	switch c := args[0].(type) {
	case *runtime.StringValue:
		sub, ok := args[1].(*runtime.StringValue)
		if !ok {
			return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "contains on a string requires a string needle")
		}
		return &runtime.BooleanValue{Value: strings.Contains(c.Value, sub.Value)}, nil
	case *runtime.ListValue:
		for _, e := range c.Elements {
			if runtime.Equals(e, args[1]) {
				return &runtime.BooleanValue{Value: true}, nil
			}
		}
		return &runtime.BooleanValue{Value: false}, nil
	}
	return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "contains requires a string or list, got %s", args[0].Type())
}

// --- Lists ---

func builtinPush(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 2 {
		return nil, argErr("push", 2, len(args))
	}
	list, ok := args[0].(*runtime.ListValue)
	if !ok {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "push requires a list, got %s", args[0].Type())
	}
	list.Elements = append(list.Elements, args[1])
	return list, nil
}

func builtinReverse(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("reverse", 1, len(args))
	}
	switch v := args[0].(type) {
	case *runtime.ListValue:
		out := make([]runtime.Value, len(v.Elements))
		for i, e := range v.Elements {
			out[len(out)-1-i] = e
		}
		return &runtime.ListValue{Elements: out}, nil
	case *runtime.StringValue:
		r := []rune(v.Value)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return &runtime.StringValue{Value: string(r)}, nil
	}
	return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "reverse requires a list or string, got %s", args[0].Type())
}

// --- Time ---

func (it *Interp) builtinClock(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	return &runtime.FloatValue{Value: time.Since(it.started).Seconds()}, nil
}

func builtinTimestamp(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	return &runtime.IntegerValue{Value: time.Now().Unix()}, nil
}

// --- Process ---

func builtinTerminate(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	code := 0
	if len(args) > 0 {
		if n, ok := asInt(args[0]); ok {
			code = int(n)
		}
	}
	os.Exit(code)
	return runtime.Void, nil
}

// --- Higher-order ---

func (it *Interp) builtinTransform(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 2 {
		return nil, argErr("transform", 2, len(args))
	}
	list, ok := args[0].(*runtime.ListValue)
	if !ok {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "transform requires a list, got %s", args[0].Type())
	}
	out := make([]runtime.Value, 0, len(list.Elements))
	for _, e := range list.Elements {
		v := it.invoke(args[1], []runtime.Value{e}, token.Position{})
		if runtime.IsError(v) {
			return nil, v.(*runtime.ErrorValue).Err
		}
		out = append(out, v)
	}
	return &runtime.ListValue{Elements: out}, nil
}

func (it *Interp) builtinSelect(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 2 {
		return nil, argErr("select", 2, len(args))
	}
	list, ok := args[0].(*runtime.ListValue)
	if !ok {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "select requires a list, got %s", args[0].Type())
	}
	out := []runtime.Value{}
	for _, e := range list.Elements {
		v := it.invoke(args[1], []runtime.Value{e}, token.Position{})
		if runtime.IsError(v) {
			return nil, v.(*runtime.ErrorValue).Err
		}
		if runtime.Truthy(v) {
			out = append(out, e)
		}
	}
	return &runtime.ListValue{Elements: out}, nil
}

func (it *Interp) builtinFold(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 3 {
		return nil, argErr("fold", 3, len(args))
	}
	list, ok := args[0].(*runtime.ListValue)
	if !ok {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "fold requires a list, got %s", args[0].Type())
	}
	acc := args[2]
	for _, e := range list.Elements {
		v := it.invoke(args[1], []runtime.Value{acc, e}, token.Position{})
		if runtime.IsError(v) {
			return nil, v.(*runtime.ErrorValue).Err
		}
		acc = v
	}
	return acc, nil
}

// --- JSON ---

// jsonQuote renders a Go string as a JSON string literal by round-tripping
// it through sjson (to encode) and gjson (to read back the raw quoted
// form), rather than reimplementing JSON string escaping by hand.
func jsonQuote(s string) string {
	raw, _ := sjson.Set("{}", "v", s)
	return gjson.Get(raw, "v").Raw
}

func encodeJSONValue(v runtime.Value) (string, *kerr.RuntimeError) {
	switch t := v.(type) {
	case *runtime.VoidValue:
		return "null", nil
	case *runtime.BooleanValue:
		if t.Value {
			return "true", nil
		}
		return "false", nil
	case *runtime.IntegerValue:
		return strconv.FormatInt(t.Value, 10), nil
	case *runtime.FloatValue:
		return strconv.FormatFloat(t.Value, 'g', -1, 64), nil
	case *runtime.StringValue:
		return jsonQuote(t.Value), nil
	case *runtime.ListValue:
		out := "[]"
		for i, el := range t.Elements {
			elJSON, err := encodeJSONValue(el)
			if err != nil {
				return "", err
			}
			out, _ = sjson.SetRaw(out, strconv.Itoa(i), elJSON)
		}
		return out, nil
	case *runtime.DictValue:
		out := "{}"
		for _, k := range runtime.SortedKeys(t) {
			elJSON, err := encodeJSONValue(t.Values[k])
			if err != nil {
				return "", err
			}
			out, _ = sjson.SetRaw(out, strings.ReplaceAll(k, ".", "\\."), elJSON)
		}
		return out, nil
	}
	return "", kerr.Newf(kerr.TypeMismatch, token.Position{}, "encode_json cannot represent %s", v.Type())
}

func builtinEncodeJSON(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("encode_json", 1, len(args))
	}
	s, err := encodeJSONValue(args[0])
	if err != nil {
		return nil, err
	}
	return &runtime.StringValue{Value: s}, nil
}

func decodeJSONValue(r gjson.Result) runtime.Value {
	switch r.Type {
	case gjson.Null:
		return runtime.Void
	case gjson.False:
		return &runtime.BooleanValue{Value: false}
	case gjson.True:
		return &runtime.BooleanValue{Value: true}
	case gjson.Number:
		if strings.ContainsAny(r.Raw, ".eE") {
			return &runtime.FloatValue{Value: r.Num}
		}
		return &runtime.IntegerValue{Value: r.Int()}
	case gjson.String:
		return &runtime.StringValue{Value: r.String()}
	default: // gjson.JSON: array or object
		if r.IsArray() {
			elems := []runtime.Value{}
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, decodeJSONValue(v))
				return true
			})
			return &runtime.ListValue{Elements: elems}
		}
		d := runtime.NewDict()
		r.ForEach(func(k, v gjson.Result) bool {
			d.Set(k.String(), decodeJSONValue(v))
			return true
		})
		return d
	}
}

func builtinDecodeJSON(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("decode_json", 1, len(args))
	}
	s, ok := args[0].(*runtime.StringValue)
	if !ok {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "decode_json requires a string, got %s", args[0].Type())
	}
	if !gjson.Valid(s.Value) {
		return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "decode_json: invalid JSON")
	}
	return decodeJSONValue(gjson.Parse(s.Value)), nil
}

// --- Generators ---

func genArg(args []runtime.Value, who string) (*runtime.GeneratorValue, *kerr.RuntimeError) {
	if len(args) == 0 {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "%s requires a sequence argument", who)
	}
	gv, ok := args[0].(*runtime.GeneratorValue)
	if !ok {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "%s requires a sequence, got %s", who, args[0].Type())
	}
	return gv, nil
}

func (it *Interp) builtinProceed(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	gv, err := genArg(args, "proceed")
	if err != nil {
		return nil, err
	}
	v := it.advanceGenerator(gv)
	if runtime.IsError(v) {
		return nil, v.(*runtime.ErrorValue).Err
	}
	return v, nil
}

func (it *Interp) builtinTransmit(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	gv, err := genArg(args, "transmit")
	if err != nil {
		return nil, err
	}
	var payload runtime.Value = runtime.Void
	if len(args) > 1 {
		payload = args[1]
	}
	v := transmitGenerator(it, gv, payload)
	if runtime.IsError(v) {
		return nil, v.(*runtime.ErrorValue).Err
	}
	return v, nil
}

func (it *Interp) builtinReceive(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	return receiveInjected(it), nil
}

func (it *Interp) builtinDisrupt(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	gv, err := genArg(args, "disrupt")
	if err != nil {
		return nil, err
	}
	msg := ""
	if len(args) > 1 {
		msg = unquoted(args[1])
	}
	v := disruptGenerator(it, gv, msg)
	if runtime.IsError(v) {
		return nil, v.(*runtime.ErrorValue).Err
	}
	return v, nil
}

// --- Async ---

func builtinSleep(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("sleep", 1, len(args))
	}
	ms, ok := asInt(args[0])
	if !ok {
		return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "sleep requires an integer millisecond count")
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return runtime.Void, nil
}

func builtinResolve(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) != 1 {
		return nil, argErr("resolve", 1, len(args))
	}
	return &runtime.PromiseValue{State: "resolved", Result: args[0]}, nil
}

func (it *Interp) builtinDefer(args []runtime.Value) (runtime.Value, *kerr.RuntimeError) {
	if len(args) < 2 {
		return nil, kerr.Newf(kerr.TypeMismatch, token.Position{}, "defer expects at least 2 arguments, got %d", len(args))
	}
	ms, ok := asInt(args[0])
	if !ok {
		return nil, kerr.New(kerr.TypeMismatch, token.Position{}, "defer requires an integer millisecond delay")
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	v := it.invoke(args[1], args[2:], token.Position{})
	if runtime.IsError(v) {
		return nil, v.(*runtime.ErrorValue).Err
	}
	return v, nil
}
