package evaluator

import (
	"strings"
	"testing"
)

func TestBuiltinTransformSelectFold(t *testing.T) {
	out := runProgram(t, `
designate xs = [1,2,3,4]
designate doubled = transform(xs, x => x*2)
designate evens = select(xs, x => x % 2 == 0)
designate total = fold(xs, (acc,x) => acc+x, 0)
declare(doubled)
declare(evens)
declare(total)
`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", lines)
	}
	if !strings.Contains(lines[0], "2") || !strings.Contains(lines[0], "8") {
		t.Errorf("expected doubled to contain 2 and 8, got %q", lines[0])
	}
	if strings.Contains(lines[1], "1") || strings.Contains(lines[1], "3") {
		t.Errorf("expected evens to exclude odd values, got %q", lines[1])
	}
	if lines[2] != "10" {
		t.Errorf("expected fold sum 10, got %q", lines[2])
	}
}

func TestBuiltinStringCaseFolding(t *testing.T) {
	out := runProgram(t, `
declare(uppercase("keikaku"))
declare(lowercase("KEIKAKU"))
`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "KEIKAKU" || lines[1] != "keikaku" {
		t.Fatalf("unexpected case folding: %v", lines)
	}
}

func TestBuiltinSplitJoinContains(t *testing.T) {
	out := runProgram(t, `
designate parts = split("a,b,c", ",")
declare(join(parts, "-"))
declare(contains("hello", "ell"))
declare(contains([1,2,3], 2))
declare(contains([1,2,3], 9))
`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "a-b-c" {
		t.Fatalf("expected join to rebuild with -, got %q", lines[0])
	}
	if lines[1] != "true" || lines[2] != "true" || lines[3] != "false" {
		t.Fatalf("unexpected contains results: %v", lines)
	}
}

func TestBuiltinNumberDecimalBooleanConversions(t *testing.T) {
	out := runProgram(t, `
declare(number("42"))
declare(decimal("3.5"))
declare(boolean(0))
declare(boolean("x"))
`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "42" || lines[1] != "3.5" || lines[2] != "false" || lines[3] != "true" {
		t.Fatalf("unexpected conversions: %v", lines)
	}
}

func TestBuiltinJSONRoundTrip(t *testing.T) {
	out := runProgram(t, `
designate d = {"a": 1, "b": [2,3]}
designate encoded = encode_json(d)
designate decoded = decode_json(encoded)
declare(decoded["a"])
declare(decoded["b"])
`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "1" {
		t.Fatalf("expected round-tripped a=1, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "2") || !strings.Contains(lines[1], "3") {
		t.Fatalf("expected round-tripped b=[2,3], got %q", lines[1])
	}
}

func TestBuiltinPushReverse(t *testing.T) {
	out := runProgram(t, `
designate xs = [1,2,3]
push(xs, 4)
declare(xs)
declare(reverse(xs))
`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.Contains(lines[0], "4") {
		t.Fatalf("expected push to append 4, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[4") {
		t.Fatalf("expected reverse to flip order, got %q", lines[1])
	}
}

func TestBuiltinMinMaxAbsSqrt(t *testing.T) {
	out := runProgram(t, `
declare(min(3,1,2))
declare(max(3,1,2))
declare(abs(-5))
declare(sqrt(9))
`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "1" || lines[1] != "3" || lines[2] != "5" || lines[3] != "3" {
		t.Fatalf("unexpected numeric builtin results: %v", lines)
	}
}
