package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/noobforanonymous/keikaku-programming-language/internal/lexer"
	"github.com/noobforanonymous/keikaku-programming-language/internal/parser"
)

// TestEndToEndScenarios runs a handful of representative programs against a
// fresh Interp each, snapshotting stdout with go-snaps rather than asserting
// on individual return values.
func TestEndToEndScenarios(t *testing.T) {
	scenarios := []struct {
		name string
		src  string
	}{
		{
			name: "FibonacciViaSequence",
			src: `
sequence fib():
  designate a=0
  designate b=1
  cycle while true:
    yield a
    designate t=a+b
    a=b
    b=t
designate g = fib()
designate xs = []
cycle from 0 to 10 as _:
  push(xs, proceed(g))
declare(xs)
`,
		},
		{
			name: "NestedLoopsInGenerator",
			src: `
sequence pairs():
  cycle from 0 to 2 as i:
    cycle from 0 to 2 as j:
      yield [i,j]
cycle through pairs() as p:
  declare(p)
`,
		},
		{
			name: "InheritanceAndAscend",
			src: `
entity A:
  protocol greet(): yield "A"
entity B inherits A:
  protocol greet():
    designate r = ascend greet()
    yield r + "B"
declare(manifest B().greet())
`,
		},
		{
			name: "PrivateField",
			src: `
entity C:
  protocol construct(v): self._x = v
  protocol get(): yield self._x
designate c = manifest C(5)
declare(c.get())
declare(c._x)
`,
		},
		{
			name: "ErrorRecovery",
			src: `
attempt:
  designate x = 1/0
recover as e:
  declare(e)
`,
		},
		{
			name: "Match",
			src: `
designate x = 2
situation x:
  alignment 1: declare("one")
  alignment 2,3: declare("two or three")
  otherwise: declare("other")
`,
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := lexer.New(sc.src)
			p := parser.New(l)
			program := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("parse errors in %s: %v", sc.name, errs)
			}

			it := New(&buf, strings.NewReader(""))
			it.Run(program)

			snaps.MatchSnapshot(t, sc.name, buf.String())
		})
	}
}
