package evaluator

import (
	"strings"
	"testing"
)

func TestForeseeAlternateOtherwise(t *testing.T) {
	out := runProgram(t, `
designate x = 2
foresee x == 1:
  declare("one")
alternate x == 2:
  declare("two")
otherwise:
  declare("other")
`)
	if strings.TrimSpace(out) != "two" {
		t.Fatalf("expected the alternate branch to fire, got %q", out)
	}
}

func TestCycleWhileBreak(t *testing.T) {
	out := runProgram(t, `
designate i = 0
cycle while true:
  i = i + 1
  foresee i == 3:
    break
declare(i)
`)
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("expected break to stop the loop at i=3, got %q", out)
	}
}

func TestCycleFromToContinueSkipsEvens(t *testing.T) {
	out := runProgram(t, `
designate seen = []
cycle from 0 to 5 as i:
  foresee i % 2 == 0:
    continue
  push(seen, i)
declare(seen)
`)
	out = strings.TrimSpace(out)
	if !strings.Contains(out, "1") || !strings.Contains(out, "3") || strings.Contains(out, "2") {
		t.Fatalf("expected only odd values 1 and 3, got %q", out)
	}
}

func TestCycleFromToExclusiveUpperBound(t *testing.T) {
	out := runProgram(t, `
designate xs = []
cycle from 0 to 3 as i:
  push(xs, i)
declare(measure(xs))
`)
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("expected [0,1,2] (upper bound exclusive), got %q", out)
	}
}

func TestCycleThroughPropagatesReturnFromEnclosingFunction(t *testing.T) {
	out := runProgram(t, `
protocol findFirstEven(xs):
  cycle through xs as x:
    foresee x % 2 == 0:
      yield x
  yield -1
declare(findFirstEven([1,3,4,5]))
`)
	if strings.TrimSpace(out) != "4" {
		t.Fatalf("expected early return of 4, got %q", out)
	}
}

func TestDelegateForwardsToCallerWhenNotInGenerator(t *testing.T) {
	out := runProgram(t, `
protocol collect():
  delegate [1,2,3]
declare(collect())
`)
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("expected delegate outside a generator to act as a return of the first element, got %q", out)
	}
}
