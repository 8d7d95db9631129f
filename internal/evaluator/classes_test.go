package evaluator

import (
	"strings"
	"testing"
)

func TestManifestRunsConstructor(t *testing.T) {
	out := runProgram(t, `
entity Point:
  protocol construct(x,y):
    self._x = x
    self._y = y
  protocol sum(): yield self._x + self._y
declare(manifest Point(3,4).sum())
`)
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("expected 7, got %q", out)
	}
}

func TestAscendRaisesWithoutParent(t *testing.T) {
	out := runProgram(t, `
entity Root:
  protocol explode(): ascend explode()
attempt:
  manifest Root().explode()
recover as e:
  declare(e)
`)
	if !strings.Contains(out, "does not ascend") {
		t.Fatalf("expected a NoParent error, got %q", out)
	}
}

func TestAscendDispatchesOffInstancesOwnClassParent(t *testing.T) {
	// A defines label(); B and C both inherit without overriding it. Calling
	// ascend from inside label() (defined on A) while self is a C instance
	// must consult C's own parent (B), not A's parent (none) — the dispatch
	// rule keys off self.Class.Parent, never the defining class's parent.
	out := runProgram(t, `
entity A:
  protocol label():
    designate r = ascend suffix()
    yield "A" + r
entity B inherits A:
  protocol suffix(): yield "-B"
entity C inherits B:
  protocol noop(): yield 0
declare(manifest C().label())
`)
	if strings.TrimSpace(out) != "A-B" {
		t.Fatalf("expected ascend inside A's label() to resolve suffix() via C's parent B, got %q", out)
	}
}

func TestAscendDispatchesOffMostDerivedClassEvenFromInheritedMethod(t *testing.T) {
	// greet() is only ever defined on A. When called on a C instance (C
	// inherits B inherits A), ascend inside that inherited method body must
	// still key off self.Class.Parent (C's parent, B) rather than A's own
	// parent (none) — confirming the rule holds even when the executing
	// method body was never redefined along the chain.
	out := runProgram(t, `
entity A:
  protocol greet():
    designate r = ascend marker()
    yield "A:" + r
  protocol marker(): yield "A-marker"
entity B inherits A:
  protocol marker(): yield "B-marker"
entity C inherits B:
  protocol noop(): yield 0
declare(manifest C().greet())
`)
	if strings.TrimSpace(out) != "A:B-marker" {
		t.Fatalf("expected ascend to resolve marker() via C's own parent chain (B), got %q", out)
	}
}

func TestPrivateFieldUnreachableFromOutside(t *testing.T) {
	out := runProgram(t, `
entity Secret:
  protocol construct(v): self._v = v
designate s = manifest Secret(42)
attempt:
  declare(s._v)
recover as e:
  declare(e)
`)
	if !strings.Contains(out, "private") {
		t.Fatalf("expected a PrivateAccess error reading _v from outside, got %q", out)
	}
}
