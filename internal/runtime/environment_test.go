package runtime

import "testing"

func TestDefineShadowsOuter(t *testing.T) {
	outer := NewGlobal()
	outer.Define("x", &IntegerValue{Value: 1})
	inner := NewEnclosed(outer)
	inner.Define("x", &IntegerValue{Value: 2})

	v, _ := inner.Get("x")
	if v.(*IntegerValue).Value != 2 {
		t.Errorf("inner x = %v, want 2", v)
	}
	ov, _ := outer.Get("x")
	if ov.(*IntegerValue).Value != 1 {
		t.Errorf("outer x = %v, want 1 (shadowing must not mutate the outer binding)", ov)
	}
}

func TestAssignMutatesNearestExisting(t *testing.T) {
	outer := NewGlobal()
	outer.Define("x", &IntegerValue{Value: 1})
	inner := NewEnclosed(outer)
	inner.Assign("x", &IntegerValue{Value: 5})

	ov, _ := outer.Get("x")
	if ov.(*IntegerValue).Value != 5 {
		t.Errorf("Assign should mutate the existing outer binding, got %v", ov)
	}
}

func TestAssignDefinesLocallyWhenAbsent(t *testing.T) {
	inner := NewEnclosed(NewGlobal())
	inner.Assign("y", &IntegerValue{Value: 9})

	if _, ok := inner.Get("y"); !ok {
		t.Fatal("Assign of an unbound name should define it locally")
	}
}

func TestGetErrUndefinedName(t *testing.T) {
	e := NewGlobal()
	if _, err := e.GetErr("nope"); err == nil {
		t.Fatal("expected an UndefinedName error")
	}
}

func TestIsolatedHasNoParent(t *testing.T) {
	parent := NewGlobal()
	parent.Define("shared", &IntegerValue{Value: 1})
	isolated := NewIsolated()

	if _, ok := isolated.Get("shared"); ok {
		t.Error("an isolated scope must not see bindings from any other environment")
	}
	if isolated.Parent() != nil {
		t.Error("an isolated scope's Parent() must be nil")
	}
}

func TestForceGlobalWritesRootAndMarksOverride(t *testing.T) {
	root := NewGlobal()
	child := NewEnclosed(root)
	grandchild := NewEnclosed(child)

	grandchild.ForceGlobal("g", &IntegerValue{Value: 42})

	v, ok := root.Get("g")
	if !ok || v.(*IntegerValue).Value != 42 {
		t.Fatalf("ForceGlobal should write into the root scope, got %v, ok=%v", v, ok)
	}
	if !grandchild.IsOverride("g") {
		t.Error("a ForceGlobal binding should report IsOverride true from any descendant scope")
	}
}

func TestGlobalReturnsRoot(t *testing.T) {
	root := NewGlobal()
	child := NewEnclosed(root)
	grandchild := NewEnclosed(child)

	if grandchild.Global() != root {
		t.Error("Global() should return the root environment from any depth")
	}
}
