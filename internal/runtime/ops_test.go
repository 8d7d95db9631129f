package runtime

import "testing"

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Void, false},
		{&BooleanValue{Value: true}, true},
		{&BooleanValue{Value: false}, false},
		{&IntegerValue{Value: 0}, false},
		{&IntegerValue{Value: 7}, true},
		{&FloatValue{Value: 0}, false},
		{&FloatValue{Value: 0.1}, true},
		{&StringValue{Value: ""}, false},
		{&StringValue{Value: "x"}, true},
		{&ListValue{}, false},
		{&ListValue{Elements: []Value{Void}}, true},
	}
	for i, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("tests[%d]: Truthy(%v) = %v, want %v", i, tt.v, got, tt.want)
		}
	}
}

func TestTruthyRoundTrip(t *testing.T) {
	// For all Values v: truthiness(to_value(truthiness(v))) = truthiness(v).
	vs := []Value{Void, &BooleanValue{Value: true}, &IntegerValue{Value: 3}, &StringValue{Value: "hi"}}
	for _, v := range vs {
		b := Truthy(v)
		roundTripped := Truthy(&BooleanValue{Value: b})
		if roundTripped != b {
			t.Errorf("round trip broke for %v: %v != %v", v, roundTripped, b)
		}
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{&IntegerValue{Value: 3}, &FloatValue{Value: 3}, false},
		{&IntegerValue{Value: 3}, &IntegerValue{Value: 3}, true},
		{&IntegerValue{Value: 3}, &IntegerValue{Value: 4}, false},
		{&StringValue{Value: "a"}, &StringValue{Value: "a"}, true},
		{Void, Void, true},
		{&ListValue{Elements: []Value{&IntegerValue{Value: 1}}}, &ListValue{Elements: []Value{&IntegerValue{Value: 1}}}, true},
		{&ListValue{Elements: []Value{&IntegerValue{Value: 1}}}, &ListValue{Elements: []Value{&IntegerValue{Value: 2}}}, false},
	}
	for i, tt := range tests {
		if got := Equals(tt.a, tt.b); got != tt.want {
			t.Errorf("tests[%d]: Equals(%v, %v) = %v, want %v", i, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEqualsDictIsIdentity(t *testing.T) {
	d1 := NewDict()
	d1.Set("a", &IntegerValue{Value: 1})
	d2 := NewDict()
	d2.Set("a", &IntegerValue{Value: 1})
	if Equals(d1, d2) {
		t.Error("distinct dicts with identical contents should not be equal (identity semantics)")
	}
	if !Equals(d1, d1) {
		t.Error("a dict should equal itself")
	}
}

func TestDeepCopyListIsIndependent(t *testing.T) {
	orig := &ListValue{Elements: []Value{&IntegerValue{Value: 1}}}
	cp := DeepCopy(orig).(*ListValue)
	cp.Elements[0] = &IntegerValue{Value: 99}
	if orig.Elements[0].(*IntegerValue).Value != 1 {
		t.Error("DeepCopy should not alias the original list's backing array")
	}
}

func TestDeepCopyInstanceSharesReferent(t *testing.T) {
	inst := &InstanceValue{Class: &ClassValue{Name: "X"}, Fields: NewIsolated()}
	if DeepCopy(inst) != Value(inst) {
		t.Error("DeepCopy of an instance must return the same referent, not a clone")
	}
}

func TestReprQuotesStrings(t *testing.T) {
	if got := Repr(&StringValue{Value: "hi"}); got != `"hi"` {
		t.Errorf("Repr(string) = %q, want %q", got, `"hi"`)
	}
	if got := Repr(&IntegerValue{Value: 5}); got != "5" {
		t.Errorf("Repr(int) = %q, want %q", got, "5")
	}
}

func TestSortedKeysIsDeterministicAndNatural(t *testing.T) {
	d := NewDict()
	d.Set("b10", Void)
	d.Set("b2", Void)
	d.Set("a", Void)
	keys := SortedKeys(d)
	want := []string{"a", "b2", "b10"}
	if len(keys) != len(want) {
		t.Fatalf("SortedKeys length = %d, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("SortedKeys()[%d] = %q, want %q (full: %v)", i, keys[i], want[i], keys)
		}
	}
}
