package runtime

// Truthy reports whether v counts as true in a boolean context: void is
// false, a bool is itself, numbers are nonzero, strings/lists are nonempty,
// and everything else is true.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case *VoidValue:
		return false
	case *BooleanValue:
		return t.Value
	case *IntegerValue:
		return t.Value != 0
	case *FloatValue:
		return t.Value != 0
	case *StringValue:
		return t.Value != ""
	case *ListValue:
		return len(t.Elements) != 0
	default:
		return true
	}
}

// Equals compares two values for equality: false whenever their concrete
// types differ, structural for bool/void/int/float/string, elementwise for
// lists, identity for everything else (including dicts).
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case *VoidValue:
		_, ok := b.(*VoidValue)
		return ok
	case *BooleanValue:
		bv, ok := b.(*BooleanValue)
		return ok && av.Value == bv.Value
	case *IntegerValue:
		bv, ok := b.(*IntegerValue)
		return ok && av.Value == bv.Value
	case *FloatValue:
		bv, ok := b.(*FloatValue)
		return ok && av.Value == bv.Value
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equals(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// DeepCopy clones strings, lists, and dicts recursively; functions, classes,
// and instances share their referent rather than being copied.
func DeepCopy(v Value) Value {
	switch t := v.(type) {
	case *ListValue:
		elems := make([]Value, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = DeepCopy(e)
		}
		return &ListValue{Elements: elems}
	case *DictValue:
		d := NewDict()
		for _, k := range t.Keys {
			d.Set(k, DeepCopy(t.Values[k]))
		}
		return d
	case *StringValue:
		return &StringValue{Value: t.Value}
	case *IntegerValue:
		return &IntegerValue{Value: t.Value}
	case *FloatValue:
		return &FloatValue{Value: t.Value}
	case *BooleanValue:
		return &BooleanValue{Value: t.Value}
	default:
		return v
	}
}

// Repr renders v the way it appears nested inside a list/dict boundary:
// strings gain wrapping double quotes, everything else matches its plain
// String() form.
func Repr(v Value) string {
	if s, ok := v.(*StringValue); ok {
		return "\"" + s.Value + "\""
	}
	return v.String()
}
