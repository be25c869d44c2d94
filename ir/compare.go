package ir

// Equal reports whether a and b are structurally equal: same types, same
// scalar payloads (floats compared bit for bit), lists equal element by
// element in order and structs holding the same key set with equal values,
// regardless of insertion order.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case BoolType:
		return a.b == b.b
	case I8Type, U8Type, I16Type, U16Type, I32Type, U32Type:
		return a.i == b.i
	case FloatType:
		return a.FloatBits() == b.FloatBits()
	case HashType:
		return a.h == b.h
	case StringType:
		return a.s == b.s
	case ListType:
		if len(a.values) != len(b.values) {
			return false
		}
		for i := range a.values {
			if !Equal(a.values[i], b.values[i]) {
				return false
			}
		}
		return true
	case StructType:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for i, k := range a.keys {
			bv, ok := b.Lookup(k)
			if !ok || !Equal(a.values[i], bv) {
				return false
			}
		}
		return true
	default:
		panic("type")
	}
}
