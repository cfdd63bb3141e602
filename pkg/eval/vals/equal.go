package vals

// Equal implements == between two values. When both sides are numeric (see
// IsNumeric), they are compared as numbers; otherwise values of the same kind
// are compared by content for null, booleans and strings, and by identity for
// everything else.
func Equal(a, b Value) bool {
	if IsNumeric(a) && IsNumeric(b) {
		return ToNum(a) == ToNum(b)
	}
	switch a := a.(type) {
	case nil, Null:
		return isNull(b)
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Str:
		b, ok := b.(Str)
		return ok && a == b
	}
	return a == b
}

func isNull(v Value) bool {
	switch v.(type) {
	case nil, Null:
		return true
	}
	return false
}
