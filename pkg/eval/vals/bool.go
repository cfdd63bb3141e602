package vals

// Truthy reports whether a value counts as true in a condition. Null, no,
// the empty string, the empty list and the empty object are false. All other
// values are true, including the number 0.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, Null:
		return false
	case Bool:
		return bool(v)
	case Str:
		return v != ""
	case *List:
		return v.Len() > 0
	case *Object:
		return v.Len() > 0
	default:
		return true
	}
}
