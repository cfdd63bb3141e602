package vals

import (
	"math"
	"strconv"
	"strings"
)

// Displayer is implemented by values defined outside this package to
// provide their display form.
type Displayer interface {
	Display() string
}

// ToString returns the display form of a value, as written by print and
// used by string concatenation. Strings are written without quotes.
func ToString(v Value) string {
	if s, ok := v.(Str); ok {
		return string(s)
	}
	return Repr(v)
}

// Repr returns the display form of a value, quoting strings. It is used for
// elements of lists and objects.
func Repr(v Value) string {
	switch v := v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		if v {
			return "yes"
		}
		return "no"
	case Num:
		return FormatNum(float64(v))
	case Str:
		return strconv.Quote(string(v))
	case *List:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Repr(e))
		}
		sb.WriteByte(']')
		return sb.String()
	case *Object:
		var sb strings.Builder
		sb.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(Repr(v.m[k]))
		}
		sb.WriteByte('}')
		return sb.String()
	case Displayer:
		return v.Display()
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// FormatNum formats a number the way print shows it: integers without a
// decimal point, other numbers in the shortest form that reads back exactly.
func FormatNum(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
