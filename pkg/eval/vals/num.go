package vals

import (
	"math"
	"strconv"
	"strings"
)

// ParseNum parses a string in the numeric literal syntax, digits with an
// optional fraction, allowing surrounding whitespace and a leading sign.
// Spellings such as "nan", "inf", "1e3" and "0x1p2" are not numbers.
func ParseNum(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	digits := s
	if digits != "" && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if !isNumLiteral(digits) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Reports whether s is digits[.digits].
func isNumLiteral(s string) bool {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	if i == len(s) {
		return true
	}
	if s[i] != '.' {
		return false
	}
	j := i + 1
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	return j > i+1 && j == len(s)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsNumeric reports whether v is a number or a string that parses as one.
func IsNumeric(v Value) bool {
	switch v := v.(type) {
	case Num:
		return true
	case Str:
		_, ok := ParseNum(string(v))
		return ok
	}
	return false
}

// ToNum coerces a value to a number. Strings that do not parse, lists,
// objects and other values become NaN; null is 0; yes and no are 1 and 0.
func ToNum(v Value) float64 {
	switch v := v.(type) {
	case Num:
		return float64(v)
	case Str:
		if f, ok := ParseNum(string(v)); ok {
			return f
		}
	case Bool:
		if v {
			return 1
		}
		return 0
	case nil, Null:
		return 0
	}
	return math.NaN()
}

// ToInt coerces a value to an int index, truncating fractions. It returns
// false for values that are not finite numbers.
func ToInt(v Value) (int, bool) {
	f := ToNum(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
