package vals

import (
	"fmt"
	"math"
)

// Add implements +. Two numeric operands are added; anything else is
// concatenated using display forms, so "a" + 1 is "a1" and "3" + "4" is 7.
func Add(a, b Value) Value {
	if IsNumeric(a) && IsNumeric(b) {
		return Num(ToNum(a) + ToNum(b))
	}
	return Str(ToString(a) + ToString(b))
}

// Arith implements the arithmetic operators other than +. Both operands are
// coerced to numbers.
func Arith(op string, a, b Value) (Value, error) {
	x, y := ToNum(a), ToNum(b)
	switch op {
	case "+":
		return Add(a, b), nil
	case "-":
		return Num(x - y), nil
	case "*":
		return Num(x * y), nil
	case "/":
		return Num(x / y), nil
	case "%":
		return Num(math.Mod(x, y)), nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

// Compare implements the ordering operators. Both operands are coerced to
// numbers, so a comparison involving NaN is false.
func Compare(op string, a, b Value) (Value, error) {
	x, y := ToNum(a), ToNum(b)
	switch op {
	case "<":
		return Bool(x < y), nil
	case ">":
		return Bool(x > y), nil
	case "<=":
		return Bool(x <= y), nil
	case ">=":
		return Bool(x >= y), nil
	case "==":
		return Bool(Equal(a, b)), nil
	case "!=":
		return Bool(!Equal(a, b)), nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}
