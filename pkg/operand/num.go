package operand

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"src.tally.dev/pkg/errs"
)

// Num is a numeric operand. Exact integers are represented by int when they
// fit and *big.Int otherwise, exact non-integer quotients by *big.Rat, and
// inexact numbers by float64. Results of arithmetic are always normalized to
// the smallest representation, so an exact zero is always the int 0 and a
// *big.Rat always has a denominator greater than 1.
//
// The zero value of Num is not a valid number; construct one with Int, Float
// or ParseNum.
type Num struct {
	rep any
}

// ErrDivZero is thrown when the divisor of an exact division is zero.
var ErrDivZero = errs.BadValue{
	What: "divisor", Valid: "number other than exact 0", Actual: "exact 0"}

// Int returns a Num holding an exact integer.
func Int(i int) Num { return Num{i} }

// Float returns a Num holding an inexact number.
func Float(f float64) Num { return Num{f} }

// ParseNum parses a literal into a Num. It accepts integer literals
// ("120"), rational literals ("3/4") and floating-point literals ("1.5",
// "1e3"). Integer and rational literals are exact; floating-point literals
// are inexact.
func ParseNum(s string) (Num, error) {
	if strings.ContainsRune(s, '/') {
		// Parse as big.Rat.
		if z, ok := new(big.Rat).SetString(s); ok {
			return Num{normBigRat(z)}, nil
		}
	} else {
		// Parse as big.Int.
		if z, ok := new(big.Int).SetString(s, 0); ok {
			return Num{normBigInt(z)}, nil
		}
		// Parse as float64.
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Num{f}, nil
		}
	}
	return Num{}, errs.BadValue{What: "number literal",
		Valid: "integer, rational or floating-point literal", Actual: strconv.Quote(s)}
}

// Add adds two numbers. Addition of exact numbers is exact.
func (n Num) Add(other Operations) (Operations, error) {
	m, err := matchNum("addend", other)
	if err != nil {
		return nil, err
	}
	x, y := unify2(n.rep, m.rep, bigInt)
	switch x := x.(type) {
	case *big.Int:
		var z big.Int
		z.Add(x, y.(*big.Int))
		return Num{normBigInt(&z)}, nil
	case *big.Rat:
		var z big.Rat
		z.Add(x, y.(*big.Rat))
		return Num{normBigRat(&z)}, nil
	case float64:
		return Num{x + y.(float64)}, nil
	}
	panic("unreachable")
}

// Sub subtracts other from n. Subtraction of exact numbers is exact.
func (n Num) Sub(other Operations) (Operations, error) {
	m, err := matchNum("subtrahend", other)
	if err != nil {
		return nil, err
	}
	x, y := unify2(n.rep, m.rep, bigInt)
	switch x := x.(type) {
	case *big.Int:
		var z big.Int
		z.Sub(x, y.(*big.Int))
		return Num{normBigInt(&z)}, nil
	case *big.Rat:
		var z big.Rat
		z.Sub(x, y.(*big.Rat))
		return Num{normBigRat(&z)}, nil
	case float64:
		return Num{x - y.(float64)}, nil
	}
	panic("unreachable")
}

// Mul multiplies two numbers. Multiplication of exact numbers is exact, and
// multiplication by an exact 0 gives an exact 0 unless the other number is
// an infinity.
func (n Num) Mul(other Operations) (Operations, error) {
	m, err := matchNum("multiplier", other)
	if err != nil {
		return nil, err
	}
	if (n.rep == 0 || m.rep == 0) && !isInf(n.rep) && !isInf(m.rep) {
		return Num{0}, nil
	}
	x, y := unify2(n.rep, m.rep, bigInt)
	switch x := x.(type) {
	case *big.Int:
		var z big.Int
		z.Mul(x, y.(*big.Int))
		return Num{normBigInt(&z)}, nil
	case *big.Rat:
		var z big.Rat
		z.Mul(x, y.(*big.Rat))
		return Num{normBigRat(&z)}, nil
	case float64:
		return Num{x * y.(float64)}, nil
	}
	panic("unreachable")
}

// Div divides n by other. Division of exact numbers is exact, with quotients
// represented as rationals when needed; division of an exact number by an
// exact 0 throws ErrDivZero. Inexact division follows IEEE 754, so dividing
// by an inexact 0.0 gives an infinity.
func (n Num) Div(other Operations) (Operations, error) {
	m, err := matchNum("divisor", other)
	if err != nil {
		return nil, err
	}
	if m.rep == 0 {
		return nil, ErrDivZero
	}
	if n.rep == 0 {
		return Num{0}, nil
	}
	x, y := unify2(n.rep, m.rep, bigRat)
	switch x := x.(type) {
	case *big.Rat:
		var z big.Rat
		z.Quo(x, y.(*big.Rat))
		return Num{normBigRat(&z)}, nil
	case float64:
		return Num{x / y.(float64)}, nil
	}
	panic("unreachable")
}

// String returns the canonical representation of the number. Inexact numbers
// always carry a point, an exponent or a non-numeric form ("Inf", "NaN") so
// that they are distinguishable from exact integers.
func (n Num) String() string {
	switch v := n.rep.(type) {
	case int:
		return strconv.Itoa(v)
	case *big.Int:
		return v.String()
	case *big.Rat:
		return v.RatString()
	case float64:
		return formatFloat(v)
	}
	panic("invalid number representation")
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

func matchNum(what string, v Operations) (Num, error) {
	if m, ok := v.(Num); ok {
		return m, nil
	}
	return Num{}, errs.BadValue{What: what, Valid: "number", Actual: kindOf(v)}
}

func isInf(rep any) bool {
	f, ok := rep.(float64)
	return ok && math.IsInf(f, 0)
}

// numKind describes the representation of a Num, ordered from most to least
// exact.
type numKind uint8

const (
	fixInt numKind = iota
	bigInt
	bigRat
	inexact
)

func kindOfRep(rep any) numKind {
	switch rep.(type) {
	case int:
		return fixInt
	case *big.Int:
		return bigInt
	case *big.Rat:
		return bigRat
	case float64:
		return inexact
	}
	panic("invalid number representation")
}

// unify2 converts two representations to their common kind, which is at
// least floor. Passing a floor of bigInt or above guarantees that the
// results are never plain ints, so arithmetic on them cannot overflow.
func unify2(a, b any, floor numKind) (any, any) {
	k := kindOfRep(a)
	if k2 := kindOfRep(b); k2 > k {
		k = k2
	}
	if floor > k {
		k = floor
	}
	return convertRep(a, k), convertRep(b, k)
}

func convertRep(rep any, k numKind) any {
	switch k {
	case bigInt:
		if i, ok := rep.(int); ok {
			return big.NewInt(int64(i))
		}
	case bigRat:
		switch v := rep.(type) {
		case int:
			return new(big.Rat).SetInt64(int64(v))
		case *big.Int:
			return new(big.Rat).SetInt(v)
		}
	case inexact:
		switch v := rep.(type) {
		case int:
			return float64(v)
		case *big.Int:
			f, _ := new(big.Float).SetInt(v).Float64()
			return f
		case *big.Rat:
			f, _ := v.Float64()
			return f
		}
	}
	return rep
}

// normBigInt demotes z to an int if it fits.
func normBigInt(z *big.Int) any {
	if i, ok := fixIntOf(z); ok {
		return i
	}
	return z
}

// normBigRat demotes z to an integer representation if its denominator is 1.
func normBigRat(z *big.Rat) any {
	if z.IsInt() {
		return normBigInt(z.Num())
	}
	return z
}

func fixIntOf(z *big.Int) (int, bool) {
	if z.IsInt64() {
		i64 := z.Int64()
		i := int(i64)
		if int64(i) == i64 {
			return i, true
		}
	}
	return 0, false
}
