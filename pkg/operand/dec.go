package operand

import (
	"strconv"

	"github.com/shopspring/decimal"

	"src.tally.dev/pkg/errs"
)

// Dec is a fixed-point decimal operand backed by shopspring/decimal.
// Addition, subtraction and multiplication are exact; division rounds to the
// precision set with SetDivisionPrecision.
type Dec struct {
	d decimal.Decimal
}

// ParseDec parses a literal into a Dec. It accepts integer and
// floating-point literals; the fractional part is kept exactly.
func ParseDec(s string) (Dec, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Dec{}, errs.BadValue{What: "decimal literal",
			Valid: "integer or floating-point literal", Actual: strconv.Quote(s)}
	}
	return Dec{d}, nil
}

// DecFromInt returns a Dec holding the given integer.
func DecFromInt(i int) Dec { return Dec{decimal.New(int64(i), 0)} }

// SetDivisionPrecision sets the number of fractional digits kept by decimal
// division. It affects all Dec values and is not safe to call concurrently
// with Div.
func SetDivisionPrecision(n int) { decimal.DivisionPrecision = n }

// Add adds two decimals exactly.
func (d Dec) Add(other Operations) (Operations, error) {
	e, err := matchDec("addend", other)
	if err != nil {
		return nil, err
	}
	return Dec{d.d.Add(e.d)}, nil
}

// Sub subtracts other from d exactly.
func (d Dec) Sub(other Operations) (Operations, error) {
	e, err := matchDec("subtrahend", other)
	if err != nil {
		return nil, err
	}
	return Dec{d.d.Sub(e.d)}, nil
}

// Mul multiplies two decimals exactly.
func (d Dec) Mul(other Operations) (Operations, error) {
	e, err := matchDec("multiplier", other)
	if err != nil {
		return nil, err
	}
	return Dec{d.d.Mul(e.d)}, nil
}

// Div divides d by other, rounding to the division precision. Dividing by
// zero throws ErrDivZero.
func (d Dec) Div(other Operations) (Operations, error) {
	e, err := matchDec("divisor", other)
	if err != nil {
		return nil, err
	}
	if e.d.IsZero() {
		return nil, ErrDivZero
	}
	return Dec{d.d.Div(e.d)}, nil
}

// String returns the decimal in fixed-point notation.
func (d Dec) String() string { return d.d.String() }

func matchDec(what string, v Operations) (Dec, error) {
	if e, ok := v.(Dec); ok {
		return e, nil
	}
	return Dec{}, errs.BadValue{What: what, Valid: "decimal", Actual: kindOf(v)}
}
