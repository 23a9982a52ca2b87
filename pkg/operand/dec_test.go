package operand

import (
	"testing"

	"src.tally.dev/pkg/errs"
	"src.tally.dev/pkg/tt"
)

func dec(s string) Dec {
	d, err := ParseDec(s)
	if err != nil {
		panic(err)
	}
	return d
}

// eqDec matches a Dec with the same numeric value, regardless of how the
// quotient is scaled internally.
type eqDec struct{ want Dec }

func (m eqDec) Match(ret tt.RetValue) bool {
	d, ok := ret.(Dec)
	return ok && d.d.Equal(m.want.d)
}

func TestParseDec(t *testing.T) {
	tt.Test(t, tt.Fn("ParseDec", ParseDec), tt.Table{
		tt.Args("120").Rets(DecFromInt(120), nil),
		tt.Args("1.10").Rets(dec("1.10"), nil),
		tt.Args("-0.5").Rets(dec("-0.5"), nil),
		tt.Args("spam").Rets(Dec{}, tt.AnyError),
		tt.Args("").Rets(Dec{}, tt.AnyError),
	})
}

func TestDecArith(t *testing.T) {
	tt.Test(t, tt.Fn("Add", add), tt.Table{
		// 0.1 + 0.2 is exact in decimal, unlike in binary floating point.
		tt.Args(dec("0.1"), dec("0.2")).Rets(dec("0.3"), nil),
		tt.Args(dec("1.10"), dec("2.20")).Rets(dec("3.30"), nil),
		tt.Args(dec("1"), Int(1)).Rets(nil,
			errs.BadValue{What: "addend", Valid: "decimal", Actual: "number"}),
	})
	tt.Test(t, tt.Fn("Sub", sub), tt.Table{
		tt.Args(dec("1"), dec("0.999")).Rets(dec("0.001"), nil),
		tt.Args(dec("1"), Int(1)).Rets(nil,
			errs.BadValue{What: "subtrahend", Valid: "decimal", Actual: "number"}),
	})
	tt.Test(t, tt.Fn("Mul", mul), tt.Table{
		tt.Args(dec("1.5"), dec("2")).Rets(dec("3.0"), nil),
		tt.Args(dec("0.07"), dec("100")).Rets(dec("7.00"), nil),
		tt.Args(dec("1"), Int(1)).Rets(nil,
			errs.BadValue{What: "multiplier", Valid: "decimal", Actual: "number"}),
	})
	tt.Test(t, tt.Fn("Div", div), tt.Table{
		tt.Args(dec("1"), dec("4")).Rets(eqDec{dec("0.25")}, nil),
		tt.Args(dec("1"), dec("0")).Rets(nil, ErrDivZero),
		tt.Args(dec("1"), dec("0.00")).Rets(nil, ErrDivZero),
		tt.Args(dec("1"), Int(1)).Rets(nil,
			errs.BadValue{What: "divisor", Valid: "decimal", Actual: "number"}),
	})
}

func TestDecDivisionPrecision(t *testing.T) {
	defer SetDivisionPrecision(16)

	SetDivisionPrecision(4)
	got, err := dec("1").Div(dec("3"))
	if err != nil {
		t.Fatalf("Div(1, 3) -> error %v", err)
	}
	if s := got.(Dec).String(); s != "0.3333" {
		t.Errorf("Div(1, 3) -> %s, want 0.3333", s)
	}
}

func TestDecString(t *testing.T) {
	tt.Test(t, tt.Fn("Dec.String", Dec.String), tt.Table{
		tt.Args(dec("42")).Rets("42"),
		tt.Args(dec("0.250")).Rets("0.25"),
		tt.Args(dec("-1.5")).Rets("-1.5"),
	})
}
