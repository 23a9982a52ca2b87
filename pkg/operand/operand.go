// Package operand defines the capability set that values must satisfy to be
// used with compiled expressions, along with the two operand kinds shipped
// with tally: Num, an exact-by-default numeric tower, and Dec, fixed-point
// decimals.
//
// Kinds do not mix: combining a Num with a Dec fails with a bad-value error.
package operand

import "fmt"

// Operations is the capability set of expression operands. An implementation
// must be a pure value; the compiled evaluators assume that none of the four
// operations mutate their receiver or argument.
type Operations interface {
	Add(other Operations) (Operations, error)
	Sub(other Operations) (Operations, error)
	Mul(other Operations) (Operations, error)
	Div(other Operations) (Operations, error)
}

// kindOf describes the kind of an operand for error messages.
func kindOf(v Operations) string {
	switch v.(type) {
	case Num:
		return "number"
	case Dec:
		return "decimal"
	default:
		return fmt.Sprintf("%T", v)
	}
}
