// Package template converts between the form of expressions people type and
// the placeholder form that the compiler takes.
//
// In the typed form, "?" marks an operand supplied later, and a numeric
// literal is an operand supplied in place. Both become placeholders in the
// compiled source; literals are additionally lifted out as operand texts, in
// the order they appear.
package template

import (
	"strings"
	"unicode/utf8"

	"src.tally.dev/pkg/expr"
)

// A Template is an expression source in placeholder form, together with the
// texts of the literals lifted out of it. Operands holds one text per
// lifted literal; placeholders typed as "?" contribute no text.
type Template struct {
	Source   string
	Operands []string
}

// Expand returns src with every "?" replaced by a placeholder. It lifts no
// literals; use Extract for sources that may contain them.
func Expand(src string) string {
	return strings.ReplaceAll(src, "?", string(expr.Placeholder))
}

// Extract turns src into a Template, replacing each "?" and each numeric
// literal with a placeholder. Literals follow
//
//	Literal = Digits [ '.' Digits ] [ ( 'e' | 'E' ) [ '+' | '-' ] Digits ]
//
// and are unsigned; a leading "-" is an operator, so a negative operand must
// be written as an expression like (0-2) or supplied via "?". Comments are
// copied as is, so a digit in a comment is not a literal.
func Extract(src string) Template {
	var sb strings.Builder
	var operands []string
	for i := 0; i < len(src); {
		switch {
		case src[i] == '?':
			sb.WriteRune(expr.Placeholder)
			i++
		case src[i] == '#':
			end := strings.IndexByte(src[i:], '\n')
			if end == -1 {
				end = len(src) - i
			} else {
				end++
			}
			sb.WriteString(src[i : i+end])
			i += end
		case isDigit(src[i]):
			lit := literalAt(src, i)
			operands = append(operands, lit)
			sb.WriteRune(expr.Placeholder)
			i += len(lit)
		default:
			_, n := utf8.DecodeRuneInString(src[i:])
			sb.WriteString(src[i : i+n])
			i += n
		}
	}
	return Template{sb.String(), operands}
}

// literalAt scans the longest literal starting at i, which must be on a
// digit. A "." or exponent part is only consumed when complete, so "1.x"
// scans as "1" followed by ".x".
func literalAt(src string, i int) string {
	j := skipDigits(src, i)
	if j < len(src) && src[j] == '.' && j+1 < len(src) && isDigit(src[j+1]) {
		j = skipDigits(src, j+1)
	}
	if j < len(src) && (src[j] == 'e' || src[j] == 'E') {
		k := j + 1
		if k < len(src) && (src[k] == '+' || src[k] == '-') {
			k++
		}
		if k < len(src) && isDigit(src[k]) {
			j = skipDigits(src, k)
		}
	}
	return src[i:j]
}

func skipDigits(src string, i int) int {
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	return i
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
