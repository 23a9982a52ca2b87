// Package expr compiles arithmetic expression templates into evaluators.
//
// The expression language has placeholders (see [Placeholder]), the four
// binary operators "+", "-", "*" and "/", parentheses, whitespace and
// comments from "#" to the end of the line. It has no literals: every
// operand is a placeholder, and the values to put in them are supplied at
// evaluation time. Compiling is separate from evaluating, so a template
// compiled once can be evaluated many times with different operands.
package expr

import "fmt"

// Error is returned by Compile when the source is not a well-formed
// expression. The message describes what was wrong with the source, not
// where.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "malformed expression: " + e.Msg }

// compiler maintains the mutable state of compilation: a rune cursor over
// the source, a one-token lookahead and the number of placeholders seen.
//
// NOTE: The src member is assumed to be valid UTF-8.
type compiler struct {
	src   string
	pos   int
	tok   token
	ops   map[rune]operator
	holes int
}

// Compile compiles the source of an expression into an Evaluator.
// A non-nil error is always of type *Error.
func Compile(src string) (*Evaluator, error) {
	return compile(src, operators)
}

func compile(src string, ops map[rune]operator) (ev *Evaluator, err error) {
	cp := &compiler{src: src, ops: ops}
	defer func() {
		r := recover()
		if r == nil {
			return
		} else if e, ok := r.(*Error); ok {
			err = e
		} else {
			panic(r)
		}
	}()
	cp.advance()
	op := cp.expression(cp.term(), 0)
	switch {
	case cp.tok.kind == eofToken:
	case cp.tok.kind == punctToken && cp.tok.punct == ')':
		cp.errorf("unmatched ')'")
	case cp.tok.kind == punctToken:
		cp.errorf("unexpected rune %q, should be operator or end of expression",
			cp.tok.punct)
	default:
		cp.errorf("should be operator or end of expression")
	}
	return &Evaluator{op, cp.holes}, nil
}

// expression parses the operator ladder above a parsed term:
//
//	Expr = Term { Operator Term }
//
// It uses precedence climbing, consuming operators of precedence at least
// minPrec. A right-associative operator binds an operator of the same
// precedence on its right; a left-associative one does not.
func (cp *compiler) expression(lhs evalOp, minPrec int) evalOp {
	for {
		op, ok := cp.currentOperator()
		if !ok || op.prec < minPrec {
			return lhs
		}
		cp.advance()
		rhs := cp.term()
		for {
			next, ok := cp.currentOperator()
			if !ok {
				break
			}
			if next.prec > op.prec {
				rhs = cp.expression(rhs, op.prec+1)
			} else if next.prec == op.prec && next.right {
				rhs = cp.expression(rhs, op.prec)
			} else {
				break
			}
		}
		lhs = binaryOp{op.apply, lhs, rhs}
	}
}

// term parses one operand position:
//
//	Term = Placeholder | '(' Expr ')'
func (cp *compiler) term() evalOp {
	switch {
	case cp.tok.kind == holeToken:
		op := holeOp{cp.holes}
		cp.holes++
		cp.advance()
		return op
	case cp.tok.kind == punctToken && cp.tok.punct == '(':
		cp.advance()
		op := cp.expression(cp.term(), 0)
		if cp.tok.kind != punctToken || cp.tok.punct != ')' {
			cp.errorf("should be ')'")
		}
		cp.advance()
		return op
	case cp.tok.kind == punctToken:
		cp.errorf("unexpected rune %q, should be operand or '('", cp.tok.punct)
	default:
		cp.errorf("should be operand or '('")
	}
	panic("unreachable")
}

func (cp *compiler) currentOperator() (operator, bool) {
	if cp.tok.kind != punctToken {
		return operator{}, false
	}
	op, ok := cp.ops[cp.tok.punct]
	return op, ok
}

func (cp *compiler) errorf(format string, args ...any) {
	panic(&Error{fmt.Sprintf(format, args...)})
}
