package expr

import (
	"src.tally.dev/pkg/errs"
	"src.tally.dev/pkg/operand"
)

// operator describes a binary operator: its precedence, its associativity
// and the operand capability it applies.
type operator struct {
	prec  int
	right bool
	apply func(a, b operand.Operations) (operand.Operations, error)
}

const (
	precAdd = 100
	precMul = 200
)

// operators is the operator table of the expression language. All four
// operators are left-associative; the right flag only matters for tables
// that extend this one.
var operators = map[rune]operator{
	'+': {precAdd, false, operand.Operations.Add},
	'-': {precAdd, false, operand.Operations.Sub},
	'*': {precMul, false, operand.Operations.Mul},
	'/': {precMul, false, operand.Operations.Div},
}

// An evalOp is a node of a compiled expression. It computes a value from the
// operands the evaluator was called with.
type evalOp interface {
	eval(operands []operand.Operations) (operand.Operations, error)
}

// holeOp yields the operand bound to one placeholder. Placeholders are
// numbered left to right in source order.
type holeOp struct{ index int }

func (op holeOp) eval(operands []operand.Operations) (operand.Operations, error) {
	return operands[op.index], nil
}

// binaryOp applies an operator to the values of two subtrees.
type binaryOp struct {
	apply    func(a, b operand.Operations) (operand.Operations, error)
	lhs, rhs evalOp
}

func (op binaryOp) eval(operands []operand.Operations) (operand.Operations, error) {
	a, err := op.lhs.eval(operands)
	if err != nil {
		return nil, err
	}
	b, err := op.rhs.eval(operands)
	if err != nil {
		return nil, err
	}
	return op.apply(a, b)
}

// Evaluator is a compiled expression. It holds no mutable state, so it may
// be evaluated any number of times and from multiple goroutines.
type Evaluator struct {
	op    evalOp
	holes int
}

// Arity returns the number of operands the evaluator takes, which is the
// number of placeholders in the source it was compiled from.
func (ev *Evaluator) Arity() int { return ev.holes }

// Eval computes the value of the expression, binding the operands to the
// placeholders in source order. It returns an error if the number of
// operands does not match the arity, or if an operation on the operands
// fails; evaluation stops at the first failing operation.
func (ev *Evaluator) Eval(operands ...operand.Operations) (operand.Operations, error) {
	if len(operands) != ev.holes {
		return nil, errs.ArityMismatch{What: "operands",
			ValidLow: ev.holes, ValidHigh: ev.holes, Actual: len(operands)}
	}
	return ev.op.eval(operands)
}
