package repl

import (
	"fmt"
	"strings"

	"src.tally.dev/pkg/expr"
	"src.tally.dev/pkg/operand"
	"src.tally.dev/pkg/template"
)

// evalOne evaluates one line of input: it lifts the literals out, compiles
// the resulting skeleton, parses the literals as operands of the configured
// mode, and runs the evaluator. The result is returned in its canonical
// string form.
func evalOne(line, mode string) (string, error) {
	t := template.Extract(line)
	ev, err := expr.Compile(t.Source)
	if err != nil {
		return "", err
	}
	operands := make([]operand.Operations, len(t.Operands))
	for i, text := range t.Operands {
		operands[i], err = parseOperand(text, mode)
		if err != nil {
			return "", err
		}
	}
	v, err := ev.Eval(operands...)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

func parseOperand(text, mode string) (operand.Operations, error) {
	if mode == modeDecimal {
		return operand.ParseDec(text)
	}
	return operand.ParseNum(text)
}

// skipLine reports whether a line of a script or a REPL session holds no
// expression, i.e. is empty or only a comment.
func skipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || trimmed[0] == '#'
}
