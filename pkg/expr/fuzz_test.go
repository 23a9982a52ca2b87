package expr_test

import (
	"testing"

	"src.tally.dev/pkg/expr"
	"src.tally.dev/pkg/operand"
)

func FuzzCompile(f *testing.F) {
	f.Add(expand("?+?*?"))
	f.Add(expand("(?+?)*?"))
	f.Add(expand("? # comment"))
	f.Add("2+3")
	f.Fuzz(func(t *testing.T, src string) {
		ev, err := expr.Compile(src)
		if err != nil {
			return
		}
		// Anything that compiles must evaluate cleanly on matching operands.
		operands := make([]operand.Operations, ev.Arity())
		for i := range operands {
			operands[i] = operand.Int(1)
		}
		if _, err := ev.Eval(operands...); err != nil {
			t.Errorf("compiled %q, but evaluating failed: %v", src, err)
		}
	})
}
