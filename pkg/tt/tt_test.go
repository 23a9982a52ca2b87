package tt

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// testT implements the T interface and is used to verify the Test function's
// interaction with T.
type testT []string

func (t *testT) Helper() {}

func (t *testT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

// Simple functions to test.

func add(x, y int) int {
	return x + y
}

func addsub(x int, y int) (int, int) {
	return x + y, x - y
}

func divide(x, y int) (int, error) {
	if y == 0 {
		return 0, errors.New("division by zero")
	}
	return x / y, nil
}

func TestPass(t *testing.T) {
	var testT testT
	Test(&testT, Fn("addsub", addsub), Table{
		Args(1, 10).Rets(11, -9),
	})
	if len(testT) > 0 {
		t.Errorf("Test errors when test should pass")
	}
}

func TestFailOneReturn(t *testing.T) {
	var testT testT
	Test(&testT, Fn("add", add), Table{
		Args(1, 10).Rets(12),
	})
	assertOneError(t, testT, "add(1, 10) -> 11, want 12")
}

func TestFailMultiReturn(t *testing.T) {
	var testT testT
	Test(&testT, Fn("addsub", addsub), Table{
		Args(1, 10).Rets(11, -90),
	})
	assertOneError(t, testT, "addsub(1, 10) -> (11, -9), want (11, -90)")
}

func TestMatchers(t *testing.T) {
	var testT testT
	Test(&testT, Fn("divide", divide), Table{
		Args(10, 2).Rets(5, nil),
		Args(10, 3).Rets(Any, nil),
		Args(10, 0).Rets(Any, AnyError),
	})
	if len(testT) > 0 {
		t.Errorf("Test errors when test should pass: %v", testT)
	}
}

func TestAnyErrorRejectsNil(t *testing.T) {
	var testT testT
	Test(&testT, Fn("divide", divide), Table{
		Args(10, 2).Rets(5, AnyError),
	})
	if len(testT) != 1 {
		t.Errorf("Test should error when AnyError matches nil")
	}
}

func assertOneError(t *testing.T, testT testT, want string) {
	t.Helper()
	switch len(testT) {
	case 0:
		t.Errorf("Test didn't error when it should have done so")
	case 1:
		if !strings.HasPrefix(testT[0], want) {
			t.Errorf("Test wrote message:\nWanted: %q...\nActual: %q", want, testT[0])
		}
	default:
		t.Errorf("Test wrote too many error messages")
	}
}
