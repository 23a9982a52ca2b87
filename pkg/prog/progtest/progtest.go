// Package progtest provides utilities for testing subprograms.
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"src.tally.dev/pkg/prog"
)

// Fixture is a test fixture with pipes for the three standard files.
type Fixture struct {
	pipes [3]*pipe
}

// Setup sets up a test fixture. The fixture is automatically cleaned up when
// the test finishes.
func Setup(t *testing.T) *Fixture {
	f := &Fixture{[3]*pipe{makeInPipe(), makeOutPipe(), makeOutPipe()}}
	t.Cleanup(func() {
		for _, p := range f.pipes {
			p.close()
		}
	})
	return f
}

// Fds returns the file descriptors to run a Program with. The standard input
// reads what was fed with FeedIn; the other two collect output.
func (f *Fixture) Fds() [3]*os.File {
	return [3]*os.File{f.pipes[0].r, f.pipes[1].w, f.pipes[2].w}
}

// FeedIn makes the given text available on the standard input and closes it.
func (f *Fixture) FeedIn(s string) {
	_, err := f.pipes[0].w.WriteString(s)
	if err != nil {
		panic(err)
	}
	f.pipes[0].w.Close()
	f.pipes[0].wClosed = true
}

// Out returns all the data written to the file with the given number, which
// must be 1 or 2. It closes the write end first, so the program must have
// finished.
func (f *Fixture) Out(fd int) string {
	return f.pipes[fd].get()
}

// TestOut tests that the data written on the given FD is exactly wantOut.
func (f *Fixture) TestOut(t *testing.T, fd int, wantOut string) {
	t.Helper()
	if out := f.Out(fd); out != wantOut {
		t.Errorf("got out %q, want %q", out, wantOut)
	}
}

// TestOutSnippet tests that the data written on the given FD contains
// wantOutSnippet.
func (f *Fixture) TestOutSnippet(t *testing.T, fd int, wantOutSnippet string) {
	t.Helper()
	if out := f.Out(fd); !strings.Contains(out, wantOutSnippet) {
		t.Errorf("got out %q, want string containing %q", out, wantOutSnippet)
	}
}

type pipe struct {
	r, w             *os.File
	rClosed, wClosed bool
	saved            chan string
	result           string
	drained          bool
}

func makeInPipe() *pipe {
	r, w := mustPipe()
	return &pipe{r: r, w: w}
}

func makeOutPipe() *pipe {
	r, w := mustPipe()
	saved := make(chan string, 1)
	// Collect in the background, so that writes to the pipe never block on a
	// full buffer.
	go func() {
		b, _ := io.ReadAll(r)
		saved <- string(b)
	}()
	return &pipe{r: r, w: w, saved: saved}
}

func (p *pipe) get() string {
	if !p.drained {
		p.drained = true
		if !p.wClosed {
			p.w.Close()
			p.wClosed = true
		}
		p.result = <-p.saved
	}
	return p.result
}

func (p *pipe) close() {
	if !p.wClosed {
		p.w.Close()
		p.wClosed = true
	}
	if !p.rClosed {
		p.r.Close()
		p.rClosed = true
	}
}

func mustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(fmt.Sprintf("Failed to create pipe: %v", err))
	}
	return r, w
}

// Case is a test case for a subprogram, constructed with ThatTally.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content string
	partial bool
}

// ThatTally returns a new Case with the given CLI arguments.
func ThatTally(args ...string) Case {
	return Case{args: append([]string{"tally"}, args...)}
}

// WithStdin returns an altered Case that feeds the given input to the
// standard input of the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// have no expectations, such as those checking side effects.
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to
// write exactly the given text to the standard output.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program
// run to write output to the standard output containing the given text.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to
// write exactly the given text to the standard error.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program
// run to write output to the standard error containing the given text.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs the test cases against the given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args[1:], " "), func(t *testing.T) {
			t.Helper()
			f := Setup(t)
			f.FeedIn(c.stdin)
			exit := prog.Run(f.Fds(), c.args, p)
			if exit != c.want.exit {
				t.Errorf("got exit code %v, want %v", exit, c.want.exit)
			}
			checkOutput(t, "stdout", f.Out(1), c.want.stdout)
			checkOutput(t, "stderr", f.Out(2), c.want.stderr)
		})
	}
}

func checkOutput(t *testing.T, name, got string, want output) {
	t.Helper()
	if want.partial {
		if !strings.Contains(got, want.content) {
			t.Errorf("got %v %q, want string containing %q", name, got, want.content)
		}
	} else if got != want.content {
		t.Errorf("got %v %q, want %q", name, got, want.content)
	}
}
