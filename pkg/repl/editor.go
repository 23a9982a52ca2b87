package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"src.tally.dev/pkg/strutil"
)

// This type is the interface that the line editor has to satisfy. It is
// needed so that a richer editor can be plugged in without changing the
// interactive loop.
type editor interface {
	ReadCode() (string, error)
}

type minEditor struct {
	in     *bufio.Reader
	out    io.Writer
	prompt func() string
}

func newMinEditor(in, out *os.File, prompt func() string) *minEditor {
	return &minEditor{bufio.NewReader(in), out, prompt}
}

func (ed *minEditor) ReadCode() (string, error) {
	fmt.Fprint(ed.out, ed.prompt())
	line, err := ed.in.ReadString('\n')
	return strutil.ChopLineEnding(line), err
}
