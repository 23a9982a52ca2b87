package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"src.tally.dev/pkg/store/storedefs"
)

// Number of entries the hist command prints.
const histShown = 10

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Mode  string
	Store storedefs.Store
}

// Interact runs an interactive session: a loop of reading one line,
// evaluating it and printing the result or the error. A prompt is printed
// when stdin is a terminal. The lines "quit" and "exit" end the session and
// "hist" prints recent history; every other non-empty line is evaluated and,
// on success, appended to the history store.
func Interact(fds [3]*os.File, cfg *InteractConfig) {
	prompt := ""
	if isatty.IsTerminal(fds[0].Fd()) {
		prompt = "tally> "
	}
	ed := newMinEditor(fds[0], fds[2], func() string { return prompt })

	for {
		line, readErr := ed.ReadCode()

		switch strings.TrimSpace(line) {
		case "":
		case "quit", "exit":
			return
		case "hist":
			showHist(fds, cfg.Store)
		default:
			if skipLine(line) {
				break
			}
			result, err := evalOne(line, cfg.Mode)
			if err != nil {
				fmt.Fprintln(fds[2], err)
				break
			}
			fmt.Fprintln(fds[1], result)
			if cfg.Store != nil {
				if _, err := cfg.Store.Add(line, result); err != nil {
					logger.Println("failed to add to history:", err)
				}
			}
		}

		if readErr != nil {
			if readErr != io.EOF {
				fmt.Fprintln(fds[2], "error reading input:", readErr)
			}
			return
		}
	}
}

func showHist(fds [3]*os.File, st storedefs.Store) {
	if st == nil {
		fmt.Fprintln(fds[2], "history is not available")
		return
	}
	next, err := st.NextSeq()
	if err != nil {
		fmt.Fprintln(fds[2], "cannot read history:", err)
		return
	}
	from := next - histShown
	if from < 1 {
		from = 1
	}
	entries, err := st.Entries(from, next)
	if err != nil {
		fmt.Fprintln(fds[2], "cannot read history:", err)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(fds[1], "%4d  %v = %v\n", e.Seq, e.Source, e.Result)
	}
}
