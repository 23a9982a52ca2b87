// Command tally is a calculator built around compiled expression templates.
package main

import (
	"os"

	"src.tally.dev/pkg/buildinfo"
	"src.tally.dev/pkg/lsp"
	"src.tally.dev/pkg/prog"
	"src.tally.dev/pkg/repl"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, lsp.Program{}, repl.Program{})))
}
