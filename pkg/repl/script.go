package repl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"src.tally.dev/pkg/expr"
	"src.tally.dev/pkg/template"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd         bool
	CompileOnly bool
	JSON        bool
	Mode        string
}

// script evaluates a file of templates, one per line. Empty lines and lines
// holding only a comment are skipped. Evaluation stops at the first line
// that fails; with CompileOnly, every line is checked and all errors are
// reported.
func script(fds [3]*os.File, args []string, cfg *scriptCfg) int {
	arg0 := args[0]

	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg0
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			fmt.Fprintf(fds[2],
				"cannot get full path of script %q: %v\n", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
	}

	if cfg.CompileOnly {
		return checkLines(fds, name, code, cfg.JSON)
	}
	for i, line := range strings.Split(code, "\n") {
		if skipLine(line) {
			continue
		}
		result, err := evalOne(line, cfg.Mode)
		if err != nil {
			fmt.Fprintf(fds[2], "%v:%v: %v\n", name, i+1, err)
			return 2
		}
		fmt.Fprintln(fds[1], result)
	}
	return 0
}

// checkLines compiles every line without evaluating, reporting errors on
// stderr, or as a JSON array on stdout when json is true.
func checkLines(fds [3]*os.File, name, code string, asJSON bool) int {
	var errs []errorInJSON
	for i, line := range strings.Split(code, "\n") {
		if skipLine(line) {
			continue
		}
		_, err := expr.Compile(template.Extract(line).Source)
		if err != nil {
			errs = append(errs, errorInJSON{name, i + 1, err.(*expr.Error).Msg})
		}
	}
	if asJSON {
		fmt.Fprintf(fds[1], "%s\n", errorsToJSON(errs))
	} else {
		for _, e := range errs {
			fmt.Fprintf(fds[2], "%v:%v: malformed expression: %v\n",
				e.FileName, e.Line, e.Message)
		}
	}
	if len(errs) > 0 {
		return 2
	}
	return 0
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting compile errors to JSON. Compile errors
// carry no position within the line, so the line number is all the location
// information there is.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

func errorsToJSON(errs []errorInJSON) []byte {
	if errs == nil {
		// Distinguish "no errors" from null.
		errs = []errorInJSON{}
	}
	jsonError, errMarshal := json.Marshal(errs)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
