// Package repl is the terminal interface of tally.
package repl

import (
	"fmt"
	"os"
	"path/filepath"

	"src.tally.dev/pkg/logutil"
	"src.tally.dev/pkg/operand"
	"src.tally.dev/pkg/prog"
	"src.tally.dev/pkg/store"
	"src.tally.dev/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[repl] ")

// Program is the REPL subprogram. It is the terminal subprogram and runs
// whenever no other subprogram does.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	cfg, err := effectiveConfig(f, fds[2])
	if err != nil {
		return err
	}
	if cfg.Prec != nil {
		operand.SetDivisionPrecision(*cfg.Prec)
	}

	if len(args) > 1 {
		return prog.BadUsage("at most one argument is allowed")
	}
	if len(args) == 0 && f.CodeInArg {
		return prog.BadUsage("argument required when -c is given")
	}
	if len(args) > 0 {
		exit := script(fds, args, &scriptCfg{
			Cmd: f.CodeInArg, CompileOnly: f.CompileOnly, JSON: f.JSON,
			Mode: cfg.Mode})
		return prog.Exit(exit)
	}

	var st storedefs.Store
	if !f.NoHist {
		dbStore, err := openStore(cfg.HistFile)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "Continuing without evaluation history.")
		} else {
			defer dbStore.Close()
			st = dbStore
		}
	}
	Interact(fds, &InteractConfig{Mode: cfg.Mode, Store: st})
	return nil
}

// openStore opens the history database at dbname, defaulting to DBPath and
// creating the parent directory when needed.
func openStore(dbname string) (store.DBStore, error) {
	if dbname == "" {
		p, err := DBPath()
		if err != nil {
			return nil, err
		}
		dbname = p
	}
	if err := os.MkdirAll(filepath.Dir(dbname), 0700); err != nil {
		return nil, fmt.Errorf("cannot create history directory: %v", err)
	}
	st, err := store.NewStore(dbname)
	if err != nil {
		return nil, fmt.Errorf("cannot open history database: %v", err)
	}
	return st, nil
}
