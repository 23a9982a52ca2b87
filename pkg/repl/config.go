package repl

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"src.tally.dev/pkg/prog"
)

// Operand modes. The mode decides which operand kind literals are parsed
// into.
const (
	modeAuto    = "auto"
	modeDecimal = "decimal"
)

// config is the merged result of the config file and the command-line flags
// that override it. Prec is a pointer so that an absent key can be told
// apart from an explicit 0.
type config struct {
	Mode     string `yaml:"mode"`
	Prec     *int   `yaml:"prec"`
	HistFile string `yaml:"histfile"`
}

// readConfig reads and parses the config file. A missing file is not an
// error; it yields the zero config.
func readConfig(path string) (config, error) {
	var cfg config
	bs, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read config file: %v", err)
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config file %v: %v", path, err)
	}
	return cfg, nil
}

// effectiveConfig computes the configuration for this run: the config file
// (-config, or the default path), overridden by the -mode, -prec and -db
// flags, validated. Failure to resolve the default config path is reported
// as a warning on stderr and treated like a missing file, so that tally
// still runs on systems without a home directory.
func effectiveConfig(f *prog.Flags, stderr io.Writer) (config, error) {
	path := f.Config
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			fmt.Fprintln(stderr, "Warning:", err)
		}
		path = p
	}
	var cfg config
	if path != "" {
		var err error
		cfg, err = readConfig(path)
		if err != nil {
			return config{}, err
		}
	}

	if f.Mode != "" {
		cfg.Mode = f.Mode
	}
	if f.Prec >= 0 {
		prec := f.Prec
		cfg.Prec = &prec
	}
	if f.DB != "" {
		cfg.HistFile = f.DB
	}

	switch cfg.Mode {
	case "":
		cfg.Mode = modeAuto
	case modeAuto, modeDecimal:
	default:
		return config{}, fmt.Errorf(
			"invalid mode %q, should be %q or %q", cfg.Mode, modeAuto, modeDecimal)
	}
	if cfg.Prec != nil && *cfg.Prec < 0 {
		return config{}, fmt.Errorf(
			"invalid prec %v, should be non-negative", *cfg.Prec)
	}
	return cfg, nil
}
