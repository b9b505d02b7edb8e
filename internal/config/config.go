// Package config parses ypath's command-line arguments into a validated
// Config, in the teacher's flag-package-only style (no third-party CLI
// framework).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goyamlpath/ypath/internal/exit"
)

// Command identifies which ypath subcommand was invoked.
type Command string

const (
	CommandEval     Command = "eval"
	CommandWatch    Command = "watch"
	CommandValidate Command = "validate"
)

var (
	ErrNoArguments    = errors.New("no arguments provided")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingFile    = errors.New("missing document file argument")
	ErrMissingPath    = errors.New("missing path expression argument")
	ErrFileNotFound   = errors.New("document file not found")
	ErrInvalidRate    = errors.New("rate must not be a negative number of evaluations per second")
)

// Config is the parsed, validated configuration for one ypath invocation.
type Config struct {
	Command Command

	// eval, watch (JSON is used by eval only; watch accepts it and ignores it)
	File string
	Path string
	JSON bool

	// eval, watch, validate
	Debug bool

	// eval: post-filter the JSON-projected matches. watch accepts the flag
	// and ignores it.
	JSONPath string

	// watch only: re-evaluation rate in Hz.
	Rate float64
}

// Validate checks field combinations Parse's flag stage cannot enforce by
// itself (e.g. a file that does not exist).
func (c *Config) Validate() error {
	switch c.Command {
	case CommandEval, CommandWatch:
		if c.File == "" {
			return ErrMissingFile
		}
		if _, err := os.Stat(c.File); err != nil {
			return fmt.Errorf("%w: %s", ErrFileNotFound, c.File)
		}
		if c.Path == "" {
			return ErrMissingPath
		}
	case CommandValidate:
		if c.Path == "" {
			return ErrMissingPath
		}
	}

	if c.Command == CommandWatch && c.Rate < 0 {
		return ErrInvalidRate
	}

	return nil
}

// Parse parses command-line arguments (excluding the program name) and
// returns a validated Config, or an exit.Result describing why parsing
// failed.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	switch args[0] {
	case "-h", "--help", "help":
		return nil, exit.Success(Usage())
	case string(CommandEval):
		return parseEvalLike(CommandEval, args[1:])
	case string(CommandWatch):
		return parseEvalLike(CommandWatch, args[1:])
	case string(CommandValidate):
		return parseValidate(args[1:])
	default:
		return nil, exit.Errorf("Error: %v: %q\n\n%s", ErrUnknownCommand, args[0], Usage())
	}
}

// parseEvalLike handles both "eval" and "watch", which share every flag
// except --rate (watch-only).
func parseEvalLike(cmd Command, args []string) (*Config, *exit.Result) {
	fs := flag.NewFlagSet(string(cmd), flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		jsonOut  = fs.Bool("json", false, "Print each match as its canonical JSON-decoded value")
		debug    = fs.Bool("debug", false, "Report lexer/parser diagnostics to stderr")
		jsonPath = fs.String("jsonpath", "", "Post-filter the JSON-projected matches through a JSONPath expression")
		rate     = fs.Float64("rate", 1, "Re-evaluation rate in Hz (watch only)")
	)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	positional := fs.Args()
	cfg := &Config{Command: cmd, JSON: *jsonOut, Debug: *debug, JSONPath: *jsonPath, Rate: *rate}
	if len(positional) > 0 {
		cfg.File = positional[0]
	}
	if len(positional) > 1 {
		cfg.Path = positional[1]
	}

	if err := cfg.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}
	return cfg, nil
}

func parseValidate(args []string) (*Config, *exit.Result) {
	fs := flag.NewFlagSet(string(CommandValidate), flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	debug := fs.Bool("debug", false, "Report lexer/parser diagnostics to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	positional := fs.Args()
	cfg := &Config{Command: CommandValidate, Debug: *debug}
	if len(positional) > 0 {
		cfg.Path = positional[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}
	return cfg, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `ypath - YAML path-expression engine

Usage:
  ypath eval <file> <path-expression> [options]
  ypath watch <file> <path-expression> [options]
  ypath validate <path-expression> [options]

Options:
  --json              Print each match as its canonical JSON-decoded value
  --debug              Report lexer/parser diagnostics to stderr
  --jsonpath EXPR       Post-filter the JSON-projected matches through a JSONPath expression
  --rate HZ             Re-evaluation rate in Hz (watch only, default 1)
  -h, --help            Show this help message

Examples:
  ypath eval doc.yaml '/a,b,c'
  ypath eval doc.yaml '/**$' --json
  ypath watch doc.yaml '/items/0:3' --rate 2
  ypath validate '/a/b/c'`
}
