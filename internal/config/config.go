// Package config defines the limbcalc configuration, parses it from
// command-line flags and LIMBCALC_ environment variables, and validates it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/evaluator"
)

// EnvPrefix is the prefix of every environment variable read by limbcalc.
const EnvPrefix = "LIMBCALC_"

// Default configuration values.
const (
	// DefaultOp is the operation run when -op is not given.
	DefaultOp = string(evaluator.OpMul)
	// DefaultEngine runs every registered engine and compares them.
	DefaultEngine = "all"
	// DefaultK is the default shift amount or bit index.
	DefaultK = 1
	// DefaultWidth is the limb width of the configurable engines.
	DefaultWidth = 64
	// DefaultCapacity is the capacity in bits of the fixed-capacity engine.
	DefaultCapacity = 1024
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = time.Minute
	// DefaultLogLevel is the zerolog level used when -log-level is not given.
	DefaultLogLevel = "warn"
	// DefaultTheme is the color theme used when colors are enabled.
	DefaultTheme = "dark"
)

// AppConfig holds every setting of a limbcalc run.
type AppConfig struct {
	// Op is the operation to evaluate (add, mul, shl, bitlen, getbit,
	// setbit, clearbit).
	Op string
	// A is the first operand, in decimal or with a 0x, 0o or 0b prefix.
	A string
	// B is the second operand of add and mul.
	B string
	// K is the shift amount of shl and the bit index of the bit operations.
	K uint
	// Engine selects one engine by name, or "all".
	Engine string
	// Width is the limb width of the "limb" and "limb-fixed" engines.
	Width uint
	// Capacity is the size in bits of the "limb-fixed" engine.
	Capacity uint
	// MaxLimbs bounds the chain length of the growing engines; 0 is no bound.
	MaxLimbs int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Verbose prints full decimal results instead of truncating them.
	Verbose bool
	// Details prints the limb map, memory and host statistics.
	Details bool
	// Quiet prints only the result, for scripts.
	Quiet bool
	// NoColor disables colors; NO_COLOR is honored too.
	NoColor bool
	// Metrics dumps the Prometheus metrics in text format after the run.
	Metrics bool
	// LogLevel is the zerolog level name.
	LogLevel string
	// Theme is the color theme name.
	Theme string
	// OutputFile, when set, receives the agreed result.
	OutputFile string
	// Interactive starts a session reading one request per line.
	Interactive bool
	// Completion names a shell whose completion script is printed.
	Completion string
}

// CompletionShells lists the shells -completion accepts.
var CompletionShells = []string{"bash", "zsh", "fish"}

// NeedsRequest reports whether the run evaluates the request given by flags.
// Interactive sessions and completion output read no operands.
func (c AppConfig) NeedsRequest() bool {
	return !c.Interactive && c.Completion == ""
}

// EngineOptions converts the configuration into evaluator options.
func (c AppConfig) EngineOptions() evaluator.Options {
	return evaluator.Options{
		Width:        c.Width,
		CapacityBits: c.Capacity,
		MaxLimbs:     c.MaxLimbs,
	}
}

// Request parses the operands and builds the evaluation request.
func (c AppConfig) Request() (evaluator.Request, error) {
	op, err := evaluator.ParseOperation(c.Op)
	if err != nil {
		return evaluator.Request{}, err
	}
	req := evaluator.Request{Op: op, K: c.K}
	if req.A, err = ParseOperand("a", c.A); err != nil {
		return evaluator.Request{}, err
	}
	if op.Binary() {
		if req.B, err = ParseOperand("b", c.B); err != nil {
			return evaluator.Request{}, err
		}
	}
	return req, req.Validate()
}

// ParseOperand reads a non-negative integer written in Go literal syntax:
// decimal, or prefixed with 0x, 0o or 0b, with optional underscores.
func ParseOperand(name, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, apperrors.NewConfigError("operand -%s is required", name)
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, apperrors.NewConfigError("operand -%s is not an integer: %q", name, s)
	}
	if v.Sign() < 0 {
		return nil, apperrors.NewConfigError("operand -%s must not be negative: %s", name, s)
	}
	return v, nil
}

// Validate checks the configuration for consistency. availableEngines lists
// the engine names -engine may select besides "all".
func (c AppConfig) Validate(availableEngines []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Width == 0 || c.Width > 64 {
		return apperrors.NewConfigError("limb width must be between 1 and 64, got %d", c.Width)
	}
	if c.Capacity == 0 {
		return apperrors.NewConfigError("fixed capacity must be at least one bit")
	}
	if c.MaxLimbs < 0 {
		return apperrors.NewConfigError("limb limit cannot be negative: %d", c.MaxLimbs)
	}
	if c.Engine != DefaultEngine && !slices.Contains(availableEngines, c.Engine) {
		return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: 'all' or [%s]", c.Engine, strings.Join(availableEngines, ", "))
	}
	if c.Completion != "" && !slices.Contains(CompletionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell for -completion: '%s'. Valid shells are: [%s]", c.Completion, strings.Join(CompletionShells, ", "))
	}
	if !c.NeedsRequest() {
		return nil
	}
	if _, err := c.Request(); err != nil {
		return err
	}
	return nil
}

// ParseConfig parses args into an AppConfig. Flags win over LIMBCALC_
// environment variables, which win over the defaults. Parse and validation
// errors are written to errorWriter along with the usage text.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableEngines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	opNames := make([]string, 0, len(evaluator.Operations()))
	for _, op := range evaluator.Operations() {
		opNames = append(opNames, string(op))
	}

	config := AppConfig{}
	fs.StringVar(&config.Op, "op", DefaultOp, fmt.Sprintf("Operation to evaluate: one of [%s].", strings.Join(opNames, ", ")))
	fs.StringVar(&config.A, "a", "", "First operand (decimal, 0x, 0o or 0b).")
	fs.StringVar(&config.B, "b", "", "Second operand of add and mul.")
	fs.UintVar(&config.K, "k", DefaultK, "Shift amount for shl, bit index for getbit/setbit/clearbit.")
	fs.StringVar(&config.Engine, "engine", DefaultEngine, fmt.Sprintf("Engine to use: 'all' (default) or one of [%s].", strings.Join(availableEngines, ", ")))
	fs.UintVar(&config.Width, "width", DefaultWidth, "Limb width in bits of the 'limb' and 'limb-fixed' engines (1-64).")
	fs.UintVar(&config.Capacity, "capacity", DefaultCapacity, "Capacity in bits of the 'limb-fixed' engine.")
	fs.IntVar(&config.MaxLimbs, "max-limbs", 0, "Longest limb chain a growing engine may allocate (0 for no limit).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full decimal value of the result.")
	fs.BoolVar(&config.Details, "d", false, "Display the limb map and resource usage.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print the Prometheus metrics of the run.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or disabled.")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme: dark, light or none.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file (shorthand).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start an interactive session.")
	fs.BoolVar(&config.Interactive, "i", false, "Interactive session (shorthand).")
	fs.StringVar(&config.Completion, "completion", "", fmt.Sprintf("Print a completion script for one of [%s].", strings.Join(CompletionShells, ", ")))

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Op = strings.ToLower(strings.TrimSpace(config.Op))
	config.Engine = strings.ToLower(strings.TrimSpace(config.Engine))
	config.Completion = strings.ToLower(strings.TrimSpace(config.Completion))
	if err := config.Validate(availableEngines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}
