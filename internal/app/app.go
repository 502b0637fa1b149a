// Package app wires configuration, engines, and presentation into the
// limbcalc command and dispatches between its modes.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/limbcalc/internal/cli"
	"github.com/agbru/limbcalc/internal/config"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/ui"
)

// Application is one limbcalc invocation.
type Application struct {
	Config    config.AppConfig
	Factory   evaluator.Factory
	Logger    logging.Logger
	Registry  *prometheus.Registry
	ErrWriter io.Writer
	In        io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory replaces the engine factory built from the configuration.
func WithFactory(f evaluator.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithRegistry sets the registry the evaluation metrics are recorded in.
func WithRegistry(r *prometheus.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithInput sets the reader of the interactive session.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New parses args (program name first) and builds the application. Parse
// errors have already been reported on errWriter when New returns them.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	engines := evaluator.NewDefaultFactory(evaluator.Options{}).List()
	if app.Factory != nil {
		engines = app.Factory.List()
	}

	programName := "limbcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, engines)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Registry == nil {
		app.Registry = prometheus.NewRegistry()
	}
	app.Logger = logging.NewLogger(errWriter, "limbcalc")
	if app.Factory == nil {
		app.Factory = evaluator.NewDefaultFactory(cfg.EngineOptions(),
			evaluator.WithLogger(app.Logger),
			evaluator.WithMetrics(metrics.NewEvaluationMetrics(app.Registry)))
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if err := logging.SetLevel(a.Config.LogLevel); err != nil {
		return a.configFailure(err)
	}
	ui.InitTheme(a.Config.NoColor)
	if ui.GetCurrentTheme() != ui.NoColorTheme && !ui.SetTheme(a.Config.Theme) {
		return a.configFailure(fmt.Errorf("unknown theme %q, valid themes are %v", a.Config.Theme, ui.ThemeNames()))
	}

	if a.Config.Interactive {
		return a.runInteractive(ctx, out)
	}
	return a.runEvaluate(ctx, out)
}

func (a *Application) configFailure(err error) int {
	fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", apperrors.ConfigError{Message: err.Error()})
	return apperrors.ExitErrorConfig
}

// runCompletion writes a shell completion script.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runInteractive hosts a session until exit, end of input, or a signal.
func (a *Application) runInteractive(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultEngine: a.Config.Engine,
		Timeout:       a.Config.Timeout,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	a.dumpMetrics(out)
	return apperrors.ExitSuccess
}

// dumpMetrics prints the limbcalc metric families when -metrics is set.
func (a *Application) dumpMetrics(out io.Writer) {
	if !a.Config.Metrics {
		return
	}
	fmt.Fprintf(out, "\n--- Metrics ---\n")
	if err := metrics.WriteText(out, a.Registry, metrics.Namespace+"_"); err != nil {
		a.Logger.Error("metrics dump failed", err)
	}
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
