// Package app implements the application layer for spin.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/spin/internal/adapters/detector"
	"go.trai.ch/spin/internal/adapters/linear"
	"go.trai.ch/spin/internal/adapters/tui"
	"go.trai.ch/spin/internal/core/domain"
	"go.trai.ch/spin/internal/core/ports"
	"go.trai.ch/spin/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// IndicatorFactory builds the status indicator for one run.
type IndicatorFactory func(ctx context.Context, mode detector.OutputMode) ports.Indicator

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	tracer       ports.Tracer
	logger       ports.Logger
	newWatcher   ports.WatcherFactory
	changes      ports.ChangeDetector

	newIndicator IndicatorFactory
	detectMode   func() detector.OutputMode
	teaOptions   []tea.ProgramOption
	getwd        func() (string, error)
	out          io.Writer
	errOut       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	tracer ports.Tracer,
	log ports.Logger,
	watcherFactory ports.WatcherFactory,
) *App {
	a := &App{
		configLoader: loader,
		executor:     executor,
		tracer:       tracer,
		logger:       log,
		newWatcher:   watcherFactory,
		detectMode:   detector.DetectEnvironment,
		getwd:        os.Getwd,
		out:          os.Stdout,
		errOut:       os.Stderr,
	}
	a.newIndicator = a.defaultIndicator
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithIndicatorFactory replaces how indicators are built for each run.
func (a *App) WithIndicatorFactory(factory IndicatorFactory) *App {
	a.newIndicator = factory
	return a
}

// WithOutput redirects captured build output (out) and status output (errOut).
func (a *App) WithOutput(out, errOut io.Writer) *App {
	a.out = out
	a.errOut = errOut
	return a
}

// WithChangeDetector drops watch batches whose files kept the same content.
func (a *App) WithChangeDetector(detector ports.ChangeDetector) *App {
	a.changes = detector
	return a
}

// WithWorkingDir pins the directory configuration is resolved from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// LogOptions configures diagnostic logging.
type LogOptions struct {
	Verbose bool
	JSON    bool
}

type configurableLogger interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// ConfigureLogging applies the logging flags when the logger supports them.
func (a *App) ConfigureLogging(opts LogOptions) {
	if l, ok := a.logger.(configurableLogger); ok {
		l.SetVerbose(opts.Verbose)
		l.SetJSON(opts.JSON)
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// OutputMode is one of "auto", "tui", "linear" or "ci".
	OutputMode string
	// CI forces the linear indicator.
	CI bool
	// ExitCode makes a reported build failure return ErrBuildExecutionFailed.
	ExitCode bool
	// ConfigPath is an explicit config file. Empty means search upward.
	ConfigPath string
	// Command overrides the configured command line.
	Command string
	// Dir overrides the configured working directory.
	Dir string
}

// Run executes the build command once and reports its outcome.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg, err := a.resolveConfig(opts)
	if err != nil {
		return err
	}

	outcome, err := a.runOnce(ctx, cfg.Command, a.resolveMode(opts))
	if err != nil {
		return err
	}

	if opts.ExitCode && outcome == domain.OutcomeFailure {
		return domain.ErrBuildExecutionFailed
	}
	return nil
}

// resolveConfig loads the configuration and applies flag overrides.
func (a *App) resolveConfig(opts RunOptions) (*domain.Config, error) {
	cwd, err := a.getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Command != "" {
		cfg.Command.Line = opts.Command
	}
	if opts.Dir != "" {
		dir := opts.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		cfg.Command.WorkingDir = dir
	}

	if cfg.Command.WorkingDir != "" {
		info, statErr := os.Stat(cfg.Command.WorkingDir)
		if statErr != nil || !info.IsDir() {
			return nil, zerr.With(domain.ErrWorkingDirNotFound, "path", cfg.Command.WorkingDir)
		}
	}

	if cfg.Path != "" {
		a.logger.Debug("using configuration " + cfg.Path)
	}
	a.logger.Debug(fmt.Sprintf("command %q in %s", cfg.Command.Line, cfg.Command.WorkingDir))

	return cfg, nil
}

func (a *App) resolveMode(opts RunOptions) detector.OutputMode {
	if opts.CI {
		return detector.ModeLinear
	}
	return detector.ResolveMode(a.detectMode(), opts.OutputMode)
}

// runOnce runs the indicator and the orchestrator concurrently for one build.
func (a *App) runOnce(ctx context.Context, cmd domain.Command, mode detector.OutputMode) (domain.Outcome, error) {
	indicator := a.newIndicator(ctx, mode)
	orch := orchestrator.NewOrchestrator(a.executor, indicator, a.tracer, a.logger, a.out, a.errOut)

	// The indicator is opened before the orchestrator can send it transitions.
	if err := indicator.Open(ctx); err != nil {
		return domain.OutcomeFailure, zerr.Wrap(err, "failed to start status indicator")
	}

	g, gctx := errgroup.WithContext(ctx)
	outcome := domain.OutcomeFailure

	// Indicator Routine
	g.Go(func() error {
		if err := indicator.Wait(); err != nil && !isCanceled(ctx, err) {
			return err
		}
		return nil
	})

	// Orchestrator Routine
	g.Go(func() error {
		defer func() {
			_ = indicator.Close()
		}()
		outcome = orch.Run(gctx, cmd)
		return nil
	})

	if err := g.Wait(); err != nil {
		return outcome, zerr.Wrap(err, "status indicator failed")
	}
	return outcome, nil
}

func (a *App) defaultIndicator(ctx context.Context, mode detector.OutputMode) ports.Indicator {
	if mode == detector.ModeTUI {
		// Keyboard input is left alone so Ctrl+C reaches the signal context.
		opts := append([]tea.ProgramOption{
			tea.WithContext(ctx),
			tea.WithOutput(a.errOut),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		}, a.teaOptions...)
		return tui.NewIndicator(tui.NewModel(a.errOut), opts...)
	}
	return linear.NewIndicator(a.errOut)
}

// isCanceled reports whether err only reflects ctx shutting down.
func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled))
}
