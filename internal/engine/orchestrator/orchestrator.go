// Package orchestrator runs one build and reports how it completed.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.trai.ch/spin/internal/core/domain"
	"go.trai.ch/spin/internal/core/ports"
)

// StartLabel is shown by the indicator while the build command runs.
const StartLabel = "Building..."

// SpanName is the name of the telemetry span recorded for each run.
const SpanName = "build"

// Orchestrator drives a single build: it starts the indicator, executes the
// command and reports exactly one of success, warning or failure.
type Orchestrator struct {
	executor  ports.Executor
	indicator ports.Indicator
	tracer    ports.Tracer
	logger    ports.Logger
	out       io.Writer
	errOut    io.Writer
}

// NewOrchestrator creates a new Orchestrator with the given dependencies.
// Captured stdout is printed to out, warnings and failures to errOut.
func NewOrchestrator(
	executor ports.Executor,
	indicator ports.Indicator,
	tracer ports.Tracer,
	logger ports.Logger,
	out, errOut io.Writer,
) *Orchestrator {
	return &Orchestrator{
		executor:  executor,
		indicator: indicator,
		tracer:    tracer,
		logger:    logger,
		out:       out,
		errOut:    errOut,
	}
}

// Run executes cmd once and reports its outcome. Command failures are
// reported to the user and never returned; the outcome is returned so callers
// can opt in to a failing exit code.
func (o *Orchestrator) Run(ctx context.Context, cmd domain.Command) domain.Outcome {
	ctx, span := o.tracer.Start(ctx, SpanName)
	defer span.End()
	span.SetAttribute("command", cmd.Line)

	o.indicator.Start(StartLabel)

	result, err := o.executor.Execute(ctx, cmd)
	if result == nil {
		result = &domain.BuildResult{ExitStatus: domain.ExitFailure, ExitCode: -1}
	}
	if err != nil {
		result.ExitStatus = domain.ExitFailure
	}
	outcome := result.Outcome()

	span.SetAttribute("run_id", result.RunID)
	span.SetAttribute("exit_code", result.ExitCode)
	span.SetAttribute("outcome", outcome)
	span.SetAttribute("stdout_bytes", len(result.Stdout))
	span.SetAttribute("stderr_bytes", len(result.Stderr))
	span.SetAttribute("truncated", result.Truncated)
	span.SetAttribute("duration", result.Duration)

	switch outcome {
	case domain.OutcomeFailure:
		if err == nil {
			err = domain.ErrExternalCommandFailure
		}
		span.RecordError(err)
		o.indicator.Fail(failureMessage(result, err))
		o.settle()
		o.reportFailure(result, err)
		return outcome
	case domain.OutcomeWarning:
		o.indicator.Warn("Build completed with warnings in " + formatDuration(result.Duration))
		o.settle()
		o.print(o.errOut, result.Stderr)
	default:
		o.indicator.Succeed("Build completed in " + formatDuration(result.Duration))
		o.settle()
	}

	if result.Truncated {
		o.logger.Warn(fmt.Sprintf("build output exceeded %d bytes and was truncated", cmd.OutputLimit()))
	}
	o.print(o.out, result.Stdout)

	return outcome
}

// settle stops the indicator so captured output never interleaves with it.
func (o *Orchestrator) settle() {
	if err := o.indicator.Close(); err != nil {
		o.logger.Debug("closing indicator: " + err.Error())
	}
	if err := o.indicator.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		o.logger.Debug("waiting for indicator: " + err.Error())
	}
}

// reportFailure prints why the build failed. The command's own error stream
// is the most useful explanation; the error is the fallback when it is empty.
func (o *Orchestrator) reportFailure(result *domain.BuildResult, err error) {
	o.logger.Debug("build failed: " + err.Error())

	if strings.TrimSpace(result.Stderr) != "" {
		o.print(o.errOut, result.Stderr)
		return
	}
	o.print(o.errOut, err.Error())
}

func (o *Orchestrator) print(w io.Writer, text string) {
	if w == nil || text == "" {
		return
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = io.WriteString(w, text)
}

func failureMessage(result *domain.BuildResult, err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCommand):
		return "Build failed: no command configured"
	case result.ExitCode < 0:
		return "Build failed: could not start command"
	default:
		return fmt.Sprintf("Build failed (exit code %d)", result.ExitCode)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
