package ports

import "context"

// Indicator is the terminal status indicator for a build run.
// It decouples the orchestrator from presentation, so the same run can drive
// an animated spinner or plain CI log lines.
//
//go:generate mockgen -source=indicator.go -destination=mocks/mock_indicator.go -package=mocks
type Indicator interface {
	// Open initializes the indicator and begins its lifecycle.
	// Asynchronous indicators (like the TUI spinner) may launch goroutines here.
	Open(ctx context.Context) error

	// Close stops the indicator and flushes anything pending.
	Close() error

	// Wait blocks until the indicator has fully terminated.
	Wait() error

	// Start marks the build as in progress.
	Start(label string)

	// Succeed marks the build as completed successfully.
	Succeed(msg string)

	// Warn marks the build as completed with warnings.
	Warn(msg string)

	// Fail marks the build as failed.
	Fail(msg string)
}
