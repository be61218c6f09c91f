// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/spin/internal/core/domain"
)

// Executor defines the interface for running the external build command.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd as a child process and blocks until it exits.
	//
	// The returned result carries the captured standard output and error
	// streams. On a non-zero exit both the result and an error wrapping
	// domain.ErrExternalCommandFailure are returned. On a spawn error the
	// result has ExitCode -1.
	Execute(ctx context.Context, cmd domain.Command) (*domain.BuildResult, error)
}
