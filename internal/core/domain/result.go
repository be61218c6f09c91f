package domain

import "time"

// ExitStatus is the process-level result of a build command.
type ExitStatus uint8

const (
	// ExitSuccess means the command exited with status zero.
	ExitSuccess ExitStatus = iota
	// ExitFailure means the command exited non-zero or could not be spawned.
	ExitFailure
)

// String returns the lower-case name of the status.
func (s ExitStatus) String() string {
	if s == ExitSuccess {
		return "success"
	}
	return "failure"
}

// Outcome is how a run is reported to the user.
type Outcome uint8

const (
	// OutcomeSuccess is a zero exit with an empty error stream.
	OutcomeSuccess Outcome = iota
	// OutcomeWarning is a zero exit with a non-empty error stream.
	OutcomeWarning
	// OutcomeFailure is a non-zero exit or a spawn error.
	OutcomeFailure
)

// String returns the lower-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeWarning:
		return "warning"
	default:
		return "failure"
	}
}

// BuildResult is the transient record of a single build run.
// It is created once per invocation and discarded after being reported.
type BuildResult struct {
	RunID      string
	ExitStatus ExitStatus
	ExitCode   int
	Stdout     string
	Stderr     string
	Duration   time.Duration
	// Truncated is set when either stream exceeded the capture limit.
	Truncated bool
}

// Outcome classifies the result. Error-stream text on a successful exit is a
// warning, not a failure.
func (r *BuildResult) Outcome() Outcome {
	if r == nil || r.ExitStatus == ExitFailure {
		return OutcomeFailure
	}
	if r.Stderr != "" {
		return OutcomeWarning
	}
	return OutcomeSuccess
}
