package domain

import "go.trai.ch/zerr"

var (
	// ErrExternalCommandFailure is returned when the build command exits non-zero or cannot be spawned.
	ErrExternalCommandFailure = zerr.New("external command failed")

	// ErrEmptyCommand is returned when no command line is configured.
	ErrEmptyCommand = zerr.New("no build command configured")

	// ErrBuildExecutionFailed is returned when a run is reported as failed and the caller asked for an exit code.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("could not find config file")

	// ErrInvalidConfigVersion is returned when the config declares an unsupported version.
	ErrInvalidConfigVersion = zerr.New("unsupported config version, expected \"1\"")

	// ErrInvalidDebounce is returned when the watch debounce window cannot be parsed.
	ErrInvalidDebounce = zerr.New("invalid watch debounce duration")

	// ErrWorkingDirNotFound is returned when the configured working directory does not exist.
	ErrWorkingDirNotFound = zerr.New("working directory not found")

	// ErrWatcherStartFailed is returned when the file system watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)
