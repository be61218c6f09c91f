package domain

import "time"

// Config is the resolved configuration for a spin invocation.
type Config struct {
	// Path is the file the configuration was read from. Empty when defaults are used.
	Path    string
	Command Command
	Watch   WatchSettings
}

// WatchSettings controls rebuild-on-change behavior.
type WatchSettings struct {
	// Paths are the roots to watch. Empty means the command's working directory.
	Paths []string
	// Ignore lists directory names that are never watched.
	Ignore []string
	// Debounce coalesces bursts of file events into a single rebuild.
	Debounce time.Duration
}

// DefaultConfig returns the configuration used when no config file is found.
func DefaultConfig() *Config {
	return &Config{
		Command: NewCommand(DefaultCommandLine),
		Watch: WatchSettings{
			Debounce: DefaultDebounce,
		},
	}
}
