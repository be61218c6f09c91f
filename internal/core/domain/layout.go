package domain

import "time"

const (
	// ConfigFileName is the name of the configuration file searched for upward from the working directory.
	ConfigFileName = "spin.yaml"

	// DefaultDebounce is the window used to coalesce file changes in watch mode.
	DefaultDebounce = 300 * time.Millisecond
)
