package config

// Spinfile represents the structure of the spin.yaml configuration file.
type Spinfile struct {
	Version     string            `yaml:"version"`
	Command     string            `yaml:"command"`
	Shell       []string          `yaml:"shell"`
	WorkingDir  string            `yaml:"workingDir"`
	Environment map[string]string `yaml:"environment"`
	MaxOutput   int               `yaml:"maxOutput"`
	Watch       *WatchDTO         `yaml:"watch"`
}

// WatchDTO represents the watch section of the configuration.
type WatchDTO struct {
	Paths    []string `yaml:"paths"`
	Ignore   []string `yaml:"ignore"`
	Debounce string   `yaml:"debounce"`
}
