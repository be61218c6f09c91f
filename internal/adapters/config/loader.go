// Package config provides the configuration loader for spin.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/spin/internal/core/domain"
	"go.trai.ch/spin/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// supportedVersion is the only accepted value of the version key.
const supportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for cwd. An explicit path must exist.
// Without one, spin.yaml is searched for from cwd upward and the defaults
// are used when nothing is found.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	configPath := path
	if configPath != "" {
		if !filepath.IsAbs(configPath) {
			configPath = filepath.Join(cwd, configPath)
		}
		if _, err := os.Stat(configPath); err != nil {
			return nil, zerr.With(domain.ErrConfigNotFound, "path", configPath)
		}
	} else {
		configPath = findConfiguration(cwd)
	}

	if configPath == "" {
		l.debug("no " + domain.ConfigFileName + " found, using defaults")
		cfg := domain.DefaultConfig()
		cfg.Command.WorkingDir = cwd
		return cfg, nil
	}

	var spinfile Spinfile
	if err := readAndUnmarshalYAML(configPath, &spinfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := buildConfig(configPath, &spinfile)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	l.debug("loaded configuration from " + configPath)
	return cfg, nil
}

func (l *Loader) debug(msg string) {
	if l.Logger != nil {
		l.Logger.Debug(msg)
	}
}

// findConfiguration walks up from cwd and returns the first spin.yaml found.
func findConfiguration(cwd string) string {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return ""
		}
		currentDir = parentDir
	}
}

func buildConfig(configPath string, spinfile *Spinfile) (*domain.Config, error) {
	if spinfile.Version != "" && spinfile.Version != supportedVersion {
		return nil, zerr.With(domain.ErrInvalidConfigVersion, "version", spinfile.Version)
	}

	cfg := domain.DefaultConfig()
	cfg.Path = configPath
	root := filepath.Dir(configPath)

	if spinfile.Command != "" {
		cfg.Command.Line = spinfile.Command
	}
	if len(spinfile.Shell) > 0 {
		cfg.Command.Shell = spinfile.Shell
	}
	if spinfile.MaxOutput > 0 {
		cfg.Command.MaxOutput = spinfile.MaxOutput
	}
	cfg.Command.Environment = spinfile.Environment
	cfg.Command.WorkingDir = resolvePath(root, spinfile.WorkingDir)

	if spinfile.Watch != nil {
		for _, p := range spinfile.Watch.Paths {
			cfg.Watch.Paths = append(cfg.Watch.Paths, resolvePath(root, p))
		}
		cfg.Watch.Ignore = spinfile.Watch.Ignore

		if spinfile.Watch.Debounce != "" {
			d, err := time.ParseDuration(spinfile.Watch.Debounce)
			if err != nil || d <= 0 {
				return nil, zerr.With(domain.ErrInvalidDebounce, "debounce", spinfile.Watch.Debounce)
			}
			cfg.Watch.Debounce = d
		}
	}

	return cfg, nil
}

// resolvePath anchors a relative path at the config file's directory.
func resolvePath(root, p string) string {
	if p == "" {
		return root
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered or supplied by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.Wrap(err, domain.ErrConfigNotFound.Error())
		}
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
