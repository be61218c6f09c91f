package ports

import "go.trai.ch/spin/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for the given working directory.
	// An explicit path takes precedence over discovery. When path is empty and no
	// config file is found, the defaults are returned.
	Load(cwd, path string) (*domain.Config, error)
}
