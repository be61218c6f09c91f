// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/spin/internal/adapters/config"
	_ "go.trai.ch/spin/internal/adapters/fs"
	_ "go.trai.ch/spin/internal/adapters/logger"
	_ "go.trai.ch/spin/internal/adapters/shell"
	_ "go.trai.ch/spin/internal/adapters/telemetry"
	_ "go.trai.ch/spin/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/spin/internal/app"
)
