package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spin/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/spin/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/spin/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/spin/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/spin/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/spin/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/spin/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			watcher.NodeID,
			fs.HasherNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	watcherFactory, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	changes, err := graft.Dep[ports.ChangeDetector](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, tracer, log, watcherFactory).WithChangeDetector(changes), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
