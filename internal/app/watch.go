package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/spin/internal/adapters/watcher"
	"go.trai.ch/spin/internal/core/domain"
	"go.trai.ch/zerr"
)

// buildSettle is how long events keep being ignored after a build returns,
// covering notifications for the build's own writes still in flight.
const buildSettle = 150 * time.Millisecond

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	RunOptions
}

// Watch runs the build once and again after every debounced batch of file
// changes until ctx is cancelled. Builds never overlap. Events raised while a
// build runs are dropped, since most of them are the build writing its output.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := a.resolveConfig(opts.RunOptions)
	if err != nil {
		return err
	}
	if a.newWatcher == nil {
		return zerr.Wrap(domain.ErrWatcherStartFailed, "no watcher available")
	}

	roots := cfg.Watch.Paths
	if len(roots) == 0 {
		roots = []string{cfg.Command.WorkingDir}
	}

	w, err := a.newWatcher(cfg.Watch.Ignore)
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Stop()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(ctx, roots...); err != nil {
		return err
	}

	gate := newBuildGate(buildSettle)
	triggers := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(cfg.Watch.Debounce, func(paths []string) {
		if gate.closed() {
			return
		}
		if a.changes != nil {
			paths = a.changes.Changed(paths)
			if len(paths) == 0 {
				a.logger.Debug("files touched without content changes, skipping rebuild")
				return
			}
		}
		select {
		case triggers <- paths:
		default:
			// A rerun is already queued.
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range w.Events() {
			if gate.closed() {
				continue
			}
			debouncer.Add(event.Path)
		}
	}()

	mode := a.resolveMode(opts.RunOptions)
	a.logger.Info(fmt.Sprintf("watching %d path(s) for changes", len(roots)))

	for {
		gate.begin()
		_, err := a.runOnce(ctx, cfg.Command, mode)
		debouncer.Discard()
		drain(triggers)
		gate.end()

		if err != nil {
			if isCanceled(ctx, err) {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case paths := <-triggers:
			a.logger.Info(describeChange(paths))
		}
	}
}

// buildGate reports whether file events should be ignored: while a build
// runs and for a settle period after it returns.
type buildGate struct {
	mu       sync.Mutex
	building bool
	until    time.Time
	settle   time.Duration
}

func newBuildGate(settle time.Duration) *buildGate {
	return &buildGate{settle: settle}
}

func (g *buildGate) begin() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.building = true
}

func (g *buildGate) end() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.building = false
	g.until = time.Now().Add(g.settle)
}

func (g *buildGate) closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.building || time.Now().Before(g.until)
}

func drain(ch chan []string) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func describeChange(paths []string) string {
	switch len(paths) {
	case 0:
		return "change detected, rebuilding"
	case 1:
		return fmt.Sprintf("%s changed, rebuilding", filepath.Base(paths[0]))
	default:
		return fmt.Sprintf("%s and %d more changed, rebuilding", filepath.Base(paths[0]), len(paths)-1)
	}
}
