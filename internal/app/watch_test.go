package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spin/internal/adapters/detector"
	"go.trai.ch/spin/internal/adapters/fs"
	"go.trai.ch/spin/internal/adapters/linear"
	"go.trai.ch/spin/internal/adapters/shell"
	"go.trai.ch/spin/internal/adapters/telemetry"
	"go.trai.ch/spin/internal/adapters/watcher"
	"go.trai.ch/spin/internal/app"
	"go.trai.ch/spin/internal/core/domain"
	"go.trai.ch/spin/internal/core/ports"
	"go.trai.ch/spin/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeWatcher struct {
	events  chan ports.WatchEvent
	mu      sync.Mutex
	roots   []string
	ignore  []string
	stopped bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan ports.WatchEvent, 16)}
}

func (w *fakeWatcher) factory(ignore []string) (ports.Watcher, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignore = ignore
	return w, nil
}

func (w *fakeWatcher) Start(_ context.Context, roots ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.roots = roots
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.stopped {
		w.stopped = true
		close(w.events)
	}
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestApp_Watch_RebuildsOnChange(t *testing.T) {
	fw := newFakeWatcher()
	h := newHarness(t, fw.factory)

	cfg := h.config()
	cfg.Watch.Debounce = 10 * time.Millisecond
	cfg.Watch.Ignore = []string{"dist"}

	builds := make(chan struct{}, 4)
	h.loader.EXPECT().Load(h.dir, "").Return(cfg, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.Command) (*domain.BuildResult, error) {
			builds <- struct{}{}
			return &domain.BuildResult{Stdout: "built"}, nil
		}).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.app.Watch(ctx, app.WatchOptions{RunOptions: app.RunOptions{CI: true}})
	}()

	waitFor(t, builds)
	emitUntil(t, fw, ports.WatchEvent{Path: h.dir + "/src/a.ts", Operation: ports.OpWrite}, builds)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	assert.Equal(t, []string{h.dir}, fw.roots)
	assert.Equal(t, []string{"dist"}, fw.ignore)
	assert.True(t, fw.stopped)
}

func TestApp_Watch_DropsEventsDuringBuild(t *testing.T) {
	fw := newFakeWatcher()
	h := newHarness(t, fw.factory)

	cfg := h.config()
	cfg.Watch.Debounce = 10 * time.Millisecond

	h.loader.EXPECT().Load(h.dir, "").Return(cfg, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.Command) (*domain.BuildResult, error) {
			// The build rewrites its output directory.
			fw.events <- ports.WatchEvent{Path: h.dir + "/out", Operation: ports.OpRemove}
			fw.events <- ports.WatchEvent{Path: h.dir + "/out/a.js", Operation: ports.OpCreate}
			time.Sleep(50 * time.Millisecond)
			return &domain.BuildResult{}, nil
		}).Times(1)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, h.app.Watch(ctx, app.WatchOptions{RunOptions: app.RunOptions{CI: true}}))
}

func TestApp_Watch_SkipsUnchangedContent(t *testing.T) {
	fw := newFakeWatcher()
	h := newHarness(t, fw.factory)

	cfg := h.config()
	cfg.Watch.Debounce = 10 * time.Millisecond

	unchanged := h.dir + "/src/a.ts"
	edited := h.dir + "/src/b.ts"
	filtered := make(chan struct{}, 1)

	ctrl := gomock.NewController(t)
	changes := mocks.NewMockChangeDetector(ctrl)
	changes.EXPECT().Changed(gomock.Any()).DoAndReturn(func(paths []string) []string {
		var out []string
		for _, p := range paths {
			if p != unchanged {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			select {
			case filtered <- struct{}{}:
			default:
			}
		}
		return out
	}).AnyTimes()
	h.app.WithChangeDetector(changes)

	builds := make(chan struct{}, 4)
	h.loader.EXPECT().Load(h.dir, "").Return(cfg, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.Command) (*domain.BuildResult, error) {
			builds <- struct{}{}
			return &domain.BuildResult{}, nil
		}).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.app.Watch(ctx, app.WatchOptions{RunOptions: app.RunOptions{CI: true}})
	}()

	waitFor(t, builds)
	emitUntil(t, fw, ports.WatchEvent{Path: unchanged, Operation: ports.OpWrite}, filtered)

	select {
	case <-builds:
		t.Fatal("rebuilt although no content changed")
	case <-time.After(100 * time.Millisecond):
	}

	emitUntil(t, fw, ports.WatchEvent{Path: edited, Operation: ports.OpWrite}, builds)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestApp_Watch_BuildRewritingItsOutputDoesNotLoop(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	project := t.TempDir()
	buildLog := filepath.Join(t.TempDir(), "builds.log")

	cfg := domain.DefaultConfig()
	cfg.Command = domain.NewCommand(`rm -rf out && mkdir out && echo same > out/a.js && echo built >> "$BUILD_LOG"`)
	cfg.Command.WorkingDir = project
	cfg.Command.Environment = map[string]string{"BUILD_LOG": buildLog}
	cfg.Watch.Debounce = 20 * time.Millisecond

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(project, "").Return(cfg, nil)

	factory := func(ignore []string) (ports.Watcher, error) {
		w, err := watcher.NewWatcher(log, ignore...)
		if err != nil {
			return nil, err
		}
		return w, nil
	}

	var out, errOut bytes.Buffer
	a := app.New(loader, shell.NewExecutor(nil), telemetry.NewNoOpTracer(), log, factory).
		WithChangeDetector(fs.NewHasher()).
		WithOutput(&out, &errOut).
		WithWorkingDir(project).
		WithIndicatorFactory(func(context.Context, detector.OutputMode) ports.Indicator {
			return linear.NewIndicator(io.Discard)
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Watch(ctx, app.WatchOptions{RunOptions: app.RunOptions{CI: true}})
	}()

	countBuilds := func() int {
		data, err := os.ReadFile(buildLog)
		if err != nil {
			return 0
		}
		return strings.Count(string(data), "built")
	}

	require.Eventually(t, func() bool { return countBuilds() == 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(time.Second)
	assert.Equal(t, 1, countBuilds(), "the build's own output must not trigger another build")

	require.NoError(t, os.WriteFile(filepath.Join(project, "index.ts"), []byte("export {}"), 0o600))
	require.Eventually(t, func() bool { return countBuilds() == 2 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(time.Second)
	assert.Equal(t, 2, countBuilds())

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestApp_Watch_UsesConfiguredPaths(t *testing.T) {
	fw := newFakeWatcher()
	h := newHarness(t, fw.factory)

	cfg := h.config()
	cfg.Watch.Paths = []string{"/src", "/assets"}

	h.loader.EXPECT().Load(h.dir, "").Return(cfg, nil)
	h.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(&domain.BuildResult{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	require.NoError(t, h.app.Watch(ctx, app.WatchOptions{RunOptions: app.RunOptions{CI: true}}))

	fw.mu.Lock()
	defer fw.mu.Unlock()
	assert.Equal(t, []string{"/src", "/assets"}, fw.roots)
}

func TestApp_Watch_WatcherError(t *testing.T) {
	h := newHarness(t, func([]string) (ports.Watcher, error) {
		return nil, domain.ErrWatcherStartFailed
	})

	h.loader.EXPECT().Load(h.dir, "").Return(h.config(), nil)

	err := h.app.Watch(context.Background(), app.WatchOptions{})
	require.ErrorIs(t, err, domain.ErrWatcherStartFailed)
}

func TestApp_Watch_NoWatcherFactory(t *testing.T) {
	h := newHarness(t, nil)

	h.loader.EXPECT().Load(h.dir, "").Return(h.config(), nil)

	err := h.app.Watch(context.Background(), app.WatchOptions{})
	require.ErrorIs(t, err, domain.ErrWatcherStartFailed)
}

func TestApp_Watch_ConfigError(t *testing.T) {
	h := newHarness(t, newFakeWatcher().factory)

	h.loader.EXPECT().Load(h.dir, "").Return(nil, errors.New("broken"))

	err := h.app.Watch(context.Background(), app.WatchOptions{})
	require.Error(t, err)
}

// emitUntil repeats an event until done fires. Events raised during a build
// or right after it are ignored, so a single send could be lost.
func emitUntil(t *testing.T, fw *fakeWatcher, event ports.WatchEvent, done <-chan struct{}) {
	t.Helper()
	ticker := time.NewTicker(25 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)

	for {
		select {
		case fw.events <- event:
		default:
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		case <-timeout:
			t.Fatal("timed out waiting for the watch loop to react")
		}
	}
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for build")
	}
}
