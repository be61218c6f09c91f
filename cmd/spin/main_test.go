package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/spin/internal/adapters/telemetry"
	"go.trai.ch/spin/internal/app"
	"go.trai.ch/spin/internal/core/domain"
	"go.trai.ch/spin/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
	dir      string
	app      *app.App
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	d := &testDeps{
		loader:   mocks.NewMockConfigLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		dir:      t.TempDir(),
	}
	d.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	d.app = app.New(d.loader, d.executor, telemetry.NewNoOpTracer(), d.logger, nil).
		WithWorkingDir(d.dir).
		WithOutput(io.Discard, io.Discard)
	return d
}

func (d *testDeps) provider() ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: d.app, Logger: d.logger}, func() {}, nil
	}
}

func (d *testDeps) config() *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Command.WorkingDir = d.dir
	return cfg
}

// TestRun_Version verifies that the run function returns 0 when the command succeeds.
func TestRun_Version(t *testing.T) {
	d := newTestDeps(t)

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), d.provider())
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_BuildFailureExitsZero verifies a reported build failure is not a process failure.
func TestRun_BuildFailureExitsZero(t *testing.T) {
	d := newTestDeps(t)
	d.loader.EXPECT().Load(d.dir, "").Return(d.config(), nil)
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(&domain.BuildResult{ExitStatus: domain.ExitFailure, ExitCode: 2}, domain.ErrExternalCommandFailure)

	exitCode := run(context.Background(), []string{"--ci"}, io.Discard, d.provider())
	assert.Equal(t, 0, exitCode)
}

// TestRun_BuildFailureWithExitCode verifies --exit-code turns a failed build into exit status 1.
func TestRun_BuildFailureWithExitCode(t *testing.T) {
	d := newTestDeps(t)
	d.loader.EXPECT().Load(d.dir, "").Return(d.config(), nil)
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(&domain.BuildResult{ExitStatus: domain.ExitFailure, ExitCode: 2}, domain.ErrExternalCommandFailure)

	// The failure was already reported; the logger must not repeat it.
	d.logger.EXPECT().Error(gomock.Any()).Times(0)

	exitCode := run(context.Background(), []string{"run", "--ci", "--exit-code"}, io.Discard, d.provider())
	assert.Equal(t, 1, exitCode)
}

// TestRun_ConfigError verifies that run returns 1 and logs when configuration fails.
func TestRun_ConfigError(t *testing.T) {
	d := newTestDeps(t)
	d.loader.EXPECT().Load(d.dir, "").Return(nil, errors.New("load failed"))
	d.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"run", "--ci"}, io.Discard, d.provider())
	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that cancellation reaches the running build.
func TestRun_Signal(t *testing.T) {
	d := newTestDeps(t)
	d.loader.EXPECT().Load(d.dir, "").Return(d.config(), nil)

	started := make(chan struct{})
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.Command) (*domain.BuildResult, error) {
			close(started)
			<-ctx.Done()
			return &domain.BuildResult{ExitStatus: domain.ExitFailure, ExitCode: -1},
				errors.Join(domain.ErrExternalCommandFailure, ctx.Err())
		})

	ctx, cancel := context.WithCancel(context.Background())
	exitCh := make(chan int)

	go func() {
		exitCh <- run(ctx, []string{"--ci", "--exit-code"}, io.Discard, d.provider())
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("build never started")
	}
	cancel()

	select {
	case code := <-exitCh:
		assert.Equal(t, 1, code)
	case <-time.After(5 * time.Second):
		t.Fatal("run() did not return after cancellation")
	}
}
