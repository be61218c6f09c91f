// Package shell provides a shell-based executor for running the build command.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/spin/internal/core/domain"
	"go.trai.ch/spin/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Run waits for output pipes once the command has
// been killed or has exited. Processes that escaped the group keep them open.
const waitDelay = 2 * time.Second

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the command line through the configured shell and waits for it.
// Standard output and error are captured separately, each capped at the
// command's output limit, and mirrored line by line to the debug log.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command) (*domain.BuildResult, error) {
	if cmd.IsEmpty() {
		return nil, domain.ErrEmptyCommand
	}

	argv := cmd.Argv()
	name := argv[0]

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Environment)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the resolved path; keep the name as invoked.
	if len(c.Args) > 0 {
		c.Args[0] = name
	}

	if cmd.WorkingDir != "" {
		c.Dir = cmd.WorkingDir
	}
	c.Env = cmdEnv
	killProcessGroup(c)
	c.WaitDelay = waitDelay

	limit := cmd.OutputLimit()
	stdout := &limitWriter{limit: limit}
	stderr := &limitWriter{limit: limit}
	stdoutLog := &logWriter{logger: e.logger, stream: "stdout"}
	stderrLog := &logWriter{logger: e.logger, stream: "stderr"}

	c.Stdout = io.MultiWriter(stdout, stdoutLog)
	c.Stderr = io.MultiWriter(stderr, stderrLog)

	result := &domain.BuildResult{RunID: uuid.NewString()}

	start := time.Now()
	runErr := c.Run()
	result.Duration = time.Since(start)

	_ = stdoutLog.Close()
	_ = stderrLog.Close()

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.Truncated = stdout.truncated || stderr.truncated

	if runErr == nil {
		result.ExitStatus = domain.ExitSuccess
		return result, nil
	}

	result.ExitStatus = domain.ExitFailure
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	} else {
		result.ExitCode = -1
	}

	detail := zerr.Wrap(runErr, "command failed")
	detail = zerr.With(detail, "exit_code", result.ExitCode)
	detail = zerr.With(detail, "command", cmd.Line)
	return result, errors.Join(domain.ErrExternalCommandFailure, detail)
}

// limitWriter buffers up to limit bytes and silently discards the rest.
// It always reports the full length as written so the child never sees a short write.
type limitWriter struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (w *limitWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		if len(p) > 0 {
			w.truncated = true
		}
		return len(p), nil
	}
	if len(p) > remaining {
		w.buf.Write(p[:remaining])
		w.truncated = true
		return len(p), nil
	}
	return w.buf.Write(p)
}

func (w *limitWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

// logWriter splits a stream into lines and forwards each one to the debug log.
type logWriter struct {
	logger ports.Logger
	stream string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	if w.logger == nil {
		return len(p), nil
	}

	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close flushes a trailing partial line.
func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	w.logger.Debug(w.stream + " | " + msg)
}

// resolveEnvironment layers the configured variables over the inherited
// system environment. Overrides win; malformed entries are dropped.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || k == "" {
			continue
		}
		envMap[k] = v
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
