package domain

import "strings"

const (
	// DefaultCommandLine is the build command used when none is configured.
	DefaultCommandLine = "npm run build"

	// DefaultMaxOutput caps each captured stream at 10 MiB.
	DefaultMaxOutput = 10 << 20
)

// DefaultShell returns the interpreter prefix used to run a command line.
func DefaultShell() []string {
	return []string{"sh", "-c"}
}

// Command describes the external build command the orchestrator invokes.
type Command struct {
	// Line is the command string handed to the shell.
	Line string
	// Shell is the interpreter argv prefix, e.g. ["sh", "-c"].
	Shell []string
	// WorkingDir is the directory the command runs in. Empty means the current directory.
	WorkingDir string
	// Environment holds user-defined variables layered over the inherited system ones.
	Environment map[string]string
	// MaxOutput caps the bytes captured per stream. Zero or less means DefaultMaxOutput.
	MaxOutput int
}

// NewCommand returns a Command for line using the default shell and output cap.
func NewCommand(line string) Command {
	return Command{
		Line:      line,
		Shell:     DefaultShell(),
		MaxOutput: DefaultMaxOutput,
	}
}

// Argv returns the full argument vector: the shell prefix followed by the command line.
func (c Command) Argv() []string {
	shell := c.Shell
	if len(shell) == 0 {
		shell = DefaultShell()
	}
	argv := make([]string, 0, len(shell)+1)
	argv = append(argv, shell...)
	return append(argv, c.Line)
}

// IsEmpty reports whether the command has nothing to run.
func (c Command) IsEmpty() bool {
	return strings.TrimSpace(c.Line) == ""
}

// OutputLimit returns the effective per-stream capture limit.
func (c Command) OutputLimit() int {
	if c.MaxOutput <= 0 {
		return DefaultMaxOutput
	}
	return c.MaxOutput
}
