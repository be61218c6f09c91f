// Package commands implements the CLI commands for spin.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/spin/internal/app"
	"go.trai.ch/spin/internal/build"
)

// CLI represents the command line interface for spin.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	ConfigureLogging(opts app.LogOptions)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "spin",
		Short: "Run your build with a status spinner",
		Long: "spin runs the configured build command, shows a spinner while it works " +
			"and reports success, warnings or failure followed by the captured output.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logJSON, _ := cmd.Flags().GetBool("log-json")
			c.app.ConfigureLogging(app.LogOptions{Verbose: verbose, JSON: logJSON})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), runOptions(cmd))
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the config file (default: search upward for spin.yaml)")
	flags.StringP("command", "C", "", "Build command to run, overriding the config")
	flags.StringP("dir", "d", "", "Directory to run the build command in")
	flags.StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	flags.Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	flags.Bool("exit-code", false, "Exit with status 1 when the build fails")
	flags.BoolP("verbose", "v", false, "Show debug logs, including the command's output as it runs")
	flags.Bool("log-json", false, "Write logs as JSON")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// runOptions reads the persistent build flags.
func runOptions(cmd *cobra.Command) app.RunOptions {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	command, _ := flags.GetString("command")
	dir, _ := flags.GetString("dir")
	outputMode, _ := flags.GetString("output-mode")
	ci, _ := flags.GetBool("ci")
	exitCode, _ := flags.GetBool("exit-code")

	// If --ci is set, override output-mode to "linear"
	if ci {
		outputMode = "linear"
	}

	return app.RunOptions{
		OutputMode: outputMode,
		CI:         ci,
		ExitCode:   exitCode,
		ConfigPath: configPath,
		Command:    command,
		Dir:        dir,
	}
}
