package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/spin/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the build, then rebuild whenever files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), app.WatchOptions{RunOptions: runOptions(cmd)})
		},
	}
}
