package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/datagen/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove provider caches so the next run regenerates everything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigOptions: c.configOptions(cmd),
				All:           all,
			})
		},
	}

	cmd.Flags().StringP("root", "r", "", "Override the output root")
	cmd.Flags().BoolP("all", "a", false, "Remove the whole output root, not only the caches")

	return cmd
}
