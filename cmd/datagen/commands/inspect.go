package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/datagen/internal/app"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <provider>",
		Short: "Print the cache record of a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verify, _ := cmd.Flags().GetBool("verify")

			return c.app.Inspect(cmd.Context(), cmd.OutOrStdout(), args[0], app.InspectOptions{
				ConfigOptions: c.configOptions(cmd),
				Verify:        verify,
			})
		},
	}

	cmd.Flags().StringP("root", "r", "", "Override the output root")
	cmd.Flags().Bool("verify", false, "Rehash recorded outputs and report drift")

	return cmd
}
