package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/datagen/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [providers...]",
		Short: "Run providers and refresh the output root",
		Long: "Run every configured provider, or only the named ones. Providers already run " +
			"for the current version tag are skipped unless --always is set.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versionTag, _ := cmd.Flags().GetString("version-tag")
			jobs, _ := cmd.Flags().GetInt("jobs")
			always, _ := cmd.Flags().GetBool("always")
			watch, _ := cmd.Flags().GetBool("watch")

			opts := app.RunOptions{
				ConfigOptions: c.configOptions(cmd),
				VersionTag:    versionTag,
				Jobs:          jobs,
				Always:        always,
			}
			if watch {
				return c.app.Watch(cmd.Context(), args, opts)
			}
			return c.app.Run(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringP("root", "r", "", "Override the output root")
	cmd.Flags().String("version-tag", "", "Override the version tag from the configuration")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent writes per provider (0 uses the configured value)")
	cmd.Flags().BoolP("always", "a", false, "Run providers even if they already ran for this version")
	cmd.Flags().BoolP("watch", "w", false, "Keep running and regenerate whenever the configuration changes")
	return cmd
}
