// Package commands implements the CLI commands for the datagen tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/datagen/internal/app"
	"go.trai.ch/datagen/internal/build"
)

// CLI represents the command line interface for datagen.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	verbose    bool
	jsonLogs   bool
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, selection []string, opts app.RunOptions) error
	Watch(ctx context.Context, selection []string, opts app.RunOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	Inspect(ctx context.Context, w io.Writer, providerID string, opts app.InspectOptions) error
	ConfigureLogging(jsonOutput, verbose bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "datagen",
		Short:         "Incremental generator for resource and data pack files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			c.app.ConfigureLogging(c.jsonLogs, c.verbose)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Path to datagen.yaml or a directory to search from")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&c.jsonLogs, "json", false, "Emit logs as JSON")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newInspectCmd())
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

func (c *CLI) configOptions(cmd *cobra.Command) app.ConfigOptions {
	root, _ := cmd.Flags().GetString("root")
	return app.ConfigOptions{ConfigPath: c.configPath, Root: root}
}
