package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	devcmd "github.com/agentstation/devtasks/cmd/devtasks/cmd"
	"github.com/agentstation/devtasks/cmd/devtasks/cmd/licenses"
	"github.com/agentstation/devtasks/cmd/devtasks/cmd/tasks"
	"github.com/agentstation/devtasks/cmd/devtasks/cmd/tools"
	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/logging"
)

// Execute runs the devtasks CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "devtasks",
		Short:   "Developer tasks for Go repositories",
		Version: a.version,
		Long: `devtasks wraps the tooling used to maintain a Go repository: gofmt,
golint, go vet, gocyclo, golangci-lint, ineffassign, misspell, go mod vendor
and the wwhrd license audit of LICENSE-3rdparty.csv.

Every task runs one external tool and exits with status 0 when it passes,
1 when it fails or the tool is missing, and 2 for misspell findings.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "licenses", Title: "License Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: tasks.GroupID, Title: "Go Tasks:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	// Add global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default is ./.devtasks.yaml or $HOME/.devtasks.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml, markdown")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("devtasks {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	configFile := mustGetString(cmd, "config")
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// License commands
	rootCmd.AddCommand(licenses.NewCommand(a))
	rootCmd.AddCommand(licenses.NewAliasCommands(a)...)

	// Go tasks
	rootCmd.AddCommand(tasks.NewCommands(a)...)

	// Management commands
	rootCmd.AddCommand(tools.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(devcmd.NewVersionCommand(a))
	rootCmd.AddCommand(devcmd.NewManCommand())
	rootCmd.AddCommand(devcmd.NewCompletionCommand())
}

// ExitOnError prints an error and exits with the status it maps to.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(errors.ExitCode(err))
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
