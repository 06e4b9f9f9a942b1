// Package cmd provides the utility commands of the devtasks CLI.
package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for devtasks CLI.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "devtasks version %s\n", app.Version())
			fmt.Fprintf(w, "commit: %s\n", app.Commit())
			fmt.Fprintf(w, "built: %s\n", app.Date())
			fmt.Fprintf(w, "built by: %s\n", app.BuiltBy())
			fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
