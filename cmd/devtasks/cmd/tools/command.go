// Package tools provides commands for checking the external tools wrapped
// by devtasks.
package tools

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
)

// NewCommand creates the tools command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tools",
		GroupID: "management",
		Short:   "Manage external tools",
		Long: `Check the external tools devtasks shells out to.

Every task wraps one binary (gofmt, golint, gocyclo, golangci-lint,
ineffassign, misspell, wwhrd). Missing tools can be installed with
"devtasks deps".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewCheckCommand(app))

	return cmd
}
