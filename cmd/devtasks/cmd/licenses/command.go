// Package licenses provides the commands that audit and regenerate the
// third-party license manifest.
package licenses

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
)

// NewCommand creates the licenses command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "licenses",
		GroupID: "licenses",
		Short:   "Audit the third-party license manifest",
		Long: `Audit and regenerate LICENSE-3rdparty.csv.

The manifest lists one row per vendored dependency in the form
"Component,Origin,License". Licenses are discovered with wwhrd, which must
be installed in $GOPATH/bin (or configured with licenses.wwhrd).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewLintCommand(app))
	cmd.AddCommand(NewGenerateCommand(app))
	cmd.AddCommand(NewShowCommand(app))

	return cmd
}

// NewAliasCommands returns the top-level lint-licenses and
// generate-licenses shortcuts.
func NewAliasCommands(app application.Application) []*cobra.Command {
	lint := NewLintCommand(app)
	lint.Use = "lint-licenses"
	lint.GroupID = "licenses"

	generate := NewGenerateCommand(app)
	generate.Use = "generate-licenses"
	generate.GroupID = "licenses"

	return []*cobra.Command{lint, generate}
}
