package tasks

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/internal/cmd/globals"
	"github.com/agentstation/devtasks/internal/gotasks"
)

// NewDepsCommand creates the deps command.
func NewDepsCommand(app application.Application) *cobra.Command {
	var opts gotasks.DepsOptions

	cmd := &cobra.Command{
		Use:     "deps",
		GroupID: GroupID,
		Short:   "Install tools and vendor Go dependencies",
		Long: `Install the tools listed in the bootstrap file in their declared order,
run go mod vendor, then remove the vendored paths listed in deps.prune.`,
		Example: `  devtasks deps
  devtasks deps --no-vendor
  devtasks deps --bootstrap tools.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Verbose = globals.Parse(cmd).Verbose
			report, err := app.Tasks().Deps(cmd.Context(), opts)
			return finish(cmd, app, report, err)
		},
	}

	cmd.Flags().StringVar(&opts.BootstrapFile, "bootstrap", "", "tool bootstrap file (default from config, bootstrap.yaml)")
	cmd.Flags().BoolVar(&opts.NoVendor, "no-vendor", false, "only install tools")

	return cmd
}

// NewResetCommand creates the reset command.
func NewResetCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "reset",
		GroupID: GroupID,
		Short:   "Clean everything and remove vendoring",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Tasks().Reset(cmd.Context())
			return finish(cmd, app, report, err)
		},
	}
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(app application.Application) *cobra.Command {
	var targets []string

	cmd := &cobra.Command{
		Use:     "generate",
		GroupID: GroupID,
		Short:   "Run go generate on the configured packages",
		Example: `  devtasks generate
  devtasks generate --targets=./pkg/status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Tasks().Generate(cmd.Context(), targets)
			return finish(cmd, app, report, err)
		},
	}

	cmd.Flags().StringSliceVarP(&targets, "targets", "t", nil, "packages to generate (default from config)")

	return cmd
}
