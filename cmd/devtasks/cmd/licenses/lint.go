package licenses

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/licenses"
)

// NewLintCommand creates the licenses lint command.
func NewLintCommand(app application.Application) *cobra.Command {
	var (
		file    string
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check that the license manifest is up-to-date",
		Long: `Compare the recorded license manifest with the licenses discovered
from the current dependencies.

Entries discovered but not recorded are printed with "+", entries recorded
but no longer discovered with "-". Any difference exits with status 1.`,
		Example: `  devtasks licenses lint
  devtasks licenses lint --exclude github.com/shirou/gopsutil
  devtasks lint-licenses -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := app.LicenseSettings()
			if file == "" {
				file = settings.File
			}

			reconciler := licenses.NewReconciler(app.Discoverer(),
				licenses.WithExclusions(settings.Exclude...),
				licenses.WithExclusions(exclude...),
				licenses.WithLogger(app.Logger()),
			)

			app.Logger().Info().Str("file", file).Msg("Verify licenses")
			result, err := reconciler.Lint(cmd.Context(), file)
			if result == nil {
				return err
			}

			report := NewReport(file, result)
			if printErr := report.Print(cmd.OutOrStdout(), formatOf(app)); printErr != nil {
				return errors.WrapIO("write", "stdout", printErr)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "license manifest (default from config, LICENSE-3rdparty.csv)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "leave entries containing these strings out of the comparison")

	return cmd
}
