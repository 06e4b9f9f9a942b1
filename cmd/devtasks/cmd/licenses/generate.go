package licenses

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/internal/cmd/emoji"
	"github.com/agentstation/devtasks/internal/cmd/globals"
	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/licenses"
)

// NewGenerateCommand creates the licenses generate command.
func NewGenerateCommand(app application.Application) *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the license manifest",
		Long: `Discover the licenses of the current dependencies and overwrite the
license manifest with them, sorted. The file is only replaced once
discovery has fully succeeded.`,
		Example: `  devtasks licenses generate
  devtasks licenses generate --dry-run
  devtasks generate-licenses --file third_party.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = app.LicenseSettings().File
			}
			out := cmd.OutOrStdout()
			reconciler := licenses.NewReconciler(app.Discoverer(), licenses.WithLogger(app.Logger()))

			if dryRun {
				m, err := reconciler.Discover(cmd.Context())
				if err != nil {
					return err
				}
				return errors.WrapIO("write", "stdout", m.Write(out))
			}

			m, err := reconciler.Generate(cmd.Context(), file)
			if err != nil {
				return err
			}

			if globals.Parse(cmd).Verbose {
				for _, e := range m.Entries {
					fmt.Fprintln(out, e.Key())
				}
			}
			fmt.Fprintf(out, "%s licenses files generated (%d entries in %s)\n", emoji.Success, m.Len(), file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "license manifest (default from config, LICENSE-3rdparty.csv)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the manifest instead of writing it")

	return cmd
}
