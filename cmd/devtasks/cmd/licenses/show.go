package licenses

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/internal/cmd/output"
	"github.com/agentstation/devtasks/pkg/licenses"
)

// NewShowCommand creates the licenses show command.
func NewShowCommand(app application.Application) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the recorded license manifest",
		Example: `  devtasks licenses show
  devtasks licenses show -o markdown > THIRD_PARTY.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = app.LicenseSettings().File
			}

			m, err := licenses.ReadManifest(file)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			switch format {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), m.Entries)
			case output.FormatMarkdown:
				f := &output.MarkdownFormatter{Title: file}
				return f.Format(cmd.OutOrStdout(), entriesTable(m.Entries))
			default:
				return output.NewFormatter(output.FormatTable).Format(cmd.OutOrStdout(), entriesTable(m.Entries))
			}
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "license manifest (default from config, LICENSE-3rdparty.csv)")

	return cmd
}

func entriesTable(entries []licenses.Entry) output.Data {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Scope, e.Origin, e.License})
	}
	return output.Data{
		Headers: []string{"Component", "Origin", "License"},
		Rows:    rows,
	}
}
