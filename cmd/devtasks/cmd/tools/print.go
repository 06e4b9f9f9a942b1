package tools

import (
	"fmt"
	"io"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/internal/cmd/emoji"
	"github.com/agentstation/devtasks/internal/cmd/output"
)

// displayResults shows tool check results in the requested format.
func displayResults(w io.Writer, app application.Application, results *CheckResults) error {
	format := output.DetectFormat(app.OutputFormat())

	// For structured output (JSON/YAML), return the entire results object
	if format == output.FormatJSON || format == output.FormatYAML {
		return output.NewFormatter(format).Format(w, results)
	}

	displayStatusMessage(w, results)
	fmt.Fprintln(w)

	if err := output.NewFormatter(format).Format(w, statusTable(results)); err != nil {
		return err
	}

	displayMissingToolInfo(w, results)
	return nil
}

// statusTable creates one row per tool.
func statusTable(results *CheckResults) output.Data {
	rows := make([][]string, 0, len(results.Tools))

	for _, detail := range results.Tools {
		status := emoji.Success + " Available"
		if !detail.Status.Available {
			status = emoji.Optional + " Missing"
			if detail.Tool.Required {
				status = emoji.Error + " Missing"
			}
		} else if detail.Status.CheckError != nil {
			status = emoji.Warning + " Outdated"
		}

		rows = append(rows, []string{
			detail.Tool.DisplayName,
			status,
			orDash(detail.Status.Version),
			orDash(detail.Status.Path),
			orDash(detail.Tool.Description),
		})
	}

	return output.Data{
		Headers: []string{"Tool", "Status", "Version", "Path", "Purpose"},
		Rows:    rows,
	}
}

// displayMissingToolInfo shows installation instructions for missing tools.
func displayMissingToolInfo(w io.Writer, results *CheckResults) {
	for _, detail := range results.Tools {
		if detail.Status.Available {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Missing Tool: %s\n", detail.Tool.DisplayName)
		if detail.Tool.InstallURL != "" {
			fmt.Fprintf(w, "  Install: %s\n", detail.Tool.InstallURL)
		}
	}
}

// displayStatusMessage shows the overall verdict.
func displayStatusMessage(w io.Writer, results *CheckResults) {
	switch {
	case results.MissingRequired > 0:
		fmt.Fprintln(w, emoji.Error+" Required tools are missing.")
	case results.Missing > 0:
		fmt.Fprintln(w, emoji.Warning+" Some tools are missing. Tasks that need them will fail.")
	default:
		fmt.Fprintln(w, emoji.Success+" All tools are available.")
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
