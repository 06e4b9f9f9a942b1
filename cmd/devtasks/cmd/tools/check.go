package tools

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/internal/deps"
	"github.com/agentstation/devtasks/pkg/errors"
)

// NewCheckCommand creates the tools check subcommand.
func NewCheckCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every wrapped tool is installed",
		Long: `Check the availability of the external tools wrapped by devtasks.

For each tool, it shows:

  - Whether it's installed
  - The installed version (if detectable)
  - Installation path
  - Installation instructions if missing

Only the Go toolchain and gofmt are required; the other tools are needed
by their own task only.`,
		Example: `  devtasks tools check             # Check all tools
  devtasks tools check -o json     # JSON output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results := collectToolStatuses(cmd, app.ToolChecker(), deps.DefaultTools())

			if err := displayResults(cmd.OutOrStdout(), app, results); err != nil {
				return err
			}

			if results.MissingRequired > 0 {
				return &errors.ValidationError{
					Field:   "tools",
					Message: "required tools are missing",
				}
			}
			return nil
		},
	}
}

// ToolDetail combines a tool definition with its status.
type ToolDetail struct {
	Tool   deps.Tool   `json:"tool" yaml:"tool"`
	Status deps.Status `json:"status" yaml:"status"`
}

// CheckResults aggregates all statuses.
type CheckResults struct {
	Tools           []ToolDetail `json:"tools" yaml:"tools"`
	Available       int          `json:"available" yaml:"available"`
	Missing         int          `json:"missing" yaml:"missing"`
	MissingRequired int          `json:"missing_required" yaml:"missing_required"`
}

// collectToolStatuses checks every tool, keeping the declared order.
func collectToolStatuses(cmd *cobra.Command, checker *deps.Checker, tools []deps.Tool) *CheckResults {
	statuses := checker.CheckAll(cmd.Context(), tools)
	results := &CheckResults{Tools: make([]ToolDetail, 0, len(tools))}

	for _, tool := range tools {
		status := statuses[tool.Name]
		results.Tools = append(results.Tools, ToolDetail{Tool: tool, Status: status})
	}

	for _, tool := range deps.Missing(tools, statuses) {
		results.Missing++
		if tool.Required {
			results.MissingRequired++
		}
	}
	results.Available = len(tools) - results.Missing

	return results
}
