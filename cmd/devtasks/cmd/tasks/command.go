// Package tasks provides the commands that wrap the Go tooling: formatting,
// linting, vetting, vendoring and code generation.
package tasks

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/internal/cmd/emoji"
	"github.com/agentstation/devtasks/internal/cmd/output"
	"github.com/agentstation/devtasks/internal/gotasks"
)

// GroupID is the command group of every task command.
const GroupID = "go"

// NewCommands returns every Go task command.
func NewCommands(app application.Application) []*cobra.Command {
	return []*cobra.Command{
		NewFmtCommand(app),
		NewLintCommand(app),
		NewVetCommand(app),
		NewCycloCommand(app),
		NewGolangCILintCommand(app),
		NewIneffassignCommand(app),
		NewMisspellCommand(app),
		NewDepsCommand(app),
		NewResetCommand(app),
		NewGenerateCommand(app),
	}
}

// addTargetsFlag registers the --targets flag shared by the checks.
func addTargetsFlag(cmd *cobra.Command, targets *[]string) {
	cmd.Flags().StringSliceVarP(targets, "targets", "t", nil, "comma separated packages or directories, e.g. ./pkg,./cmd")
	_ = cmd.MarkFlagRequired("targets")
}

// printReport writes a finished task report in the configured format.
func printReport(w io.Writer, app application.Application, report *gotasks.Report) error {
	if report == nil {
		return nil
	}

	switch format := output.Format(app.OutputFormat()); format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(w, report)
	}

	for _, file := range report.Files {
		fmt.Fprintf(w, "%s reformatted %s\n", emoji.Info, file)
	}
	for _, file := range report.Allowed {
		fmt.Fprintf(w, "%s allowed errors in whitelisted file %s\n", emoji.Warning, file)
	}
	for _, tool := range report.Installed {
		fmt.Fprintf(w, "%s installed %s\n", emoji.Info, tool)
	}
	for _, path := range report.Removed {
		fmt.Fprintf(w, "%s removed %s\n", emoji.Info, path)
	}
	if report.Message != "" {
		fmt.Fprintf(w, "%s %s\n", emoji.Success, report.Message)
	}
	return nil
}

// finish prints report, even on failure, and returns err.
func finish(cmd *cobra.Command, app application.Application, report *gotasks.Report, err error) error {
	if printErr := printReport(cmd.OutOrStdout(), app, report); printErr != nil && err == nil {
		return printErr
	}
	return err
}
