package tasks

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/devtasks/internal/cmd/application"
)

// NewFmtCommand creates the fmt command.
func NewFmtCommand(app application.Application) *cobra.Command {
	var (
		targets   []string
		failOnFmt bool
	)

	cmd := &cobra.Command{
		Use:     "fmt",
		GroupID: GroupID,
		Short:   "Run gofmt on targets",
		Example: `  devtasks fmt --targets=./pkg/collector,./pkg/aggregator
  devtasks fmt --targets=./... --fail-on-fmt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Tasks().Fmt(cmd.Context(), targets, failOnFmt)
			return finish(cmd, app, report, err)
		},
	}

	addTargetsFlag(cmd, &targets)
	cmd.Flags().BoolVar(&failOnFmt, "fail-on-fmt", false, "fail when any file had to be reformatted")

	return cmd
}

// NewLintCommand creates the lint command.
func NewLintCommand(app application.Application) *cobra.Command {
	var targets []string

	cmd := &cobra.Command{
		Use:     "lint",
		GroupID: GroupID,
		Short:   "Run golint on targets",
		Long: `Run golint recursively on targets.

Findings in files listed under lint.whitelist are reported as allowed and
do not fail the run.`,
		Example: `  devtasks lint --targets=./pkg/collector,./pkg/aggregator`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Tasks().Lint(cmd.Context(), targets)
			return finish(cmd, app, report, err)
		},
	}

	addTargetsFlag(cmd, &targets)

	return cmd
}

// NewVetCommand creates the vet command.
func NewVetCommand(app application.Application) *cobra.Command {
	var targets, buildTags []string

	cmd := &cobra.Command{
		Use:     "vet",
		GroupID: GroupID,
		Short:   "Run go vet on targets",
		Long: `Run go vet recursively on targets with the configured build tags.
The dovet tag is always added.`,
		Example: `  devtasks vet --targets=./pkg --build-tags=zlib,docker`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Tasks().Vet(cmd.Context(), targets, buildTags)
			return finish(cmd, app, report, err)
		},
	}

	addTargetsFlag(cmd, &targets)
	cmd.Flags().StringSliceVar(&buildTags, "build-tags", nil, "build tags (default from config)")

	return cmd
}

// NewCycloCommand creates the cyclo command.
func NewCycloCommand(app application.Application) *cobra.Command {
	var (
		targets []string
		limit   int
	)

	cmd := &cobra.Command{
		Use:     "cyclo",
		GroupID: GroupID,
		Short:   "Run gocyclo on targets",
		Example: `  devtasks cyclo --targets=./pkg --limit=20`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Tasks().Cyclo(cmd.Context(), targets, limit)
			return finish(cmd, app, report, err)
		},
	}

	addTargetsFlag(cmd, &targets)
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum cyclomatic complexity (default from config, 15)")

	return cmd
}

// NewGolangCILintCommand creates the golangci-lint command.
func NewGolangCILintCommand(app application.Application) *cobra.Command {
	var targets, buildTags []string

	cmd := &cobra.Command{
		Use:     "golangci-lint",
		GroupID: GroupID,
		Short:   "Run golangci-lint on targets, one target at a time",
		Example: `  devtasks golangci-lint --targets=./pkg/collector,./pkg/aggregator`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Tasks().GolangCILint(cmd.Context(), targets, buildTags)
			return finish(cmd, app, report, err)
		},
	}

	addTargetsFlag(cmd, &targets)
	cmd.Flags().StringSliceVar(&buildTags, "build-tags", nil, "build tags (default from config)")

	return cmd
}

// NewIneffassignCommand creates the ineffassign command.
func NewIneffassignCommand(app application.Application) *cobra.Command {
	var targets []string

	cmd := &cobra.Command{
		Use:     "ineffassign",
		GroupID: GroupID,
		Short:   "Run ineffassign on targets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Tasks().Ineffassign(cmd.Context(), targets)
			return finish(cmd, app, report, err)
		},
	}

	addTargetsFlag(cmd, &targets)

	return cmd
}

// NewMisspellCommand creates the misspell command.
func NewMisspellCommand(app application.Application) *cobra.Command {
	var targets []string

	cmd := &cobra.Command{
		Use:     "misspell",
		GroupID: GroupID,
		Short:   "Run misspell on targets",
		Long: `Run misspell on targets. Findings under a path listed in
misspell.ignored are dropped; any other finding exits with status 2.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.Tasks().Misspell(cmd.Context(), targets)
			return finish(cmd, app, report, err)
		},
	}

	addTargetsFlag(cmd, &targets)

	return cmd
}
