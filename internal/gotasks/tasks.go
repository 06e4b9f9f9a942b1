// Package gotasks wraps the Go tooling used to maintain a repository:
// formatters, linters, vetting, vendoring and code generation. Each task
// shells out to one external binary and classifies its output and exit
// status.
package gotasks

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/devtasks/internal/process"
	"github.com/agentstation/devtasks/pkg/constants"
	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/logging"
)

// Settings holds the per-repository task configuration.
type Settings struct {
	// Dir is the repository root; empty means the working directory.
	Dir string
	// BuildTags are passed to go vet and golangci-lint.
	BuildTags []string
	// CycloLimit is the complexity reported by gocyclo -over.
	CycloLimit int
	// GolangCIConfig is the golangci-lint configuration file.
	GolangCIConfig string
	// LintWhitelist holds file basenames whose golint findings are allowed.
	LintWhitelist []string
	// MisspellIgnored holds path fragments whose misspell findings are dropped.
	MisspellIgnored []string
	// GenerateTargets are the packages passed to go generate.
	GenerateTargets []string
	// BootstrapFile lists the tools installed by Deps.
	BootstrapFile string
	// VendorPrune holds paths below vendor/ removed after vendoring.
	VendorPrune []string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		CycloLimit:     constants.DefaultCycloLimit,
		GolangCIConfig: constants.DefaultGolangCIConfig,
		BootstrapFile:  constants.DefaultBootstrapFile,
	}
}

// Report summarizes a task that ran to completion.
type Report struct {
	Task string `json:"task" yaml:"task"`
	// Files lists files the task touched, such as those rewritten by gofmt.
	Files []string `json:"files,omitempty" yaml:"files,omitempty"`
	// Allowed lists files with findings that were tolerated.
	Allowed []string `json:"allowed,omitempty" yaml:"allowed,omitempty"`
	// Installed lists the tools installed by Deps.
	Installed []string `json:"installed,omitempty" yaml:"installed,omitempty"`
	// Removed lists paths deleted by Deps or Reset.
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`
	Message string   `json:"message" yaml:"message"`
}

// Tasks runs the Go tasks of one repository.
type Tasks struct {
	runner   process.Runner
	settings Settings
	logger   *zerolog.Logger
	stdout   io.Writer
	stderr   io.Writer
}

// Option configures Tasks.
type Option func(*Tasks)

// WithLogger sets the task logger. The context logger is used when none
// is set.
func WithLogger(logger *zerolog.Logger) Option {
	return func(t *Tasks) {
		t.logger = logger
	}
}

// WithOutput streams the output of tools whose findings are not parsed
// (go vet, gocyclo, golangci-lint, ineffassign, go generate) to w.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(t *Tasks) {
		t.stdout = stdout
		t.stderr = stderr
	}
}

// New returns Tasks that run commands through runner.
func New(runner process.Runner, settings Settings, opts ...Option) *Tasks {
	if settings.CycloLimit <= 0 {
		settings.CycloLimit = constants.DefaultCycloLimit
	}
	if settings.GolangCIConfig == "" {
		settings.GolangCIConfig = constants.DefaultGolangCIConfig
	}
	t := &Tasks{runner: runner, settings: settings}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Settings returns the effective settings.
func (t *Tasks) Settings() Settings {
	return t.settings
}

func (t *Tasks) log(ctx context.Context) *zerolog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return logging.FromContext(ctx)
}

// run executes name with args in the repository root, capturing output.
func (t *Tasks) run(ctx context.Context, name string, args ...string) (*process.Result, error) {
	return t.runner.Run(ctx, process.Command{Name: name, Args: args, Dir: t.settings.Dir})
}

// stream is run with the output also forwarded to the configured writers.
func (t *Tasks) stream(ctx context.Context, name string, args ...string) (*process.Result, error) {
	return t.runner.Run(ctx, process.Command{
		Name:   name,
		Args:   args,
		Dir:    t.settings.Dir,
		Stdout: t.stdout,
		Stderr: t.stderr,
	})
}

// failed converts a non-zero exit into a CheckError holding the tool output.
func failed(check string, res *process.Result) error {
	issues := lines(res.Stdout)
	issues = append(issues, lines(res.Stderr)...)
	return &errors.CheckError{Check: check, Issues: issues, Code: errors.ExitFailure}
}

// validateTargets rejects an empty target list.
func validateTargets(targets []string) ([]string, error) {
	var out []string
	for _, target := range targets {
		if target = strings.TrimSpace(target); target != "" {
			out = append(out, target)
		}
	}
	if len(out) == 0 {
		return nil, errors.NewValidationError("targets", targets, "at least one target is required")
	}
	return out, nil
}

// recursive appends the /... suffix to every target.
func recursive(targets []string) []string {
	out := make([]string, len(targets))
	for i, target := range targets {
		out[i] = strings.TrimSuffix(target, "/") + "/..."
	}
	return out
}

// lines splits output into non-empty lines.
func lines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// uniqueSorted returns the distinct values of in, sorted.
func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
