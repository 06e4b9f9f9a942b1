// Package app provides the application context and dependency management
// for the devtasks CLI. It centralizes configuration, logging and the
// process runner shared by every command.
package app

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/internal/deps"
	"github.com/agentstation/devtasks/internal/discovery"
	"github.com/agentstation/devtasks/internal/gotasks"
	"github.com/agentstation/devtasks/internal/process"
	"github.com/agentstation/devtasks/pkg/licenses"
)

// App represents the devtasks application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	runner process.Runner
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the standard locations
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		runner:  process.NewExecRunner(),
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Tasks returns the Go task runner for the configured repository.
func (a *App) Tasks() *gotasks.Tasks {
	return gotasks.New(a.runner, a.config.TaskSettings(),
		gotasks.WithLogger(a.logger),
		gotasks.WithOutput(os.Stdout, os.Stderr),
	)
}

// Discoverer returns the wwhrd license discoverer.
func (a *App) Discoverer() licenses.Discoverer {
	return discovery.New(a.runner,
		discovery.WithBinary(a.config.WWHRDBinary),
		discovery.WithDir(a.config.Dir),
		discovery.WithBootstrapEntry(a.config.BootstrapEntry()),
	)
}

// LicenseSettings returns the license manifest settings.
func (a *App) LicenseSettings() application.LicenseSettings {
	return application.LicenseSettings{
		File:    a.config.LicensesFile,
		Exclude: a.config.LicensesExclude,
	}
}

// ToolChecker returns a checker that searches PATH.
func (a *App) ToolChecker() *deps.Checker {
	return deps.NewChecker()
}

// Shutdown runs after a failed command. Tools started through the runner
// are bound to the command context, so there is nothing left to stop.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRunner sets the runner used for every external tool (useful for testing).
func WithRunner(runner process.Runner) Option {
	return func(a *App) error {
		a.runner = runner
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
