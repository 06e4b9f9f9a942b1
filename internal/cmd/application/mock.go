package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/devtasks/internal/deps"
	"github.com/agentstation/devtasks/internal/gotasks"
	"github.com/agentstation/devtasks/internal/process"
	"github.com/agentstation/devtasks/pkg/constants"
	"github.com/agentstation/devtasks/pkg/licenses"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a harmless default.
type Mock struct {
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	TasksFunc           func() *gotasks.Tasks
	DiscovererFunc      func() licenses.Discoverer
	LicenseSettingsFunc func() LicenseSettings
	ToolCheckerFunc     func() *deps.Checker
	VersionFunc         func() string
	CommitFunc          func() string
	DateFunc            func() string
	BuiltByFunc         func() string
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Tasks returns tasks using the mock function or tasks whose commands
// all succeed without output.
func (m *Mock) Tasks() *gotasks.Tasks {
	if m.TasksFunc != nil {
		return m.TasksFunc()
	}
	runner := process.RunnerFunc(func(context.Context, process.Command) (*process.Result, error) {
		return &process.Result{}, nil
	})
	return gotasks.New(runner, gotasks.DefaultSettings())
}

// Discoverer returns a discoverer using the mock function or one that
// discovers nothing.
func (m *Mock) Discoverer() licenses.Discoverer {
	if m.DiscovererFunc != nil {
		return m.DiscovererFunc()
	}
	return licenses.DiscovererFunc(func(context.Context) (*licenses.Manifest, error) {
		return licenses.NewManifest(nil), nil
	})
}

// LicenseSettings returns settings using the mock function or the defaults.
func (m *Mock) LicenseSettings() LicenseSettings {
	if m.LicenseSettingsFunc != nil {
		return m.LicenseSettingsFunc()
	}
	return LicenseSettings{File: constants.LicenseFile}
}

// ToolChecker returns a checker using the mock function or one that
// finds every tool.
func (m *Mock) ToolChecker() *deps.Checker {
	if m.ToolCheckerFunc != nil {
		return m.ToolCheckerFunc()
	}
	return deps.NewCheckerWithLookPath(func(file string) (string, error) {
		return "/usr/bin/" + file, nil
	})
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
