// Package application provides the application interface for devtasks commands.
//
// Commands accept an Application rather than the concrete App type so they
// can be tested with Mock:
//
//	mock := &application.Mock{
//	    DiscovererFunc: func() licenses.Discoverer {
//	        return fakeDiscoverer
//	    },
//	}
//	cmd := licenses.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/devtasks/internal/deps"
	"github.com/agentstation/devtasks/internal/gotasks"
	"github.com/agentstation/devtasks/pkg/licenses"
)

// LicenseSettings is the configured license manifest location and the
// entries left out of every comparison.
type LicenseSettings struct {
	File    string
	Exclude []string
}

// Application provides what commands need from the application.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, markdown).
	OutputFormat() string

	// Tasks returns the Go task runner configured for the repository.
	Tasks() *gotasks.Tasks

	// Discoverer returns the license discovery source.
	Discoverer() licenses.Discoverer

	// LicenseSettings returns the configured license manifest settings.
	LicenseSettings() LicenseSettings

	// ToolChecker returns the checker used to probe external tools.
	ToolChecker() *deps.Checker

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
