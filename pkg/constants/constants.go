// Package constants provides shared constants used throughout the devtasks codebase.
// This includes file names, default tool settings, timeouts and file permissions
// that should be consistent across commands.
package constants

import "time"

// License manifest constants
const (
	// LicenseFile is the default third-party license manifest
	LicenseFile = "LICENSE-3rdparty.csv"

	// LicenseHeader is the fixed header row of the license manifest
	LicenseHeader = "Component,Origin,License"

	// LicenseScopeCore is the scope given to every discovered license entry
	LicenseScopeCore = "core"

	// LicenseFoundMarker marks a discovered license record in wwhrd output
	LicenseFoundMarker = `msg="Found License"`

	// WWHRDModule is the module path of the license discovery tool
	WWHRDModule = "github.com/frapposelli/wwhrd"

	// WWHRDLicense is the license of the license discovery tool
	WWHRDLicense = "MIT"
)

// Tool defaults
const (
	// DefaultCycloLimit is the default maximum cyclomatic complexity
	DefaultCycloLimit = 15

	// DefaultGolangCIConfig is the default golangci-lint configuration file
	DefaultGolangCIConfig = ".golangci.yml"

	// DefaultBootstrapFile is the default tool bootstrap manifest
	DefaultBootstrapFile = "bootstrap.yaml"

	// VetBuildTag is always appended to the build tags passed to go vet
	VetBuildTag = "dovet"
)

// Path constants
const (
	// BinDir is the directory holding built binaries
	BinDir = "bin"

	// VendorDir is the directory populated by go mod vendor
	VendorDir = "vendor"

	// ConfigName is the config file name searched in the working and home directories
	ConfigName = ".devtasks"

	// EnvPrefix is the prefix for environment variable configuration
	EnvPrefix = "DEVTASKS"
)

// Timeout constants define various timeout durations used in the application
const (
	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second

	// VersionProbeTimeout bounds each tool version probe
	VersionProbeTimeout = 10 * time.Second
)

// File permission constants
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
