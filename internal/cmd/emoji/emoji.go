// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output.
const (
	// Success represents a passing check or an available tool.
	Success = "✓"

	// Error represents a failing check or a missing required tool.
	Error = "✗"

	// Warning represents findings that do not fail the run, such as
	// whitelisted lint errors.
	Warning = "!"

	// Optional represents an optional tool that is not installed.
	Optional = "-"

	// Added marks a license entry discovered but not recorded.
	Added = "+"

	// Removed marks a license entry recorded but no longer discovered.
	Removed = "-"

	// Info represents informational messages.
	Info = "i"
)
