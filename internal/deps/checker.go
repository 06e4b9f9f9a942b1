// Package deps checks that the external tools wrapped by devtasks are
// installed.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/devtasks/pkg/constants"
)

// Tool describes an external executable a task needs.
type Tool struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Description string `json:"description" yaml:"description"`
	// CheckCommands are tried in order; the first found on PATH wins.
	CheckCommands []string `json:"check_commands" yaml:"check_commands"`
	MinVersion    string   `json:"min_version,omitempty" yaml:"min_version,omitempty"`
	InstallURL    string   `json:"install_url,omitempty" yaml:"install_url,omitempty"`
	Required      bool     `json:"required" yaml:"required"`
}

// Status is the result of checking one tool.
type Status struct {
	Available  bool   `json:"available" yaml:"available"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	CheckError error  `json:"-" yaml:"-"`
}

// LookPathFunc resolves an executable name to a path.
type LookPathFunc func(file string) (string, error)

// Checker verifies tool availability.
type Checker struct {
	lookPath LookPathFunc
	version  func(ctx context.Context, cmd string) (string, error)
}

// NewChecker returns a Checker that searches PATH.
func NewChecker() *Checker {
	return &Checker{lookPath: exec.LookPath, version: getVersion}
}

// NewCheckerWithLookPath returns a Checker with a custom resolver. Version
// detection is skipped.
func NewCheckerWithLookPath(lookPath LookPathFunc) *Checker {
	return &Checker{
		lookPath: lookPath,
		version: func(context.Context, string) (string, error) {
			return "", fmt.Errorf("version detection disabled")
		},
	}
}

// Check verifies if a tool is available on the system.
// It tries all CheckCommands in order and returns the first one that succeeds.
func (c *Checker) Check(ctx context.Context, tool Tool) Status {
	status := Status{}

	for _, cmd := range tool.CheckCommands {
		path, err := c.lookPath(cmd)
		if err != nil {
			continue
		}

		status.Available = true
		status.Path = path

		if tool.MinVersion != "" {
			version, err := c.version(ctx, path)
			if err != nil {
				status.CheckError = fmt.Errorf("found %s but could not detect version: %w", cmd, err)
			} else {
				status.Version = version
				if !meetsMinVersion(version, tool.MinVersion) {
					status.CheckError = fmt.Errorf("found %s version %s but requires %s or later", cmd, version, tool.MinVersion)
				}
			}
		}

		return status
	}

	if len(tool.CheckCommands) > 0 {
		status.CheckError = fmt.Errorf("%s not found in PATH (tried: %s)", tool.DisplayName, strings.Join(tool.CheckCommands, ", "))
	}

	return status
}

// CheckAll checks every tool and returns a map of tool name to status.
func (c *Checker) CheckAll(ctx context.Context, tools []Tool) map[string]Status {
	results := make(map[string]Status, len(tools))
	for _, tool := range tools {
		results[tool.Name] = c.Check(ctx, tool)
	}
	return results
}

// Missing returns the tools whose status is not available.
func Missing(tools []Tool, statuses map[string]Status) []Tool {
	var missing []Tool
	for _, tool := range tools {
		if status, ok := statuses[tool.Name]; ok && !status.Available {
			missing = append(missing, tool)
		}
	}
	return missing
}

// getVersion attempts to get the version of a command.
// Different tools use different version flags, so several are tried.
func getVersion(ctx context.Context, cmdName string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.VersionProbeTimeout)
	defer cancel()

	for _, flag := range []string{"--version", "-v", "version"} {
		//nolint:gosec // cmdName comes from Tool.CheckCommands (trusted source)
		output, err := exec.CommandContext(ctx, cmdName, flag).CombinedOutput()
		if err != nil {
			continue
		}
		if version := extractVersion(string(output)); version != "" {
			return version, nil
		}
	}

	return "", fmt.Errorf("could not determine version")
}

var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`version\s+v?(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`go(\d+\.\d+(?:\.\d+)?)`),
	regexp.MustCompile(`v?(\d+\.\d+\.\d+)`),
}

// extractVersion pulls a version number out of tool output, e.g.
// "1.2.3", "v1.2.3", "version 1.2.3" or "go1.22.1".
func extractVersion(output string) string {
	for _, re := range versionPatterns {
		if m := re.FindStringSubmatch(output); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// meetsMinVersion compares dotted versions numerically.
func meetsMinVersion(detected, required string) bool {
	d := strings.Split(strings.TrimPrefix(detected, "v"), ".")
	r := strings.Split(strings.TrimPrefix(required, "v"), ".")

	for i := 0; i < len(r); i++ {
		want, _ := strconv.Atoi(r[i])
		have := 0
		if i < len(d) {
			have, _ = strconv.Atoi(d[i])
		}
		if have != want {
			return have > want
		}
	}
	return true
}
