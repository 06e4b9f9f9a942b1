package deps

// DefaultTools lists every external binary wrapped by devtasks.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:          "go",
			DisplayName:   "Go toolchain",
			Description:   "Builds, vets, vendors and cleans the module",
			CheckCommands: []string{"go"},
			MinVersion:    "1.22",
			InstallURL:    "https://go.dev/dl/",
			Required:      true,
		},
		{
			Name:          "gofmt",
			DisplayName:   "gofmt",
			Description:   "Formats Go sources (fmt)",
			CheckCommands: []string{"gofmt"},
			InstallURL:    "https://go.dev/dl/",
			Required:      true,
		},
		{
			Name:          "golint",
			DisplayName:   "golint",
			Description:   "Style linter (lint)",
			CheckCommands: []string{"golint"},
			InstallURL:    "https://github.com/golang/lint",
		},
		{
			Name:          "gocyclo",
			DisplayName:   "gocyclo",
			Description:   "Cyclomatic complexity checker (cyclo)",
			CheckCommands: []string{"gocyclo"},
			InstallURL:    "https://github.com/fzipp/gocyclo",
		},
		{
			Name:          "golangci-lint",
			DisplayName:   "golangci-lint",
			Description:   "Linter aggregator (golangci-lint)",
			CheckCommands: []string{"golangci-lint"},
			InstallURL:    "https://golangci-lint.run/welcome/install/",
		},
		{
			Name:          "ineffassign",
			DisplayName:   "ineffassign",
			Description:   "Detects ineffectual assignments (ineffassign)",
			CheckCommands: []string{"ineffassign"},
			InstallURL:    "https://github.com/gordonklaus/ineffassign",
		},
		{
			Name:          "misspell",
			DisplayName:   "misspell",
			Description:   "Finds commonly misspelled English words (misspell)",
			CheckCommands: []string{"misspell"},
			InstallURL:    "https://github.com/client9/misspell",
		},
		{
			Name:          "wwhrd",
			DisplayName:   "wwhrd",
			Description:   "Discovers vendored dependency licenses (licenses)",
			CheckCommands: []string{"wwhrd"},
			InstallURL:    "https://github.com/frapposelli/wwhrd",
		},
	}
}

// Lookup returns the default tool with the given name.
func Lookup(name string) (Tool, bool) {
	for _, tool := range DefaultTools() {
		if tool.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}
