// Package bootstrap loads the list of Go tools installed by the deps task.
//
// The file is YAML:
//
//	order: [golint, misspell]
//	tools:
//	  golint:
//	    package: golang.org/x/lint/golint
//	    version: latest
//	  misspell:
//	    package: github.com/client9/misspell/cmd/misspell
//	    version: v0.3.4
//	    install: false
//
// When order is omitted the tools are processed by name.
package bootstrap

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/devtasks/pkg/errors"
)

// Tool is one installable Go binary.
type Tool struct {
	Name    string `yaml:"-" json:"name"`
	Package string `yaml:"package" json:"package"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	// Install defaults to true when unset.
	Install *bool `yaml:"install,omitempty" json:"install,omitempty"`
}

// ShouldInstall reports whether the tool is installed by the deps task.
func (t Tool) ShouldInstall() bool {
	return t.Install == nil || *t.Install
}

// Target returns the argument passed to go install.
func (t Tool) Target() string {
	version := t.Version
	if version == "" {
		version = "latest"
	}
	return t.Package + "@" + version
}

// File is a parsed bootstrap file.
type File struct {
	Order []string        `yaml:"order,omitempty"`
	Tools map[string]Tool `yaml:"tools"`
}

// Load reads and parses the bootstrap file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		if pe, ok := err.(*errors.ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return f, nil
}

// Parse decodes a bootstrap file from r.
func Parse(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return &File{Tools: map[string]Tool{}}, nil
		}
		return nil, errors.NewParseError("yaml", "", err.Error(), err)
	}
	if f.Tools == nil {
		f.Tools = map[string]Tool{}
	}
	for name, tool := range f.Tools {
		tool.Name = name
		f.Tools[name] = tool
	}
	return &f, nil
}

// Ordered returns the tools in processing order. A name listed in order
// without a matching tool entry is a configuration error.
func (f *File) Ordered() ([]Tool, error) {
	order := f.Order
	if len(order) == 0 {
		order = make([]string, 0, len(f.Tools))
		for name := range f.Tools {
			order = append(order, name)
		}
		sort.Strings(order)
	}

	tools := make([]Tool, 0, len(order))
	for _, name := range order {
		tool, ok := f.Tools[name]
		if !ok {
			return nil, errors.NewConfigError("bootstrap", "dependency "+name+" not found", nil)
		}
		if tool.Package == "" {
			return nil, errors.NewConfigError("bootstrap", "dependency "+name+" has no package", nil)
		}
		tools = append(tools, tool)
	}
	return tools, nil
}
