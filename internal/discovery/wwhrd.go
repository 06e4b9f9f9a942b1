// Package discovery finds the licenses of the project dependencies with
// the wwhrd tool.
package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/devtasks/internal/process"
	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/licenses"
	"github.com/agentstation/devtasks/pkg/logging"
)

// WWHRD discovers licenses by running `wwhrd list` and scraping the
// records it logs on stderr.
type WWHRD struct {
	runner    process.Runner
	binary    string
	dir       string
	bootstrap *licenses.Entry
}

// Option configures a WWHRD discoverer.
type Option func(*WWHRD)

// WithBinary sets the wwhrd executable. The default is $GOPATH/bin/wwhrd.
func WithBinary(path string) Option {
	return func(w *WWHRD) {
		if path != "" {
			w.binary = path
		}
	}
}

// WithDir sets the directory wwhrd runs in.
func WithDir(dir string) Option {
	return func(w *WWHRD) {
		w.dir = dir
	}
}

// WithBootstrapEntry replaces the entry injected for wwhrd itself.
func WithBootstrapEntry(e licenses.Entry) Option {
	return func(w *WWHRD) {
		w.bootstrap = &e
	}
}

// New returns a WWHRD discoverer that runs commands through runner.
func New(runner process.Runner, opts ...Option) *WWHRD {
	w := &WWHRD{
		runner: runner,
		binary: DefaultBinary(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Discover implements licenses.Discoverer.
func (w *WWHRD) Discover(ctx context.Context) (*licenses.Manifest, error) {
	ctx = logging.WithTool(ctx, "wwhrd")
	log := logging.FromContext(ctx)

	cmd := process.Command{
		Name: w.binary,
		Args: []string{"list", "--no-color"},
		Dir:  w.dir,
	}
	result, err := w.runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if !result.Success() {
		return nil, errors.NewEnvironmentError("wwhrd", "license discovery failed",
			&errors.ProcessError{
				Operation: "discover licenses",
				Command:   cmd.String(),
				Output:    strings.TrimSpace(result.Stderr),
				ExitCode:  result.ExitCode,
				Err:       fmt.Errorf("exit status %d", result.ExitCode),
			})
	}

	opts := []licenses.GenerateOption{licenses.WithGenerateLogger(log)}
	if w.bootstrap != nil {
		opts = append(opts, licenses.WithBootstrapEntry(*w.bootstrap))
	}
	m, err := licenses.GenerateManifest(strings.NewReader(result.Stderr), opts...)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("entries", m.Len()).Msg("Parsed wwhrd output")
	return m, nil
}

// DefaultBinary returns $GOPATH/bin/wwhrd, falling back to $HOME/go.
func DefaultBinary() string {
	return filepath.Join(GoPath(), "bin", "wwhrd")
}

// GoPath returns the first entry of $GOPATH, or the go tool default.
func GoPath() string {
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		return filepath.SplitList(gopath)[0]
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "go"
	}
	return filepath.Join(home, "go")
}

var _ licenses.Discoverer = (*WWHRD)(nil)
