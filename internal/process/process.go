// Package process runs external tools and captures their output.
package process

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/logging"
)

// Command describes one invocation of an external tool.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env is appended to the current environment.
	Env []string
	// Stdout and Stderr, when set, receive the output as it is produced.
	// The output is captured in the Result either way.
	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command line.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs commands. A non-zero exit status is reported through
// Result.ExitCode, not as an error; the error is reserved for commands
// that could not be run at all.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// RunnerFunc allows functions to implement Runner.
type RunnerFunc func(ctx context.Context, cmd Command) (*Result, error)

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, cmd Command) (*Result, error) {
	return f(ctx, cmd)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	logging.FromContext(ctx).Debug().Str("command", cmd.String()).Str("dir", cmd.Dir).Msg("Running command")

	//nolint:gosec // command lines are built from configuration, not user input
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = tee(&stdout, cmd.Stdout)
	c.Stderr = tee(&stderr, cmd.Stderr)

	err := c.Run()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if ctx.Err() != nil {
		return result, errors.ErrCanceled
	}
	return result, errors.NewEnvironmentError(cmd.Name, "cannot run "+cmd.String(), err)
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
