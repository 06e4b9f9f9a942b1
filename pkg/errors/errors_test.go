package errors_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	pkgerrors "github.com/agentstation/devtasks/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("tool", "wwhrd")
	assert.Equal(t, "tool wwhrd not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "targets",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field targets: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestEnvironmentError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := pkgerrors.NewEnvironmentError("golint", "not found in PATH", nil)
		assert.Equal(t, "environment error: golint: not found in PATH", err.Error())
		assert.True(t, pkgerrors.IsEnvironment(err))
		assert.False(t, pkgerrors.IsMismatch(err))
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("exec: \"wwhrd\": executable file not found in $PATH")
		err := pkgerrors.NewEnvironmentError("wwhrd", "cannot start", cause)
		assert.Contains(t, err.Error(), "cannot start")
		assert.Equal(t, cause, errors.Unwrap(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("discover: %w", pkgerrors.NewEnvironmentError("wwhrd", "missing", nil))
		assert.True(t, pkgerrors.IsEnvironment(err))
		assert.Equal(t, pkgerrors.ExitFailure, pkgerrors.ExitCode(err))
	})
}

func TestMismatchError(t *testing.T) {
	err := &pkgerrors.MismatchError{
		File:    "LICENSE-3rdparty.csv",
		Missing: []string{"core,c,MIT"},
		Extra:   []string{"core,a,MIT", "core,b,MIT"},
	}
	assert.Equal(t, "licenses are not up-to-date in LICENSE-3rdparty.csv: 1 missing, 2 extra", err.Error())
	assert.True(t, pkgerrors.IsMismatch(err))
	assert.False(t, pkgerrors.IsEnvironment(err))
	assert.Equal(t, 1, pkgerrors.ExitCode(err))
}

func TestMalformedEntryError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := &pkgerrors.MalformedEntryError{
			File:    "LICENSE-3rdparty.csv",
			Line:    3,
			Origin:  "github.com/foo",
			Message: "has an empty license",
		}
		assert.Equal(t, `LICENSE-3rdparty.csv:3: entry "github.com/foo" has an empty license`, err.Error())
		assert.True(t, pkgerrors.IsMalformedManifest(err))
	})

	t.Run("without file", func(t *testing.T) {
		err := &pkgerrors.MalformedEntryError{Line: 2, Origin: "x", Message: "has an empty license"}
		assert.Equal(t, `line 2: entry "x" has an empty license`, err.Error())
	})
}

func TestCheckError(t *testing.T) {
	t.Run("default code", func(t *testing.T) {
		err := pkgerrors.NewCheckError("golint", []string{"a.go"})
		assert.True(t, pkgerrors.IsCheckFailed(err))
		assert.Equal(t, pkgerrors.ExitFailure, pkgerrors.ExitCode(err))
		assert.Contains(t, err.Error(), "a.go")
	})

	t.Run("custom code", func(t *testing.T) {
		err := &pkgerrors.CheckError{Check: "misspell", Code: pkgerrors.ExitMisspell}
		assert.Equal(t, "misspell found issues", err.Error())
		assert.Equal(t, 2, pkgerrors.ExitCode(fmt.Errorf("run: %w", err)))
	})

	t.Run("zero code falls back to failure", func(t *testing.T) {
		err := &pkgerrors.CheckError{Check: "vet"}
		assert.Equal(t, pkgerrors.ExitFailure, err.ExitCode())
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"io error", pkgerrors.NewIOError("read", "x", errors.New("boom")), 1},
		{"misspell", &pkgerrors.CheckError{Check: "misspell", Code: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pkgerrors.ExitCode(tt.err))
		})
	}
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("bootstrap", "dependency golint not found", nil)
	assert.Equal(t, "configuration error in bootstrap: dependency golint not found", err.Error())

	noComponent := &pkgerrors.ConfigError{Message: "bad"}
	assert.Equal(t, "configuration error: bad", noComponent.Error())
}

func TestParseError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "csv", File: "x.csv", Line: 4, Column: 1, Message: "wrong number of fields"}
		assert.Equal(t, "parse error in csv at x.csv:4:1: wrong number of fields", err.Error())
	})

	t.Run("file only", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "deps.yaml", "bad indent", nil)
		assert.Equal(t, "parse error in yaml file deps.yaml: bad indent", err.Error())
	})

	t.Run("no file", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "csv", Message: "empty"}
		assert.Equal(t, "csv parse error: empty", err.Error())
	})
}

func TestProcessError(t *testing.T) {
	cause := errors.New("exit status 3")
	err := pkgerrors.NewProcessError("discover licenses", "wwhrd list", "boom", cause)
	assert.Contains(t, err.Error(), "wwhrd list")
	assert.Contains(t, err.Error(), "Output: boom")
	assert.Equal(t, cause, err.Unwrap())

	quiet := pkgerrors.NewProcessError("vet", "go vet", "", cause)
	assert.NotContains(t, quiet.Error(), "Output:")
}

func TestWrapHelpers(t *testing.T) {
	assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
	assert.Nil(t, pkgerrors.WrapParse("csv", "x", nil))
	assert.Nil(t, pkgerrors.WrapValidation("x", nil))

	base := errors.New("boom")

	var ioErr *pkgerrors.IOError
	assert.ErrorAs(t, pkgerrors.WrapIO("write", "out.csv", base), &ioErr)
	assert.Equal(t, "out.csv", ioErr.Path)

	var parseErr *pkgerrors.ParseError
	assert.ErrorAs(t, pkgerrors.WrapParse("yaml", "deps.yaml", base), &parseErr)
	assert.ErrorIs(t, parseErr, base)

	assert.True(t, pkgerrors.IsValidationError(pkgerrors.WrapValidation("limit", base)))
}

func TestIsNotExist(t *testing.T) {
	_, err := os.Open(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, pkgerrors.IsNotExist(pkgerrors.WrapIO("read", "missing", err)))
	assert.False(t, pkgerrors.IsNotExist(errors.New("boom")))
}
