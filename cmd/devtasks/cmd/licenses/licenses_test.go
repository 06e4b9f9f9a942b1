package licenses

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/licenses"
)

const header = "Component,Origin,License\n"

func newMock(t *testing.T, manifest string, discovered ...licenses.Entry) (*application.Mock, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "LICENSE-3rdparty.csv")
	if manifest != "" {
		require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))
	}

	return &application.Mock{
		DiscovererFunc: func() licenses.Discoverer {
			return licenses.DiscovererFunc(func(context.Context) (*licenses.Manifest, error) {
				return licenses.NewManifest(discovered), nil
			})
		},
		LicenseSettingsFunc: func() application.LicenseSettings {
			return application.LicenseSettings{File: path}
		},
		OutputFormatFunc: func() string { return "" },
	}, path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLintUpToDate(t *testing.T) {
	mock, _ := newMock(t,
		header+"core,github.com/a,MIT\n",
		licenses.NewEntry("github.com/a", "MIT"),
	)

	out, err := execute(t, NewLintCommand(mock))
	require.NoError(t, err)
	assert.Contains(t, out, "licenses ok")
}

func TestLintMismatch(t *testing.T) {
	mock, _ := newMock(t,
		header+"core,a,MIT\ncore,b,MIT\n",
		licenses.NewEntry("b", "MIT"),
		licenses.NewEntry("c", "MIT"),
	)

	out, err := execute(t, NewLintCommand(mock))
	require.Error(t, err)
	assert.True(t, errors.IsMismatch(err))
	assert.Equal(t, 1, errors.ExitCode(err))

	assert.Contains(t, out, "+ core,c,MIT")
	assert.Contains(t, out, "- core,a,MIT")
	assert.Contains(t, out, "licenses are not up-to-date")
}

func TestLintExcludeFlag(t *testing.T) {
	mock, _ := newMock(t,
		header+"core,a,MIT\ncore,github.com/shirou/gopsutil,BSD-3-Clause\n",
		licenses.NewEntry("a", "MIT"),
	)

	_, err := execute(t, NewLintCommand(mock), "--exclude", "github.com/shirou/gopsutil")
	assert.NoError(t, err)
}

func TestLintMalformedManifest(t *testing.T) {
	mock, _ := newMock(t, header+"core,github.com/foo,\n")

	out, err := execute(t, NewLintCommand(mock))
	assert.True(t, errors.IsMalformedManifest(err))
	assert.NotContains(t, out, "licenses ok")
}

func TestLintJSON(t *testing.T) {
	mock, _ := newMock(t, header, licenses.NewEntry("c", "MIT"))
	mock.OutputFormatFunc = func() string { return "json" }

	out, err := execute(t, NewLintCommand(mock))
	require.Error(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.UpToDate)
	assert.Equal(t, []licenses.Entry{licenses.NewEntry("c", "MIT")}, report.Missing)
	assert.Empty(t, report.Extra)
}

func TestGenerate(t *testing.T) {
	mock, path := newMock(t, "",
		licenses.NewEntry("github.com/b", "MIT"),
		licenses.BootstrapEntry(),
		licenses.NewEntry("github.com/a", "Apache-2.0"),
	)

	out, err := execute(t, NewGenerateCommand(mock))
	require.NoError(t, err)
	assert.Contains(t, out, "licenses files generated")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header+
		"core,github.com/a,Apache-2.0\n"+
		"core,github.com/b,MIT\n"+
		"core,github.com/frapposelli/wwhrd,MIT\n", string(data))
}

func TestGenerateDryRun(t *testing.T) {
	mock, path := newMock(t, "", licenses.NewEntry("github.com/a", "MIT"))

	out, err := execute(t, NewGenerateCommand(mock), "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, header+"core,github.com/a,MIT\n", out)
	assert.NoFileExists(t, path)
}

func TestGenerateDiscoveryFailureKeepsFile(t *testing.T) {
	mock, path := newMock(t, header+"core,old,MIT\n")
	mock.DiscovererFunc = func() licenses.Discoverer {
		return licenses.DiscovererFunc(func(context.Context) (*licenses.Manifest, error) {
			return nil, errors.NewEnvironmentError("wwhrd", "not found", nil)
		})
	}

	_, err := execute(t, NewGenerateCommand(mock))
	assert.True(t, errors.IsEnvironment(err))

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, header+"core,old,MIT\n", string(data))
}

func TestShow(t *testing.T) {
	mock, _ := newMock(t, header+"core,github.com/a,MIT\n")

	t.Run("yaml", func(t *testing.T) {
		mock.OutputFormatFunc = func() string { return "yaml" }
		out, err := execute(t, NewShowCommand(mock))
		require.NoError(t, err)
		assert.Contains(t, out, "origin: github.com/a")
	})

	t.Run("markdown", func(t *testing.T) {
		mock.OutputFormatFunc = func() string { return "markdown" }
		out, err := execute(t, NewShowCommand(mock))
		require.NoError(t, err)
		assert.Contains(t, out, "| core")
		assert.Contains(t, out, "github.com/a")
	})

	t.Run("table", func(t *testing.T) {
		mock.OutputFormatFunc = func() string { return "table" }
		out, err := execute(t, NewShowCommand(mock))
		require.NoError(t, err)
		assert.Contains(t, out, "github.com/a")
	})
}

func TestShowMissingFile(t *testing.T) {
	mock, _ := newMock(t, "")
	_, err := execute(t, NewShowCommand(mock))
	assert.True(t, errors.IsNotExist(err))
}

func TestCommandTree(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	for _, name := range []string{"lint", "generate", "show"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	aliases := NewAliasCommands(&application.Mock{})
	require.Len(t, aliases, 2)
	assert.Equal(t, "lint-licenses", aliases[0].Name())
	assert.Equal(t, "generate-licenses", aliases[1].Name())
}
