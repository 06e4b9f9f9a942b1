package gotasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/devtasks/internal/process"
	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/logging"
)

// fakeRunner records commands and replies with canned results keyed by
// the command name.
type fakeRunner struct {
	calls   []process.Command
	results map[string]*process.Result
	err     error
}

func (f *fakeRunner) Run(_ context.Context, cmd process.Command) (*process.Result, error) {
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return nil, f.err
	}
	if res, ok := f.results[cmd.Name]; ok {
		return res, nil
	}
	return &process.Result{}, nil
}

func (f *fakeRunner) lines() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.String()
	}
	return out
}

func newTasks(t *testing.T, runner process.Runner, settings Settings) (*Tasks, *logging.TestLogger) {
	t.Helper()
	logger := logging.NewTestLogger(t)
	return New(runner, settings, WithLogger(logger.Logger)), logger
}

func TestNewAppliesDefaults(t *testing.T) {
	tasks := New(&fakeRunner{}, Settings{})
	assert.Equal(t, 15, tasks.Settings().CycloLimit)
	assert.Equal(t, ".golangci.yml", tasks.Settings().GolangCIConfig)
}

func TestTargetsRequired(t *testing.T) {
	tasks, _ := newTasks(t, &fakeRunner{}, DefaultSettings())
	ctx := context.Background()

	_, err := tasks.Fmt(ctx, nil, false)
	assert.True(t, errors.IsValidationError(err))

	_, err = tasks.Lint(ctx, []string{" ", ""})
	assert.True(t, errors.IsValidationError(err))

	_, err = tasks.Generate(ctx, nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestFmt(t *testing.T) {
	ctx := context.Background()

	t.Run("clean", func(t *testing.T) {
		runner := &fakeRunner{}
		tasks, _ := newTasks(t, runner, DefaultSettings())

		report, err := tasks.Fmt(ctx, []string{"./pkg", "./cmd"}, true)
		require.NoError(t, err)
		assert.Equal(t, "gofmt found no issues", report.Message)
		assert.Equal(t, []string{"gofmt -l -w -s ./pkg ./cmd"}, runner.lines())
	})

	t.Run("reformatted files are reported", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]*process.Result{
			"gofmt": {Stdout: "pkg/b.go\npkg/a.go\npkg/a.go\n"},
		}}
		tasks, logger := newTasks(t, runner, DefaultSettings())

		report, err := tasks.Fmt(ctx, []string{"./pkg"}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"pkg/a.go", "pkg/b.go"}, report.Files)
		logger.AssertContains(t, "Reformatted files")
	})

	t.Run("fail on fmt", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]*process.Result{
			"gofmt": {Stdout: "pkg/a.go\n"},
		}}
		tasks, _ := newTasks(t, runner, DefaultSettings())

		report, err := tasks.Fmt(ctx, []string{"./pkg"}, true)
		require.NotNil(t, report)
		assert.True(t, errors.IsCheckFailed(err))
		assert.Equal(t, 1, errors.ExitCode(err))
	})
}

func TestLint(t *testing.T) {
	ctx := context.Background()
	settings := DefaultSettings()
	settings.LintWhitelist = []string{"agent.pb.go"}

	t.Run("whitelisted findings are allowed", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]*process.Result{
			"golint": {Stdout: "pkg/proto/agent.pb.go:10:1: exported type should have comment\n"},
		}}
		tasks, logger := newTasks(t, runner, settings)

		report, err := tasks.Lint(ctx, []string{"./pkg", "./cmd/"})
		require.NoError(t, err)
		assert.Equal(t, []string{"agent.pb.go"}, report.Allowed)
		assert.Equal(t, []string{"golint ./pkg/... ./cmd/..."}, runner.lines())
		logger.AssertContains(t, "Allowed errors in whitelisted file")
	})

	t.Run("other findings fail", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]*process.Result{
			"golint": {Stdout: "pkg/a.go:1:1: bad\npkg/a.go:2:1: worse\npkg/b.go:3:1: bad\n"},
		}}
		tasks, _ := newTasks(t, runner, settings)

		_, err := tasks.Lint(ctx, []string{"./pkg"})
		var checkErr *errors.CheckError
		require.ErrorAs(t, err, &checkErr)
		assert.Equal(t, "golint (2 files)", checkErr.Check)
		assert.Len(t, checkErr.Issues, 3)
	})
}

func TestVet(t *testing.T) {
	ctx := context.Background()
	settings := DefaultSettings()
	settings.BuildTags = []string{"zlib", "docker"}

	t.Run("configured tags plus dovet", func(t *testing.T) {
		runner := &fakeRunner{}
		tasks, _ := newTasks(t, runner, settings)

		_, err := tasks.Vet(ctx, []string{"./pkg"}, nil)
		require.NoError(t, err)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"vet", "-tags", "zlib docker dovet", "./pkg/..."}, runner.calls[0].Args)
		assert.Equal(t, []string{"zlib", "docker"}, tasks.Settings().BuildTags)
	})

	t.Run("explicit tags", func(t *testing.T) {
		runner := &fakeRunner{}
		tasks, _ := newTasks(t, runner, settings)

		_, err := tasks.Vet(ctx, []string{"./pkg"}, []string{"kubelet"})
		require.NoError(t, err)
		assert.Equal(t, "kubelet dovet", runner.calls[0].Args[2])
	})

	t.Run("findings fail", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]*process.Result{
			"go": {Stderr: "pkg/a.go:3: unreachable code\n", ExitCode: 1},
		}}
		tasks, _ := newTasks(t, runner, settings)

		_, err := tasks.Vet(ctx, []string{"./pkg"}, nil)
		var checkErr *errors.CheckError
		require.ErrorAs(t, err, &checkErr)
		assert.Equal(t, []string{"pkg/a.go:3: unreachable code"}, checkErr.Issues)
	})
}

func TestCyclo(t *testing.T) {
	runner := &fakeRunner{}
	tasks, _ := newTasks(t, runner, DefaultSettings())

	_, err := tasks.Cyclo(context.Background(), []string{"./pkg"}, 0)
	require.NoError(t, err)
	_, err = tasks.Cyclo(context.Background(), []string{"./pkg"}, 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"gocyclo -over 15 ./pkg", "gocyclo -over 20 ./pkg"}, runner.lines())
}

func TestGolangCILint(t *testing.T) {
	ctx := context.Background()
	settings := DefaultSettings()
	settings.BuildTags = []string{"a", "b"}

	t.Run("one run per target", func(t *testing.T) {
		runner := &fakeRunner{}
		tasks, _ := newTasks(t, runner, settings)

		_, err := tasks.GolangCILint(ctx, []string{"./pkg", "./cmd"}, nil)
		require.NoError(t, err)
		require.Len(t, runner.calls, 2)
		assert.Equal(t, []string{"run", "-c", ".golangci.yml", "--build-tags", "a b", "./pkg/..."}, runner.calls[0].Args)
		assert.Equal(t, "./cmd/...", runner.calls[1].Args[5])
	})

	t.Run("stops at first failure", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]*process.Result{
			"golangci-lint": {Stdout: "pkg/a.go:1:1: unused", ExitCode: 1},
		}}
		tasks, _ := newTasks(t, runner, settings)

		_, err := tasks.GolangCILint(ctx, []string{"./pkg", "./cmd"}, nil)
		assert.True(t, errors.IsCheckFailed(err))
		assert.Len(t, runner.calls, 1)
	})
}

func TestIneffassign(t *testing.T) {
	runner := &fakeRunner{results: map[string]*process.Result{
		"ineffassign": {Stdout: "pkg/a.go:4:2: ineffectual assignment to err", ExitCode: 1},
	}}
	tasks, _ := newTasks(t, runner, DefaultSettings())

	_, err := tasks.Ineffassign(context.Background(), []string{"./pkg"})
	assert.True(t, errors.IsCheckFailed(err))
	assert.Equal(t, []string{"ineffassign ./pkg"}, runner.lines())
}

func TestMisspell(t *testing.T) {
	ctx := context.Background()
	settings := DefaultSettings()
	settings.MisspellIgnored = []string{"pkg/ebpf/testdata"}

	t.Run("ignored paths are dropped", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]*process.Result{
			"misspell": {Stdout: filepath.FromSlash("pkg/ebpf/testdata/x.c") + `:1:1: "recieve" is a misspelling of "receive"` + "\n"},
		}}
		tasks, _ := newTasks(t, runner, settings)

		report, err := tasks.Misspell(ctx, []string{"./pkg"})
		require.NoError(t, err)
		assert.Equal(t, "misspell found no issues", report.Message)
	})

	t.Run("findings exit with status 2", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]*process.Result{
			"misspell": {Stdout: `pkg/a.go:1:1: "recieve" is a misspelling of "receive"` + "\n"},
		}}
		tasks, _ := newTasks(t, runner, settings)

		_, err := tasks.Misspell(ctx, []string{"./pkg"})
		require.Error(t, err)
		assert.Equal(t, errors.ExitMisspell, errors.ExitCode(err))
	})
}

func TestRunnerErrorsPropagate(t *testing.T) {
	missing := errors.NewEnvironmentError("gocyclo", "cannot run gocyclo", nil)
	tasks, _ := newTasks(t, &fakeRunner{err: missing}, DefaultSettings())

	_, err := tasks.Cyclo(context.Background(), []string{"./pkg"}, 0)
	assert.True(t, errors.IsEnvironment(err))
}

func TestDeps(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) Settings {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bootstrap.yaml"), []byte(`
order: [misspell, golint, modvendor]
tools:
  golint:
    package: golang.org/x/lint/golint
  misspell:
    package: github.com/client9/misspell/cmd/misspell
    version: v0.3.4
  modvendor:
    package: github.com/goware/modvendor
    install: false
`), 0o600))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor", "golang.org", "x", "mobile"), 0o755))

		settings := DefaultSettings()
		settings.Dir = dir
		settings.VendorPrune = []string{"golang.org/x/mobile", "github.com/absent"}
		return settings
	}

	t.Run("installs in order then vendors and prunes", func(t *testing.T) {
		settings := setup(t)
		runner := &fakeRunner{}
		tasks, logger := newTasks(t, runner, settings)

		report, err := tasks.Deps(ctx, DepsOptions{})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"go install github.com/client9/misspell/cmd/misspell@v0.3.4",
			"go install golang.org/x/lint/golint@latest",
			"go mod vendor",
		}, runner.lines())
		assert.Equal(t, []string{"misspell", "golint"}, report.Installed)
		assert.Equal(t, []string{"golang.org/x/mobile"}, report.Removed)
		assert.NoDirExists(t, filepath.Join(settings.Dir, "vendor", "golang.org", "x", "mobile"))
		logger.AssertContains(t, "go mod vendor finished")
	})

	t.Run("no vendor", func(t *testing.T) {
		runner := &fakeRunner{}
		tasks, _ := newTasks(t, runner, setup(t))

		_, err := tasks.Deps(ctx, DepsOptions{NoVendor: true, Verbose: true})
		require.NoError(t, err)
		assert.Len(t, runner.calls, 2)
	})

	t.Run("malformed order", func(t *testing.T) {
		settings := setup(t)
		require.NoError(t, os.WriteFile(filepath.Join(settings.Dir, "bad.yaml"), []byte("order: [ghost]\ntools: {}\n"), 0o600))
		runner := &fakeRunner{}
		tasks, _ := newTasks(t, runner, settings)

		_, err := tasks.Deps(ctx, DepsOptions{BootstrapFile: "bad.yaml"})
		var cfgErr *errors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Empty(t, runner.calls)
	})

	t.Run("missing default bootstrap file is skipped", func(t *testing.T) {
		settings := DefaultSettings()
		settings.Dir = t.TempDir()
		runner := &fakeRunner{}
		tasks, _ := newTasks(t, runner, settings)

		_, err := tasks.Deps(ctx, DepsOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"go mod vendor"}, runner.lines())
	})

	t.Run("missing explicit bootstrap file fails", func(t *testing.T) {
		settings := DefaultSettings()
		settings.Dir = t.TempDir()
		tasks, _ := newTasks(t, &fakeRunner{}, settings)

		_, err := tasks.Deps(ctx, DepsOptions{BootstrapFile: "nope.yaml"})
		assert.True(t, errors.IsNotExist(err))
	})

	t.Run("install failure stops", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]*process.Result{
			"go": {Stderr: "module not found", ExitCode: 1},
		}}
		tasks, _ := newTasks(t, runner, setup(t))

		_, err := tasks.Deps(ctx, DepsOptions{})
		assert.True(t, errors.IsCheckFailed(err))
		assert.Len(t, runner.calls, 1)
	})
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"bin", "vendor/github.com/x"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}

	settings := DefaultSettings()
	settings.Dir = dir
	runner := &fakeRunner{}
	tasks, _ := newTasks(t, runner, settings)

	report, err := tasks.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"go clean"}, runner.lines())
	assert.Equal(t, dir, runner.calls[0].Dir)
	assert.Equal(t, []string{"bin", "vendor"}, report.Removed)
	assert.NoDirExists(t, filepath.Join(dir, "bin"))
	assert.NoDirExists(t, filepath.Join(dir, "vendor"))
}

func TestGenerate(t *testing.T) {
	settings := DefaultSettings()
	settings.GenerateTargets = []string{"./pkg/status", "./cmd/agent/gui"}
	runner := &fakeRunner{}
	tasks, _ := newTasks(t, runner, settings)

	_, err := tasks.Generate(context.Background(), nil)
	require.NoError(t, err)
	_, err = tasks.Generate(context.Background(), []string{"./other"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"go generate -mod=vendor ./pkg/status ./cmd/agent/gui",
		"go generate -mod=vendor ./other",
	}, runner.lines())
}
