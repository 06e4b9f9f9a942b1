package gotasks

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/utc"

	"github.com/agentstation/devtasks/internal/bootstrap"
	"github.com/agentstation/devtasks/pkg/constants"
	"github.com/agentstation/devtasks/pkg/errors"
)

// DepsOptions controls the Deps task.
type DepsOptions struct {
	// BootstrapFile overrides the configured bootstrap file.
	BootstrapFile string
	// NoVendor skips go mod vendor and vendor pruning.
	NoVendor bool
	// Verbose passes -v to go mod vendor.
	Verbose bool
}

// Deps installs the tools listed in the bootstrap file, in their declared
// order, then vendors the module and prunes the configured vendor paths.
func (t *Tasks) Deps(ctx context.Context, opts DepsOptions) (*Report, error) {
	log := t.log(ctx)
	report := &Report{Task: "deps"}

	tools, err := t.bootstrapTools(opts.BootstrapFile)
	if err != nil {
		return nil, err
	}

	for _, tool := range tools {
		if !tool.ShouldInstall() {
			log.Debug().Str("tool", tool.Name).Msg("Skipping tool install")
			continue
		}
		log.Info().Str("tool", tool.Name).Str("package", tool.Target()).Msg("Installing tool")

		res, err := t.stream(ctx, "go", "install", tool.Target())
		if err != nil {
			return nil, err
		}
		if !res.Success() {
			return nil, failed("go install "+tool.Name, res)
		}
		report.Installed = append(report.Installed, tool.Name)
	}

	if opts.NoVendor {
		report.Message = "tools installed"
		return report, nil
	}

	start := utc.Now()
	args := []string{"mod", "vendor"}
	if opts.Verbose {
		args = append(args, "-v")
	}
	res, err := t.stream(ctx, "go", args...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, failed("go mod vendor", res)
	}

	for _, p := range t.settings.VendorPrune {
		path := filepath.Join(t.path(constants.VendorDir), filepath.FromSlash(p))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		log.Info().Str("path", path).Msg("Removing vendored package")
		if err := os.RemoveAll(path); err != nil {
			return nil, errors.WrapIO("delete", path, err)
		}
		report.Removed = append(report.Removed, p)
	}

	elapsed := utc.Now().Time.Sub(start.Time)
	log.Info().Dur("elapsed", elapsed).Msg("go mod vendor finished")
	report.Message = "dependencies vendored in " + elapsed.String()
	return report, nil
}

func (t *Tasks) bootstrapTools(override string) ([]bootstrap.Tool, error) {
	path := override
	if path == "" {
		path = t.settings.BootstrapFile
	}
	if path == "" {
		return nil, nil
	}

	file, err := bootstrap.Load(t.path(path))
	if err != nil {
		// Only an explicitly requested file must exist.
		if override == "" && errors.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return file.Ordered()
}

// Reset runs go clean and removes the bin and vendor directories.
func (t *Tasks) Reset(ctx context.Context) (*Report, error) {
	log := t.log(ctx)

	log.Info().Msg("Executing go clean")
	res, err := t.stream(ctx, "go", "clean")
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, failed("go clean", res)
	}

	report := &Report{Task: "reset", Message: "workspace reset"}
	for _, dir := range []string{constants.BinDir, constants.VendorDir} {
		path := t.path(dir)
		log.Info().Str("path", path).Msg("Removing directory")
		if err := os.RemoveAll(path); err != nil {
			return nil, errors.WrapIO("delete", path, err)
		}
		report.Removed = append(report.Removed, dir)
	}
	return report, nil
}

// Generate runs go generate -mod=vendor on targets, or on the configured
// generate targets when targets is empty.
func (t *Tasks) Generate(ctx context.Context, targets []string) (*Report, error) {
	if len(targets) == 0 {
		targets = t.settings.GenerateTargets
	}
	targets, err := validateTargets(targets)
	if err != nil {
		return nil, err
	}

	res, err := t.stream(ctx, "go", append([]string{"generate", "-mod=vendor"}, targets...)...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, failed("go generate", res)
	}
	return &Report{Task: "generate", Message: "go generate ran successfully"}, nil
}

// path resolves p against the repository root.
func (t *Tasks) path(p string) string {
	if filepath.IsAbs(p) || t.settings.Dir == "" {
		return p
	}
	return filepath.Join(t.settings.Dir, p)
}
