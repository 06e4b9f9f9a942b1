package gotasks

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/devtasks/pkg/constants"
	"github.com/agentstation/devtasks/pkg/errors"
)

// Fmt runs gofmt -l -w -s on targets. Rewritten files are reported; with
// failOnFmt they fail the task.
func (t *Tasks) Fmt(ctx context.Context, targets []string, failOnFmt bool) (*Report, error) {
	targets, err := validateTargets(targets)
	if err != nil {
		return nil, err
	}

	res, err := t.run(ctx, "gofmt", append([]string{"-l", "-w", "-s"}, targets...)...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, failed("gofmt", res)
	}

	report := &Report{Task: "fmt", Files: uniqueSorted(lines(res.Stdout))}
	if len(report.Files) > 0 {
		t.log(ctx).Info().Strs("files", report.Files).Msg("Reformatted files")
		if failOnFmt {
			return report, &errors.CheckError{
				Check:  "gofmt",
				Issues: report.Files,
				Code:   errors.ExitFailure,
			}
		}
	}

	report.Message = "gofmt found no issues"
	return report, nil
}

// Lint runs golint recursively on targets. Findings in whitelisted files
// are reported as allowed; any other finding fails the task.
func (t *Tasks) Lint(ctx context.Context, targets []string) (*Report, error) {
	targets, err := validateTargets(targets)
	if err != nil {
		return nil, err
	}

	res, err := t.run(ctx, "golint", recursive(targets)...)
	if err != nil {
		return nil, err
	}

	whitelist := make(map[string]bool, len(t.settings.LintWhitelist))
	for _, name := range t.settings.LintWhitelist {
		whitelist[name] = true
	}

	var issues, allowed []string
	files := map[string]bool{}
	for _, line := range lines(res.Stdout) {
		name := filepath.Base(strings.SplitN(line, ":", 2)[0])
		if whitelist[name] {
			allowed = append(allowed, name)
			continue
		}
		files[name] = true
		issues = append(issues, line)
	}

	if len(issues) > 0 {
		return nil, &errors.CheckError{
			Check:  fmt.Sprintf("golint (%d files)", len(files)),
			Issues: issues,
			Code:   errors.ExitFailure,
		}
	}
	if !res.Success() {
		return nil, failed("golint", res)
	}

	report := &Report{Task: "lint", Allowed: uniqueSorted(allowed), Message: "golint found no issues"}
	for _, name := range report.Allowed {
		t.log(ctx).Info().Str("file", name).Msg("Allowed errors in whitelisted file")
	}
	return report, nil
}

// Vet runs go vet recursively on targets. The dovet tag is always added
// to buildTags, or to the configured tags when buildTags is empty.
func (t *Tasks) Vet(ctx context.Context, targets, buildTags []string) (*Report, error) {
	targets, err := validateTargets(targets)
	if err != nil {
		return nil, err
	}

	tags := t.tags(buildTags)
	tags = append(tags, constants.VetBuildTag)

	args := append([]string{"vet", "-tags", strings.Join(tags, " ")}, recursive(targets)...)
	res, err := t.stream(ctx, "go", args...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, failed("go vet", res)
	}
	return &Report{Task: "vet", Message: "go vet found no issues"}, nil
}

// Cyclo runs gocyclo on targets and fails when any function is over
// limit. A limit of zero uses the configured one.
func (t *Tasks) Cyclo(ctx context.Context, targets []string, limit int) (*Report, error) {
	targets, err := validateTargets(targets)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = t.settings.CycloLimit
	}

	res, err := t.stream(ctx, "gocyclo", append([]string{"-over", strconv.Itoa(limit)}, targets...)...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, failed("gocyclo", res)
	}
	return &Report{Task: "cyclo", Message: "gocyclo found no issues"}, nil
}

// GolangCILint runs golangci-lint once per target and stops at the first
// failing target.
func (t *Tasks) GolangCILint(ctx context.Context, targets, buildTags []string) (*Report, error) {
	targets, err := validateTargets(targets)
	if err != nil {
		return nil, err
	}
	tags := strings.Join(t.tags(buildTags), " ")

	for _, target := range targets {
		t.log(ctx).Info().Str("target", target).Msg("Running golangci-lint")

		res, err := t.stream(ctx, "golangci-lint", "run",
			"-c", t.settings.GolangCIConfig,
			"--build-tags", tags,
			recursive([]string{target})[0],
		)
		if err != nil {
			return nil, err
		}
		if !res.Success() {
			return nil, failed("golangci-lint", res)
		}
	}
	return &Report{Task: "golangci-lint", Message: "golangci-lint found no issues"}, nil
}

// Ineffassign runs ineffassign on targets.
func (t *Tasks) Ineffassign(ctx context.Context, targets []string) (*Report, error) {
	targets, err := validateTargets(targets)
	if err != nil {
		return nil, err
	}

	res, err := t.stream(ctx, "ineffassign", targets...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, failed("ineffassign", res)
	}
	return &Report{Task: "ineffassign", Message: "ineffassign found no issues"}, nil
}

// Misspell runs misspell on targets. Findings under an ignored path are
// dropped; any other finding fails the task with exit status 2.
func (t *Tasks) Misspell(ctx context.Context, targets []string) (*Report, error) {
	targets, err := validateTargets(targets)
	if err != nil {
		return nil, err
	}

	res, err := t.run(ctx, "misspell", targets...)
	if err != nil {
		return nil, err
	}

	var issues []string
	for _, line := range lines(res.Stdout) {
		if !t.misspellIgnored(line) {
			issues = append(issues, line)
		}
	}

	if len(issues) > 0 {
		return nil, &errors.CheckError{Check: "misspell", Issues: issues, Code: errors.ExitMisspell}
	}
	if !res.Success() {
		return nil, failed("misspell", res)
	}
	return &Report{Task: "misspell", Message: "misspell found no issues"}, nil
}

func (t *Tasks) misspellIgnored(line string) bool {
	for _, ignored := range t.settings.MisspellIgnored {
		if ignored != "" && strings.Contains(line, filepath.FromSlash(ignored)) {
			return true
		}
	}
	return false
}

// tags returns override when set, otherwise a copy of the configured tags.
func (t *Tasks) tags(override []string) []string {
	src := override
	if len(src) == 0 {
		src = t.settings.BuildTags
	}
	return append([]string(nil), src...)
}
