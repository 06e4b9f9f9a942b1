package licenses

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/devtasks/pkg/constants"
	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/logging"
)

const (
	packageToken = "package="
	licenseToken = "license="

	maxLineSize = 1024 * 1024
)

type generateOptions struct {
	bootstrap Entry
	logger    *zerolog.Logger
}

// GenerateOption configures GenerateManifest.
type GenerateOption func(*generateOptions)

// WithBootstrapEntry replaces the entry that is always injected into a
// generated manifest.
func WithBootstrapEntry(e Entry) GenerateOption {
	return func(o *generateOptions) {
		o.bootstrap = e
	}
}

// WithGenerateLogger sets the logger that reports skipped records.
func WithGenerateLogger(logger *zerolog.Logger) GenerateOption {
	return func(o *generateOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// GenerateManifest builds a manifest from raw wwhrd diagnostic output.
//
// Only lines holding the `msg="Found License"` marker are considered; all
// other lines are skipped. The package= and license= tokens after the
// marker become one core entry. The bootstrap entry is always present and
// the result is sorted by row string.
func GenerateManifest(r io.Reader, opts ...GenerateOption) (*Manifest, error) {
	o := &generateOptions{
		bootstrap: BootstrapEntry(),
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	entries := []Entry{o.bootstrap}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		entry, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if entry.Origin == "" || entry.License == "" {
			o.logger.Warn().
				Int("line", line).
				Str("package", entry.Origin).
				Str("license", entry.License).
				Msg("Skipping license record without package or license")
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", "discovery output", err)
	}

	return NewManifest(entries), nil
}

// ParseLine extracts a license record from one line of discovery output.
// It returns false when the line carries no license record.
func ParseLine(line string) (Entry, bool) {
	idx := strings.Index(line, constants.LicenseFoundMarker)
	if idx == -1 {
		return Entry{}, false
	}

	var pkg, license string
	for _, tok := range strings.Fields(line[idx+len(constants.LicenseFoundMarker):]) {
		switch {
		case strings.HasPrefix(tok, licenseToken):
			license = tok[len(licenseToken):]
		case strings.HasPrefix(tok, packageToken):
			pkg = tok[len(packageToken):]
		}
	}
	return NewEntry(pkg, license), true
}
