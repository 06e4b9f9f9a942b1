package licenses

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/logging"
)

// Discoverer produces the license manifest implied by the current
// dependencies of the project.
type Discoverer interface {
	Discover(ctx context.Context) (*Manifest, error)
}

// DiscovererFunc allows functions to implement Discoverer.
type DiscovererFunc func(ctx context.Context) (*Manifest, error)

// Discover implements Discoverer.
func (f DiscovererFunc) Discover(ctx context.Context) (*Manifest, error) {
	return f(ctx)
}

// Reconciler audits and regenerates a license manifest.
type Reconciler struct {
	discoverer Discoverer
	exclusions []string
	logger     *zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithExclusions leaves entries whose row contains any of patterns out of
// the comparison, on both sides.
func WithExclusions(patterns ...string) Option {
	return func(r *Reconciler) {
		r.exclusions = append(r.exclusions, patterns...)
	}
}

// WithLogger sets the reconciler logger. The context logger is used when
// none is set.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// NewReconciler returns a reconciler backed by discoverer.
func NewReconciler(discoverer Discoverer, opts ...Option) *Reconciler {
	r := &Reconciler{discoverer: discoverer}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reconciler) log(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}

// Lint compares the manifest at path with the discovered licenses.
// The result is always returned when both sides could be loaded; the
// error is a MismatchError when they differ.
func (r *Reconciler) Lint(ctx context.Context, path string) (*Result, error) {
	log := r.log(ctx)

	recorded, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", path).Int("entries", recorded.Len()).Msg("Read license manifest")

	discovered, err := r.discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("entries", discovered.Len()).Msg("Discovered licenses")

	old, excluded := Exclude(recorded.Entries, r.exclusions)
	for _, e := range excluded {
		log.Debug().Str("entry", e.Key()).Msg("Ignoring excluded license entry")
	}
	current, _ := Exclude(discovered.Entries, r.exclusions)

	result := Diff(old, current)
	return result, result.Err(path)
}

// Generate discovers the licenses and overwrites the manifest at path.
// Nothing is written unless discovery succeeds.
func (r *Reconciler) Generate(ctx context.Context, path string) (*Manifest, error) {
	m, err := r.Discover(ctx)
	if err != nil {
		return nil, err
	}
	if err := WriteManifest(path, m); err != nil {
		return nil, err
	}
	r.log(ctx).Info().Str("file", path).Int("entries", m.Len()).Msg("Wrote license manifest")
	return m, nil
}

// Discover returns the discovered manifest without touching any file.
func (r *Reconciler) Discover(ctx context.Context) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}
	m, err := r.discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}
	return NewManifest(m.Entries), nil
}
