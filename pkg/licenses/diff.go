package licenses

import (
	"github.com/agentstation/devtasks/pkg/errors"
)

// Result is the outcome of comparing a recorded manifest with a
// discovered one.
type Result struct {
	// Missing lists entries that were discovered but are not recorded.
	Missing []Entry `json:"missing" yaml:"missing"`
	// Extra lists entries that are recorded but were not discovered.
	Extra []Entry `json:"extra" yaml:"extra"`
}

// HasChanges reports whether the two sides differ.
func (r *Result) HasChanges() bool {
	return len(r.Missing)+len(r.Extra) > 0
}

// Err returns a MismatchError for file when the result has changes, and
// nil otherwise.
func (r *Result) Err(file string) error {
	if !r.HasChanges() {
		return nil
	}
	return &errors.MismatchError{
		File:    file,
		Missing: Keys(r.Missing),
		Extra:   Keys(r.Extra),
	}
}

// Diff compares the recorded entries with the discovered ones using exact
// row string membership. Missing keeps the order of discovered, Extra the
// order of recorded; duplicate rows are reported once.
func Diff(recorded, discovered []Entry) *Result {
	return &Result{
		Missing: subtract(discovered, recorded),
		Extra:   subtract(recorded, discovered),
	}
}

// subtract returns the entries of a whose row is not in b.
func subtract(a, b []Entry) []Entry {
	in := make(map[string]struct{}, len(b))
	for _, e := range b {
		in[e.Key()] = struct{}{}
	}

	var out []Entry
	seen := make(map[string]struct{})
	for _, e := range a {
		k := e.Key()
		if _, ok := in[k]; ok {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
