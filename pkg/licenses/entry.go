// Package licenses reconciles the third-party license manifest of a Go
// project against the licenses discovered from its dependencies.
//
// The manifest is a CSV file with the header "Component,Origin,License".
// Entries are compared by their full row string: two entries that differ
// only in whitespace or case are different entries.
package licenses

import (
	"sort"
	"strings"

	"github.com/agentstation/devtasks/pkg/constants"
)

// Entry is one row of the license manifest.
type Entry struct {
	Scope   string `json:"scope" yaml:"scope"`
	Origin  string `json:"origin" yaml:"origin"`
	License string `json:"license" yaml:"license"`
}

// NewEntry returns an entry in the core scope.
func NewEntry(origin, license string) Entry {
	return Entry{Scope: constants.LicenseScopeCore, Origin: origin, License: license}
}

// BootstrapEntry is the entry for the discovery tool itself. It is always
// part of a generated manifest, since the tool does not report itself.
func BootstrapEntry() Entry {
	return NewEntry(constants.WWHRDModule, constants.WWHRDLicense)
}

// Key returns the row string that identifies the entry.
func (e Entry) Key() string {
	return e.Scope + "," + e.Origin + "," + e.License
}

// String implements fmt.Stringer.
func (e Entry) String() string {
	return e.Key()
}

func (e Entry) record() []string {
	return []string{e.Scope, e.Origin, e.License}
}

// Keys returns the row strings of entries, in order.
func Keys(entries []Entry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key()
	}
	return keys
}

// Sort orders entries by row string and drops duplicate rows.
func Sort(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Key()]; ok {
			continue
		}
		seen[e.Key()] = struct{}{}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	return out
}

// Exclude drops entries whose row string contains any of the patterns.
// Empty patterns are ignored.
func Exclude(entries []Entry, patterns []string) (kept, excluded []Entry) {
	kept = make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matchesAny(e.Key(), patterns) {
			excluded = append(excluded, e)
			continue
		}
		kept = append(kept, e)
	}
	return kept, excluded
}

func matchesAny(key string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(key, p) {
			return true
		}
	}
	return false
}
