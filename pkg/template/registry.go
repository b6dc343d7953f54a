// Package template manages external code templates: a static registry of
// known templates, a local store of partially materialized working copies,
// and an ad-hoc fetcher for one-off manifest inspection.
//
// Working copies are shallow (depth 1) and, when a sub-path is registered,
// sparse — only the requested subtree is ever transferred. Both limits are
// bandwidth optimizations, not semantic requirements.
package template

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/reposcout/reposcout/pkg/errors"
)

// KindGit is the only supported template kind: a git repository tracked by
// ref. Registry entries with any other kind fail at resolve time.
const KindGit = "git"

// DefaultBranch is the ref tracked when an entry does not name one.
const DefaultBranch = "master"

// Entry describes one known template in the registry document.
type Entry struct {
	Key        string `json:"key"`
	Kind       string `json:"type"`
	Repository string `json:"repository"`
	Branch     string `json:"branch,omitempty"`
	SubPath    string `json:"sub_path,omitempty"`
}

// Ref returns the ref to track, falling back to DefaultBranch.
func (e Entry) Ref() string {
	if e.Branch != "" {
		return e.Branch
	}
	return DefaultBranch
}

// registryDoc is the on-disk shape of the registry document.
type registryDoc struct {
	Templates []Entry `json:"templates"`
}

// Registry is the read-only catalog of known templates, loaded once at
// startup. The underlying file may change between process restarts but the
// in-memory view never does.
type Registry struct {
	entries map[string]Entry
}

// LoadRegistry reads the registry document at path. A missing file yields
// REGISTRY_NOT_FOUND; a document that fails to parse or contains an entry
// without a key yields REGISTRY_INVALID. Both are configuration errors:
// callers that depend on the registry should refuse to initialize.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeRegistryNotFound, "registry not found at %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryInvalid, err, "read registry %s", path)
	}

	var doc registryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryInvalid, err, "parse registry %s", path)
	}

	entries := make(map[string]Entry, len(doc.Templates))
	for _, e := range doc.Templates {
		if e.Key == "" {
			return nil, errors.New(errors.ErrCodeRegistryInvalid, "registry %s: entry without key", path)
		}
		entries[e.Key] = e
	}
	return &Registry{entries: entries}, nil
}

// Get returns the entry for key.
func (r *Registry) Get(key string) (Entry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Keys returns all registered template keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.entries)
}
