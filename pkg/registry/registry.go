package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownType is returned when a label does not name a registered entry.
var ErrUnknownType = errors.New("registry: unknown document type")

// Entry describes one supported document type: the reference data document
// consulted for known values and the template document rendered at the end.
// Paths are relative to the configured data directory.
type Entry struct {
	Label         string `json:"label" yaml:"label"`
	Category      string `json:"category,omitempty" yaml:"category,omitempty"`
	ReferencePath string `json:"reference" yaml:"reference"`
	TemplatePath  string `json:"template" yaml:"template"`
	Help          string `json:"help,omitempty" yaml:"help,omitempty"`
}

// Resolve joins the entry paths onto baseDir.
func (e Entry) Resolve(baseDir string) (reference, template string) {
	return joinPath(baseDir, e.ReferencePath), joinPath(baseDir, e.TemplatePath)
}

func joinPath(baseDir, rel string) string {
	if filepath.IsAbs(rel) || strings.TrimSpace(baseDir) == "" {
		return rel
	}
	return filepath.Join(baseDir, rel)
}

// Group lists entries sharing a category, in registration order.
type Group struct {
	Category string  `json:"category" yaml:"category"`
	Entries  []Entry `json:"entries" yaml:"entries"`
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithDefault sets the label selected when a caller does not pick one.
func WithDefault(label string) Option {
	return func(r *Registry) {
		r.defaultLabel = strings.TrimSpace(label)
	}
}

// Registry is the immutable lookup table from display label to Entry. It is
// built once at startup and safe for concurrent readers.
type Registry struct {
	entries      []Entry
	index        map[string]int
	defaultLabel string
}

// New validates entries and builds a registry. Labels must be unique and both
// paths are required.
func New(entries []Entry, options ...Option) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	for i, entry := range entries {
		entry.Label = strings.TrimSpace(entry.Label)
		entry.Category = strings.TrimSpace(entry.Category)
		entry.ReferencePath = strings.TrimSpace(entry.ReferencePath)
		entry.TemplatePath = strings.TrimSpace(entry.TemplatePath)
		entry.Help = sanitizeHelp(entry.Help)

		if entry.Label == "" {
			return nil, fmt.Errorf("registry: entry %d: label is required", i)
		}
		if entry.ReferencePath == "" || entry.TemplatePath == "" {
			return nil, fmt.Errorf("registry: entry %q: reference and template paths are required", entry.Label)
		}
		if _, exists := r.index[entry.Label]; exists {
			return nil, fmt.Errorf("registry: entry %q already registered", entry.Label)
		}
		r.index[entry.Label] = len(r.entries)
		r.entries = append(r.entries, entry)
	}

	if r.defaultLabel != "" {
		if _, ok := r.index[r.defaultLabel]; !ok {
			return nil, fmt.Errorf("registry: default %q: %w", r.defaultLabel, ErrUnknownType)
		}
	}
	return r, nil
}

// MustNew panics on construction failure. Useful for init-time wiring.
func MustNew(entries []Entry, options ...Option) *Registry {
	r, err := New(entries, options...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the entry registered under label.
func (r *Registry) Lookup(label string) (Entry, error) {
	if r == nil {
		return Entry{}, ErrUnknownType
	}
	idx, ok := r.index[strings.TrimSpace(label)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownType, label)
	}
	return r.entries[idx], nil
}

// Has reports whether label is registered.
func (r *Registry) Has(label string) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[strings.TrimSpace(label)]
	return ok
}

// Default returns the configured default entry, falling back to the first
// registered entry.
func (r *Registry) Default() (Entry, bool) {
	if r == nil || len(r.entries) == 0 {
		return Entry{}, false
	}
	if idx, ok := r.index[r.defaultLabel]; ok {
		return r.entries[idx], true
	}
	return r.entries[0], true
}

// Entries returns a copy of all entries in registration order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	return append([]Entry(nil), r.entries...)
}

// Labels returns the registered labels in registration order.
func (r *Registry) Labels() []string {
	if r == nil {
		return nil
	}
	labels := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		labels = append(labels, entry.Label)
	}
	return labels
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Groups returns entries grouped by category. Categories appear in the order
// they were first seen; entries without a category share the "" group.
func (r *Registry) Groups() []Group {
	if r == nil {
		return nil
	}
	var groups []Group
	positions := make(map[string]int)
	for _, entry := range r.entries {
		pos, ok := positions[entry.Category]
		if !ok {
			pos = len(groups)
			positions[entry.Category] = pos
			groups = append(groups, Group{Category: entry.Category})
		}
		groups[pos].Entries = append(groups[pos].Entries, entry)
	}
	return groups
}
