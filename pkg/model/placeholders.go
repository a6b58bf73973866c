package model

import (
	"encoding/json"
	"sort"
)

// PlaceholderSet holds the distinct placeholder names found in a template.
type PlaceholderSet map[string]struct{}

// NewPlaceholderSet builds a set from the supplied names, ignoring empties.
func NewPlaceholderSet(names ...string) PlaceholderSet {
	set := make(PlaceholderSet, len(names))
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts name into the set.
func (s PlaceholderSet) Add(name string) {
	if s == nil || name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports membership.
func (s PlaceholderSet) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s[name]
	return ok
}

// Len returns the number of distinct names.
func (s PlaceholderSet) Len() int {
	return len(s)
}

// Sorted returns the names in lexical order for deterministic output.
func (s PlaceholderSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON encodes the set as a sorted array.
func (s PlaceholderSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON accepts the array form produced by MarshalJSON.
func (s *PlaceholderSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewPlaceholderSet(names...)
	return nil
}

// MarshalYAML encodes the set as a sorted sequence.
func (s PlaceholderSet) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}
