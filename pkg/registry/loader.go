package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type registryFile struct {
	Default    string         `json:"default" yaml:"default"`
	Categories []categoryFile `json:"categories" yaml:"categories"`
	Types      []Entry        `json:"types" yaml:"types"`
}

type categoryFile struct {
	Name  string  `json:"name" yaml:"name"`
	Types []Entry `json:"types" yaml:"types"`
}

// LoadFile reads a JSON or YAML registry definition from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}
	return Load(data, path)
}

// Load parses a registry definition. Two layouts are accepted and may be
// mixed: a flat `types` list, and `categories` each holding their own `types`.
// Entries listed under a category inherit its name unless they set one.
func Load(data []byte, source string) (*Registry, error) {
	doc, err := parseRegistryFile(data, source)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, category := range doc.Categories {
		name := strings.TrimSpace(category.Name)
		for _, entry := range category.Types {
			if strings.TrimSpace(entry.Category) == "" {
				entry.Category = name
			}
			entries = append(entries, entry)
		}
	}
	entries = append(entries, doc.Types...)

	if len(entries) == 0 {
		return nil, fmt.Errorf("registry: file %s defines no document types", source)
	}

	reg, err := New(entries, WithDefault(doc.Default))
	if err != nil {
		return nil, fmt.Errorf("registry: file %s: %w", source, err)
	}
	return reg, nil
}

func parseRegistryFile(data []byte, source string) (registryFile, error) {
	var doc registryFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return registryFile{}, fmt.Errorf("registry: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = registryFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return registryFile{}, fmt.Errorf("registry: parse %s: invalid JSON or YAML", source)
}
