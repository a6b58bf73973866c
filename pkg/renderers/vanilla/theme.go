package vanilla

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultThemeName   = "docform"
	DefaultThemeDark   = "dark"
	stylesheetAssetKey = "vanilla.stylesheet"
)

// DefaultManifest describes the built-in light theme and its dark variant.
// Token names match the custom properties of the embedded stylesheet.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":      "#0d6efd",
			"surface":    "#ffffff",
			"background": "#f5f6f8",
			"text":       "#212529",
			"muted":      "#6c757d",
			"success":    "#198754",
			"danger":     "#dc3545",
			"radius":     "6px",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				stylesheetAssetKey: StylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			DefaultThemeDark: {
				Tokens: map[string]string{
					"brand":      "#4493f8",
					"surface":    "#1f2328",
					"background": "#0d1117",
					"text":       "#e6edf3",
					"muted":      "#9198a1",
				},
			},
		},
	}
}

// ManifestSelector picks among registered manifests by name. An empty or
// unknown name selects the first manifest.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers the built-in manifest followed by extra
// manifests. Manifests are validated by the go-theme registry.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	provider := theme.NewRegistry()
	selector := &ManifestSelector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range append([]*theme.Manifest{DefaultManifest()}, manifests...) {
		if manifest == nil {
			continue
		}
		if err := provider.Register(manifest); err != nil {
			return nil, fmt.Errorf("vanilla renderer: register theme %q: %w", manifest.Name, err)
		}
		if selector.fallback == "" {
			selector.fallback = manifest.Name
		}
		selector.manifests[manifest.Name] = manifest
	}
	return selector, nil
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || len(s.manifests) == 0 {
		return nil, fmt.Errorf("vanilla renderer: no themes registered")
	}
	manifest, ok := s.manifests[name]
	if !ok {
		manifest = s.manifests[s.fallback]
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("vanilla renderer: theme %q has no variant %q", manifest.Name, variant)
		}
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

// ThemeConfig flattens a manifest and one of its variants into the renderer
// configuration. Variant values override the base manifest; an unknown
// variant yields the base values.
func ThemeConfig(manifest *theme.Manifest, variant string) *theme.RendererConfig {
	if manifest == nil {
		return nil
	}
	tokens := copyStringMap(manifest.Tokens)
	partials := copyStringMap(manifest.Templates)
	assets := copyStringMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[variant]; ok {
		tokens = mergeStringMaps(tokens, v.Tokens)
		partials = mergeStringMaps(partials, v.Templates)
		assets = mergeStringMaps(assets, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
		AssetURL: assetResolver(prefix, assets),
	}
}

// SelectionConfig converts a selector result into a renderer configuration.
func SelectionConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := ThemeConfig(selection.Manifest, selection.Variant)
	if cfg != nil && selection.Theme != "" {
		cfg.Theme = selection.Theme
	}
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return prefix + "/" + file
	}
}

type themeContext struct {
	Name    string
	Variant string
	Style   string
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	return themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   cssVarsStyle(cfg.CSSVars),
	}
}

func (t themeContext) context() map[string]string {
	return map[string]string{
		"name":    t.Name,
		"variant": t.Variant,
		"style":   t.Style,
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStringMaps(base, override map[string]string) map[string]string {
	for key, value := range override {
		base[key] = value
	}
	return base
}
