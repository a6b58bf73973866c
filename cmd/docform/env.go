package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-docform/internal/config"
	"github.com/goliatone/go-docform/internal/logging"
	"github.com/goliatone/go-docform/pkg/orchestrator"
	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/renderers/vanilla"
)

type environment struct {
	cfg    *config.Config
	logger zerolog.Logger
	docs   *orchestrator.Orchestrator
}

func (e *environment) localizer() render.Localizer {
	return render.Localizer{Translator: render.NewCatalog(), Locale: e.cfg.Server.Locale}
}

// loadEnvironment reads the configuration, applies command line overrides,
// installs the logger and builds the pipeline.
func loadEnvironment(c *cli.Context) (*environment, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	overrides := map[string]*string{
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
		"data-dir":   &cfg.Data.Dir,
		"registry":   &cfg.Registry.File,
		"addr":       &cfg.Server.Addr,
	}
	for flag, target := range overrides {
		if c.IsSet(flag) {
			*target = c.String(flag)
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger, err := logging.Setup(c.App.ErrWriter, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	docs, err := buildOrchestrator(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, logger: logger, docs: docs}, nil
}

func buildOrchestrator(cfg *config.Config, logger zerolog.Logger) (*orchestrator.Orchestrator, error) {
	types, err := loadRegistry(cfg.Registry)
	if err != nil {
		return nil, err
	}
	exporter, err := render.NewExporter(render.WithNaming(cfg.Output.Naming()))
	if err != nil {
		return nil, err
	}
	renderers, err := pageRenderers(cfg.Theme)
	if err != nil {
		return nil, err
	}

	opts := []orchestrator.Option{
		orchestrator.WithRegistry(types),
		orchestrator.WithDataDir(cfg.Data.Dir),
		orchestrator.WithExporter(exporter),
		orchestrator.WithRenderers(renderers),
		orchestrator.WithLogger(logger),
	}
	if cfg.Data.Presets != "" {
		data, err := os.ReadFile(cfg.Data.Presets)
		if err != nil {
			return nil, fmt.Errorf("read presets: %w", err)
		}
		presets, err := orchestrator.NewJSONPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithTransformer(presets))
	}
	return orchestrator.New(opts...), nil
}

// loadRegistry returns the built-in table or the configured file. The
// configured default applies unless it is the built-in default and the file
// does not list it.
func loadRegistry(cfg config.RegistryConfig) (*registry.Registry, error) {
	entries := registry.Builtin()
	if cfg.File != "" {
		loaded, err := registry.LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		if cfg.Default == "" || (cfg.Default == registry.DefaultLabel && !loaded.Has(cfg.Default)) {
			return loaded, nil
		}
		entries = loaded.Entries()
	}
	return registry.New(entries, registry.WithDefault(cfg.Default))
}

// pageRenderers links the stylesheet served under /assets and themes the
// dashboard with the configured variant.
func pageRenderers(cfg config.ThemeConfig) (*render.Registry, error) {
	variant := cfg.Variant
	if variant == "light" {
		variant = ""
	}
	selector, err := vanilla.NewManifestSelector()
	if err != nil {
		return nil, err
	}
	html, err := vanilla.New(
		vanilla.WithInlineStyles(false),
		vanilla.WithThemeSelector(selector, vanilla.DefaultThemeName, variant),
		vanilla.WithTemplatesDir(cfg.Templates),
	)
	if err != nil {
		return nil, err
	}
	renderers := render.NewRegistry()
	if err := renderers.Register(html); err != nil {
		return nil, err
	}
	if err := renderers.Register(render.JSONRenderer{}); err != nil {
		return nil, err
	}
	return renderers, nil
}
