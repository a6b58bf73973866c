package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-docform/pkg/extract"
	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/renderers/vanilla"
	"github.com/goliatone/go-docform/pkg/widgets"
)

const (
	defaultRendererName = "vanilla"
	DefaultDataDir      = "data"
)

// ErrFilesMissing blocks generation when the reference document of an
// analysis was not found.
var ErrFilesMissing = errors.New("orchestrator: configured file missing")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry replaces the built-in document type table.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *Orchestrator) {
		o.types = reg
	}
}

// WithDataDir sets the directory registry paths are resolved against.
func WithDataDir(dir string) Option {
	return func(o *Orchestrator) {
		o.dataDir = dir
	}
}

// WithExtractor injects a configured reference data extractor.
func WithExtractor(extractor *extract.Extractor) Option {
	return func(o *Orchestrator) {
		o.extractor = extractor
	}
}

// WithExporter injects a configured exporter (naming, engine).
func WithExporter(exporter *render.Exporter) Option {
	return func(o *Orchestrator) {
		o.exporter = exporter
	}
}

// WithWidgets injects the widget registry used to build form controls.
func WithWidgets(reg *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = reg
	}
}

// WithRenderers injects a page renderer registry.
func WithRenderers(reg *render.Registry) Option {
	return func(o *Orchestrator) {
		o.renderers = reg
	}
}

// WithDefaultRenderer overrides the renderer used when a caller omits an
// explicit renderer name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can adjust an analysis after
// extraction and before missing fields are computed.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates analysis and generation for one registry. It holds
// no per-user state and is safe for concurrent use once constructed.
type Orchestrator struct {
	types           *registry.Registry
	dataDir         string
	extractor       *extract.Extractor
	exporter        *render.Exporter
	widgets         *widgets.Registry
	renderers       *render.Registry
	defaultRenderer string
	transformer     Transformer
	logger          zerolog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		dataDir:         DefaultDataDir,
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.types == nil {
		o.types = registry.NewBuiltin()
	}
	if o.extractor == nil {
		o.extractor = extract.NewExtractor()
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.exporter == nil {
		exporter, err := render.NewExporter()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default exporter: %w", err)
		}
		o.exporter = exporter
	}
	if o.renderers == nil {
		o.renderers = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.renderers.MustRegister(renderer)
		}
		o.renderers.MustRegister(render.JSONRenderer{})
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// Registry exposes the document type table.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.types
}

// DataDir reports the directory registry paths are resolved against.
func (o *Orchestrator) DataDir() string {
	return o.dataDir
}

// Analyze resolves label, checks both files and extracts fields, prefilled
// data and placeholders. Extraction problems are recorded as diagnostics;
// only an unknown label, a failed transformer or cancellation return errors.
func (o *Orchestrator) Analyze(ctx context.Context, label string) (model.Analysis, error) {
	if ctx == nil {
		return model.Analysis{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Analysis{}, err
	}
	entry, err := o.types.Lookup(label)
	if err != nil {
		return model.Analysis{}, err
	}

	referencePath, templatePath := entry.Resolve(o.dataDir)
	ref := model.EmptyReference()
	analysis := model.Analysis{
		Label:        entry.Label,
		Category:     entry.Category,
		Template:     fileStatus(model.RoleTemplate, templatePath),
		Reference:    fileStatus(model.RoleReference, referencePath),
		Placeholders: model.NewPlaceholderSet(),
	}

	if analysis.Reference.Exists {
		extracted, err := o.extractor.ReadReference(referencePath)
		if err != nil {
			analysis.AddDiagnostic(err.Error())
			o.logger.Warn().Err(err).Str("path", referencePath).Msg("read reference data")
		}
		ref = extracted
	}
	analysis.Fields, analysis.Data = ref.Fields, ref.Data

	if err := ctx.Err(); err != nil {
		return model.Analysis{}, err
	}
	if analysis.Template.Exists {
		placeholders, err := extract.ReadPlaceholders(templatePath)
		if err != nil {
			analysis.AddDiagnostic(err.Error())
			o.logger.Warn().Err(err).Str("path", templatePath).Msg("read template placeholders")
		}
		analysis.Placeholders = placeholders
	}

	if err := o.applyTransformer(ctx, &analysis); err != nil {
		return model.Analysis{}, err
	}
	analysis.Missing = widgets.MissingFields(analysis.Fields, analysis.Data)

	o.logger.Debug().
		Str("type", analysis.Label).
		Int("fields", len(analysis.Fields)).
		Int("prefilled", len(analysis.Data)).
		Int("missing", len(analysis.Missing)).
		Int("placeholders", len(analysis.Placeholders)).
		Msg("analysis ready")
	return analysis, nil
}

// Generate merges submitted values over the analysis and renders the template.
// Render failures are returned as *render.RenderError.
func (o *Orchestrator) Generate(ctx context.Context, analysis model.Analysis, submitted map[string]string) (render.Output, error) {
	if ctx == nil {
		return render.Output{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return render.Output{}, err
	}
	if !analysis.Reference.Exists {
		return render.Output{}, fmt.Errorf("%w: %s", ErrFilesMissing, analysis.Reference.Path)
	}

	values := render.MergeContext(analysis.Data, submitted, analysis.Placeholders)
	out, err := o.exporter.Export(ctx, analysis.Template.Path, values)
	if err != nil {
		o.logger.Error().Err(err).Str("type", analysis.Label).Msg("generate document")
		return render.Output{}, err
	}
	o.logger.Info().
		Str("type", analysis.Label).
		Str("file", out.FileName).
		Int("bytes", len(out.Content)).
		Msg("document generated")
	return out, nil
}

// Page builds the dashboard view model for analysis (nil for no selection).
// Controls come from the configured widget registry and help from the entry.
func (o *Orchestrator) Page(loc render.Localizer, analysis *model.Analysis, opts ...render.PageOption) render.Page {
	pageOpts := make([]render.PageOption, 0, len(opts)+2)
	if analysis != nil {
		if entry, err := o.types.Lookup(analysis.Label); err == nil && entry.Help != "" {
			pageOpts = append(pageOpts, render.WithHelp(entry.Help))
		}
		pageOpts = append(pageOpts, render.WithControls(o.widgets.Controls(analysis.Missing)))
	}
	pageOpts = append(pageOpts, opts...)
	return render.NewPage(loc, o.types.Groups(), analysis, pageOpts...)
}

// Render draws page with the named renderer, or the default one when name is
// empty, and reports the content type.
func (o *Orchestrator) Render(ctx context.Context, name string, page render.Page, opts render.RenderOptions) ([]byte, string, error) {
	if err := o.initialiseErr; err != nil {
		return nil, "", err
	}
	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, "", err
	}
	output, err := renderer.Render(ctx, page, opts)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: render page: %w", err)
	}
	return output, renderer.ContentType(), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.renderers == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.renderers.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}
	renderer, err = o.renderers.Default()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: no renderers registered: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, analysis *model.Analysis) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, analysis); err != nil {
		return fmt.Errorf("orchestrator: transform analysis: %w", err)
	}
	return nil
}

func fileStatus(role, path string) model.FileStatus {
	info, err := os.Stat(path)
	return model.FileStatus{Role: role, Path: path, Exists: err == nil && !info.IsDir()}
}
