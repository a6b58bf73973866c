package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-docform/pkg/render"
	rendertemplate "github.com/goliatone/go-docform/pkg/render/template"
	gotemplate "github.com/goliatone/go-docform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-docform/pkg/widgets"
)

const (
	DefaultSelectAction   = "/select"
	DefaultGenerateAction = "/generate"
)

type Option func(*config)

type config struct {
	templateFS     fs.FS
	stylesheet     string
	inlineStyles   bool
	classes        Classes
	selectAction   string
	generateAction string
	selector       theme.ThemeSelector
	themeName      string
	themeVariant   string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/page.tmpl and the partials it includes.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk laid out like
// TemplatesFS: templates/page.tmpl plus templates/partials.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithStylesheet links an external stylesheet and disables the inline one.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = href
		if href != "" {
			cfg.inlineStyles = false
		}
	}
}

// WithInlineStyles toggles embedding the default stylesheet in the page.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithClasses overrides the chrome classes.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithActions changes the form targets for selection and generation.
func WithActions(selectAction, generateAction string) Option {
	return func(cfg *config) {
		if selectAction != "" {
			cfg.selectAction = selectAction
		}
		if generateAction != "" {
			cfg.generateAction = generateAction
		}
	}
}

// WithThemeSelector resolves a theme per render when RenderOptions.Theme is
// not set.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	stylesheet     string
	inlineStyles   string
	classes        Classes
	selectAction   string
	generateAction string
	selector       theme.ThemeSelector
	themeName      string
	themeVariant   string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:     TemplatesFS(),
		inlineStyles:   true,
		selectAction:   DefaultSelectAction,
		generateAction: DefaultGenerateAction,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}

	r := &Renderer{
		templates:      engine,
		stylesheet:     cfg.stylesheet,
		classes:        cfg.classes.withDefaults(),
		selectAction:   cfg.selectAction,
		generateAction: cfg.generateAction,
		selector:       cfg.selector,
		themeName:      cfg.themeName,
		themeVariant:   cfg.themeVariant,
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full dashboard document for page. Values in options
// repopulate the form controls.
func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	themeCfg, err := r.resolveTheme(options.Theme)
	if err != nil {
		return nil, err
	}

	page.Controls = fillControls(page.Controls, options.Values)

	stylesheet := r.stylesheet
	if stylesheet == "" && r.inlineStyles == "" && themeCfg != nil && themeCfg.AssetURL != nil {
		stylesheet = themeCfg.AssetURL(stylesheetAssetKey)
	}

	locale := options.Localizer.Locale
	if locale == "" {
		locale = render.DefaultLocale
	}

	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"page":          page,
		"text":          pageText(options.Localizer),
		"theme":         buildThemeContext(themeCfg).context(),
		"classes":       r.classes.context(),
		"actions":       map[string]string{"select": r.selectAction, "generate": r.generateAction},
		"locale":        locale,
		"stylesheet":    stylesheet,
		"inline_styles": r.inlineStyles,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) resolveTheme(cfg *theme.RendererConfig) (*theme.RendererConfig, error) {
	if cfg != nil || r.selector == nil {
		return cfg, nil
	}
	selection, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: select theme: %w", err)
	}
	return SelectionConfig(selection), nil
}

func fillControls(controls []widgets.Control, values map[string]string) []widgets.Control {
	if len(controls) == 0 || len(values) == 0 {
		return controls
	}
	out := make([]widgets.Control, len(controls))
	copy(out, controls)
	for i := range out {
		if value, ok := values[out[i].Name]; ok {
			out[i].Value = value
		}
	}
	return out
}

func pageText(loc render.Localizer) map[string]string {
	return map[string]string{
		"title":           loc.T(render.MsgTitle),
		"subtitle":        loc.T(render.MsgSubtitle),
		"selector_header": loc.T(render.MsgSelectorHeader),
		"selector_action": loc.T(render.MsgSelectorAction),
		"form_header":     loc.T(render.MsgFormHeader),
		"form_action":     loc.T(render.MsgFormAction),
		"complete_header": loc.T(render.MsgCompleteHeader),
		"complete_body":   loc.T(render.MsgCompleteBody),
		"complete_action": loc.T(render.MsgCompleteAction),
	}
}
