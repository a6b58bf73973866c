package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/render/template"
	"github.com/goliatone/go-docform/pkg/render/template/gotemplate"
)

// Output is a rendered document ready for download.
type Output struct {
	Content     []byte
	FileName    string
	ContentType string
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithEngine sets the template engine used for document parts.
func WithEngine(engine template.TemplateRenderer) ExporterOption {
	return func(e *Exporter) {
		if engine != nil {
			e.engine = engine
		}
	}
}

// WithNaming overrides the output naming convention.
func WithNaming(naming Naming) ExporterOption {
	return func(e *Exporter) {
		e.naming = naming.withDefaults()
	}
}

// Exporter renders .docx templates with a final context.
type Exporter struct {
	engine template.TemplateRenderer
	naming Naming
}

// NewExporter builds an exporter. Without WithEngine a string-only pongo2
// engine is created.
func NewExporter(opts ...ExporterOption) (*Exporter, error) {
	e := &Exporter{naming: DefaultNaming()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.engine == nil {
		engine, err := gotemplate.New()
		if err != nil {
			return nil, fmt.Errorf("render: create template engine: %w", err)
		}
		e.engine = engine
	}
	return e, nil
}

// Naming returns the configured naming convention.
func (e *Exporter) Naming() Naming {
	return e.naming
}

// Export renders the template at templatePath. A missing template yields a
// RenderError of kind ErrorConfig without the file being read; any failure
// after that is of kind ErrorRender.
func (e *Exporter) Export(ctx context.Context, templatePath string, values model.Context) (Output, error) {
	if strings.TrimSpace(templatePath) == "" {
		return Output{}, &RenderError{Kind: ErrorConfig, Err: fmt.Errorf("%w: empty path", ErrTemplateNotFound)}
	}
	info, err := os.Stat(templatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Output{}, &RenderError{Kind: ErrorConfig, Path: templatePath, Err: ErrTemplateNotFound}
		}
		return Output{}, &RenderError{Kind: ErrorConfig, Path: templatePath, Err: err}
	}
	if info.IsDir() {
		return Output{}, &RenderError{Kind: ErrorConfig, Path: templatePath, Err: fmt.Errorf("%w: path is a directory", ErrTemplateNotFound)}
	}
	if err := ctx.Err(); err != nil {
		return Output{}, &RenderError{Kind: ErrorRender, Path: templatePath, Err: err}
	}

	tpl, err := docx.OpenTemplate(templatePath)
	if err != nil {
		return Output{}, &RenderError{Kind: ErrorRender, Path: templatePath, Err: err}
	}
	content, err := tpl.Render(ctx, e.engine, values)
	if err != nil {
		return Output{}, &RenderError{Kind: ErrorRender, Path: templatePath, Err: err}
	}

	return Output{
		Content:     content,
		FileName:    e.naming.FileName(values),
		ContentType: docx.ContentType,
	}, nil
}
