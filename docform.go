// Package docform fills administrative .docx templates. Known values come
// from a reference document; the rest are collected through a generated form.
//
// Most callers need one of:
//
//	docs := docform.NewOrchestrator(orchestrator.WithDataDir("data"))
//	out, err := docform.Generate(ctx, label, values, orchestrator.WithDataDir("data"))
//
// The HTTP dashboard mounts AssetsFS under /assets.
package docform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/orchestrator"
	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/renderers/vanilla"
)

// Analysis is the per-selection bundle of fields, prefilled data,
// placeholders and file status.
type Analysis = model.Analysis

// Entry describes one document type.
type Entry = registry.Entry

// Output is a rendered document ready for download.
type Output = render.Output

// RenderOptions describes per-request overrides for page renderers.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Analyze inspects the document type registered under label.
func Analyze(ctx context.Context, label string, options ...orchestrator.Option) (Analysis, error) {
	return orchestrator.New(options...).Analyze(ctx, label)
}

// Generate analyses label and renders its template with values layered over
// the prefilled data.
func Generate(ctx context.Context, label string, values map[string]string, options ...orchestrator.Option) (Output, error) {
	docs := orchestrator.New(options...)
	analysis, err := docs.Analyze(ctx, label)
	if err != nil {
		return Output{}, err
	}
	return docs.Generate(ctx, analysis, values)
}

// EmbeddedTemplates exposes the built-in dashboard templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the dashboard stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(docform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
