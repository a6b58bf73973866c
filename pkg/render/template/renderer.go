package template

import (
	"io"
)

// TemplateRenderer renders named templates and inline template content.
// Implementations write the rendered output to every writer in out and also
// return it.
type TemplateRenderer interface {
	Render(source string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
}
