package render

import (
	"errors"
	"fmt"
)

// ErrorKind classifies render failures.
type ErrorKind string

const (
	// ErrorConfig means the configured template is unusable (missing path).
	// The template file is never opened.
	ErrorConfig ErrorKind = "config"
	// ErrorRender means the template engine failed while rendering or
	// packaging the document.
	ErrorRender ErrorKind = "render"
)

// ErrTemplateNotFound is wrapped by configuration errors for missing
// templates.
var ErrTemplateNotFound = errors.New("render: template not found")

// RenderError reports a failed export.
type RenderError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path == "" {
		return fmt.Sprintf("render: %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("render: %s error for %s: %v", e.Kind, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsConfigError reports whether err is a RenderError of kind ErrorConfig.
func IsConfigError(err error) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr) && renderErr.Kind == ErrorConfig
}

// IsRenderError reports whether err is a RenderError of kind ErrorRender.
func IsRenderError(err error) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr) && renderErr.Kind == ErrorRender
}
