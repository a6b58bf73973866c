package tui

import "io"

// OutputFormat selects how Render serializes the collected values.
type OutputFormat string

const (
	// OutputFormatJSON writes a JSON object of field name to value.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText writes sorted name=value lines.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Prefixes are prepended to prompts, status lines and error lines.
type Prefixes struct {
	Prompt string
	Info   string
	Error  string
}

// SubmitTransformer rewrites the collected values before they are returned.
type SubmitTransformer func(map[string]string) (map[string]string, error)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPromptDriver replaces the survey prompts.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the survey driver prints status lines.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) { r.out = w }
}

// WithOutputFormat selects the Render serialization.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer runs fn over the values Collect returns.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) { r.submitTransformer = fn }
}

// WithPrefixes sets the line prefixes.
func WithPrefixes(p Prefixes) Option {
	return func(r *Renderer) { r.prefixes = p }
}
