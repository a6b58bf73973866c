package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that page renderers use without
// mutating the page itself.
type RenderOptions struct {
	// Values pre-populates form controls by field name, typically with the
	// values a failed submission carried.
	Values map[string]string
	// Theme carries resolved tokens, CSS variables and asset URLs.
	Theme *theme.RendererConfig
	// Localizer translates page chrome. The zero value prints message keys.
	Localizer Localizer
}
