package render

import (
	"context"
	"encoding/json"
)

// JSONRenderer serialises the page view model. The dashboard serves it for
// `?format=json` so scripts can read the same state the HTML shows.
type JSONRenderer struct{}

func (JSONRenderer) Name() string { return "json" }

func (JSONRenderer) ContentType() string { return "application/json; charset=utf-8" }

func (JSONRenderer) Render(_ context.Context, page Page, _ RenderOptions) ([]byte, error) {
	return json.MarshalIndent(page, "", "  ")
}
