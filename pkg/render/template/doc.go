// Package template defines the engine seam shared by the document renderer
// and the HTML dashboard. The gotemplate subpackage implements it on pongo2,
// whose `{{ name }}` syntax is the placeholder syntax of document templates.
package template
