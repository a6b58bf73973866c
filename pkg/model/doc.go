// Package model defines the typed values passed between the extraction,
// form and rendering stages. Field descriptors come from a reference data
// document, placeholder sets from a template document, and the final context
// is the single mapping handed to the document renderer.
//
// Field kinds are deliberately coarse: a field is either a single-line value
// (`short-text`) or a block of prose (`multi-line-text`). Renderers map kinds
// onto concrete widgets; see package widgets.
package model
