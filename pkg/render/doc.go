// Package render merges prefilled and submitted values into a final context,
// exports .docx templates with that context, and describes the dashboard page
// handed to page renderers.
package render
