// Package extract derives form fields, prefilled values and placeholder names
// from .docx documents.
//
// Reference data documents declare fields either as table rows
// (name, label, value) or, when no table row qualifies, as "Key: value"
// paragraphs. Template documents declare placeholders as `{{ name }}`.
// Extraction never fails hard: unreadable documents produce empty results and
// a diagnostic error the caller may surface or ignore.
package extract
