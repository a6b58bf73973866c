// Package docx reads and renders WordprocessingML (.docx) packages.
//
// A .docx file is a zip archive whose main part, word/document.xml, holds the
// body as a sequence of paragraphs (w:p) and tables (w:tbl). The reader in
// this package exposes exactly what form extraction needs: the plain text of
// top-level paragraphs and the cell text of top-level tables, row by row.
//
// Template rendering substitutes `{{ name }}` placeholders inside the main
// document, headers, footers, footnotes and endnotes through a
// template.TemplateRenderer, leaving every other part of the package
// untouched. Placeholders that Word split across several runs are stitched
// back together before the template engine sees them.
package docx
