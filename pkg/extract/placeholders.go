package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/model"
)

// placeholderPattern matches `{{ name }}` where name is made of word runes,
// combining marks included so decomposed diacritics still match.
var placeholderPattern = regexp.MustCompile(`\{\{[\s\p{Z}]*([\p{L}\p{M}\p{N}_]+)[\s\p{Z}]*\}\}`)

// Blob joins the paragraph text with newlines and appends every table cell,
// row-major, each preceded by a newline. Placeholder matching runs over this
// text so tags separated only by paragraph boundaries never fuse.
func Blob(doc *docx.Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Join(doc.Paragraphs, "\n"))
	for _, table := range doc.Tables {
		for _, row := range table.Rows {
			for _, cell := range row.Cells {
				b.WriteByte('\n')
				b.WriteString(cell)
			}
		}
	}
	return b.String()
}

// Placeholders returns the distinct placeholder names in doc.
func Placeholders(doc *docx.Document) model.PlaceholderSet {
	set := model.NewPlaceholderSet()
	for _, match := range placeholderPattern.FindAllStringSubmatch(Blob(doc), -1) {
		set.Add(norm.NFC.String(match[1]))
	}
	return set
}

// ReadPlaceholders opens the template at path and returns its placeholder
// names. On error the set is empty and the error wraps ErrOpen or ErrParse.
func ReadPlaceholders(path string) (model.PlaceholderSet, error) {
	doc, err := readDocument(path)
	if err != nil {
		return model.NewPlaceholderSet(), err
	}
	return Placeholders(doc), nil
}
