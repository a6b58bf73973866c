package testsupport

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

type packagePart struct {
	name string
	data string
}

// DocxBuilder assembles minimal but well-formed .docx packages in memory so
// tests do not depend on binary fixtures.
type DocxBuilder struct {
	body   []string
	header string
	extra  map[string][]byte
}

// NewDocx starts an empty document.
func NewDocx() *DocxBuilder {
	return &DocxBuilder{extra: make(map[string][]byte)}
}

// Paragraph appends a body paragraph holding text in a single run.
func (b *DocxBuilder) Paragraph(text string) *DocxBuilder {
	b.body = append(b.body, paragraphXML(text))
	return b
}

// Runs appends a paragraph whose text is split across one run per part,
// mimicking how word processors fragment edited text.
func (b *DocxBuilder) Runs(parts ...string) *DocxBuilder {
	var buf strings.Builder
	buf.WriteString("<w:p>")
	for i, part := range parts {
		buf.WriteString("<w:r>")
		if i%2 == 1 {
			buf.WriteString("<w:rPr><w:b/></w:rPr>")
		}
		buf.WriteString(`<w:t xml:space="preserve">`)
		buf.WriteString(escape(part))
		buf.WriteString("</w:t></w:r>")
	}
	buf.WriteString("</w:p>")
	b.body = append(b.body, buf.String())
	return b
}

// Table appends a table; each row lists its cell texts. A cell containing
// "\n" is written as several paragraphs.
func (b *DocxBuilder) Table(rows ...[]string) *DocxBuilder {
	var buf strings.Builder
	buf.WriteString("<w:tbl><w:tblPr><w:tblW w:w=\"0\" w:type=\"auto\"/></w:tblPr>")
	for _, row := range rows {
		buf.WriteString("<w:tr>")
		for _, cell := range row {
			buf.WriteString("<w:tc><w:tcPr><w:tcW w:w=\"0\" w:type=\"auto\"/></w:tcPr>")
			for _, line := range strings.Split(cell, "\n") {
				buf.WriteString(paragraphXML(line))
			}
			buf.WriteString("</w:tc>")
		}
		buf.WriteString("</w:tr>")
	}
	buf.WriteString("</w:tbl>")
	b.body = append(b.body, buf.String())
	return b
}

// Raw appends an arbitrary body fragment.
func (b *DocxBuilder) Raw(fragment string) *DocxBuilder {
	b.body = append(b.body, fragment)
	return b
}

// Header sets the text of the default page header.
func (b *DocxBuilder) Header(text string) *DocxBuilder {
	b.header = text
	return b
}

// Part adds an extra package part copied verbatim.
func (b *DocxBuilder) Part(name string, data []byte) *DocxBuilder {
	b.extra[name] = data
	return b
}

// DocumentXML returns the word/document.xml payload.
func (b *DocxBuilder) DocumentXML() string {
	var buf strings.Builder
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<w:document xmlns:w="%s" xmlns:r="%s"><w:body>`, wordNamespace, relNamespace)
	for _, fragment := range b.body {
		buf.WriteString(fragment)
	}
	if b.header != "" {
		buf.WriteString(`<w:sectPr><w:headerReference w:type="default" r:id="rIdHeader1"/></w:sectPr>`)
	}
	buf.WriteString("</w:body></w:document>")
	return buf.String()
}

// Bytes encodes the package.
func (b *DocxBuilder) Bytes() ([]byte, error) {
	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	parts := []packagePart{
		{"[Content_Types].xml", b.contentTypes()},
		{"_rels/.rels", rootRels},
		{"word/document.xml", b.DocumentXML()},
	}
	if b.header != "" {
		parts = append(parts,
			packagePart{"word/_rels/document.xml.rels", documentRels},
			packagePart{"word/header1.xml", headerXML(b.header)},
		)
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(w, part.data); err != nil {
			return nil, err
		}
	}
	for name, data := range b.extra {
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// MustBytes encodes the package or fails the test.
func (b *DocxBuilder) MustBytes(t *testing.T) []byte {
	t.Helper()
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("build docx: %v", err)
	}
	return data
}

// WriteFile writes the package into dir/name and returns the full path.
func (b *DocxBuilder) WriteFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, b.MustBytes(t), 0o644); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return path
}

// ReadPart extracts a named part from an encoded package.
func ReadPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open docx: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part %s: %v", name, err)
		}
		defer rc.Close()
		payload, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read part %s: %v", name, err)
		}
		return string(payload)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

// ReadDocumentXML extracts word/document.xml from an encoded package.
func ReadDocumentXML(t *testing.T, data []byte) string {
	t.Helper()
	return ReadPart(t, data, "word/document.xml")
}

func (b *DocxBuilder) contentTypes() string {
	var buf strings.Builder
	buf.WriteString(xml.Header)
	buf.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	buf.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	buf.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	if b.header != "" {
		buf.WriteString(`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`)
	}
	buf.WriteString(`</Types>`)
	return buf.String()
}

func paragraphXML(text string) string {
	if text == "" {
		return "<w:p/>"
	}
	return `<w:p><w:r><w:t xml:space="preserve">` + escape(text) + `</w:t></w:r></w:p>`
}

func headerXML(text string) string {
	return xml.Header + fmt.Sprintf(`<w:hdr xmlns:w="%s">%s</w:hdr>`, wordNamespace, paragraphXML(text))
}

func escape(text string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(text))
	return buf.String()
}

const rootRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rIdHeader1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/></Relationships>`
