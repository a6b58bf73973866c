package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/goliatone/go-docform/pkg/render/template"
)

// ContentType is the media type of rendered documents.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// templatedPart selects the parts carrying user visible text.
var templatedPart = regexp.MustCompile(`^word/(document|header\d*|footer\d*|footnotes|endnotes)\.xml$`)

// lineBreak stands in for "\n" in values while the engine runs; it is
// replaced by a Word line break afterwards.
const lineBreak = "\ue000"

const breakXML = `</w:t><w:br/><w:t xml:space="preserve">`

// Template is a .docx package with `{{ name }}` placeholders.
type Template struct {
	raw    []byte
	reader *zip.Reader
}

// OpenTemplate loads the template at path.
func OpenTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docx: open template %s: %w", path, err)
	}
	tpl, err := ReadTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("docx: %s: %w", path, err)
	}
	return tpl, nil
}

// ReadTemplate wraps an in-memory .docx package.
func ReadTemplate(data []byte) (*Template, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("docx: read package: %w", err)
	}
	found := false
	for _, f := range zr.File {
		if f.Name == MainPart {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotDocx
	}
	return &Template{raw: data, reader: zr}, nil
}

// Document parses the template body as text.
func (t *Template) Document() (*Document, error) {
	return ReadBytes(t.raw)
}

// Render substitutes values into the template and returns the encoded
// package.
func (t *Template) Render(ctx context.Context, engine template.TemplateRenderer, values map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(ctx, &buf, engine, values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Execute writes the rendered package to w. Parts outside the text parts are
// copied without recompression.
func (t *Template) Execute(ctx context.Context, w io.Writer, engine template.TemplateRenderer, values map[string]string) error {
	if engine == nil {
		return fmt.Errorf("docx: template engine is nil")
	}
	data := prepareValues(values)

	zw := zip.NewWriter(w)
	for _, f := range t.reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !templatedPart.MatchString(f.Name) {
			if err := copyRaw(zw, f); err != nil {
				return err
			}
			continue
		}
		if err := renderPart(zw, f, engine, data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("docx: finalize package: %w", err)
	}
	return nil
}

func prepareValues(values map[string]string) map[string]any {
	data := make(map[string]any, len(values))
	for name, value := range values {
		value = strings.ReplaceAll(value, "\r\n", "\n")
		data[name] = strings.ReplaceAll(value, "\n", lineBreak)
	}
	return data
}

// engineContext keeps only keys the engine accepts as identifiers. Every
// other name reaches the template through its alias.
func engineContext(values map[string]any, aliases map[string]string) map[string]any {
	data := make(map[string]any, len(values)+len(aliases))
	for name, value := range values {
		if asciiIdentifier.MatchString(name) {
			data[name] = value
		}
	}
	for alias, name := range aliases {
		data[alias] = values[name]
	}
	return data
}

func renderPart(zw *zip.Writer, f *zip.File, engine template.TemplateRenderer, values map[string]any) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("docx: open %s: %w", f.Name, err)
	}
	payload, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("docx: read %s: %w", f.Name, err)
	}

	source := string(payload)
	if strings.Contains(source, "{") {
		source = mergeSplitTags(source)
	}

	rendered := source
	if strings.Contains(source, "{{") || strings.Contains(source, "{%") {
		aliases := make(map[string]string)
		source = aliasPlaceholders(source, aliases, make(map[string]string))
		rendered, err = engine.RenderString(source, engineContext(values, aliases))
		if err != nil {
			return fmt.Errorf("docx: render %s: %w", f.Name, err)
		}
		rendered = strings.ReplaceAll(rendered, lineBreak, breakXML)
	}

	out, err := zw.CreateHeader(&zip.FileHeader{
		Name:     f.Name,
		Method:   f.Method,
		Modified: f.Modified,
	})
	if err != nil {
		return fmt.Errorf("docx: write %s: %w", f.Name, err)
	}
	if _, err := io.WriteString(out, rendered); err != nil {
		return fmt.Errorf("docx: write %s: %w", f.Name, err)
	}
	return nil
}

func copyRaw(zw *zip.Writer, f *zip.File) error {
	rc, err := f.OpenRaw()
	if err != nil {
		return fmt.Errorf("docx: open %s: %w", f.Name, err)
	}
	header := f.FileHeader
	out, err := zw.CreateRaw(&header)
	if err != nil {
		return fmt.Errorf("docx: copy %s: %w", f.Name, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("docx: copy %s: %w", f.Name, err)
	}
	return nil
}
