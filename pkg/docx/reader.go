package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MainPart is the package path of the document body.
const MainPart = "word/document.xml"

var (
	// ErrNotDocx is returned when a package lacks the main document part.
	ErrNotDocx = errors.New("docx: main document part not found")
)

// Document is the text view of a .docx body.
type Document struct {
	Paragraphs []string
	Tables     []Table
}

// Table holds the cell text of a top-level table.
type Table struct {
	Rows []Row
}

// Row lists cell texts in column order. Cells spanning several grid columns
// repeat once per column, and cells continuing a vertical merge repeat the
// text of the cell that started it.
type Row struct {
	Cells []string
}

// Text returns the paragraphs joined by newlines.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	return strings.Join(d.Paragraphs, "\n")
}

// Open reads the .docx file at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("docx: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("docx: stat %s: %w", path, err)
	}
	doc, err := Read(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("docx: %s: %w", path, err)
	}
	return doc, nil
}

// Read parses a .docx package from r.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("docx: read package: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != MainPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("docx: open %s: %w", MainPart, err)
		}
		defer rc.Close()
		return Parse(rc)
	}
	return nil, ErrNotDocx
}

// ReadBytes parses an in-memory .docx package.
func ReadBytes(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Parse reads the paragraphs and tables from a word/document.xml stream.
// Only body-level paragraphs are reported in Paragraphs; paragraphs inside a
// table cell make up that cell's text. Nested tables and text boxes are
// skipped.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	p := &bodyParser{doc: &Document{}}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("docx: parse %s: %w", MainPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "txbxContent" || t.Name.Local == "Fallback" {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("docx: parse %s: %w", MainPart, err)
				}
				continue
			}
			p.start(t)
		case xml.EndElement:
			p.end(t)
		case xml.CharData:
			p.text(t)
		}
	}
	return p.doc, nil
}

type bodyParser struct {
	doc *Document

	tableDepth int
	table      *Table
	row        *Row
	inCell     bool
	cellParas  []string
	gridSpan   int
	column     int
	continued  bool
	merged     map[int]string

	paraDepth int
	para      strings.Builder
	runDepth  int
	inText    bool
}

func (p *bodyParser) start(el xml.StartElement) {
	switch el.Name.Local {
	case "tbl":
		p.tableDepth++
		if p.tableDepth == 1 {
			p.table = &Table{}
			p.merged = make(map[int]string)
		}
	case "tr":
		if p.tableDepth == 1 {
			p.row = &Row{}
		}
	case "tc":
		if p.tableDepth == 1 {
			p.inCell = true
			p.cellParas = p.cellParas[:0]
			p.gridSpan = 1
			p.continued = false
			if p.row != nil {
				p.column = len(p.row.Cells)
			}
		}
	case "gridSpan":
		if p.tableDepth == 1 && p.inCell {
			if n, err := strconv.Atoi(attr(el, "val")); err == nil && n > 1 {
				p.gridSpan = n
			}
		}
	case "vMerge":
		// A missing val means continue.
		if p.tableDepth == 1 && p.inCell {
			val := attr(el, "val")
			p.continued = val == "" || val == "continue"
		}
	case "p":
		p.paraDepth++
		if p.paraDepth == 1 {
			p.para.Reset()
		}
	case "r":
		p.runDepth++
	case "t":
		if p.runDepth > 0 {
			p.inText = true
		}
	case "tab":
		if p.runDepth > 0 {
			p.para.WriteByte('\t')
		}
	case "br", "cr":
		if p.runDepth > 0 {
			p.para.WriteByte('\n')
		}
	}
}

func (p *bodyParser) end(el xml.EndElement) {
	switch el.Name.Local {
	case "t":
		p.inText = false
	case "r":
		if p.runDepth > 0 {
			p.runDepth--
		}
	case "p":
		if p.paraDepth == 0 {
			return
		}
		p.paraDepth--
		if p.paraDepth > 0 {
			return
		}
		text := p.para.String()
		switch {
		case p.tableDepth == 0:
			p.doc.Paragraphs = append(p.doc.Paragraphs, text)
		case p.tableDepth == 1 && p.inCell:
			p.cellParas = append(p.cellParas, text)
		}
	case "tc":
		if p.tableDepth == 1 && p.inCell && p.row != nil {
			text := strings.Join(p.cellParas, "\n")
			for i := 0; i < p.gridSpan; i++ {
				col := p.column + i
				if p.continued {
					text = p.merged[col]
				} else {
					p.merged[col] = text
				}
				p.row.Cells = append(p.row.Cells, text)
			}
			p.inCell = false
		}
	case "tr":
		if p.tableDepth == 1 && p.row != nil && p.table != nil {
			p.table.Rows = append(p.table.Rows, *p.row)
			p.row = nil
		}
	case "tbl":
		if p.tableDepth == 1 && p.table != nil {
			p.doc.Tables = append(p.doc.Tables, *p.table)
			p.table = nil
		}
		if p.tableDepth > 0 {
			p.tableDepth--
		}
	}
}

func (p *bodyParser) text(data xml.CharData) {
	if !p.inText || p.paraDepth == 0 {
		return
	}
	if p.tableDepth > 1 {
		return
	}
	p.para.Write(data)
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
