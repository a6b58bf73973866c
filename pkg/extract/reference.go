package extract

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/model"
)

var (
	// ErrOpen reports a document that could not be opened.
	ErrOpen = errors.New("extract: open document")
	// ErrParse reports a document that is not a readable .docx package.
	ErrParse = errors.New("extract: parse document")
)

// Strategy derives field descriptors and prefilled values from a document.
// A strategy that finds nothing returns a reference without fields so the
// next strategy can run.
type Strategy interface {
	Name() string
	Extract(doc *docx.Document) model.Reference
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHeaderMarkers replaces the header-row markers.
func WithHeaderMarkers(markers ...string) Option {
	return func(e *Extractor) {
		e.headerMarkers = append([]string(nil), markers...)
	}
}

// WithLongContentMarkers replaces the label markers that select a multi-line
// input.
func WithLongContentMarkers(markers ...string) Option {
	return func(e *Extractor) {
		e.longMarkers = append([]string(nil), markers...)
	}
}

// WithRecordEmptyColonValues controls whether "Key:" paragraphs with nothing
// after the colon put an empty value in Data. Empty values are missing either
// way, so the form is the same as for an empty table cell. Defaults to true.
func WithRecordEmptyColonValues(record bool) Option {
	return func(e *Extractor) {
		e.recordEmptyColon = record
	}
}

// WithStrategies replaces the strategy chain.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		e.strategies = append([]Strategy(nil), strategies...)
	}
}

// Extractor reads reference data documents. The zero value is not usable;
// construct one with NewExtractor.
type Extractor struct {
	headerMarkers    []string
	longMarkers      []string
	recordEmptyColon bool
	strategies       []Strategy
}

// NewExtractor builds an extractor that tries table rows first and colon
// paragraphs second.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		headerMarkers:    DefaultHeaderMarkers,
		longMarkers:      DefaultLongContentMarkers,
		recordEmptyColon: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if len(e.strategies) == 0 {
		e.strategies = []Strategy{
			TableStrategy{HeaderMarkers: e.headerMarkers, LongContentMarkers: e.longMarkers},
			ColonStrategy{RecordEmpty: e.recordEmptyColon},
		}
	}
	return e
}

// Reference runs the strategies in order and returns the first result that
// declares at least one field.
func (e *Extractor) Reference(doc *docx.Document) model.Reference {
	if doc == nil {
		return model.EmptyReference()
	}
	for _, strategy := range e.strategies {
		ref := strategy.Extract(doc)
		if len(ref.Fields) > 0 {
			return ref
		}
	}
	return model.EmptyReference()
}

// ReadReference opens the document at path and extracts its reference data.
// It never fails hard: on error the returned reference is empty and the error
// wraps ErrOpen or ErrParse for diagnostics.
func (e *Extractor) ReadReference(path string) (model.Reference, error) {
	doc, err := readDocument(path)
	if err != nil {
		return model.EmptyReference(), err
	}
	return e.Reference(doc), nil
}

// TableStrategy reads rows shaped (name, label, value). Rows with fewer than
// three cells or an empty name or label are ignored; values are recorded only
// when non-empty.
type TableStrategy struct {
	HeaderMarkers      []string
	LongContentMarkers []string
}

func (TableStrategy) Name() string { return "table" }

func (s TableStrategy) Extract(doc *docx.Document) model.Reference {
	acc := newAccumulator()
	for _, table := range doc.Tables {
		for rowIdx, row := range table.Rows {
			cells := trimmed(row.Cells)
			if rowIdx == 0 && len(cells) > 0 && containsAny(cells[0], s.HeaderMarkers) {
				continue
			}
			if len(cells) < 3 || cells[0] == "" || cells[1] == "" {
				continue
			}
			name := NormalizeName(cells[0])
			if name == "" {
				continue
			}
			kind := model.KindShortText
			if containsAny(cells[1], s.LongContentMarkers) {
				kind = model.KindMultiLineText
			}
			acc.add(model.Field{Name: name, Label: cells[1], Kind: kind}, cells[2], cells[2] != "")
		}
	}
	return acc.reference()
}

// ColonStrategy reads "Key: value" paragraphs, splitting on the first colon.
// Every field is short text.
type ColonStrategy struct {
	RecordEmpty bool
}

func (ColonStrategy) Name() string { return "colon" }

func (s ColonStrategy) Extract(doc *docx.Document) model.Reference {
	acc := newAccumulator()
	for _, paragraph := range doc.Paragraphs {
		key, value, ok := strings.Cut(paragraph, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		name := NormalizeName(key)
		if name == "" {
			continue
		}
		acc.add(model.Field{Name: name, Label: key, Kind: model.KindShortText}, value, s.RecordEmpty || value != "")
	}
	return acc.reference()
}

// accumulator keeps descriptors in first-seen order while later duplicates
// replace both the descriptor content and the value.
type accumulator struct {
	fields []model.Field
	index  map[string]int
	data   model.Data
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[string]int), data: model.Data{}}
}

func (a *accumulator) add(field model.Field, value string, record bool) {
	if pos, ok := a.index[field.Name]; ok {
		a.fields[pos] = field
	} else {
		a.index[field.Name] = len(a.fields)
		a.fields = append(a.fields, field)
	}
	if record {
		a.data[field.Name] = value
	} else {
		delete(a.data, field.Name)
	}
}

func (a *accumulator) reference() model.Reference {
	if a.fields == nil {
		a.fields = []model.Field{}
	}
	return model.Reference{Fields: a.fields, Data: a.data}
}

func trimmed(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func readDocument(path string) (*docx.Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrOpen)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	doc, err := docx.Read(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrParse, path, err)
	}
	return doc, nil
}

var defaultExtractor = NewExtractor()

// ReadReference extracts reference data with the default extractor.
func ReadReference(path string) (model.Reference, error) {
	return defaultExtractor.ReadReference(path)
}
