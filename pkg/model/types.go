package model

import "strings"

// FieldKind is the simplified enum for the input widgets a field needs.
type FieldKind string

const (
	KindShortText     FieldKind = "short-text"
	KindMultiLineText FieldKind = "multi-line-text"
)

// Field describes one fillable value declared by a reference data document.
// Name is the normalised identifier shared with template placeholders.
type Field struct {
	Name  string    `json:"name" yaml:"name"`
	Label string    `json:"label" yaml:"label"`
	Kind  FieldKind `json:"kind" yaml:"kind"`
}

// Data maps field names to the values a reference document already supplies.
type Data map[string]string

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for key, value := range d {
		out[key] = value
	}
	return out
}

// Has reports whether name carries a usable (non-empty) value.
func (d Data) Has(name string) bool {
	if d == nil {
		return false
	}
	return d[name] != ""
}

// Reference is the result of reading a reference data document.
type Reference struct {
	Fields []Field `json:"fields" yaml:"fields"`
	Data   Data    `json:"data" yaml:"data"`
}

// EmptyReference returns a reference with non-nil, empty collections.
func EmptyReference() Reference {
	return Reference{Fields: []Field{}, Data: Data{}}
}

// Lookup returns the descriptor named name.
func (r Reference) Lookup(name string) (Field, bool) {
	for _, field := range r.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Context is the final placeholder -> value mapping used for exactly one
// render.
type Context map[string]string

// Get returns the value for name or an empty string.
func (c Context) Get(name string) string {
	if c == nil {
		return ""
	}
	return c[name]
}

// Values converts the context into the generic map template engines expect.
func (c Context) Values() map[string]any {
	out := make(map[string]any, len(c))
	for key, value := range c {
		out[key] = value
	}
	return out
}

// FileStatus reports whether one of the configured document files exists.
type FileStatus struct {
	Role   string `json:"role" yaml:"role"`
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
}

const (
	RoleTemplate  = "template"
	RoleReference = "reference"
)

// Analysis bundles everything derived from one document type selection. It is
// recomputed on every selection and never shared between sessions.
type Analysis struct {
	Label        string         `json:"label" yaml:"label"`
	Category     string         `json:"category,omitempty" yaml:"category,omitempty"`
	Template     FileStatus     `json:"template" yaml:"template"`
	Reference    FileStatus     `json:"reference" yaml:"reference"`
	Fields       []Field        `json:"fields" yaml:"fields"`
	Data         Data           `json:"data" yaml:"data"`
	Placeholders PlaceholderSet `json:"placeholders" yaml:"placeholders"`
	Missing      []Field        `json:"missing" yaml:"missing"`
	Diagnostics  []string       `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Ready reports whether both configured files were found.
func (a Analysis) Ready() bool {
	return a.Template.Exists && a.Reference.Exists
}

// Complete reports whether every declared field already has a value.
func (a Analysis) Complete() bool {
	return a.Ready() && len(a.Fields) > 0 && len(a.Missing) == 0
}

// Statuses returns the file statuses in display order (template first).
func (a Analysis) Statuses() []FileStatus {
	return []FileStatus{a.Template, a.Reference}
}

// AddDiagnostic records a non-fatal problem found during analysis.
func (a *Analysis) AddDiagnostic(message string) {
	message = strings.TrimSpace(message)
	if a == nil || message == "" {
		return
	}
	a.Diagnostics = append(a.Diagnostics, message)
}
